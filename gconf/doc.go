/*
Package gconf keeps configuration singletons in the store.

Each extension owns at most one configuration object, stored under the
"_c:<package name>" key. Configuration is loaded from the genesis file
(conf.<package name>) during chain initialization, or written by the
extension itself when it is set up through a transaction.
*/
package gconf
