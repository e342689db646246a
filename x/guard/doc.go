/*
Package guard holds the vault configuration and the authorization checks
shared by all vault extensions.

The configuration is a singleton created once, either by the genesis file
or by the initialize message. It declares the administrator and the
committee of emergency signers together with the number of approvals
required to force release a lock.
*/
package guard
