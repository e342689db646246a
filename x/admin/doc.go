/*
Package admin implements vault initialization and administrator control.

A vault is initialized exactly once, either from the genesis file or with
an InitializeMsg. Initialization declares the administrator together with
the emergency signers and their threshold. After that only the
administrator can be replaced, and only the administrator can approve a
code upgrade.
*/
package admin
