/*
Package x contains helpers shared by the vault extensions.

Extensions implement the handlers and decorators that together make up
the vault application. This package holds what more than one of them
needs: signer authentication (see Authenticator) and memo validation.

Note that protobuf types in exported code will be prefixed by
the package, so follow standard go naming conventions and avoid
stutter. Use eg. `timelock.ClaimMsg` in place of `timelock.TimelockClaimMsg`.
*/
package x
