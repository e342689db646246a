/*
Package errors implements the error model used across the vault.

Every failure returned by a handler should wrap one of the root errors
registered in this package. A root error carries an ABCI code so the client
can tell failures apart without parsing the log message.

If you want to register a custom error, use Register(code, description).
To create an instance use Wrap, Wrapf or Field. Test the kind of an error
with the root error Is method:

	if errors.ErrNotFound.Is(err) {
		...
	}

Wrapping attaches a stack trace at the lowest frame. Use %+v when printing
an error to include it.
*/
package errors
