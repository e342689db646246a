package errors

import "fmt"

// SuccessABCICode is the code of a successful ABCI response.
const SuccessABCICode = 0

const (
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo converts err into the code and log of an ABCI response.
//
// Errors without a registered root get code 1. Their message may leak
// node internals, so outside of debug mode it is replaced by a generic
// one. In debug mode the log is printed with %+v and carries the stack
// trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode walks the Cause chain until it finds an error with a code.
func abciCode(err error) uint32 {
	for !isNilErr(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		next, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = next.Cause()
	}
	return SuccessABCICode
}

// ABCIError rebuilds an error from an ABCI response. Known codes map back
// to their root error so ErrX.Is works on the client side. Only clients
// should need this.
func ABCIError(code uint32, log string) error {
	if root := registry[code]; root != nil {
		return Wrap(root, log)
	}
	return Wrap(&Error{code: code, desc: "unknown error code"}, log)
}
