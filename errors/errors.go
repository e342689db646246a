package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Generic root errors. Codes below 100 are shared by all extensions.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")

	// ErrMsg is returned for a message that fails validation.
	ErrMsg = Register(4, "invalid message")
	// ErrModel is returned for a stored model that fails validation.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman signals a programming mistake, a branch that correct code
	// never reaches.
	ErrHuman = Register(7, "coding error")

	ErrEmpty  = Register(9, "value is empty")
	ErrState  = Register(10, "invalid state")
	ErrType   = Register(11, "invalid type")
	ErrAmount = Register(13, "invalid amount")
	ErrInput  = Register(14, "invalid input")

	// ErrOverflow is returned when a result does not fit its type.
	ErrOverflow = Register(16, "value overflow")

	ErrDatabase     = Register(17, "database error")
	ErrIteratorDone = Register(18, "iterator done")

	// ErrNetwork is only produced by client code.
	ErrNetwork = Register(100200, "network")

	// ErrPanic marks a recovered panic. Its message is never exposed
	// outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry maps every code to its root error. Code 1 is reserved for
// errors that were never registered.
var registry = map[uint32]*Error{
	internalABCICode: nil,
}

// Register declares a new root error. It panics when the code is taken, so
// call it only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		name := "reserved"
		if prev != nil {
			name = prev.desc
		}
		panic(fmt.Sprintf("error code %d already registered as %q", code, name))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Runtime errors wrap one of them so that the kind
// and the ABCI code survive any amount of added context.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

// ABCICode is the code reported to clients for this kind of failure.
func (e Error) ABCICode() uint32 { return e.code }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

// Is reports whether err is of this kind, following Cause chains and
// looking into every member of a multi error.
//
// A nil kind matches only a nil error, including typed nil pointers.
func (kind *Error) Is(err error) bool {
	if kind == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == kind {
			return true
		}
		if group, ok := err.(multiErr); ok {
			for _, member := range group {
				if kind.Is(member) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds context to err. It returns nil for a nil err so it can be used
// directly in a return statement. The first wrap records a stack trace.
//
// Errors that do not resolve to a registered root are reported as
// internal errors.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{parent: withStack(err), msg: description}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error { return e.parent }

// Recover turns a panic into an ErrPanic assigned to *err. It must be
// called directly by defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

// withStack attaches a stack trace unless err already carries one.
func withStack(err error) error {
	if stackTrace(err) != nil {
		return err
	}
	return errors.WithStack(err)
}

// isNilErr is true for a nil interface and for a typed nil pointer.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
