// Package assert provides minimal assertion helpers that fail the test
// immediately. Value comparison is delegated to testify.
package assert

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
)

// Tester is the minimal subset of testing.TB needed to run most assert commands
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
}

// Nil fails the test if given value is not nil.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints a stack trace for errors that carry one.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	return assert.Nil(noopT{}, value)
}

// noopT swallows testify failure reports so that its checks can be used as
// predicates.
type noopT struct{}

func (noopT) Errorf(string, ...interface{}) {}

// Equal fails the test if two values are not equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if !assert.ObjectsAreEqual(want, got) {
		t.Fatalf("values not equal \nwant %T %v\n got %T %v", want, want, got, got)
	}
}

// Panics will run given function and recover any panic. It will fail the test
// if given function call did not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	if !assert.Panics(noopT{}, fn) {
		t.Fatal("panic expected")
	}
}

// IsErr checks that the errors are a match, comparing by error kind when
// the expected error is one of the registered errors.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if kind, ok := want.(*errors.Error); ok && kind.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError ensures that given error contains exactly one error for the
// field and that it is of the wanted kind. Use nil as want to ensure that
// no error was reported for the field.
func FieldError(t testing.TB, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("expected no %q field error, got %q", fieldName, errs)
		}
		return
	}
	switch len(errs) {
	case 0:
		t.Fatalf("no %q field error found", fieldName)
	case 1:
		if !want.Is(errs[0]) {
			t.Fatalf("unexpected %q field error: %q", fieldName, errs[0])
		}
	default:
		t.Fatalf("want one %q field error, got %d: %q", fieldName, len(errs), errs)
	}
}
