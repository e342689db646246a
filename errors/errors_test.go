package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		a      *Error
		b      error
		wantIs bool
	}{
		"instance of the same error": {
			a:      ErrNotFound,
			b:      ErrNotFound,
			wantIs: true,
		},
		"two different coded errors": {
			a:      ErrNotFound,
			b:      ErrLockNotFound,
			wantIs: false,
		},
		"wrapped instance of the same error": {
			a:      ErrLockStillActive,
			b:      Wrap(ErrLockStillActive, "unlock at 123"),
			wantIs: true,
		},
		"doubly wrapped instance": {
			a:      ErrAlreadyClaimed,
			b:      Wrap(Wrapf(ErrAlreadyClaimed, "lock %d", 4), "claim"),
			wantIs: true,
		},
		"stdlib error is never a registered error": {
			a:      ErrHuman,
			b:      stderrors.New("coding error"),
			wantIs: false,
		},
		"nil is nil": {
			a:      nil,
			b:      nil,
			wantIs: true,
		},
		"nil is not an error": {
			a:      nil,
			b:      ErrState,
			wantIs: false,
		},
		"multi error contains the kind": {
			a:      ErrAmount,
			b:      Append(ErrInput, Wrap(ErrAmount, "zero")),
			wantIs: true,
		},
		"field error wraps the kind": {
			a:      ErrInvalidDuration,
			b:      Field("Duration", ErrInvalidDuration, "must be positive"),
			wantIs: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.a.Is(tc.b); got != tc.wantIs {
				t.Fatalf("unexpected result: %v", got)
			}
		})
	}
}

func TestRegisterDuplicatedCode(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("duplicated code registration must panic")
		}
	}()
	Register(ErrNothingToClaim.code, "duplicate")
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "nothing"); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
	if err := Wrapf(nil, "nothing %d", 1); err != nil {
		t.Fatalf("want nil, got %v", err)
	}
}

func TestWrappedMessage(t *testing.T) {
	err := Wrap(Wrap(ErrVestingNotFound, "id 7"), "claim vested")
	if got, want := err.Error(), "claim vested: id 7: vesting not found"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestStackTraceIsAttachedOnce(t *testing.T) {
	err := Wrap(Wrap(ErrState, "inner"), "outer")
	full := fmt.Sprintf("%+v", err)
	if !strings.Contains(full, "errors_test.go") {
		t.Fatalf("stack trace not found in %q", full)
	}
	if stackTrace(err) == nil {
		t.Fatal("stack trace expected")
	}
}

func TestRecover(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	if err := fn(); !ErrPanic.Is(err) {
		t.Fatalf("want panic error, got %v", err)
	}
}
