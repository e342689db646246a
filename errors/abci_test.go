package errors

import (
	stderrors "errors"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"nil error": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"registered error": {
			err:      ErrNotInitialized,
			wantCode: 101,
			wantLog:  "vault not initialized",
		},
		"wrapped registered error": {
			err:      Wrap(ErrEmergencyNotApproved, "1 of 2"),
			wantCode: 109,
			wantLog:  "1 of 2: emergency not approved",
		},
		"stdlib error is redacted": {
			err:      stderrors.New("disk on fire"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"multi error uses the first code": {
			err:      Append(ErrAmount, ErrInvalidDuration),
			wantCode: 13,
			wantLog:  "invalid amount; invalid duration",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

func TestABCIErrorRoundTrip(t *testing.T) {
	code, log := ABCIInfo(Wrap(ErrAlreadyApproved, "lock 3"), false)
	err := ABCIError(code, log)
	if !ErrAlreadyApproved.Is(err) {
		t.Fatalf("want already approved, got %v", err)
	}

	unknown := ABCIError(987654, "whatever")
	if ErrHuman.Is(unknown) {
		t.Fatal("unknown code must not match a registered error")
	}
}
