package errors

import (
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no non-nil error is provided, nil is returned.
// If only one non-nil error is provided, that error is returned unchanged.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a group of errors. It is reported with the ABCI code of
// the first error, which is consistent with the fail-fast approach.
type multiErr []error

func (m multiErr) Error() string {
	msgs := make([]string, len(m))
	for i, e := range m {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

func (m multiErr) ABCICode() uint32 {
	return abciCode(m[0])
}
