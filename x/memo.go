package x

import (
	"regexp"

	"github.com/iov-one/vault/errors"
)

// MaxMemoLength is the longest memo that can be attached to a lock or a
// vesting schedule.
const MaxMemoLength = 32

var isMemo = regexp.MustCompile(`^[a-zA-Z0-9_]*$`).MatchString

// ValidateMemo returns an error if given memo is not a short tag made of
// letters, digits and underscores. An empty memo is valid.
func ValidateMemo(memo string) error {
	if len(memo) > MaxMemoLength {
		return errors.Wrapf(errors.ErrInput, "memo longer than %d characters", MaxMemoLength)
	}
	if !isMemo(memo) {
		return errors.Wrap(errors.ErrInput, "memo can contain only letters, digits and underscore")
	}
	return nil
}
