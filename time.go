package vault

import (
	"encoding/json"
	"time"

	"github.com/iov-one/vault/errors"
)

// UnixTime is a moment in seconds since the epoch. Unlock times and
// vesting start times are stored with this precision.
type UnixTime int64

func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// Time is the UTC time.Time of t.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) IsZero() bool { return t == 0 }

// Add moves t by d, dropping fractions of a second.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t.AddDuration(AsUnixDuration(d))
}

func (t UnixTime) AddDuration(d UnixDuration) UnixTime {
	return t + UnixTime(d)
}

// CheckedAdd is AddDuration that fails with ErrOverflow instead of
// wrapping around when the result does not fit.
func (t UnixTime) CheckedAdd(d UnixDuration) (UnixTime, error) {
	sum := t + UnixTime(d)
	if (d > 0 && sum < t) || (d < 0 && sum > t) {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", int64(t), int64(d))
	}
	return sum, nil
}

// Validate rejects times before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative time")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().String()
}

// UnmarshalJSON accepts a number of seconds or an RFC 3339 string. The
// string form is handy in genesis files.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var secs int64
	if err := json.Unmarshal(raw, &secs); err != nil {
		var std time.Time
		if err := json.Unmarshal(raw, &std); err != nil {
			return errors.Wrap(errors.ErrInput, "time must be seconds or RFC 3339")
		}
		secs = std.Unix()
	}
	if secs < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = UnixTime(secs)
	return nil
}

// UnixDuration is a duration in whole seconds. Lock durations, vesting
// durations and cliffs use it.
type UnixDuration int64

// AsUnixDuration truncates d to whole seconds.
func AsUnixDuration(d time.Duration) UnixDuration {
	return UnixDuration(d / time.Second)
}

func (d UnixDuration) Duration() time.Duration {
	return time.Duration(d) * time.Second
}

func (d UnixDuration) String() string {
	return d.Duration().String()
}

// UnmarshalJSON accepts a number of seconds or a time.ParseDuration
// string such as "720h".
func (d *UnixDuration) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		std, err := time.ParseDuration(s)
		if err != nil {
			return errors.Wrap(errors.ErrInput, err.Error())
		}
		*d = AsUnixDuration(std)
		return nil
	}
	var secs int64
	if err := json.Unmarshal(raw, &secs); err != nil {
		return errors.Wrap(errors.ErrInput, "duration must be seconds or a string")
	}
	*d = UnixDuration(secs)
	return nil
}
