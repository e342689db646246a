package vesting

import (
	"math"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestVestedAmount(t *testing.T) {
	const start = vault.UnixTime(1000)

	yearly := VestingSchedule{
		TotalAmount: coin.NewAmount(10000000),
		StartTime:   start,
		Duration:    31536000,
		Cliff:       7776000,
	}

	cases := map[string]struct {
		Schedule VestingSchedule
		Now      vault.UnixTime
		Want     string
	}{
		"before start": {
			Schedule: yearly,
			Now:      start - 1,
			Want:     "0",
		},
		"one second before the cliff": {
			Schedule: yearly,
			Now:      start + 7776000 - 1,
			Want:     "0",
		},
		"at the cliff": {
			Schedule: yearly,
			Now:      start + 7776000,
			Want:     "2465753",
		},
		"half of the duration": {
			Schedule: yearly,
			Now:      start + 15768000,
			Want:     "5000000",
		},
		"end of the duration": {
			Schedule: yearly,
			Now:      start + 31536000,
			Want:     "10000000",
		},
		"long after the end": {
			Schedule: yearly,
			Now:      start + 10*31536000,
			Want:     "10000000",
		},
		"no cliff at start": {
			Schedule: VestingSchedule{TotalAmount: coin.NewAmount(100), StartTime: start, Duration: 10},
			Now:      start,
			Want:     "0",
		},
		"no cliff rounds down": {
			Schedule: VestingSchedule{TotalAmount: coin.NewAmount(100), StartTime: start, Duration: 3},
			Now:      start + 1,
			Want:     "33",
		},
		"cliff longer than duration": {
			Schedule: VestingSchedule{TotalAmount: coin.NewAmount(100), StartTime: start, Duration: 10, Cliff: 20},
			Now:      start + 15,
			Want:     "0",
		},
		"cliff longer than duration reached": {
			Schedule: VestingSchedule{TotalAmount: coin.NewAmount(100), StartTime: start, Duration: 10, Cliff: 20},
			Now:      start + 20,
			Want:     "100",
		},
		"cliff past the largest time never ends": {
			Schedule: VestingSchedule{TotalAmount: coin.NewAmount(1000), StartTime: start, Duration: 100, Cliff: math.MaxInt64},
			Now:      start + 50,
			Want:     "0",
		},
		"cliff past the largest time after the duration": {
			Schedule: VestingSchedule{TotalAmount: coin.NewAmount(1000), StartTime: start, Duration: 100, Cliff: math.MaxInt64},
			Now:      start + 1000,
			Want:     "0",
		},
		"large amount does not overflow": {
			Schedule: VestingSchedule{
				TotalAmount: coin.MustParseAmount("170141183460469231731687303715884105727"),
				StartTime:   start,
				Duration:    4,
			},
			Now:  start + 3,
			Want: "127605887595351923798765477786913079295",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := VestedAmount(&tc.Schedule, tc.Now)
			assert.Nil(t, err)
			assert.Equal(t, tc.Want, got.String())
		})
	}
}

func TestClaimable(t *testing.T) {
	s := VestingSchedule{
		TotalAmount: coin.NewAmount(10000000),
		StartTime:   0,
		Duration:    31536000,
		Cliff:       7776000,
	}

	_, err := Claimable(&s, 7776000-1)
	assert.IsErr(t, errors.ErrNothingToClaim, err)

	got, err := Claimable(&s, 15768000)
	assert.Nil(t, err)
	assert.Equal(t, "5000000", got.String())

	s.ClaimedAmount = got
	_, err = Claimable(&s, 15768000)
	assert.IsErr(t, errors.ErrNothingToClaim, err)

	got, err = Claimable(&s, 31536000)
	assert.Nil(t, err)
	assert.Equal(t, "5000000", got.String())

	s.ClaimedAmount = s.TotalAmount
	_, err = Claimable(&s, 2*31536000)
	assert.IsErr(t, errors.ErrNothingToClaim, err)
}

func TestClaimableWithUnreachableCliff(t *testing.T) {
	const start = vault.UnixTime(1572247483)
	s := VestingSchedule{
		TotalAmount: coin.NewAmount(1000),
		StartTime:   start,
		Duration:    100,
		Cliff:       math.MaxInt64,
	}
	for _, now := range []vault.UnixTime{start, start + 50, start + 100, math.MaxInt64} {
		_, err := Claimable(&s, now)
		assert.IsErr(t, errors.ErrNothingToClaim, err)
	}
}
