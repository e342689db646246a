package vesting

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// VestedAmount returns the part of the total amount that is vested at
// given time. Nothing is vested before the cliff. After the cliff the
// amount is total * elapsed / duration rounded down, capped at the total.
func VestedAmount(s *VestingSchedule, now vault.UnixTime) (coin.Amount, error) {
	if end, ok := cliffEnd(s); !ok || now < end {
		return nil, nil
	}
	elapsed := int64(now - s.StartTime)
	if elapsed <= 0 {
		return nil, nil
	}
	if elapsed >= int64(s.Duration) {
		return s.TotalAmount, nil
	}
	return s.TotalAmount.MulDiv(uint64(elapsed), uint64(s.Duration))
}

// Claimable returns the amount that the beneficiary can claim at given
// time. ErrNothingToClaim is returned when that amount is zero.
func Claimable(s *VestingSchedule, now vault.UnixTime) (coin.Amount, error) {
	switch end, ok := cliffEnd(s); {
	case !ok:
		return nil, errors.Wrap(errors.ErrNothingToClaim, "cliff never ends")
	case now < end:
		return nil, errors.Wrapf(errors.ErrNothingToClaim, "cliff ends at %s", end)
	}
	vested, err := VestedAmount(s, now)
	if err != nil {
		return nil, errors.Wrap(err, "vested amount")
	}
	if vested.Cmp(s.ClaimedAmount) <= 0 {
		return nil, errors.Wrap(errors.ErrNothingToClaim, "everything vested was claimed")
	}
	return vested.Sub(s.ClaimedAmount)
}

// cliffEnd returns the time the cliff is over. A cliff ending past the
// largest representable time is never over.
func cliffEnd(s *VestingSchedule) (vault.UnixTime, bool) {
	end, err := s.StartTime.CheckedAdd(s.Cliff)
	return end, err == nil
}
