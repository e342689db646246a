package vesting

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/guard"
	"github.com/iov-one/vault/x/ledger"
)

// RegisterQuery registers vesting bucket under /vestings.
func RegisterQuery(qr vault.QueryRouter) {
	NewBucket().Register("vestings", qr)
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r vault.Registry, auth x.Authenticator) {
	schedules := NewBucket()
	r.Handle(&CreateVestingMsg{}, &createVestingHandler{auth: auth, schedules: schedules})
	r.Handle(&ClaimVestedMsg{}, &claimVestedHandler{auth: auth, schedules: schedules})
}

type createVestingHandler struct {
	auth      x.Authenticator
	schedules orm.ModelBucket
}

var _ vault.Handler = (*createVestingHandler)(nil)

func (h *createVestingHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *createVestingHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	schedule, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := Sequence.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}
	schedule.ID = id
	if _, err := h.schedules.Put(db, id, schedule); err != nil {
		return nil, errors.Wrap(err, "store schedule")
	}
	if _, err := ledger.Credit(db, schedule.TotalAmount); err != nil {
		return nil, errors.Wrap(err, "account schedule")
	}

	ev := vault.NewEvent("vault/vest",
		"id", orm.FormatID(id),
		"beneficiary", schedule.Beneficiary,
		"total", schedule.TotalAmount,
		"duration", int64(schedule.Duration))
	return &vault.DeliverResult{Data: id, Events: []vault.Event{ev}}, nil
}

// validate returns the schedule described by the message, starting at the
// current block time. Both the cliff and the vesting end must be
// representable.
func (h *createVestingHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*VestingSchedule, error) {
	var msg CreateVestingMsg
	if err := vault.ExtractMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	admin := x.IdentityOrSigner(ctx, h.auth, msg.Admin)
	if _, err := guard.RequireAdmin(ctx, h.auth, db, admin); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	now, err := vault.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	start := vault.AsUnixTime(now)
	if _, err := start.CheckedAdd(msg.Cliff); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidDuration, "cliff: %s", err)
	}
	if _, err := start.CheckedAdd(msg.Duration); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidDuration, "duration: %s", err)
	}
	schedule := VestingSchedule{
		Beneficiary: msg.Beneficiary,
		TotalAmount: msg.TotalAmount,
		StartTime:   start,
		Duration:    msg.Duration,
		Cliff:       msg.Cliff,
		Memo:        msg.Memo,
	}
	return &schedule, nil
}

type claimVestedHandler struct {
	auth      x.Authenticator
	schedules orm.ModelBucket
}

var _ vault.Handler = (*claimVestedHandler)(nil)

func (h *claimVestedHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *claimVestedHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, schedule, claimable, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	claimed, err := schedule.ClaimedAmount.Add(claimable)
	if err != nil {
		return nil, errors.Wrap(err, "claimed amount")
	}
	schedule.ClaimedAmount = claimed
	if _, err := h.schedules.Put(db, msg.VestingID, schedule); err != nil {
		return nil, errors.Wrap(err, "store schedule")
	}
	if _, err := ledger.Debit(ctx, db, claimable); err != nil {
		return nil, errors.Wrap(err, "account claim")
	}

	ev := vault.NewEvent("vault/v_claim",
		"id", orm.FormatID(msg.VestingID),
		"beneficiary", schedule.Beneficiary,
		"amount", claimable)
	return &vault.DeliverResult{Data: claimable, Events: []vault.Event{ev}}, nil
}

func (h *claimVestedHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*ClaimVestedMsg, *VestingSchedule, coin.Amount, error) {
	var msg ClaimVestedMsg
	if err := vault.ExtractMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := guard.RequireInitialized(db); err != nil {
		return nil, nil, nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, nil, errors.Wrap(err, "invalid message")
	}
	beneficiary := x.IdentityOrSigner(ctx, h.auth, msg.Beneficiary)
	if err := guard.RequireAuthentic(ctx, h.auth, beneficiary); err != nil {
		return nil, nil, nil, errors.Wrap(err, "beneficiary")
	}
	schedule, err := Load(db, msg.VestingID)
	if err != nil {
		return nil, nil, nil, err
	}
	if !schedule.Beneficiary.Equals(beneficiary) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the beneficiary")
	}
	now, err := vault.BlockTime(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "block time")
	}
	claimable, err := Claimable(schedule, vault.AsUnixTime(now))
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, schedule, claimable, nil
}
