package timelock

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/guard"
	"github.com/iov-one/vault/x/ledger"
)

// RegisterQuery registers locks bucket under /locks.
func RegisterQuery(qr vault.QueryRouter) {
	NewBucket().Register("locks", qr)
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r vault.Registry, auth x.Authenticator) {
	locks := NewBucket()
	r.Handle(&LockTokensMsg{}, &lockTokensHandler{auth: auth, locks: locks})
	r.Handle(&ClaimMsg{}, &claimHandler{auth: auth, locks: locks})
}

type lockTokensHandler struct {
	auth  x.Authenticator
	locks orm.ModelBucket
}

var _ vault.Handler = (*lockTokensHandler)(nil)

func (h *lockTokensHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *lockTokensHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, lock, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	id, err := Sequence.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}
	lock.ID = id
	if _, err := h.locks.Put(db, id, lock); err != nil {
		return nil, errors.Wrap(err, "store lock")
	}
	if _, err := ledger.Credit(db, lock.Amount); err != nil {
		return nil, errors.Wrap(err, "account lock")
	}

	ev := vault.NewEvent("vault/lock",
		"id", orm.FormatID(id),
		"owner", lock.Owner,
		"amount", lock.Amount,
		"duration", int64(msg.Duration))
	return &vault.DeliverResult{Data: id, Events: []vault.Event{ev}}, nil
}

// validate returns the lock described by the message. The lock has no ID
// assigned yet.
func (h *lockTokensHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*LockTokensMsg, *TokenLock, error) {
	var msg LockTokensMsg
	if err := vault.ExtractMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := guard.RequireInitialized(db); err != nil {
		return nil, nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid message")
	}
	owner := x.IdentityOrSigner(ctx, h.auth, msg.Owner)
	if err := guard.RequireAuthentic(ctx, h.auth, owner); err != nil {
		return nil, nil, errors.Wrap(err, "owner")
	}
	now, err := vault.BlockTime(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "block time")
	}
	lockedAt := vault.AsUnixTime(now)
	unlockAt, err := lockedAt.CheckedAdd(msg.Duration)
	if err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInvalidDuration, "unlock time: %s", err)
	}
	lock := TokenLock{
		Owner:    owner,
		Amount:   msg.Amount,
		LockedAt: lockedAt,
		UnlockAt: unlockAt,
		Memo:     msg.Memo,
	}
	return &msg, &lock, nil
}

type claimHandler struct {
	auth  x.Authenticator
	locks orm.ModelBucket
}

var _ vault.Handler = (*claimHandler)(nil)

func (h *claimHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *claimHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, lock, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := Release(ctx, db, lock); err != nil {
		return nil, err
	}
	ev := vault.NewEvent("vault/claim",
		"id", orm.FormatID(msg.LockID),
		"owner", lock.Owner,
		"amount", lock.Amount)
	return &vault.DeliverResult{Data: lock.Amount, Events: []vault.Event{ev}}, nil
}

func (h *claimHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*ClaimMsg, *TokenLock, error) {
	var msg ClaimMsg
	if err := vault.ExtractMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := guard.RequireInitialized(db); err != nil {
		return nil, nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid message")
	}
	owner := x.IdentityOrSigner(ctx, h.auth, msg.Owner)
	if err := guard.RequireAuthentic(ctx, h.auth, owner); err != nil {
		return nil, nil, errors.Wrap(err, "owner")
	}
	lock, err := Load(db, msg.LockID)
	if err != nil {
		return nil, nil, err
	}
	if !lock.Owner.Equals(owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not the lock owner")
	}
	if lock.Claimed {
		return nil, nil, errors.Wrapf(errors.ErrAlreadyClaimed, "lock %s", orm.FormatID(msg.LockID))
	}
	if !vault.IsExpired(ctx, lock.UnlockAt) {
		return nil, nil, errors.Wrapf(errors.ErrLockStillActive, "unlocks at %s", lock.UnlockAt)
	}
	return &msg, lock, nil
}

// Release marks given lock as claimed and removes its amount from the
// total locked. It fails if the lock was already claimed.
func Release(ctx vault.Context, db vault.KVStore, lock *TokenLock) error {
	if lock.Claimed {
		return errors.Wrapf(errors.ErrAlreadyClaimed, "lock %s", orm.FormatID(lock.ID))
	}
	lock.Claimed = true
	if _, err := NewBucket().Put(db, lock.ID, lock); err != nil {
		return errors.Wrap(err, "store lock")
	}
	if _, err := ledger.Debit(ctx, db, lock.Amount); err != nil {
		return errors.Wrap(err, "account release")
	}
	return nil
}
