package emergency

import (
	"strconv"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/guard"
	"github.com/iov-one/vault/x/timelock"
)

// RegisterQuery registers approvals bucket under /approvals.
func RegisterQuery(qr vault.QueryRouter) {
	NewBucket().Register("approvals", qr)
}

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r vault.Registry, auth x.Authenticator) {
	approvals := NewBucket()
	r.Handle(&ApproveEmergencyMsg{}, &approveHandler{auth: auth, approvals: approvals})
	r.Handle(&EmergencyUnlockMsg{}, &unlockHandler{auth: auth})
}

type approveHandler struct {
	auth      x.Authenticator
	approvals orm.ModelBucket
}

var _ vault.Handler = (*approveHandler)(nil)

func (h *approveHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *approveHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, signer, approvals, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	approvals.Approvers = append(approvals.Approvers, signer)
	if _, err := h.approvals.Put(db, msg.LockID, approvals); err != nil {
		return nil, errors.Wrap(err, "store approvals")
	}
	count := strconv.Itoa(len(approvals.Approvers))
	ev := vault.NewEvent("vault/emrg_ap",
		"id", orm.FormatID(msg.LockID),
		"signer", signer,
		"count", count)
	return &vault.DeliverResult{Data: []byte(count), Events: []vault.Event{ev}}, nil
}

func (h *approveHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*ApproveEmergencyMsg, vault.Address, *EmergencyApprovals, error) {
	var msg ApproveEmergencyMsg
	if err := vault.ExtractMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := guard.RequireInitialized(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, nil, errors.Wrap(err, "invalid message")
	}
	signer := x.IdentityOrSigner(ctx, h.auth, msg.Signer)
	if err := guard.RequireAuthentic(ctx, h.auth, signer); err != nil {
		return nil, nil, nil, errors.Wrap(err, "signer")
	}
	if !conf.IsEmergencySigner(signer) {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "not an emergency signer")
	}
	lock, err := timelock.Load(db, msg.LockID)
	if err != nil {
		return nil, nil, nil, err
	}
	if lock.Claimed {
		return nil, nil, nil, errors.Wrapf(errors.ErrAlreadyClaimed, "lock %s", orm.FormatID(msg.LockID))
	}
	approvals, err := Load(db, msg.LockID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "load approvals")
	}
	if approvals.Has(signer) {
		return nil, nil, nil, errors.Wrapf(errors.ErrAlreadyApproved, "signer %s", signer)
	}
	return &msg, signer, approvals, nil
}

type unlockHandler struct {
	auth x.Authenticator
}

var _ vault.Handler = (*unlockHandler)(nil)

func (h *unlockHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *unlockHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, caller, lock, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := timelock.Release(ctx, db, lock); err != nil {
		return nil, err
	}
	ev := vault.NewEvent("vault/emrg_ex",
		"id", orm.FormatID(msg.LockID),
		"caller", caller,
		"amount", lock.Amount)
	return &vault.DeliverResult{Data: lock.Amount, Events: []vault.Event{ev}}, nil
}

func (h *unlockHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*EmergencyUnlockMsg, vault.Address, *timelock.TokenLock, error) {
	var msg EmergencyUnlockMsg
	if err := vault.ExtractMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := guard.RequireInitialized(db)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, nil, errors.Wrap(err, "invalid message")
	}
	caller := x.IdentityOrSigner(ctx, h.auth, msg.Caller)
	if err := guard.RequireAuthentic(ctx, h.auth, caller); err != nil {
		return nil, nil, nil, errors.Wrap(err, "caller")
	}
	lock, err := timelock.Load(db, msg.LockID)
	if err != nil {
		return nil, nil, nil, err
	}
	if lock.Claimed {
		return nil, nil, nil, errors.Wrapf(errors.ErrAlreadyClaimed, "lock %s", orm.FormatID(msg.LockID))
	}
	approvals, err := Load(db, msg.LockID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "load approvals")
	}
	if have, want := len(approvals.Approvers), conf.EffectiveThreshold(); uint32(have) < want {
		return nil, nil, nil, errors.Wrapf(errors.ErrEmergencyNotApproved, "%d of %d approvals", have, want)
	}
	return &msg, caller, lock, nil
}
