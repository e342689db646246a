package admin

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/guard"
	"github.com/iov-one/vault/x/ledger"
	"github.com/iov-one/vault/x/upgrade"
)

// RegisterQuery registers the vault configuration under /vault.
func RegisterQuery(qr vault.QueryRouter) {
	qr.Register("/vault", gconf.QueryHandler(guard.ConfPackage))
}

// RegisterRoutes will instantiate and register all handlers in this package.
// Upgrades are delegated to given upgrader.
func RegisterRoutes(r vault.Registry, auth x.Authenticator, up upgrade.Upgrader) {
	r.Handle(&InitializeMsg{}, &initializeHandler{auth: auth})
	r.Handle(&TransferAdminMsg{}, &transferAdminHandler{auth: auth})
	r.Handle(&UpgradeMsg{}, &upgradeHandler{auth: auth, upgrader: up})
}

type initializeHandler struct {
	auth x.Authenticator
}

var _ vault.Handler = (*initializeHandler)(nil)

func (h *initializeHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *initializeHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := initialize(db, conf); err != nil {
		return nil, err
	}
	ev := vault.NewEvent("vault/init",
		"admin", conf.Admin,
		"signer_count", len(conf.EmergencySigners))
	return &vault.DeliverResult{Events: []vault.Event{ev}}, nil
}

func (h *initializeHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*guard.Configuration, error) {
	var msg InitializeMsg
	if err := vault.ExtractMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	switch ok, err := guard.IsInitialized(db); {
	case err != nil:
		return nil, errors.Wrap(err, "initialization state")
	case ok:
		return nil, errors.ErrAlreadyInitialized
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	admin := x.IdentityOrSigner(ctx, h.auth, msg.Admin)
	if err := guard.RequireAuthentic(ctx, h.auth, admin); err != nil {
		return nil, errors.Wrap(err, "admin")
	}
	conf := &guard.Configuration{
		Admin:              admin,
		EmergencySigners:   msg.EmergencySigners,
		EmergencyThreshold: msg.EmergencyThreshold,
	}
	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration")
	}
	return conf, nil
}

// initialize stores the configuration and starts accounting from zero.
func initialize(db vault.KVStore, conf *guard.Configuration) error {
	if err := guard.Save(db, conf); err != nil {
		return errors.Wrap(err, "save configuration")
	}
	if err := ledger.Reset(db); err != nil {
		return errors.Wrap(err, "reset ledger")
	}
	return nil
}

type transferAdminHandler struct {
	auth x.Authenticator
}

var _ vault.Handler = (*transferAdminHandler)(nil)

func (h *transferAdminHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *transferAdminHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, conf, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	current := conf.Admin
	conf.Admin = msg.NewAdmin
	if err := guard.Save(db, conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	ev := vault.NewEvent("vault/admin",
		"current", current,
		"new", msg.NewAdmin)
	return &vault.DeliverResult{Events: []vault.Event{ev}}, nil
}

func (h *transferAdminHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*TransferAdminMsg, *guard.Configuration, error) {
	var msg TransferAdminMsg
	if err := vault.ExtractMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	conf, err := guard.RequireAdmin(ctx, h.auth, db, x.IdentityOrSigner(ctx, h.auth, msg.Admin))
	if err != nil {
		return nil, nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid message")
	}
	return &msg, conf, nil
}

type upgradeHandler struct {
	auth     x.Authenticator
	upgrader upgrade.Upgrader
}

var _ vault.Handler = (*upgradeHandler)(nil)

func (h *upgradeHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

func (h *upgradeHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	v, err := h.upgrader.Upgrade(ctx, db, msg.CodeHash)
	if err != nil {
		return nil, errors.Wrap(err, "upgrade")
	}
	raw, err := v.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal code version")
	}
	return &vault.DeliverResult{Data: raw}, nil
}

func (h *upgradeHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*UpgradeMsg, error) {
	var msg UpgradeMsg
	if err := vault.ExtractMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := guard.RequireAdmin(ctx, h.auth, db, x.IdentityOrSigner(ctx, h.auth, msg.Admin)); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid message")
	}
	return &msg, nil
}
