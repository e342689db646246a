package guard

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/x"
)

// IsInitialized returns true if the vault configuration exists.
func IsInitialized(db gconf.ReadStore) (bool, error) {
	return gconf.Exists(db, ConfPackage)
}

// Save validates and writes the vault configuration.
func Save(db gconf.Store, conf *Configuration) error {
	return gconf.Save(db, ConfPackage, conf)
}

// RequireInitialized returns the vault configuration or ErrNotInitialized
// if the vault was never initialized.
func RequireInitialized(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, ConfPackage, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.ErrNotInitialized
	default:
		return nil, errors.Wrap(err, "load configuration")
	}
}

// RequireAuthentic returns ErrUnauthorized unless the transaction carries a
// valid proof for given identity.
func RequireAuthentic(ctx vault.Context, auth x.Authenticator, identity vault.Address) error {
	if len(identity) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "identity missing")
	}
	if !auth.HasAddress(ctx, identity) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", identity)
	}
	return nil
}

// RequireAdmin ensures that the vault is initialized, the caller is
// authenticated and that it is the administrator.
func RequireAdmin(ctx vault.Context, auth x.Authenticator, db gconf.ReadStore, caller vault.Address) (*Configuration, error) {
	conf, err := RequireInitialized(db)
	if err != nil {
		return nil, err
	}
	if err := RequireAuthentic(ctx, auth, caller); err != nil {
		return nil, err
	}
	if !conf.Admin.Equals(caller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "admin only")
	}
	return conf, nil
}
