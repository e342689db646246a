package admin

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/x/guard"
	"github.com/iov-one/vault/x/ledger"
)

// Initializer fulfils the Initializer interface to load the vault
// configuration from the genesis file. A genesis without a vault section
// leaves the vault uninitialized, so that it can be initialized later with
// an InitializeMsg.
type Initializer struct{}

var _ vault.Initializer = (*Initializer)(nil)

// FromGenesis reads the conf.vault section of the genesis.
func (*Initializer) FromGenesis(opts vault.Options, db vault.KVStore) error {
	var conf guard.Configuration
	switch err := gconf.InitConfig(db, opts, guard.ConfPackage, &conf); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return errors.Wrap(err, "vault configuration")
	}
	return ledger.Reset(db)
}
