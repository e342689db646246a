package admin

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/iov-one/vault/x/guard"
	"github.com/iov-one/vault/x/ledger"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	admin := vaulttest.NewCondition().Address()
	signer := vaulttest.NewCondition().Address()
	bech, err := signer.Bech32()
	require.NoError(t, err)

	genesis := fmt.Sprintf(`{
		"conf": {
			"vault": {
				"admin": %q,
				"emergency_signers": [%q],
				"emergency_threshold": 1
			}
		}
	}`, admin.String(), bech)

	var opts vault.Options
	require.NoError(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	conf, err := guard.RequireInitialized(db)
	require.NoError(t, err)
	assert.Equal(t, admin, conf.Admin)
	assert.Equal(t, []vault.Address{signer}, conf.EmergencySigners)
	assert.Equal(t, uint32(1), conf.EffectiveThreshold())

	total, err := ledger.Load(db)
	require.NoError(t, err)
	assert.Equal(t, true, total.IsZero())
}

func TestGenesisWithoutVault(t *testing.T) {
	var opts vault.Options
	require.NoError(t, json.Unmarshal([]byte(`{"conf": {}}`), &opts))

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	_, err := guard.RequireInitialized(db)
	assert.IsErr(t, errors.ErrNotInitialized, err)
}

func TestGenesisInvalidConfiguration(t *testing.T) {
	var opts vault.Options
	require.NoError(t, json.Unmarshal([]byte(`{"conf": {"vault": {"emergency_threshold": 1}}}`), &opts))

	var ini Initializer
	err := ini.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, errors.ErrEmpty, err)
}
