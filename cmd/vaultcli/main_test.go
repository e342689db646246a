package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/client"
	vaultapp "github.com/iov-one/vault/cmd/vaultd/app"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "vaultcli-test"

type env struct {
	t       *testing.T
	dir     string
	keyPath string
	now     time.Time
	conn    *client.LocalConn
}

func newEnv(t *testing.T) (*env, func()) {
	dir, err := ioutil.TempDir("", "vaultcli")
	require.NoError(t, err)
	e := &env{
		t:       t,
		dir:     dir,
		keyPath: filepath.Join(dir, "admin.key"),
		now:     time.Unix(1572247483, 0).UTC(),
	}
	return e, func() { os.RemoveAll(dir) }
}

// start runs a vault application administrated by the owner of the key
// file.
func (e *env) start(signers ...vault.Address) {
	key, err := loadKey(e.keyPath)
	require.NoError(e.t, err)
	abciApp, err := vaultapp.GenerateApp(vaultapp.Options{})
	require.NoError(e.t, err)
	state, err := vaultapp.GenesisState(key.PublicKey().Address(), signers, 1)
	require.NoError(e.t, err)
	a := abciApp.(app.BaseApp)
	a.InitChain(abci.RequestInitChain{ChainId: chainID, Time: e.now, AppStateBytes: state})
	e.conn = client.NewLocalConn(a, chainID)
	e.conn.Now = func() time.Time { return e.now }
}

func (e *env) run(args ...string) (string, error) {
	e.t.Helper()
	c := rootCommand(func(node string) client.Conn {
		require.NotNil(e.t, e.conn, "node not started")
		return e.conn
	})
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(ioutil.Discard)
	c.SetArgs(append([]string{
		"--config", filepath.Join(e.dir, "missing.yaml"),
		"--key", e.keyPath,
		"--decimals", "6",
	}, args...))
	err := c.Execute()
	return strings.TrimSpace(out.String()), err
}

func TestKeygenAndAddress(t *testing.T) {
	e, cleanup := newEnv(t)
	defer cleanup()

	printed, err := e.run("keygen")
	require.NoError(t, err)

	key, err := loadKey(e.keyPath)
	require.NoError(t, err)
	addr := key.PublicKey().Address()
	require.Equal(t, addr.String(), printed)

	_, err = e.run("keygen")
	require.True(t, errors.ErrDuplicate.Is(err), "%+v", err)

	out, err := e.run("address")
	require.NoError(t, err)
	bech, err := addr.Bech32()
	require.NoError(t, err)
	require.Contains(t, out, addr.String())
	require.Contains(t, out, bech)
}

func TestLoadKeyInvalid(t *testing.T) {
	e, cleanup := newEnv(t)
	defer cleanup()

	require.NoError(t, ioutil.WriteFile(e.keyPath, []byte("short"), 0600))
	_, err := loadKey(e.keyPath)
	require.True(t, errors.ErrInput.Is(err), "%+v", err)

	_, err = loadKey(filepath.Join(e.dir, "missing.key"))
	require.Error(t, err)
}

func TestLockLifecycle(t *testing.T) {
	e, cleanup := newEnv(t)
	defer cleanup()

	_, err := e.run("keygen")
	require.NoError(t, err)
	e.start()

	id, err := e.run("lock", "1.5", "1h", "--memo", "team")
	require.NoError(t, err)
	require.Equal(t, "1", id)

	out, err := e.run("get-lock", id)
	require.NoError(t, err)
	require.Contains(t, out, `"amount": "1500000"`)
	require.Contains(t, out, `"memo": "team"`)

	out, err = e.run("stats")
	require.NoError(t, err)
	require.Contains(t, out, `"total_locked": "1500000"`)
	require.Contains(t, out, `"lock_count": 1`)

	_, err = e.run("claim", id)
	require.True(t, errors.ErrLockStillActive.Is(err), "%+v", err)

	e.now = e.now.Add(2 * time.Hour)
	out, err = e.run("claim", id)
	require.NoError(t, err)
	require.Equal(t, "1.5", out)

	_, err = e.run("claim", id)
	require.True(t, errors.ErrAlreadyClaimed.Is(err), "%+v", err)

	_, err = e.run("get-lock", "99")
	require.True(t, errors.ErrLockNotFound.Is(err), "%+v", err)
}

func TestEmergencyUnlock(t *testing.T) {
	e, cleanup := newEnv(t)
	defer cleanup()

	_, err := e.run("keygen")
	require.NoError(t, err)
	key, err := loadKey(e.keyPath)
	require.NoError(t, err)
	// Administrator is the only emergency signer, threshold is one.
	e.start(key.PublicKey().Address())

	id, err := e.run("lock", "3", "720h")
	require.NoError(t, err)

	_, err = e.run("unlock", id)
	require.True(t, errors.ErrEmergencyNotApproved.Is(err), "%+v", err)

	out, err := e.run("approve", id)
	require.NoError(t, err)
	require.Equal(t, "approvals: 1", out)

	out, err = e.run("unlock", id)
	require.NoError(t, err)
	require.Equal(t, "3", out)
}

func TestAdministration(t *testing.T) {
	e, cleanup := newEnv(t)
	defer cleanup()

	_, err := e.run("keygen")
	require.NoError(t, err)
	e.start()

	_, err = e.run("initialize")
	require.True(t, errors.ErrAlreadyInitialized.Is(err), "%+v", err)

	beneficiary := crypto.GenPrivKeyEd25519().PublicKey().Address()
	id, err := e.run("vest", beneficiary.String(), "10", "100s", "--cliff", "10s")
	require.NoError(t, err)
	require.Equal(t, "1", id)

	out, err := e.run("get-vesting", id)
	require.NoError(t, err)
	require.Contains(t, out, `"total_amount": "10000000"`)

	_, err = e.run("get-vesting", "2")
	require.True(t, errors.ErrVestingNotFound.Is(err), "%+v", err)

	_, err = e.run("vest", beneficiary.String(), "0.0000001", "100s")
	require.True(t, errors.ErrAmount.Is(err), "%+v", err)

	out, err = e.run("upgrade", strings.Repeat("ab", 32))
	require.NoError(t, err)
	require.Equal(t, "version: 1", out)

	_, err = e.run("upgrade", "zz")
	require.True(t, errors.ErrInput.Is(err), "%+v", err)

	newAdmin := crypto.GenPrivKeyEd25519().PublicKey().Address()
	_, err = e.run("transfer-admin", newAdmin.String())
	require.NoError(t, err)

	_, err = e.run("upgrade", strings.Repeat("cd", 32))
	require.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
}
