package client

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	vaultapp "github.com/iov-one/vault/cmd/vaultd/app"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/x/emergency"
	"github.com/iov-one/vault/x/timelock"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "client-test-chain"

func newAppConn(t *testing.T, admin vault.Address, signers []vault.Address, threshold uint32) *LocalConn {
	t.Helper()
	abciApp, err := vaultapp.GenerateApp(vaultapp.Options{})
	require.NoError(t, err)
	state, err := vaultapp.GenesisState(admin, signers, threshold)
	require.NoError(t, err)

	now := time.Unix(1572247483, 0).UTC()
	a := abciApp.(app.BaseApp)
	a.InitChain(abci.RequestInitChain{ChainId: chainID, Time: now, AppStateBytes: state})
	conn := NewLocalConn(a, chainID)
	conn.Now = func() time.Time { return now }
	return conn
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	adminKey := crypto.GenPrivKeyEd25519()
	ownerKey := crypto.GenPrivKeyEd25519()
	signer1 := crypto.GenPrivKeyEd25519()
	signer2 := crypto.GenPrivKeyEd25519()

	conn := newAppConn(t, adminKey.PublicKey().Address(), []vault.Address{
		signer1.PublicKey().Address(),
		signer2.PublicKey().Address(),
	}, 2)
	c := NewClient(conn)

	id, err := c.ChainID(ctx)
	require.NoError(t, err)
	require.Equal(t, chainID, id)

	owner := ownerKey.PublicKey().Address()
	res, err := c.SignAndCommit(ctx, ownerKey, &timelock.LockTokensMsg{
		Amount:   coin.NewAmount(1000000),
		Duration: 86400,
		Memo:     "team",
	})
	require.NoError(t, err)
	lockID := res.Data

	lock, err := c.Lock(lockID)
	require.NoError(t, err)
	require.Equal(t, owner, lock.Owner)
	require.Equal(t, "1000000", lock.Amount.String())
	require.False(t, lock.Claimed)

	locks, err := c.LocksByOwner(owner)
	require.NoError(t, err)
	require.Len(t, locks, 1)

	nonce, err := c.Nonce(owner)
	require.NoError(t, err)
	require.Equal(t, int64(1), nonce)

	_, err = c.SignAndCommit(ctx, ownerKey, &timelock.ClaimMsg{LockID: lockID})
	require.True(t, errors.ErrLockStillActive.Is(err), "%+v", err)

	_, err = c.SignAndCommit(ctx, signer1, &emergency.ApproveEmergencyMsg{LockID: lockID})
	require.NoError(t, err)
	_, err = c.SignAndCommit(ctx, ownerKey, &emergency.EmergencyUnlockMsg{LockID: lockID})
	require.True(t, errors.ErrEmergencyNotApproved.Is(err), "%+v", err)

	_, err = c.SignAndCommit(ctx, signer2, &emergency.ApproveEmergencyMsg{LockID: lockID})
	require.NoError(t, err)
	approvals, err := c.Approvals(lockID)
	require.NoError(t, err)
	require.Len(t, approvals.Approvers, 2)

	res, err = c.SignAndCommit(ctx, ownerKey, &emergency.EmergencyUnlockMsg{LockID: lockID})
	require.NoError(t, err)
	require.Equal(t, "1000000", coin.Amount(res.Data).String())

	s, err := c.Stats()
	require.NoError(t, err)
	require.True(t, s.TotalLocked.IsZero())
	require.Equal(t, uint64(1), s.LockCount)
	require.Equal(t, adminKey.PublicKey().Address(), s.Admin)

	_, err = c.Lock(vaulttest.SequenceID(42))
	require.True(t, errors.ErrLockNotFound.Is(err), "%+v", err)

	v, err := c.CodeVersion()
	require.NoError(t, err)
	require.Nil(t, v)

	conf, err := c.Configuration()
	require.NoError(t, err)
	require.Len(t, conf.EmergencySigners, 2)
}

func TestClientUnknownPath(t *testing.T) {
	conn := newAppConn(t, crypto.GenPrivKeyEd25519().PublicKey().Address(), nil, 0)
	_, err := NewClient(conn).Query("/unknown", nil)
	require.True(t, errors.ErrNotFound.Is(err), "%+v", err)
}

func TestClientCancelledContext(t *testing.T) {
	conn := newAppConn(t, crypto.GenPrivKeyEd25519().PublicKey().Address(), nil, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(conn).SignAndCommit(ctx, crypto.GenPrivKeyEd25519(), &timelock.LockTokensMsg{
		Amount:   coin.NewAmount(1),
		Duration: 1,
	})
	require.Equal(t, context.Canceled, err)
}
