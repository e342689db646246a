package client

import (
	"context"

	"github.com/iov-one/vault"
	vaultapp "github.com/iov-one/vault/cmd/vaultd/app"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/emergency"
	"github.com/iov-one/vault/x/guard"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/stats"
	"github.com/iov-one/vault/x/timelock"
	"github.com/iov-one/vault/x/upgrade"
	"github.com/iov-one/vault/x/vesting"
)

// Nonce returns the sequence that must be used for the next signature of
// given address.
func (c *Client) Nonce(addr vault.Address) (int64, error) {
	var u sigs.UserData
	switch err := c.queryOne("/auth", addr, &u, errors.ErrNotFound); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// SignAndCommit wraps given message in a transaction signed by the key
// and blocks until it is included in a block.
func (c *Client) SignAndCommit(ctx context.Context, key *crypto.PrivateKey, msg vault.Msg) (*CommitResult, error) {
	tx, err := vaultapp.NewTx(msg)
	if err != nil {
		return nil, err
	}
	chainID, err := c.ChainID(ctx)
	if err != nil {
		return nil, err
	}
	seq, err := c.Nonce(key.PublicKey().Address())
	if err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	sig, err := sigs.SignTx(key, tx, chainID, seq)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	tx.Signatures = append(tx.Signatures, sig)
	return c.CommitTx(ctx, tx)
}

// Lock returns the lock with given id.
func (c *Client) Lock(id []byte) (*timelock.TokenLock, error) {
	var l timelock.TokenLock
	if err := c.queryOne("/locks", id, &l, errors.ErrLockNotFound); err != nil {
		return nil, err
	}
	return &l, nil
}

// LocksByOwner returns all locks created for given owner.
func (c *Client) LocksByOwner(owner vault.Address) ([]*timelock.TokenLock, error) {
	models, err := c.Query("/locks/owner", owner)
	if err != nil {
		return nil, err
	}
	locks := make([]*timelock.TokenLock, 0, len(models))
	for _, m := range models {
		var l timelock.TokenLock
		if err := l.Unmarshal(m.Value); err != nil {
			return nil, errors.Wrapf(errors.ErrModel, "unmarshal lock: %s", err)
		}
		locks = append(locks, &l)
	}
	return locks, nil
}

// Vesting returns the vesting schedule with given id.
func (c *Client) Vesting(id []byte) (*vesting.VestingSchedule, error) {
	var s vesting.VestingSchedule
	if err := c.queryOne("/vestings", id, &s, errors.ErrVestingNotFound); err != nil {
		return nil, err
	}
	return &s, nil
}

// Approvals returns the emergency approvals collected for given lock. An
// empty set is returned when nobody approved yet.
func (c *Client) Approvals(lockID []byte) (*emergency.EmergencyApprovals, error) {
	var a emergency.EmergencyApprovals
	switch err := c.queryOne("/approvals", lockID, &a, errors.ErrNotFound); {
	case err == nil:
		return &a, nil
	case errors.ErrNotFound.Is(err):
		return &emergency.EmergencyApprovals{LockID: lockID}, nil
	default:
		return nil, err
	}
}

// Stats returns the vault summary.
func (c *Client) Stats() (*stats.Stats, error) {
	var s stats.Stats
	if err := c.queryOne("/stats", nil, &s, errors.ErrNotInitialized); err != nil {
		return nil, err
	}
	return &s, nil
}

// Configuration returns the vault configuration.
func (c *Client) Configuration() (*guard.Configuration, error) {
	var conf guard.Configuration
	if err := c.queryOne("/vault", nil, &conf, errors.ErrNotInitialized); err != nil {
		return nil, err
	}
	return &conf, nil
}

// CodeVersion returns the latest approved code version or nil if the
// code was never upgraded.
func (c *Client) CodeVersion() (*upgrade.CodeVersion, error) {
	var v upgrade.CodeVersion
	switch err := c.queryOne("/upgrade", nil, &v, errors.ErrNotFound); {
	case err == nil:
		return &v, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}
