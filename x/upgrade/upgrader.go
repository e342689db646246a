package upgrade

import (
	"bytes"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// Upgrader swaps the code run by the vault.
type Upgrader interface {
	Upgrade(ctx vault.Context, db gconf.Store, codeHash []byte) (*CodeVersion, error)
}

// Keeper is an Upgrader that records the new code reference in the store.
// The node operator replaces the binary once the recorded reference
// changes.
type Keeper struct{}

var _ Upgrader = Keeper{}

// Upgrade stores given code hash as the next code version. Upgrading to
// the code that is already current changes nothing and returns the
// current version.
func (Keeper) Upgrade(ctx vault.Context, db gconf.Store, codeHash []byte) (*CodeVersion, error) {
	if err := ValidateCodeHash(codeHash); err != nil {
		return nil, errors.Wrap(err, "code hash")
	}
	now, err := vault.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	height, _ := vault.GetHeight(ctx)

	prev, err := Current(db)
	if err != nil {
		return nil, err
	}
	next := CodeVersion{
		Version:    1,
		CodeHash:   codeHash,
		Height:     height,
		UpgradedAt: vault.AsUnixTime(now),
	}
	if prev != nil {
		if bytes.Equal(prev.CodeHash, codeHash) {
			return prev, nil
		}
		next.Version = prev.Version + 1
	}
	if err := gconf.Save(db, pkg, &next); err != nil {
		return nil, errors.Wrap(err, "save code version")
	}
	vault.GetLogger(ctx).With("module", pkg).Info("code upgraded",
		"version", next.Version,
		"height", next.Height)
	return &next, nil
}
