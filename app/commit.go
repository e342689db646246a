package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// CommitStore wraps the persistent store of the application. Transactions
// are never applied directly to it: CheckTx and DeliverTx each write into
// their own cache layer and only the deliver layer is flushed on commit.
type CommitStore struct {
	committed vault.CommitKVStore
	deliver   vault.KVCacheWrap
	check     vault.KVCacheWrap
}

// NewCommitStore loads the latest version of given store. It panics if the
// store cannot be loaded, the application cannot run without it.
func NewCommitStore(db vault.CommitKVStore) *CommitStore {
	if err := db.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: db}
	cs.resetCaches()
	return cs
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() (vault.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything written during the delivery phase. Pending
// check state is dropped, the next block starts from the committed state.
func (cs *CommitStore) Commit() (vault.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return vault.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.resetCaches()
	return id, nil
}

// CheckStore returns the store used by CheckTx.
func (cs *CommitStore) CheckStore() vault.CacheableKVStore {
	return cs.check
}

// DeliverStore returns the store used by DeliverTx.
func (cs *CommitStore) DeliverStore() vault.CacheableKVStore {
	return cs.deliver
}

// Keys with the "_vt:" prefix hold data owned by the application itself.
var chainIDKey = []byte("_vt:chainID")

// loadChainID returns the chain id written at genesis, or an empty string
// before genesis.
func loadChainID(db vault.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain id. It can be done only once.
func saveChainID(db vault.KVStore, chainID string) error {
	if !vault.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	switch ok, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case ok:
		return errors.Wrap(errors.ErrUnauthorized, "chain id cannot change after genesis")
	}
	return errors.Wrap(db.Set(chainIDKey, []byte(chainID)), "save chain id")
}
