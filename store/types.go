package store

import "github.com/iov-one/vault"

// Storage interfaces are defined in the root package. They are aliased here
// so that store implementations can use short names.

type (
	ReadOnlyKVStore  = vault.ReadOnlyKVStore
	SetDeleter       = vault.SetDeleter
	KVStore          = vault.KVStore
	Batch            = vault.Batch
	Iterator         = vault.Iterator
	CacheableKVStore = vault.CacheableKVStore
	KVCacheWrap      = vault.KVCacheWrap
	CommitKVStore    = vault.CommitKVStore
	CommitID         = vault.CommitID
	Model            = vault.Model
)
