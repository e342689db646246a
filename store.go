package vault

// ReadOnlyKVStore gives read access to a key/value store. Keys are never
// nil.
type ReadOnlyKVStore interface {
	// Get returns the value stored under key or nil if absent.
	Get(key []byte) ([]byte, error)

	// Has reports whether a value is stored under key.
	Has(key []byte) (bool, error)

	// Iterator returns entries with start <= key < end in ascending
	// order. A nil bound is open. The range must not be written to
	// while the iterator is in use.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator is Iterator in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write part shared by stores and batches. Passed
// slices must not be modified by the caller afterwards.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the storage every handler operates on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter

	// NewBatch returns a batch whose operations are applied to the store
	// at once when written.
	NewBatch() Batch
}

// Batch collects writes and applies them together.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator walks over a range of store entries.
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Release()
//	for {
//		key, value, err := it.Next()
//		if errors.ErrIteratorDone.Is(err) {
//			break
//		}
//		...
//	}
type Iterator interface {
	// Next returns the following entry or ErrIteratorDone once the range
	// is exhausted.
	Next() (key, value []byte, err error)

	// Release frees resources held by the iterator.
	Release()
}

// CacheableKVStore is a store that can be wrapped with a write cache.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes on top of another store. Reads see buffered
// writes. Write flushes the buffer to the parent store, Discard drops it.
// A cache can be wrapped again to nest transactions.
type KVCacheWrap interface {
	CacheableKVStore

	Write() error
	Discard()
}

// CommitKVStore is the persistent root store. It is modified only through
// cache wraps and persists a new version on every Commit.
type CommitKVStore interface {
	// Get returns the value at the last committed version.
	Get(key []byte) ([]byte, error)

	CacheWrap() KVCacheWrap

	// Commit persists a new version and returns its id.
	Commit() (CommitID, error)

	// LoadLatestVersion opens the most recent complete version.
	LoadLatestVersion() error

	// LatestVersion returns the id of the most recent version.
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
