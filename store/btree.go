package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/vault/errors"
)

// DefaultFreeListSize is the number of btree nodes kept for reuse when no
// free list is shared.
const DefaultFreeListSize = btree.DefaultFreeListSize

// BTreeCacheable turns any KVStore into a CacheableKVStore by stacking an
// in-memory btree cache on top of it.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a cache whose writes reach the store only on Write.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a non persistent store. Mostly useful in tests.
func MemStore() CacheableKVStore {
	var base EmptyKVStore
	return NewBTreeCacheWrap(base, base.NewBatch(), nil)
}

// ShowOpser exposes the operations recorded by a batch.
type ShowOpser interface {
	ShowOps() []Op
}

// LogableStore is a MemStore that records every write it receives.
func LogableStore() (CacheableKVStore, ShowOpser) {
	var base EmptyKVStore
	rec := NewNonAtomicBatch(base)
	return NewBTreeCacheWrap(base, rec, nil), rec
}

// BTreeCacheWrap keeps pending writes in a btree. Reads consult the btree
// first and fall back to the parent store. Every write is also queued on
// the batch, which is flushed to the parent by Write.
type BTreeCacheWrap struct {
	tree   *btree.BTree
	free   *btree.FreeList
	parent ReadOnlyKVStore
	batch  Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap caches over kv. The parent is read only from the cache
// point of view, all modifications go through batch.
//
// Passing a shared free list lets stacked caches recycle btree nodes. When
// free is nil a new list is allocated.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		tree:   btree.NewWithFreeList(2, free),
		free:   free,
		parent: kv,
		batch:  batch,
	}
}

// CacheWrap stacks a new cache on this one. Both share a free list.
func (c BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(c, c.NewBatch(), c.free)
}

// NewBatch returns a batch that applies to this cache.
func (c BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes the queued operations to the parent and empties the cache.
func (c BTreeCacheWrap) Write() error {
	err := c.batch.Write()
	c.Discard()
	return err
}

// Discard drops all pending changes.
func (c BTreeCacheWrap) Discard() {
	// DeleteMin returns the nodes to the free list
	for c.tree.DeleteMin() != nil {
	}
	if rec, ok := c.batch.(*NonAtomicBatch); ok {
		rec.ops = nil
	}
}

func (c BTreeCacheWrap) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, value: value})
	return c.batch.Set(key, value)
}

func (c BTreeCacheWrap) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(entry{key: key, deleted: true})
	return c.batch.Delete(key)
}

// lookup returns the cached entry for key. ok is false when the key was
// never written through this cache.
func (c BTreeCacheWrap) lookup(key []byte) (e entry, ok bool, err error) {
	found := c.tree.Get(entry{key: key})
	if found == nil {
		return e, false, nil
	}
	e, ok = found.(entry)
	if !ok {
		return e, false, errors.Wrapf(errors.ErrDatabase, "unexpected cache item %T", found)
	}
	return e, true, nil
}

func (c BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	e, ok, err := c.lookup(key)
	switch {
	case err != nil:
		return nil, err
	case !ok:
		return c.parent.Get(key)
	case e.deleted:
		return nil, nil
	}
	return e.value, nil
}

func (c BTreeCacheWrap) Has(key []byte) (bool, error) {
	e, ok, err := c.lookup(key)
	switch {
	case err != nil:
		return false, err
	case !ok:
		return c.parent.Has(key)
	}
	return !e.deleted, nil
}

// Iterator walks [start, end) in ascending order, merging the cache with
// the parent store.
func (c BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	under, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(ascendBtree(c.tree, start, end), under, true), nil
}

// ReverseIterator walks [start, end) in descending order, merging the cache
// with the parent store.
func (c BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	under, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return newMergeIterator(descendBtree(c.tree, start, end), under, false), nil
}

// keyer is implemented by everything stored in the cache btree.
type keyer interface {
	Key() []byte
}

// entry is a cached write. A deleted entry hides the parent value.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

var _ btree.Item = entry{}

func (e entry) Key() []byte { return e.key }

func (e entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(keyer).Key()) < 0
}
