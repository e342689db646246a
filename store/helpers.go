package store

import (
	"fmt"

	"github.com/iov-one/vault/errors"
)

// SliceIterator serves models from an in-memory slice, in slice order.
type SliceIterator struct {
	models []Model
	pos    int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (it *SliceIterator) Next() (key, value []byte, err error) {
	if it.pos >= len(it.models) {
		return nil, nil, errors.ErrIteratorDone
	}
	m := it.models[it.pos]
	it.pos++
	return m.Key, m.Value, nil
}

func (it *SliceIterator) Release() {
	it.models = nil
}

// EmptyKVStore holds nothing and ignores writes. It is the bottom layer of
// a MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get([]byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has([]byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(_, _ []byte) error      { return nil }
func (EmptyKVStore) Delete([]byte) error        { return nil }

func (EmptyKVStore) Iterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(_, _ []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// Op is a single queued write.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

// SetOp queues key=value.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp queues the removal of key.
func DelOp(key []byte) Op {
	return Op{key: key, del: true}
}

func (o Op) Key() []byte   { return o.key }
func (o Op) IsSetOp() bool { return !o.del }

// Apply executes the operation against out.
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

func (o Op) String() string {
	if o.del {
		return fmt.Sprintf("del %X", o.key)
	}
	return fmt.Sprintf("set %X=%X", o.key, o.value)
}

// NonAtomicBatch records writes and replays them in order on Write. A
// failure half way leaves out partially updated, so it must only front
// in-memory stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write replays the recorded operations and clears the batch on success.
func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return errors.Wrapf(err, "op %d: %s", i, op)
		}
	}
	b.ops = nil
	return nil
}

// ShowOps returns the pending operations.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}
