package utils

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Savepoint runs the rest of the stack on a cache of the store. The cache
// is written only when the call succeeds, so a failed transaction leaves
// no partial state behind.
//
// The zero value is inactive. Enable it per phase with OnCheck and
// OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ vault.Decorator = Savepoint{}

func NewSavepoint() Savepoint { return Savepoint{} }

// OnCheck returns a copy that is active during CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a copy that is active during DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	var res *vault.CheckResult
	err := isolate(s.onCheck, store, func(kv vault.KVStore) (err error) {
		res, err = next.Check(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	var res *vault.DeliverResult
	err := isolate(s.onDeliver, store, func(kv vault.KVStore) (err error) {
		res, err = next.Deliver(ctx, kv, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn with a cache of store and writes the cache back if fn
// succeeds. Stores that cannot be cached are passed through.
func isolate(active bool, store vault.KVStore, fn func(vault.KVStore) error) error {
	cacheable, ok := store.(vault.CacheableKVStore)
	if !active || !ok {
		return fn(store)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "savepoint")
}
