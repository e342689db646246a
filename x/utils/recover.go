package utils

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Recovery converts a panic raised further down the stack into an
// ErrPanic. It should be the outermost decorator.
type Recovery struct{}

var _ vault.Decorator = Recovery{}

func NewRecovery() Recovery { return Recovery{} }

func (Recovery) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (res *vault.CheckResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Check(ctx, store, tx)
	return res, err
}

func (Recovery) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (res *vault.DeliverResult, err error) {
	defer errors.Recover(&err)
	res, err = next.Deliver(ctx, store, tx)
	return res, err
}
