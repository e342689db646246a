package vault

import (
	"encoding/json"

	"github.com/iov-one/vault/errors"
)

// Handler processes one kind of message, for example locking tokens or
// approving an emergency unlock.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction against the check state. Nothing it
// writes is ever committed.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction in a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a Handler. Authentication, logging and
// rollback on failure are all decorators.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds handlers to message paths.
type Registry interface {
	Handle(Msg, Handler)
}

// Options is the app_state section of the genesis file, one raw json
// document per extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the section stored under key into obj. A missing
// section leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "%s options: %s", key, err)
	}
	return nil
}

// Initializer loads an extension state from genesis.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
