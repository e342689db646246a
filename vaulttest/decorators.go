package vaulttest

import "github.com/iov-one/vault"

// Decorator counts the calls it receives and passes them on, unless
// CheckErr or DeliverErr is set, in which case that error is returned
// and the next handler is skipped.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	calls int
}

var _ vault.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	d.calls++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	d.calls++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CallCount is the number of Check and Deliver calls so far.
func (d *Decorator) CallCount() int {
	return d.calls
}
