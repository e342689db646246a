package app

import (
	"reflect"

	"github.com/iov-one/vault"
)

// Decorators is an ordered middleware stack waiting for the handler it
// wraps. The first decorator is the outermost one.
type Decorators struct {
	stack []vault.Decorator
}

// ChainDecorators returns a stack made of given decorators. Nil values are
// skipped, so optional decorators can be passed unconditionally.
//
//	app.ChainDecorators(
//		utils.NewRecovery(),
//		utils.NewLogging(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
func ChainDecorators(ds ...vault.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a copy of this stack extended with given decorators.
func (d Decorators) Chain(ds ...vault.Decorator) Decorators {
	stack := make([]vault.Decorator, 0, len(d.stack)+len(ds))
	stack = append(stack, d.stack...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			stack = append(stack, dec)
		}
	}
	return Decorators{stack: stack}
}

func isNilDecorator(d vault.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with given handler. Every call to the
// returned handler travels through all decorators in order.
func (d Decorators) WithHandler(h vault.Handler) vault.Handler {
	for i := len(d.stack) - 1; i >= 0; i-- {
		h = link{dec: d.stack[i], next: h}
	}
	return h
}

// link binds a decorator to the handler it delegates to.
type link struct {
	dec  vault.Decorator
	next vault.Handler
}

var _ vault.Handler = link{}

func (l link) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l link) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
