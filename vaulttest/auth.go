package vaulttest

import (
	"context"
	"fmt"

	"github.com/iov-one/vault"
)

// Auth authenticates a fixed set of conditions. Signer, when set, is
// reported first and so becomes the main signer.
type Auth struct {
	Signer  vault.Condition
	Signers []vault.Condition
}

func (a *Auth) GetConditions(vault.Context) []vault.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]vault.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

// CtxAuth reads the authenticated conditions from the context, where
// SetConditions stored them under Key. Two instances with different keys
// do not see each other's conditions.
type CtxAuth struct {
	Key string
}

func (a *CtxAuth) SetConditions(ctx vault.Context, conds ...vault.Condition) vault.Context {
	return context.WithValue(ctx, a.Key, conds)
}

func (a *CtxAuth) GetConditions(ctx vault.Context) []vault.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []vault.Condition:
		return v
	default:
		panic(fmt.Sprintf("context value under %q is %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	return containsAddress(a.GetConditions(ctx), addr)
}

func containsAddress(conds []vault.Condition, addr vault.Address) bool {
	for _, c := range conds {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
