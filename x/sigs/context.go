package sigs

import (
	"context"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/x"
)

type contextKey int

const signersKey contextKey = 1

// withSigners is unexported so that only the decorator can authenticate.
func withSigners(ctx vault.Context, signers []vault.Condition) vault.Context {
	return context.WithValue(ctx, signersKey, signers)
}

// Authenticate reads the signers stored by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx vault.Context) []vault.Condition {
	signers, _ := ctx.Value(signersKey).([]vault.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
