package x

import (
	"github.com/iov-one/vault"
)

// Authenticator tells a handler who authorized the current transaction.
// Handlers receive it in their constructor so that tests and other
// signature schemes can replace x/sigs.
type Authenticator interface {
	// GetConditions lists every condition satisfied by the transaction.
	// The first one is the main signer.
	GetConditions(vault.Context) []vault.Condition
	// HasAddress is true when one of the conditions resolves to addr.
	HasAddress(vault.Context, vault.Address) bool
}

// ChainAuth merges several authenticators. Conditions keep the order of
// the authenticators and appear once.
func ChainAuth(impls ...Authenticator) Authenticator {
	return multiAuth(impls)
}

type multiAuth []Authenticator

func (m multiAuth) GetConditions(ctx vault.Context) []vault.Condition {
	var all []vault.Condition
	for _, impl := range m {
	conditions:
		for _, c := range impl.GetConditions(ctx) {
			for _, seen := range all {
				if seen.Equals(c) {
					continue conditions
				}
			}
			all = append(all, c)
		}
	}
	return all
}

func (m multiAuth) HasAddress(ctx vault.Context, addr vault.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner is the first condition of the transaction, nil if unsigned.
func MainSigner(ctx vault.Context, auth Authenticator) vault.Condition {
	if conds := auth.GetConditions(ctx); len(conds) != 0 {
		return conds[0]
	}
	return nil
}

// IdentityOrSigner resolves an optional identity field of a message. An
// empty addr stands for the main signer. The result is nil only for an
// empty addr on an unsigned transaction.
func IdentityOrSigner(ctx vault.Context, auth Authenticator, addr vault.Address) vault.Address {
	if len(addr) != 0 {
		return addr
	}
	if main := MainSigner(ctx, auth); main != nil {
		return main.Address()
	}
	return nil
}
