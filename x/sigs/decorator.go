/*
Package sigs authenticates transactions with ed25519 signatures.

Every signer has a sequence number stored under its address. A signature
is valid only for the current sequence, which is incremented once it is
used, so a signed transaction cannot be replayed.
*/
package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// gas requested per verified signature
const signatureVerifyCost = 500

// RegisterQuery exposes the signer sequences under /auth.
func RegisterQuery(qr vault.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator verifies the signatures of a transaction and stores the
// signer conditions in the context, where Authenticate finds them.
type Decorator struct {
	allowMissingSigs bool
	cache            *SignatureCache
}

var _ vault.Decorator = Decorator{}

// NewDecorator rejects transactions without a signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets unsigned transactions through with no signer in
// the context.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

// WithCache shares a verification cache between CheckTx and DeliverTx.
func (d Decorator) WithCache(c *SignatureCache) Decorator {
	d.cache = c
	return d
}

func (d Decorator) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	ctx, signers, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasWanted += int64(signers * signatureVerifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns the context carrying the signers and how many
// there are.
func (d Decorator) authenticate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (vault.Context, int, error) {
	var signers []vault.Condition
	if stx, ok := tx.(SignedTx); ok {
		var err error
		signers, err = verifySignatures(db, stx, vault.GetChainID(ctx), d.cache)
		if err != nil {
			return nil, 0, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 && !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}
