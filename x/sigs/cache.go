package sigs

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru"
	"github.com/iov-one/vault/crypto"
)

// SignatureCache remembers recently verified signatures. A transaction is
// verified during CheckTx and again during DeliverTx, the second ed25519
// verification is served from the cache.
//
// A nil cache is valid and verifies every signature.
type SignatureCache struct {
	c *lru.Cache
}

// NewSignatureCache returns a cache holding up to size entries.
func NewSignatureCache(size int) (*SignatureCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &SignatureCache{c: c}, nil
}

// Verify returns true if sig is a valid signature of message by pubkey.
func (sc *SignatureCache) Verify(pubkey *crypto.PublicKey, message, sig []byte) bool {
	if sc == nil {
		return pubkey.Verify(message, sig)
	}
	h := sha256.New()
	h.Write(pubkey.Ed25519)
	h.Write(message)
	h.Write(sig)
	var key [sha256.Size]byte
	copy(key[:], h.Sum(nil))

	if _, ok := sc.c.Get(key); ok {
		return true
	}
	if !pubkey.Verify(message, sig) {
		return false
	}
	sc.c.Add(key, struct{}{})
	return true
}

// Len returns the number of cached signatures.
func (sc *SignatureCache) Len() int {
	if sc == nil {
		return 0
	}
	return sc.c.Len()
}
