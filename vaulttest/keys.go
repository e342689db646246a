package vaulttest

import (
	"encoding/binary"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
)

// NewKey returns a new random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the condition of a new random key.
func NewCondition() vault.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns an 8 byte big endian representation of given number,
// the same as the identifiers generated by an orm.Sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
