package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
)

// signCodeV1 is the version tag of the signed payload layout.
var signCodeV1 = [4]byte{0, 0xCA, 0xFE, 0}

// BuildSignBytes returns the digest a signer signs for a transaction. It
// is the sha512 of
//
//	tag (4 bytes) | len(chainID) (1 byte) | chainID | seq (8 bytes, big endian) | signBytes
//
// Binding the chain id and the sequence prevents replays across chains
// and within one chain.
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !vault.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}

	h := sha512.New()
	h.Write(signCodeV1[:])
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	var nonce [8]byte
	binary.BigEndian.PutUint64(nonce[:], uint64(seq))
	h.Write(nonce[:])
	h.Write(signBytes)
	return h.Sum(nil), nil
}

// SignTx signs tx with the given sequence. The caller appends the result
// to the transaction signatures.
func SignTx(signer *crypto.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(raw, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// verifySignatures checks every signature of tx and bumps the sequence of
// each signer. The returned conditions keep the signature order and may be
// empty.
func verifySignatures(db vault.KVStore, tx SignedTx, chainID string, cache *SignatureCache) ([]vault.Condition, error) {
	raw, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	var signers []vault.Condition
	for i, sig := range tx.GetSignatures() {
		cond, err := verifySignature(db, sig, raw, chainID, cache)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

func verifySignature(db vault.KVStore, sig *StdSignature, raw []byte, chainID string, cache *SignatureCache) (vault.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(raw, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	user, err := loadUser(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if !cache.Verify(user.Pubkey, digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if _, err := NewBucket().Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, errors.Wrap(err, "cannot save signer")
	}
	return user.Pubkey.Condition(), nil
}
