package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/vault/vaulttest/assert"
)

func TestSignVerify(t *testing.T) {
	priv := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{7}, 32))
	pub := priv.PublicKey()
	assert.Nil(t, pub.Validate())

	msg := []byte("lock 1000 for a day")
	sig, err := priv.Sign(msg)
	assert.Nil(t, err)
	assert.Equal(t, true, pub.Verify(msg, sig))
	assert.Equal(t, false, pub.Verify([]byte("lock 1001 for a day"), sig))

	other := GenPrivKeyEd25519().PublicKey()
	assert.Equal(t, false, other.Verify(msg, sig))
	assert.Equal(t, false, pub.Address().Equals(other.Address()))
}

func TestPublicKeySerialization(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()
	raw, err := pub.Marshal()
	assert.Nil(t, err)

	var got PublicKey
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, pub.Ed25519, got.Ed25519)
	assert.Equal(t, pub.Condition(), got.Condition())
}
