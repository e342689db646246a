package crypto

import (
	"crypto/rand"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"golang.org/x/crypto/ed25519"
)

// ExtensionName is used for the condition of all keys in this package.
const ExtensionName = "sigs"

// PublicKey is an ed25519 public key.
type PublicKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Verify verifies the signature was created with this message and public key
func (p *PublicKey) Verify(message, sig []byte) bool {
	if p == nil || len(p.Ed25519) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig)
}

// Condition encodes the public key into a vault permission
func (p *PublicKey) Condition() vault.Condition {
	return vault.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address returns the address that this key controls.
func (p *PublicKey) Address() vault.Address {
	return p.Condition().Address()
}

// Validate checks the key size.
func (p *PublicKey) Validate() error {
	if p == nil || len(p.Ed25519) == 0 {
		return errors.Wrap(errors.ErrEmpty, "public key")
	}
	if len(p.Ed25519) != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key must be %d bytes", ed25519.PublicKeySize)
	}
	return nil
}

type publicKeyCodec PublicKey

func (m *publicKeyCodec) Reset()         { *m = publicKeyCodec{} }
func (m *publicKeyCodec) String() string { return proto.CompactTextString(m) }
func (*publicKeyCodec) ProtoMessage()    {}

// Marshal serializes the key using protobuf encoding.
func (p *PublicKey) Marshal() ([]byte, error) { return proto.Marshal((*publicKeyCodec)(p)) }

// Unmarshal loads protobuf encoded key.
func (p *PublicKey) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*publicKeyCodec)(p)) }

// Reset implements proto.Message so that the key can be nested in other
// messages.
func (p *PublicKey) Reset()         { *p = PublicKey{} }
func (p *PublicKey) String() string { return proto.CompactTextString((*publicKeyCodec)(p)) }
func (*PublicKey) ProtoMessage()    {}

// PrivateKey is an ed25519 private key.
type PrivateKey struct {
	Ed25519 []byte `protobuf:"bytes,1,opt,name=ed25519,proto3" json:"ed25519,omitempty"`
}

// Sign returns a matching signature for this private key
func (p *PrivateKey) Sign(message []byte) ([]byte, error) {
	if len(p.Ed25519) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	return ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message), nil
}

// PublicKey returns the corresponding PublicKey
func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

type privateKeyCodec PrivateKey

func (m *privateKeyCodec) Reset()         { *m = privateKeyCodec{} }
func (m *privateKeyCodec) String() string { return "<private key>" }
func (*privateKeyCodec) ProtoMessage()    {}

// Marshal serializes the key using protobuf encoding.
func (p *PrivateKey) Marshal() ([]byte, error) { return proto.Marshal((*privateKeyCodec)(p)) }

// Unmarshal loads protobuf encoded key.
func (p *PrivateKey) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*privateKeyCodec)(p)) }

// GenPrivKeyEd25519 returns a random new private key
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed will deterministically generate a private key from
// a given seed. Use if you have a strong source of external randomness,
// or for deterministic keys in test cases.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
