package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
)

// SignedTx represents a transaction that contains signatures,
// which can be verified by the Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the Msg.
	GetSignBytes() ([]byte, error)

	// Signatures returns the signature of signers who signed the Msg.
	GetSignatures() []*StdSignature
}

// StdSignature is a signature of a single signer together with the nonce
// used to produce it.
type StdSignature struct {
	Pubkey    *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Signature []byte            `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
	Sequence  int64             `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

// Validate ensures the StdSignature meets basic standards
func (s *StdSignature) Validate() error {
	if s.Sequence < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	if s.Pubkey == nil {
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	}
	if len(s.Signature) == 0 {
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

type stdSignatureCodec StdSignature

func (m *stdSignatureCodec) Reset()         { *m = stdSignatureCodec{} }
func (m *stdSignatureCodec) String() string { return proto.CompactTextString(m) }
func (*stdSignatureCodec) ProtoMessage()    {}

func (s *StdSignature) Marshal() ([]byte, error) { return proto.Marshal((*stdSignatureCodec)(s)) }
func (s *StdSignature) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*stdSignatureCodec)(s)) }

// Reset, String and ProtoMessage allow nesting the signature in a
// transaction envelope.
func (s *StdSignature) Reset()         { *s = StdSignature{} }
func (s *StdSignature) String() string { return proto.CompactTextString((*stdSignatureCodec)(s)) }
func (*StdSignature) ProtoMessage()    {}
