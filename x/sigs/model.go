package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// ErrInvalidSequence is returned when a signature sequence does not match
// the signer nonce.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")

// BucketName is where we store the accounts
const BucketName = "sigs"

// UserData is the replay protection state of a single signer.
type UserData struct {
	Pubkey   *crypto.PublicKey `protobuf:"bytes,1,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
	Sequence int64             `protobuf:"varint,2,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	var errs error
	if u.Sequence < 0 {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	if u.Pubkey == nil {
		errs = errors.AppendField(errs, "Pubkey", errors.ErrEmpty)
	} else {
		errs = errors.AppendField(errs, "Pubkey", u.Pubkey.Validate())
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation.
// If current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	// Clients cannot represent integers greater than 2^53 - 1.
	const maxSequenceValue = (1 << 53) - 1
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

type userDataCodec UserData

func (m *userDataCodec) Reset()         { *m = userDataCodec{} }
func (m *userDataCodec) String() string { return proto.CompactTextString(m) }
func (*userDataCodec) ProtoMessage()    {}

func (u *UserData) Marshal() ([]byte, error) { return proto.Marshal((*userDataCodec)(u)) }
func (u *UserData) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*userDataCodec)(u)) }

// NewBucket returns a bucket of signers state keyed by the signer address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// loadUser returns the state of given signer. A new state with sequence
// zero is returned for a signer that was never seen.
func loadUser(db vault.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	var u UserData
	switch err := NewBucket().One(db, pubkey.Address(), &u); {
	case err == nil:
		return &u, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{Pubkey: pubkey}, nil
	default:
		return nil, errors.Wrap(err, "load signer")
	}
}

// NextNonce returns the sequence value that the next signature of given
// address must use.
func NextNonce(db vault.ReadOnlyKVStore, addr vault.Address) (int64, error) {
	var u UserData
	switch err := NewBucket().One(db, addr, &u); {
	case err == nil:
		return u.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}
