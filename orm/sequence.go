package orm

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// Sequence maintains a counter, and generates a
// series of keys. Each key is greater than the last,
// both NextInt() as well as bytes.Compare() on NextVal().
//
// The counter is stored in the same store as the data it is counting, so
// it is rolled back together with any aborted write.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is using following pattern
// to construct a key:
//
//	_s.<bucket>:<name>
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the sequence and returns its state as 8 bytes.
func (s Sequence) NextVal(db vault.KVStore) ([]byte, error) {
	_, bz, err := s.increment(db, 1)
	return bz, err
}

// NextInt increments the sequence and returns its state as int.
func (s Sequence) NextInt(db vault.KVStore) (int64, error) {
	val, _, err := s.increment(db, 1)
	return val, err
}

// Latest returns the recently returned value of the sequence without
// modifying it. Zero is returned for a sequence that was never used.
func (s Sequence) Latest(db vault.ReadOnlyKVStore) (int64, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, errors.Wrap(err, "load sequence")
	}
	return DecodeSequence(raw)
}

func (s Sequence) increment(db vault.KVStore, inc int64) (int64, []byte, error) {
	val, err := s.Latest(db)
	if err != nil {
		return 0, nil, err
	}
	val += inc
	if val < 0 {
		return 0, nil, errors.Wrap(errors.ErrOverflow, "sequence")
	}
	raw := EncodeSequence(val)
	if err := db.Set(s.id, raw); err != nil {
		return 0, nil, errors.Wrap(err, "save sequence")
	}
	return val, raw, nil
}

// DecodeSequence reads the 8 byte big endian representation of a sequence
// value. Nil decodes to zero.
func DecodeSequence(bz []byte) (int64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrapf(errors.ErrInput, "sequence value must be 8 bytes, got %d", len(bz))
	}
	return int64(binary.BigEndian.Uint64(bz)), nil
}

// EncodeSequence returns the 8 byte big endian representation of the value.
func EncodeSequence(val int64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, uint64(val))
	return bz
}

// FormatID returns the decimal representation of an identifier created by
// a sequence. Identifiers that were not created by a sequence are rendered
// as hex.
func FormatID(id []byte) string {
	if len(id) != 8 {
		return fmt.Sprintf("%X", id)
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(id), 10)
}

// ParseID is the reverse of FormatID for identifiers created by a
// sequence.
func ParseID(s string) ([]byte, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid id %q", s)
	}
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, n)
	return id, nil
}

// ValidateID returns an error if given value is not an identifier created
// by a sequence.
func ValidateID(id []byte) error {
	switch n := len(id); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "id")
	case n != 8:
		return errors.Wrapf(errors.ErrInput, "id must be 8 bytes, got %d", n)
	}
	return nil
}
