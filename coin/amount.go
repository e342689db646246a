package coin

import (
	"bytes"
	"encoding/json"

	"github.com/holiman/uint256"
	"github.com/iov-one/vault/errors"
)

// MaxBits is the largest bit length of an amount. Every amount fits into a
// signed 128 bit integer.
const MaxBits = 127

// Amount is a non negative quantity of value units. It is stored as a
// canonical big endian unsigned integer without leading zero bytes. Zero is
// represented by an empty value.
//
// All arithmetic operations return ErrOverflow when the result is not
// representable.
type Amount []byte

// NewAmount returns an amount for given integer value.
func NewAmount(v uint64) Amount {
	return fromInt(uint256.NewInt(v))
}

// ParseAmount reads a base 10 representation of an amount.
func ParseAmount(s string) (Amount, error) {
	n, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrAmount, "cannot parse %q: %s", s, err)
	}
	if n.BitLen() > MaxBits {
		return nil, errors.Wrap(errors.ErrOverflow, "amount too big")
	}
	return fromInt(n), nil
}

// MustParseAmount is ParseAmount that panics on failure. Use only with
// constant values.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

func fromInt(n *uint256.Int) Amount {
	if n.IsZero() {
		return nil
	}
	return Amount(n.Bytes())
}

func checked(n *uint256.Int) (Amount, error) {
	if n.BitLen() > MaxBits {
		return nil, errors.Wrap(errors.ErrOverflow, "amount exceeds 127 bits")
	}
	return fromInt(n), nil
}

// Validate returns an error if the amount is not in the canonical form or
// if it is too big.
func (a Amount) Validate() error {
	if len(a) == 0 {
		return nil
	}
	if len(a) > 16 {
		return errors.Wrap(errors.ErrOverflow, "amount longer than 16 bytes")
	}
	if a[0] == 0 {
		return errors.Wrap(errors.ErrAmount, "leading zero byte")
	}
	if a[0]&0x80 != 0 && len(a) == 16 {
		return errors.Wrap(errors.ErrOverflow, "amount exceeds 127 bits")
	}
	return nil
}

// Int returns the amount as an integer.
func (a Amount) Int() (*uint256.Int, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(a), nil
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return len(bytes.TrimLeft(a, "\x00")) == 0
}

// IsPositive returns true for a valid amount greater than zero.
func (a Amount) IsPositive() bool {
	return a.Validate() == nil && !a.IsZero()
}

// Equals returns true if both amounts represent the same value.
func (a Amount) Equals(b Amount) bool {
	return a.Cmp(b) == 0
}

// Cmp compares two amounts. It returns -1 if a < b, 0 if a == b and 1 if
// a > b. Invalid amounts compare by their raw integer value.
func (a Amount) Cmp(b Amount) int {
	x := new(uint256.Int).SetBytes(a)
	y := new(uint256.Int).SetBytes(b)
	return x.Cmp(y)
}

// Add returns a + b.
func (a Amount) Add(b Amount) (Amount, error) {
	x, err := a.Int()
	if err != nil {
		return nil, err
	}
	y, err := b.Int()
	if err != nil {
		return nil, err
	}
	return checked(new(uint256.Int).Add(x, y))
}

// Sub returns a - b. ErrOverflow is returned when b is greater than a.
func (a Amount) Sub(b Amount) (Amount, error) {
	x, err := a.Int()
	if err != nil {
		return nil, err
	}
	y, err := b.Int()
	if err != nil {
		return nil, err
	}
	res, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, errors.Wrap(errors.ErrOverflow, "negative result")
	}
	return fromInt(res), nil
}

// MulDiv returns floor(a * num / den). The intermediate product is computed
// with 256 bit precision, so it never overflows for valid amounts.
func (a Amount) MulDiv(num, den uint64) (Amount, error) {
	if den == 0 {
		return nil, errors.Wrap(errors.ErrInput, "division by zero")
	}
	x, err := a.Int()
	if err != nil {
		return nil, err
	}
	prod := new(uint256.Int).Mul(x, uint256.NewInt(num))
	return checked(prod.Div(prod, uint256.NewInt(den)))
}

// String returns the base 10 representation.
func (a Amount) String() string {
	return new(uint256.Int).SetBytes(a).Dec()
}

// MarshalJSON renders the amount as a decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts a decimal string or a JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	s := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return errors.Wrap(errors.ErrAmount, "invalid amount string")
		}
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
