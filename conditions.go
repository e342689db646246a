package vault

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/iov-one/vault/crypto/bech32"
	"github.com/iov-one/vault/errors"
)

var (
	// AddressLength is the size of every address. It may only be changed
	// before the first address is derived.
	AddressLength = 20

	// AddressPrefix is the human readable part of bech32 addresses.
	AddressPrefix = "vault"
)

// (?s) lets the data section contain any byte, newlines included.
var conditionFormat = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,8})/([a-zA-Z0-9_\-]{3,8})/(.+)$`)

// Condition describes who may authorize an action, as
// extension/type/data. For example a signature check produces
// "sigs/ed25519/<pubkey hash>".
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	c := make(Condition, 0, len(ext)+len(typ)+len(data)+2)
	c = append(c, ext...)
	c = append(c, '/')
	c = append(c, typ...)
	c = append(c, '/')
	return append(c, data...)
}

// Parse splits the condition into its extension, type and data.
func (c Condition) Parse() (ext string, typ string, data []byte, err error) {
	m := conditionFormat.FindSubmatch(c)
	if m == nil {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition %X", []byte(c))
	}
	return string(m[1]), string(m[2]), m[3], nil
}

func (c Condition) Validate() error {
	_, _, _, err := c.Parse()
	return err
}

// Address is the address controlled by this condition.
func (c Condition) Address() Address {
	return NewAddress(c)
}

func (c Condition) Equals(o Condition) bool {
	return bytes.Equal(c, o)
}

// String keeps extension and type readable and prints data as hex.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Address is a truncated sha256 of a Condition. Lock owners, vesting
// beneficiaries, the vault admin and emergency signers are all addresses.
type Address []byte

// NewAddress derives the address of data. A nil input gives a nil
// address.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := sha256.Sum256(data)
	return Address(sum[:AddressLength])
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

// String is the upper case hex form.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return fmt.Sprintf("%X", []byte(a))
}

// Bech32 encodes the address with AddressPrefix.
func (a Address) Bech32() (string, error) {
	enc, err := bech32.Encode(AddressPrefix, a)
	if err != nil {
		return "", errors.Wrap(err, "bech32")
	}
	return string(enc), nil
}

func (a Address) Validate() error {
	switch n := len(a); {
	case n == 0:
		return errors.Wrap(errors.ErrEmpty, "address")
	case n != AddressLength:
		return errors.Wrapf(errors.ErrInput, "address length %d", n)
	}
	return nil
}

// MarshalJSON writes the hex form instead of base64.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%X", []byte(a)))
}

// UnmarshalJSON accepts anything ParseAddress does. An empty string is a
// nil address.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "address must be a json string")
	}
	if s == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress reads an address written as
//
//	<hex>
//	hex:<hex>
//	<AddressPrefix>1... (bech32)
//	cond:<ext>/<type>/<hex data>
func ParseAddress(s string) (Address, error) {
	if strings.HasPrefix(s, AddressPrefix+"1") {
		return parseBech32Address(s)
	}
	format, body := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, body = s[:i], s[i+1:]
	}
	switch format {
	case "hex":
		raw, err := hex.DecodeString(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "malformed hex address")
		}
		return Address(raw), Address(raw).Validate()
	case "cond":
		return parseConditionAddress(body)
	}
	return nil, errors.Wrapf(errors.ErrType, "unknown address format %q", format)
}

func parseBech32Address(s string) (Address, error) {
	hrp, payload, err := bech32.Decode(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	if hrp != AddressPrefix {
		return nil, errors.Wrapf(errors.ErrInput, "address prefix %q", hrp)
	}
	return Address(payload), Address(payload).Validate()
}

func parseConditionAddress(s string) (Address, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return nil, errors.Wrap(errors.ErrInput, "condition must be ext/type/data")
	}
	data, err := hex.DecodeString(parts[2])
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "malformed condition data")
	}
	c := NewCondition(parts[0], parts[1], data)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c.Address(), nil
}
