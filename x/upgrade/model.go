/*
Package upgrade records which program code the vault is expected to run.

Replacing the running binary is an operator task. This package keeps the
reference to the code that was approved by the administrator together with
a version number that increases with every upgrade, so that node operators
can detect that a swap is due.
*/
package upgrade

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

const pkg = "upgrade"

// CodeHashLength is the length of a code reference.
const CodeHashLength = 32

// CodeVersion describes the latest approved code.
type CodeVersion struct {
	// Version starts at one and is incremented with every upgrade.
	Version    uint64         `protobuf:"varint,1,opt,name=version,proto3" json:"version"`
	CodeHash   []byte         `protobuf:"bytes,2,opt,name=code_hash,json=codeHash,proto3" json:"code_hash"`
	Height     int64          `protobuf:"varint,3,opt,name=height,proto3" json:"height"`
	UpgradedAt vault.UnixTime `protobuf:"varint,4,opt,name=upgraded_at,json=upgradedAt,proto3" json:"upgraded_at"`
}

var _ gconf.Configuration = (*CodeVersion)(nil)

func (v *CodeVersion) Validate() error {
	var errs error
	if v.Version == 0 {
		errs = errors.AppendField(errs, "Version", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "CodeHash", ValidateCodeHash(v.CodeHash))
	if v.Height < 0 {
		errs = errors.AppendField(errs, "Height", errors.ErrInput)
	}
	errs = errors.AppendField(errs, "UpgradedAt", v.UpgradedAt.Validate())
	return errs
}

type codeVersionCodec CodeVersion

func (m *codeVersionCodec) Reset()         { *m = codeVersionCodec{} }
func (m *codeVersionCodec) String() string { return proto.CompactTextString(m) }
func (*codeVersionCodec) ProtoMessage()    {}

func (v *CodeVersion) Marshal() ([]byte, error) { return proto.Marshal((*codeVersionCodec)(v)) }
func (v *CodeVersion) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*codeVersionCodec)(v)) }

// ValidateCodeHash returns an error if given value is not a valid code
// reference.
func ValidateCodeHash(hash []byte) error {
	switch n := len(hash); {
	case n == 0:
		return errors.ErrEmpty
	case n != CodeHashLength:
		return errors.Wrapf(errors.ErrInput, "code hash must be %d bytes, got %d", CodeHashLength, n)
	}
	return nil
}

// Current returns the latest approved code version. Nil is returned if no
// upgrade was ever executed.
func Current(db gconf.ReadStore) (*CodeVersion, error) {
	var v CodeVersion
	switch err := gconf.Load(db, pkg, &v); {
	case err == nil:
		return &v, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "load code version")
	}
}

// RegisterQuery registers the current code version under /upgrade.
func RegisterQuery(qr vault.QueryRouter) {
	qr.Register("/upgrade", gconf.QueryHandler(pkg))
}
