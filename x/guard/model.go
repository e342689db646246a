package guard

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// ConfPackage is the name of the configuration singleton.
const ConfPackage = "vault"

// DefaultThreshold is the number of emergency approvals required when the
// configuration does not declare one.
const DefaultThreshold = 2

// Configuration is the vault state that is set once during initialization.
// Only the administrator can be changed later.
type Configuration struct {
	Admin              vault.Address   `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin"`
	EmergencySigners   []vault.Address `protobuf:"bytes,2,rep,name=emergency_signers,json=emergencySigners,proto3" json:"emergency_signers"`
	EmergencyThreshold uint32          `protobuf:"varint,3,opt,name=emergency_threshold,json=emergencyThreshold,proto3" json:"emergency_threshold"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Admin", c.Admin.Validate())
	for i, s := range c.EmergencySigners {
		if err := s.Validate(); err != nil {
			errs = errors.AppendField(errs, "EmergencySigners", errors.Wrapf(err, "signer %d", i))
			continue
		}
		for _, prev := range c.EmergencySigners[:i] {
			if prev.Equals(s) {
				errs = errors.AppendField(errs, "EmergencySigners", errors.Wrapf(errors.ErrDuplicate, "signer %s", s))
			}
		}
	}
	return errs
}

// IsEmergencySigner returns true if given address is a member of the
// emergency committee.
func (c *Configuration) IsEmergencySigner(addr vault.Address) bool {
	for _, s := range c.EmergencySigners {
		if s.Equals(addr) {
			return true
		}
	}
	return false
}

// EffectiveThreshold returns the number of approvals that an emergency
// unlock requires.
func (c *Configuration) EffectiveThreshold() uint32 {
	if c.EmergencyThreshold == 0 {
		return DefaultThreshold
	}
	return c.EmergencyThreshold
}

type configurationCodec Configuration

func (m *configurationCodec) Reset()         { *m = configurationCodec{} }
func (m *configurationCodec) String() string { return proto.CompactTextString(m) }
func (*configurationCodec) ProtoMessage()    {}

func (c *Configuration) Marshal() ([]byte, error) { return proto.Marshal((*configurationCodec)(c)) }
func (c *Configuration) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*configurationCodec)(c))
}
