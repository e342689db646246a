package admin

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/upgrade"
)

// InitializeMsg declares the vault configuration. It can be executed
// successfully only once.
type InitializeMsg struct {
	Admin              vault.Address   `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin,omitempty"`
	EmergencySigners   []vault.Address `protobuf:"bytes,2,rep,name=emergency_signers,json=emergencySigners,proto3" json:"emergency_signers"`
	EmergencyThreshold uint32          `protobuf:"varint,3,opt,name=emergency_threshold,json=emergencyThreshold,proto3" json:"emergency_threshold"`
}

var _ vault.Msg = (*InitializeMsg)(nil)

func (InitializeMsg) Path() string {
	return "vault/initialize"
}

func (m *InitializeMsg) Validate() error {
	var errs error
	if len(m.Admin) != 0 {
		errs = errors.AppendField(errs, "Admin", m.Admin.Validate())
	}
	for i, s := range m.EmergencySigners {
		if err := s.Validate(); err != nil {
			errs = errors.AppendField(errs, "EmergencySigners", errors.Wrapf(err, "signer %d", i))
		}
	}
	return errs
}

type initializeMsgCodec InitializeMsg

func (m *initializeMsgCodec) Reset()         { *m = initializeMsgCodec{} }
func (m *initializeMsgCodec) String() string { return proto.CompactTextString(m) }
func (*initializeMsgCodec) ProtoMessage()    {}

func (m *InitializeMsg) Marshal() ([]byte, error) { return proto.Marshal((*initializeMsgCodec)(m)) }
func (m *InitializeMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*initializeMsgCodec)(m))
}

// TransferAdminMsg hands the administrator role over to another identity.
type TransferAdminMsg struct {
	Admin    vault.Address `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin,omitempty"`
	NewAdmin vault.Address `protobuf:"bytes,2,opt,name=new_admin,json=newAdmin,proto3" json:"new_admin"`
}

var _ vault.Msg = (*TransferAdminMsg)(nil)

func (TransferAdminMsg) Path() string {
	return "vault/transfer_admin"
}

func (m *TransferAdminMsg) Validate() error {
	var errs error
	if len(m.Admin) != 0 {
		errs = errors.AppendField(errs, "Admin", m.Admin.Validate())
	}
	errs = errors.AppendField(errs, "NewAdmin", m.NewAdmin.Validate())
	return errs
}

type transferAdminMsgCodec TransferAdminMsg

func (m *transferAdminMsgCodec) Reset()         { *m = transferAdminMsgCodec{} }
func (m *transferAdminMsgCodec) String() string { return proto.CompactTextString(m) }
func (*transferAdminMsgCodec) ProtoMessage()    {}

func (m *TransferAdminMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*transferAdminMsgCodec)(m))
}
func (m *TransferAdminMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*transferAdminMsgCodec)(m))
}

// UpgradeMsg approves a new program code, referenced by its hash.
type UpgradeMsg struct {
	Admin    vault.Address `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin,omitempty"`
	CodeHash []byte        `protobuf:"bytes,2,opt,name=code_hash,json=codeHash,proto3" json:"code_hash"`
}

var _ vault.Msg = (*UpgradeMsg)(nil)

func (UpgradeMsg) Path() string {
	return "vault/upgrade"
}

func (m *UpgradeMsg) Validate() error {
	var errs error
	if len(m.Admin) != 0 {
		errs = errors.AppendField(errs, "Admin", m.Admin.Validate())
	}
	errs = errors.AppendField(errs, "CodeHash", upgrade.ValidateCodeHash(m.CodeHash))
	return errs
}

type upgradeMsgCodec UpgradeMsg

func (m *upgradeMsgCodec) Reset()         { *m = upgradeMsgCodec{} }
func (m *upgradeMsgCodec) String() string { return proto.CompactTextString(m) }
func (*upgradeMsgCodec) ProtoMessage()    {}

func (m *UpgradeMsg) Marshal() ([]byte, error) { return proto.Marshal((*upgradeMsgCodec)(m)) }
func (m *UpgradeMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*upgradeMsgCodec)(m)) }
