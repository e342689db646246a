package emergency

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
)

// ApproveEmergencyMsg records the approval of an emergency signer for the
// release of a lock.
type ApproveEmergencyMsg struct {
	Signer vault.Address `protobuf:"bytes,1,opt,name=signer,proto3" json:"signer,omitempty"`
	LockID []byte        `protobuf:"bytes,2,opt,name=lock_id,json=lockId,proto3" json:"lock_id"`
}

var _ vault.Msg = (*ApproveEmergencyMsg)(nil)

func (ApproveEmergencyMsg) Path() string {
	return "vault/approve_emergency"
}

func (m *ApproveEmergencyMsg) Validate() error {
	var errs error
	if len(m.Signer) != 0 {
		errs = errors.AppendField(errs, "Signer", m.Signer.Validate())
	}
	errs = errors.AppendField(errs, "LockID", orm.ValidateID(m.LockID))
	return errs
}

type approveEmergencyMsgCodec ApproveEmergencyMsg

func (m *approveEmergencyMsgCodec) Reset()         { *m = approveEmergencyMsgCodec{} }
func (m *approveEmergencyMsgCodec) String() string { return proto.CompactTextString(m) }
func (*approveEmergencyMsgCodec) ProtoMessage()    {}

func (m *ApproveEmergencyMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*approveEmergencyMsgCodec)(m))
}

func (m *ApproveEmergencyMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*approveEmergencyMsgCodec)(m))
}

// EmergencyUnlockMsg releases an approved lock. Any authenticated caller can
// send it.
type EmergencyUnlockMsg struct {
	Caller vault.Address `protobuf:"bytes,1,opt,name=caller,proto3" json:"caller,omitempty"`
	LockID []byte        `protobuf:"bytes,2,opt,name=lock_id,json=lockId,proto3" json:"lock_id"`
}

var _ vault.Msg = (*EmergencyUnlockMsg)(nil)

func (EmergencyUnlockMsg) Path() string {
	return "vault/emergency_unlock"
}

func (m *EmergencyUnlockMsg) Validate() error {
	var errs error
	if len(m.Caller) != 0 {
		errs = errors.AppendField(errs, "Caller", m.Caller.Validate())
	}
	errs = errors.AppendField(errs, "LockID", orm.ValidateID(m.LockID))
	return errs
}

type emergencyUnlockMsgCodec EmergencyUnlockMsg

func (m *emergencyUnlockMsgCodec) Reset()         { *m = emergencyUnlockMsgCodec{} }
func (m *emergencyUnlockMsgCodec) String() string { return proto.CompactTextString(m) }
func (*emergencyUnlockMsgCodec) ProtoMessage()    {}

func (m *EmergencyUnlockMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*emergencyUnlockMsgCodec)(m))
}

func (m *EmergencyUnlockMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*emergencyUnlockMsgCodec)(m))
}
