package vesting

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
)

// CreateVestingMsg creates a vesting schedule for the beneficiary. Only the
// administrator can create schedules. When the admin is not set, the main
// signer of the transaction is used.
type CreateVestingMsg struct {
	Admin       vault.Address      `protobuf:"bytes,1,opt,name=admin,proto3" json:"admin,omitempty"`
	Beneficiary vault.Address      `protobuf:"bytes,2,opt,name=beneficiary,proto3" json:"beneficiary"`
	TotalAmount coin.Amount        `protobuf:"bytes,3,opt,name=total_amount,json=totalAmount,proto3" json:"total_amount"`
	Duration    vault.UnixDuration `protobuf:"varint,4,opt,name=duration,proto3" json:"duration"`
	Cliff       vault.UnixDuration `protobuf:"varint,5,opt,name=cliff,proto3" json:"cliff"`
	Memo        string             `protobuf:"bytes,6,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ vault.Msg = (*CreateVestingMsg)(nil)

func (CreateVestingMsg) Path() string {
	return "vault/vest"
}

func (m *CreateVestingMsg) Validate() error {
	var errs error
	if len(m.Admin) != 0 {
		errs = errors.AppendField(errs, "Admin", m.Admin.Validate())
	}
	errs = errors.AppendField(errs, "Beneficiary", m.Beneficiary.Validate())
	if !m.TotalAmount.IsPositive() {
		errs = errors.AppendField(errs, "TotalAmount", errors.Wrap(errors.ErrAmount, "must be greater than zero"))
	}
	if m.Duration <= 0 {
		errs = errors.AppendField(errs, "Duration", errors.Wrap(errors.ErrInvalidDuration, "must be greater than zero"))
	}
	if m.Cliff < 0 {
		errs = errors.AppendField(errs, "Cliff", errors.Wrap(errors.ErrInvalidDuration, "must not be negative"))
	}
	errs = errors.AppendField(errs, "Memo", x.ValidateMemo(m.Memo))
	return errs
}

type createVestingMsgCodec CreateVestingMsg

func (m *createVestingMsgCodec) Reset()         { *m = createVestingMsgCodec{} }
func (m *createVestingMsgCodec) String() string { return proto.CompactTextString(m) }
func (*createVestingMsgCodec) ProtoMessage()    {}

func (m *CreateVestingMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createVestingMsgCodec)(m))
}

func (m *CreateVestingMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*createVestingMsgCodec)(m))
}

// ClaimVestedMsg claims everything that is vested and was not claimed yet.
type ClaimVestedMsg struct {
	Beneficiary vault.Address `protobuf:"bytes,1,opt,name=beneficiary,proto3" json:"beneficiary,omitempty"`
	VestingID   []byte        `protobuf:"bytes,2,opt,name=vesting_id,json=vestingId,proto3" json:"vesting_id"`
}

var _ vault.Msg = (*ClaimVestedMsg)(nil)

func (ClaimVestedMsg) Path() string {
	return "vault/claim_vested"
}

func (m *ClaimVestedMsg) Validate() error {
	var errs error
	if len(m.Beneficiary) != 0 {
		errs = errors.AppendField(errs, "Beneficiary", m.Beneficiary.Validate())
	}
	errs = errors.AppendField(errs, "VestingID", orm.ValidateID(m.VestingID))
	return errs
}

type claimVestedMsgCodec ClaimVestedMsg

func (m *claimVestedMsgCodec) Reset()         { *m = claimVestedMsgCodec{} }
func (m *claimVestedMsgCodec) String() string { return proto.CompactTextString(m) }
func (*claimVestedMsgCodec) ProtoMessage()    {}

func (m *ClaimVestedMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*claimVestedMsgCodec)(m))
}

func (m *ClaimVestedMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*claimVestedMsgCodec)(m))
}
