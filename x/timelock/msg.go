package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
)

// LockTokensMsg creates a new lock. When the owner is not set, the main
// signer of the transaction is the owner.
type LockTokensMsg struct {
	Owner    vault.Address      `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Amount   coin.Amount        `protobuf:"bytes,2,opt,name=amount,proto3" json:"amount"`
	Duration vault.UnixDuration `protobuf:"varint,3,opt,name=duration,proto3" json:"duration"`
	Memo     string             `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ vault.Msg = (*LockTokensMsg)(nil)

func (LockTokensMsg) Path() string {
	return "vault/lock"
}

func (m *LockTokensMsg) Validate() error {
	var errs error
	if len(m.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	if !m.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be greater than zero"))
	}
	if m.Duration <= 0 {
		errs = errors.AppendField(errs, "Duration", errors.Wrap(errors.ErrInvalidDuration, "must be greater than zero"))
	}
	errs = errors.AppendField(errs, "Memo", x.ValidateMemo(m.Memo))
	return errs
}

type lockTokensMsgCodec LockTokensMsg

func (m *lockTokensMsgCodec) Reset()         { *m = lockTokensMsgCodec{} }
func (m *lockTokensMsgCodec) String() string { return proto.CompactTextString(m) }
func (*lockTokensMsgCodec) ProtoMessage()    {}

func (m *LockTokensMsg) Marshal() ([]byte, error) { return proto.Marshal((*lockTokensMsgCodec)(m)) }
func (m *LockTokensMsg) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*lockTokensMsgCodec)(m))
}

// ClaimMsg releases a lock to its owner once the unlock time was reached.
type ClaimMsg struct {
	Owner  vault.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	LockID []byte        `protobuf:"bytes,2,opt,name=lock_id,json=lockId,proto3" json:"lock_id"`
}

var _ vault.Msg = (*ClaimMsg)(nil)

func (ClaimMsg) Path() string {
	return "vault/claim"
}

func (m *ClaimMsg) Validate() error {
	var errs error
	if len(m.Owner) != 0 {
		errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	}
	errs = errors.AppendField(errs, "LockID", orm.ValidateID(m.LockID))
	return errs
}

type claimMsgCodec ClaimMsg

func (m *claimMsgCodec) Reset()         { *m = claimMsgCodec{} }
func (m *claimMsgCodec) String() string { return proto.CompactTextString(m) }
func (*claimMsgCodec) ProtoMessage()    {}

func (m *ClaimMsg) Marshal() ([]byte, error) { return proto.Marshal((*claimMsgCodec)(m)) }
func (m *ClaimMsg) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*claimMsgCodec)(m)) }
