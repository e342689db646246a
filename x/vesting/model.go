package vesting

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
)

// VestingSchedule releases the total amount to the beneficiary linearly
// over the duration, starting after the cliff.
type VestingSchedule struct {
	ID            []byte         `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Beneficiary   vault.Address  `protobuf:"bytes,2,opt,name=beneficiary,proto3" json:"beneficiary"`
	TotalAmount   coin.Amount    `protobuf:"bytes,3,opt,name=total_amount,json=totalAmount,proto3" json:"total_amount"`
	ClaimedAmount coin.Amount    `protobuf:"bytes,4,opt,name=claimed_amount,json=claimedAmount,proto3" json:"claimed_amount"`
	StartTime     vault.UnixTime `protobuf:"varint,5,opt,name=start_time,json=startTime,proto3" json:"start_time"`
	// Duration is the time after which the whole amount is vested.
	Duration vault.UnixDuration `protobuf:"varint,6,opt,name=duration,proto3" json:"duration"`
	// Cliff is the time after the start before which nothing is vested.
	Cliff vault.UnixDuration `protobuf:"varint,7,opt,name=cliff,proto3" json:"cliff"`
	Memo  string             `protobuf:"bytes,8,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ orm.Model = (*VestingSchedule)(nil)

func (s *VestingSchedule) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ID", orm.ValidateID(s.ID))
	errs = errors.AppendField(errs, "Beneficiary", s.Beneficiary.Validate())
	if !s.TotalAmount.IsPositive() {
		errs = errors.AppendField(errs, "TotalAmount", errors.ErrAmount)
	}
	if err := s.ClaimedAmount.Validate(); err != nil {
		errs = errors.AppendField(errs, "ClaimedAmount", err)
	} else if s.ClaimedAmount.Cmp(s.TotalAmount) > 0 {
		errs = errors.AppendField(errs, "ClaimedAmount", errors.Wrap(errors.ErrAmount, "claimed more than total"))
	}
	errs = errors.AppendField(errs, "StartTime", s.StartTime.Validate())
	if s.Duration <= 0 {
		errs = errors.AppendField(errs, "Duration", errors.ErrInvalidDuration)
	}
	if s.Cliff < 0 {
		errs = errors.AppendField(errs, "Cliff", errors.ErrInvalidDuration)
	}
	errs = errors.AppendField(errs, "Memo", x.ValidateMemo(s.Memo))
	return errs
}

// Remaining returns the amount that was not claimed yet.
func (s *VestingSchedule) Remaining() (coin.Amount, error) {
	return s.TotalAmount.Sub(s.ClaimedAmount)
}

type vestingScheduleCodec VestingSchedule

func (m *vestingScheduleCodec) Reset()         { *m = vestingScheduleCodec{} }
func (m *vestingScheduleCodec) String() string { return proto.CompactTextString(m) }
func (*vestingScheduleCodec) ProtoMessage()    {}

func (s *VestingSchedule) Marshal() ([]byte, error) {
	return proto.Marshal((*vestingScheduleCodec)(s))
}

func (s *VestingSchedule) Unmarshal(b []byte) error {
	return proto.Unmarshal(b, (*vestingScheduleCodec)(s))
}

// Sequence generates schedule identifiers. Its latest value is the number
// of schedules ever created.
var Sequence = orm.NewSequence("vesting", "id")

// NewBucket returns a bucket of vesting schedules indexed by their
// beneficiary.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("vesting", &VestingSchedule{},
		orm.WithIDSequence(Sequence),
		orm.WithNativeIndex("beneficiary", beneficiaryIndexer),
	)
}

func beneficiaryIndexer(m orm.Model) ([][]byte, error) {
	s, ok := m.(*VestingSchedule)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return [][]byte{s.Beneficiary}, nil
}

// Load returns the schedule with given id or ErrVestingNotFound.
func Load(db vault.ReadOnlyKVStore, id []byte) (*VestingSchedule, error) {
	var s VestingSchedule
	switch err := NewBucket().One(db, id, &s); {
	case err == nil:
		return &s, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrVestingNotFound, "vesting %s", orm.FormatID(id))
	default:
		return nil, err
	}
}

// Count returns the number of schedules ever created.
func Count(db vault.ReadOnlyKVStore) (int64, error) {
	return Sequence.Latest(db)
}
