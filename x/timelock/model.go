package timelock

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
)

// TokenLock is an amount held on behalf of the owner until the unlock time.
type TokenLock struct {
	// ID is the primary key of the lock. It is assigned by the lock
	// sequence.
	ID       []byte         `protobuf:"bytes,1,opt,name=id,proto3" json:"id"`
	Owner    vault.Address  `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner"`
	Amount   coin.Amount    `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount"`
	LockedAt vault.UnixTime `protobuf:"varint,4,opt,name=locked_at,json=lockedAt,proto3" json:"locked_at"`
	UnlockAt vault.UnixTime `protobuf:"varint,5,opt,name=unlock_at,json=unlockAt,proto3" json:"unlock_at"`
	// Claimed is set once the lock was released. It can never be unset.
	Claimed bool   `protobuf:"varint,6,opt,name=claimed,proto3" json:"claimed"`
	Memo    string `protobuf:"bytes,7,opt,name=memo,proto3" json:"memo,omitempty"`
}

var _ orm.Model = (*TokenLock)(nil)

func (l *TokenLock) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "ID", orm.ValidateID(l.ID))
	errs = errors.AppendField(errs, "Owner", l.Owner.Validate())
	if !l.Amount.IsPositive() {
		errs = errors.AppendField(errs, "Amount", errors.ErrAmount)
	}
	errs = errors.AppendField(errs, "LockedAt", l.LockedAt.Validate())
	if l.UnlockAt <= l.LockedAt {
		errs = errors.AppendField(errs, "UnlockAt", errors.Wrap(errors.ErrInvalidDuration, "unlock must be after lock time"))
	}
	errs = errors.AppendField(errs, "Memo", x.ValidateMemo(l.Memo))
	return errs
}

type tokenLockCodec TokenLock

func (m *tokenLockCodec) Reset()         { *m = tokenLockCodec{} }
func (m *tokenLockCodec) String() string { return proto.CompactTextString(m) }
func (*tokenLockCodec) ProtoMessage()    {}

func (l *TokenLock) Marshal() ([]byte, error) { return proto.Marshal((*tokenLockCodec)(l)) }
func (l *TokenLock) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*tokenLockCodec)(l)) }

// Sequence generates lock identifiers. Its latest value is the number of
// locks ever created.
var Sequence = orm.NewSequence("lock", "id")

// NewBucket returns a bucket of locks indexed by their owner.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("lock", &TokenLock{},
		orm.WithIDSequence(Sequence),
		orm.WithNativeIndex("owner", ownerIndexer),
	)
}

func ownerIndexer(m orm.Model) ([][]byte, error) {
	l, ok := m.(*TokenLock)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return [][]byte{l.Owner}, nil
}

// Load returns the lock with given id or ErrLockNotFound.
func Load(db vault.ReadOnlyKVStore, id []byte) (*TokenLock, error) {
	var l TokenLock
	switch err := NewBucket().One(db, id, &l); {
	case err == nil:
		return &l, nil
	case errors.ErrNotFound.Is(err):
		return nil, errors.Wrapf(errors.ErrLockNotFound, "lock %s", orm.FormatID(id))
	default:
		return nil, err
	}
}

// Count returns the number of locks ever created.
func Count(db vault.ReadOnlyKVStore) (int64, error) {
	return Sequence.Latest(db)
}
