/*
Package stats provides a summary of the vault state.
*/
package stats

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/guard"
	"github.com/iov-one/vault/x/ledger"
	"github.com/iov-one/vault/x/timelock"
	"github.com/iov-one/vault/x/vesting"
)

// Stats is a read only summary of the vault.
type Stats struct {
	TotalLocked coin.Amount `protobuf:"bytes,1,opt,name=total_locked,json=totalLocked,proto3" json:"total_locked"`
	// LockCount and VestingCount are the number of entities ever created,
	// including those already released.
	LockCount    uint64        `protobuf:"varint,2,opt,name=lock_count,json=lockCount,proto3" json:"lock_count"`
	VestingCount uint64        `protobuf:"varint,3,opt,name=vesting_count,json=vestingCount,proto3" json:"vesting_count"`
	Admin        vault.Address `protobuf:"bytes,4,opt,name=admin,proto3" json:"admin"`
}

type statsCodec Stats

func (m *statsCodec) Reset()         { *m = statsCodec{} }
func (m *statsCodec) String() string { return proto.CompactTextString(m) }
func (*statsCodec) ProtoMessage()    {}

func (s *Stats) Marshal() ([]byte, error) { return proto.Marshal((*statsCodec)(s)) }
func (s *Stats) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*statsCodec)(s)) }

// Load returns the current summary. ErrNotInitialized is returned if the
// vault was not initialized.
func Load(db vault.ReadOnlyKVStore) (*Stats, error) {
	conf, err := guard.RequireInitialized(db)
	if err != nil {
		return nil, err
	}
	total, err := ledger.Load(db)
	if err != nil {
		return nil, err
	}
	locks, err := timelock.Count(db)
	if err != nil {
		return nil, errors.Wrap(err, "lock count")
	}
	vestings, err := vesting.Count(db)
	if err != nil {
		return nil, errors.Wrap(err, "vesting count")
	}
	return &Stats{
		TotalLocked:  total,
		LockCount:    uint64(locks),
		VestingCount: uint64(vestings),
		Admin:        conf.Admin,
	}, nil
}

// RegisterQuery registers the summary under /stats.
func RegisterQuery(qr vault.QueryRouter) {
	qr.Register("/stats", vault.QueryFunc(query))
}

func query(db vault.ReadOnlyKVStore, mod string, data []byte) ([]vault.Model, error) {
	if mod != vault.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
	s, err := Load(db)
	if err != nil {
		return nil, err
	}
	raw, err := s.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal")
	}
	return []vault.Model{vault.Pair([]byte("stats"), raw)}, nil
}
