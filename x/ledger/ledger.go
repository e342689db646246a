/*
Package ledger keeps the aggregate amount of value held by the vault.

Every unclaimed lock and every unvested remainder of a vesting schedule is
accounted in a single total. Extensions credit the total when value enters
the vault and debit it when value is released.
*/
package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

const pkg = "ledger"

// TotalLocked is the singleton holding the aggregate locked amount.
type TotalLocked struct {
	Amount coin.Amount `protobuf:"bytes,1,opt,name=amount,proto3" json:"amount"`
}

var _ gconf.Configuration = (*TotalLocked)(nil)

func (t *TotalLocked) Validate() error {
	return errors.AppendField(nil, "Amount", t.Amount.Validate())
}

type totalLockedCodec TotalLocked

func (m *totalLockedCodec) Reset()         { *m = totalLockedCodec{} }
func (m *totalLockedCodec) String() string { return proto.CompactTextString(m) }
func (*totalLockedCodec) ProtoMessage()    {}

func (t *TotalLocked) Marshal() ([]byte, error) { return proto.Marshal((*totalLockedCodec)(t)) }
func (t *TotalLocked) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*totalLockedCodec)(t)) }

// Load returns the total locked amount. Zero is returned if nothing was
// ever accounted.
func Load(db gconf.ReadStore) (coin.Amount, error) {
	var t TotalLocked
	switch err := gconf.Load(db, pkg, &t); {
	case err == nil:
		return t.Amount, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "load total locked")
	}
}

// Reset sets the total locked amount to zero.
func Reset(db gconf.Store) error {
	return gconf.Save(db, pkg, &TotalLocked{})
}

// Credit increases the total locked amount. It returns the new total.
func Credit(db gconf.Store, amount coin.Amount) (coin.Amount, error) {
	total, err := Load(db)
	if err != nil {
		return nil, err
	}
	total, err = total.Add(amount)
	if err != nil {
		return nil, errors.Wrap(err, "credit")
	}
	if err := gconf.Save(db, pkg, &TotalLocked{Amount: total}); err != nil {
		return nil, err
	}
	return total, nil
}

// Debit decreases the total locked amount. It returns the new total.
//
// The total never goes below zero. Debiting more than is accounted clamps
// the total to zero and is reported as an error in the log, but the
// operation succeeds.
func Debit(ctx vault.Context, db gconf.Store, amount coin.Amount) (coin.Amount, error) {
	total, err := Load(db)
	if err != nil {
		return nil, err
	}
	if total.Cmp(amount) < 0 {
		vault.GetLogger(ctx).With("module", pkg).Error("total locked underflow",
			"total", total.String(),
			"amount", amount.String())
		total = nil
	} else if total, err = total.Sub(amount); err != nil {
		return nil, errors.Wrap(err, "debit")
	}
	if err := gconf.Save(db, pkg, &TotalLocked{Amount: total}); err != nil {
		return nil, err
	}
	return total, nil
}

// RegisterQuery exposes the total under "/ledger".
func RegisterQuery(qr vault.QueryRouter) {
	qr.Register("/ledger", gconf.QueryHandler(pkg))
}
