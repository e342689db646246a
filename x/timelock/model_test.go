package timelock

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestTokenLockValidate(t *testing.T) {
	owner := vaulttest.NewCondition().Address()

	cases := map[string]struct {
		Lock     TokenLock
		WantErrs map[string]*errors.Error
	}{
		"valid": {
			Lock: TokenLock{
				ID:       vaulttest.SequenceID(1),
				Owner:    owner,
				Amount:   coin.NewAmount(10),
				LockedAt: 100,
				UnlockAt: 200,
				Memo:     "team",
			},
			WantErrs: map[string]*errors.Error{
				"ID":       nil,
				"Owner":    nil,
				"Amount":   nil,
				"UnlockAt": nil,
				"Memo":     nil,
			},
		},
		"empty": {
			WantErrs: map[string]*errors.Error{
				"ID":       errors.ErrEmpty,
				"Owner":    errors.ErrEmpty,
				"Amount":   errors.ErrAmount,
				"UnlockAt": errors.ErrInvalidDuration,
				"Memo":     nil,
			},
		},
		"unlock before lock": {
			Lock: TokenLock{
				ID:       vaulttest.SequenceID(1),
				Owner:    owner,
				Amount:   coin.NewAmount(10),
				LockedAt: 200,
				UnlockAt: 100,
				Memo:     "not a tag",
			},
			WantErrs: map[string]*errors.Error{
				"UnlockAt": errors.ErrInvalidDuration,
				"Memo":     errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Lock.Validate()
			for field, want := range tc.WantErrs {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestTokenLockCodec(t *testing.T) {
	lock := TokenLock{
		ID:       vaulttest.SequenceID(9),
		Owner:    vaulttest.NewCondition().Address(),
		Amount:   coin.MustParseAmount("123456789012345678901234567890"),
		LockedAt: 1572247483,
		UnlockAt: 1572333883,
		Claimed:  true,
		Memo:     "seed",
	}
	raw, err := lock.Marshal()
	assert.Nil(t, err)
	var got TokenLock
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, lock, got)
}

func TestLocksQuery(t *testing.T) {
	db := store.MemStore()
	owner := vaulttest.NewCondition().Address()
	bucket := NewBucket()
	for i := uint64(1); i <= 2; i++ {
		l := TokenLock{
			ID:       vaulttest.SequenceID(i),
			Owner:    owner,
			Amount:   coin.NewAmount(i),
			LockedAt: 1,
			UnlockAt: 2,
		}
		_, err := bucket.Put(db, l.ID, &l)
		assert.Nil(t, err)
	}

	qr := vault.NewQueryRouter()
	RegisterQuery(qr)

	res, err := qr.Handler("/locks").Query(db, vault.KeyQueryMod, vaulttest.SequenceID(2))
	assert.Nil(t, err)
	if len(res) != 1 {
		t.Fatalf("want one result, got %d", len(res))
	}
	var l TokenLock
	assert.Nil(t, l.Unmarshal(res[0].Value))
	assert.Equal(t, "2", l.Amount.String())

	res, err = qr.Handler("/locks/owner").Query(db, vault.KeyQueryMod, owner)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(res))
	assert.Equal(t, vaulttest.SequenceID(1), res[0].Key)

	_, err = Load(db, vaulttest.SequenceID(3))
	assert.IsErr(t, errors.ErrLockNotFound, err)
}
