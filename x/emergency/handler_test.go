package emergency

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/iov-one/vault/x/guard"
	"github.com/iov-one/vault/x/ledger"
	"github.com/iov-one/vault/x/timelock"
)

func TestUseCases(t *testing.T) {
	type Request struct {
		Now        vault.UnixTime
		Conditions []vault.Condition
		Tx         vault.Tx
		WantErr    *errors.Error
	}

	var (
		adminCond    = vaulttest.NewCondition()
		ownerCond    = vaulttest.NewCondition()
		signer1Cond  = vaulttest.NewCondition()
		signer2Cond  = vaulttest.NewCondition()
		signer3Cond  = vaulttest.NewCondition()
		strangerCond = vaulttest.NewCondition()

		now    = vault.UnixTime(1572247483)
		lockID = vaulttest.SequenceID(1)
	)

	// Every test case starts with a single lock, created by the owner,
	// that unlocks in one day.
	createLock := Request{
		Now:        now,
		Conditions: []vault.Condition{ownerCond},
		Tx: &vaulttest.Tx{Msg: &timelock.LockTokensMsg{
			Amount:   coin.NewAmount(1000),
			Duration: 86400,
		}},
	}

	approve := func(signer vault.Condition, wantErr *errors.Error) Request {
		return Request{
			Now:        now + 10,
			Conditions: []vault.Condition{signer},
			Tx:         &vaulttest.Tx{Msg: &ApproveEmergencyMsg{LockID: lockID}},
			WantErr:    wantErr,
		}
	}
	unlock := func(caller vault.Condition, wantErr *errors.Error) Request {
		return Request{
			Now:        now + 20,
			Conditions: []vault.Condition{caller},
			Tx:         &vaulttest.Tx{Msg: &EmergencyUnlockMsg{LockID: lockID}},
			WantErr:    wantErr,
		}
	}

	cases := map[string]struct {
		Threshold uint32
		Requests  []Request
		AfterTest func(t *testing.T, db vault.KVStore)
	}{
		"quorum of two approvals releases the lock once": {
			Threshold: 2,
			Requests: []Request{
				createLock,
				approve(signer1Cond, nil),
				unlock(strangerCond, errors.ErrEmergencyNotApproved),
				approve(signer2Cond, nil),
				unlock(strangerCond, nil),
				unlock(strangerCond, errors.ErrAlreadyClaimed),
				{
					Now:        now + 86400,
					Conditions: []vault.Condition{ownerCond},
					Tx:         &vaulttest.Tx{Msg: &timelock.ClaimMsg{LockID: lockID}},
					WantErr:    errors.ErrAlreadyClaimed,
				},
				approve(signer3Cond, errors.ErrAlreadyClaimed),
			},
			AfterTest: func(t *testing.T, db vault.KVStore) {
				l, err := timelock.Load(db, lockID)
				assert.Nil(t, err)
				assert.Equal(t, true, l.Claimed)

				total, err := ledger.Load(db)
				assert.Nil(t, err)
				assert.Equal(t, true, total.IsZero())

				approvals, err := Load(db, lockID)
				assert.Nil(t, err)
				assert.Equal(t, []vault.Address{signer1Cond.Address(), signer2Cond.Address()}, approvals.Approvers)
			},
		},
		"threshold of one": {
			Threshold: 1,
			Requests: []Request{
				createLock,
				unlock(ownerCond, errors.ErrEmergencyNotApproved),
				approve(signer3Cond, nil),
				unlock(ownerCond, nil),
			},
		},
		"unset threshold requires two approvals": {
			Threshold: 0,
			Requests: []Request{
				createLock,
				approve(signer1Cond, nil),
				unlock(ownerCond, errors.ErrEmergencyNotApproved),
				approve(signer2Cond, nil),
				unlock(ownerCond, nil),
			},
		},
		"a signer can approve only once": {
			Threshold: 2,
			Requests: []Request{
				createLock,
				approve(signer1Cond, nil),
				approve(signer1Cond, errors.ErrAlreadyApproved),
				unlock(ownerCond, errors.ErrEmergencyNotApproved),
			},
			AfterTest: func(t *testing.T, db vault.KVStore) {
				approvals, err := Load(db, lockID)
				assert.Nil(t, err)
				assert.Equal(t, 1, len(approvals.Approvers))
			},
		},
		"only emergency signers can approve": {
			Threshold: 1,
			Requests: []Request{
				createLock,
				approve(strangerCond, errors.ErrUnauthorized),
				approve(adminCond, errors.ErrUnauthorized),
				{
					Now:        now + 10,
					Conditions: []vault.Condition{strangerCond},
					Tx: &vaulttest.Tx{Msg: &ApproveEmergencyMsg{
						Signer: signer1Cond.Address(),
						LockID: lockID,
					}},
					WantErr: errors.ErrUnauthorized,
				},
			},
		},
		"missing lock": {
			Threshold: 1,
			Requests: []Request{
				{
					Now:        now,
					Conditions: []vault.Condition{signer1Cond},
					Tx:         &vaulttest.Tx{Msg: &ApproveEmergencyMsg{LockID: vaulttest.SequenceID(7)}},
					WantErr:    errors.ErrLockNotFound,
				},
				{
					Now:        now,
					Conditions: []vault.Condition{signer1Cond},
					Tx:         &vaulttest.Tx{Msg: &EmergencyUnlockMsg{LockID: vaulttest.SequenceID(7)}},
					WantErr:    errors.ErrLockNotFound,
				},
			},
		},
		"unlock requires an authenticated caller": {
			Threshold: 1,
			Requests: []Request{
				createLock,
				approve(signer1Cond, nil),
				{
					Now:     now + 20,
					Tx:      &vaulttest.Tx{Msg: &EmergencyUnlockMsg{LockID: lockID}},
					WantErr: errors.ErrUnauthorized,
				},
			},
		},
		"lock claimed by the owner cannot be approved": {
			Threshold: 1,
			Requests: []Request{
				createLock,
				{
					Now:        now + 86400,
					Conditions: []vault.Condition{ownerCond},
					Tx:         &vaulttest.Tx{Msg: &timelock.ClaimMsg{LockID: lockID}},
				},
				{
					Now:        now + 86400,
					Conditions: []vault.Condition{signer1Cond},
					Tx:         &vaulttest.Tx{Msg: &ApproveEmergencyMsg{LockID: lockID}},
					WantErr:    errors.ErrAlreadyClaimed,
				},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()

			rt := app.NewRouter()
			auth := &vaulttest.CtxAuth{Key: "auth"}
			RegisterRoutes(rt, auth)
			timelock.RegisterRoutes(rt, auth)

			conf := guard.Configuration{
				Admin: adminCond.Address(),
				EmergencySigners: []vault.Address{
					signer1Cond.Address(),
					signer2Cond.Address(),
					signer3Cond.Address(),
				},
				EmergencyThreshold: tc.Threshold,
			}
			if err := guard.Save(db, &conf); err != nil {
				t.Fatalf("cannot save configuration: %s", err)
			}

			for i, req := range tc.Requests {
				ctx := vault.WithHeight(context.Background(), int64(100+i))
				ctx = auth.SetConditions(ctx, req.Conditions...)
				ctx = vault.WithBlockTime(ctx, req.Now.Time())

				cache := db.CacheWrap()
				if _, err := rt.Check(ctx, cache, req.Tx); !req.WantErr.Is(err) {
					t.Fatalf("unexpected %d check error: want %q, got %+v", i, req.WantErr, err)
				}
				cache.Discard()

				cache = db.CacheWrap()
				if _, err := rt.Deliver(ctx, cache, req.Tx); !req.WantErr.Is(err) {
					t.Fatalf("unexpected %d deliver error: want %q, got %+v", i, req.WantErr, err)
				} else if err == nil {
					if err := cache.Write(); err != nil {
						t.Fatalf("cannot write cache: %s", err)
					}
				} else {
					cache.Discard()
				}
			}

			if tc.AfterTest != nil {
				tc.AfterTest(t, db)
			}
		})
	}
}

func TestApprovalEvents(t *testing.T) {
	db := store.MemStore()
	ownerCond := vaulttest.NewCondition()
	signerCond := vaulttest.NewCondition()
	conf := guard.Configuration{
		Admin:              ownerCond.Address(),
		EmergencySigners:   []vault.Address{signerCond.Address()},
		EmergencyThreshold: 1,
	}
	assert.Nil(t, guard.Save(db, &conf))

	rt := app.NewRouter()
	auth := &vaulttest.CtxAuth{Key: "auth"}
	RegisterRoutes(rt, auth)
	timelock.RegisterRoutes(rt, auth)

	ctx := vault.WithBlockTime(context.Background(), vault.UnixTime(100).Time())
	_, err := rt.Deliver(auth.SetConditions(ctx, ownerCond), db, &vaulttest.Tx{
		Msg: &timelock.LockTokensMsg{Amount: coin.NewAmount(50), Duration: 1000},
	})
	assert.Nil(t, err)

	res, err := rt.Deliver(auth.SetConditions(ctx, signerCond), db, &vaulttest.Tx{
		Msg: &ApproveEmergencyMsg{LockID: vaulttest.SequenceID(1)},
	})
	assert.Nil(t, err)
	assert.Equal(t, []byte("1"), res.Data)
	assert.Equal(t, "vault/emrg_ap", res.Events[0].Topic)
	count, _ := res.Events[0].Attr("count")
	assert.Equal(t, "1", count)

	res, err = rt.Deliver(auth.SetConditions(ctx, ownerCond), db, &vaulttest.Tx{
		Msg: &EmergencyUnlockMsg{LockID: vaulttest.SequenceID(1)},
	})
	assert.Nil(t, err)
	assert.Equal(t, "50", coin.Amount(res.Data).String())
	assert.Equal(t, "vault/emrg_ex", res.Events[0].Topic)
	caller, _ := res.Events[0].Attr("caller")
	assert.Equal(t, ownerCond.Address().String(), caller)
}
