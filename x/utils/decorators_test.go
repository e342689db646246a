package utils

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecovery(t *testing.T) {
	h := vaulttest.PanicHandler{Msg: "boom"}
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "vault/lock"}}
	db := store.MemStore()

	_, err := Recovery{}.Check(context.Background(), db, tx, h)
	assert.IsErr(t, errors.ErrPanic, err)
	_, err = NewRecovery().Deliver(context.Background(), db, tx, h)
	assert.IsErr(t, errors.ErrPanic, err)
}

func TestSavepoint(t *testing.T) {
	key, value := []byte("lock:1"), []byte("1000")

	cases := map[string]struct {
		savepoint Savepoint
		handler   *vaulttest.Handler
		deliver   bool
		wantKept  bool
	}{
		"deliver success is written": {
			savepoint: NewSavepoint().OnDeliver(),
			handler:   &vaulttest.Handler{Key: key, Value: value},
			deliver:   true,
			wantKept:  true,
		},
		"deliver failure is rolled back": {
			savepoint: NewSavepoint().OnDeliver(),
			handler:   &vaulttest.Handler{Key: key, Value: value, DeliverErr: errors.ErrAlreadyClaimed},
			deliver:   true,
			wantKept:  false,
		},
		"without savepoint failure is not rolled back": {
			savepoint: NewSavepoint().OnCheck(),
			handler:   &vaulttest.Handler{Key: key, Value: value, DeliverErr: errors.ErrAlreadyClaimed},
			deliver:   true,
			wantKept:  true,
		},
		"check failure is rolled back": {
			savepoint: NewSavepoint().OnCheck(),
			handler:   &vaulttest.Handler{CheckErr: errors.ErrLockStillActive},
			wantKept:  false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "vault/claim"}}
			if tc.deliver {
				_, _ = tc.savepoint.Deliver(context.Background(), db, tx, tc.handler)
			} else {
				_, _ = tc.savepoint.Check(context.Background(), db, tx, tc.handler)
			}
			has, err := db.Has(key)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantKept, has)
		})
	}
}

func TestEventPublisher(t *testing.T) {
	ev := vault.NewEvent("vault/lock", "id", 1, "owner", "ABCD")
	h := &vaulttest.Handler{DeliverResult: vault.DeliverResult{Events: []vault.Event{ev}}}
	sink := &CollectSink{}
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "vault/lock"}}

	res, err := NewEventPublisher(sink).Deliver(context.Background(), store.MemStore(), tx, h)
	require.NoError(t, err)
	require.Equal(t, []vault.Event{ev}, sink.Events)
	require.Len(t, res.Tags, 2)
	require.Equal(t, "vault.lock.id", string(res.Tags[0].Key))

	// failed transactions publish nothing
	sink = &CollectSink{}
	h.DeliverErr = errors.ErrUnauthorized
	_, err = NewEventPublisher(sink).Deliver(context.Background(), store.MemStore(), tx, h)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	require.Empty(t, sink.Events)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "vault/claim"}}
	db := store.MemStore()
	_, _ = m.Deliver(context.Background(), db, tx, &vaulttest.Handler{})
	_, _ = m.Deliver(context.Background(), db, tx, &vaulttest.Handler{DeliverErr: errors.ErrLockStillActive})

	require.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues("deliver", "vault/claim", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.total.WithLabelValues("deliver", "vault/claim", "107")))

	// collectors cannot be registered twice
	_, err = NewMetrics(reg)
	require.Error(t, err)
}

func TestLogging(t *testing.T) {
	tx := &vaulttest.Tx{Msg: &vaulttest.Msg{RoutePath: "vault/lock"}}
	h := &vaulttest.Handler{CheckErr: errors.ErrAmount}
	_, err := NewLogging().Check(context.Background(), store.MemStore(), tx, h)
	assert.IsErr(t, errors.ErrAmount, err)
	_, err = NewLogging().Deliver(context.Background(), store.MemStore(), tx, h)
	assert.Nil(t, err)
	assert.Equal(t, 2, h.CallCount())
}
