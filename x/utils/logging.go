package utils

import (
	"time"

	"github.com/iov-one/vault"
)

// Logging writes one log line per transaction with its path and how long
// the handler took. Failures are logged at error level, delivered
// transactions at info and checks at debug.
type Logging struct{}

var _ vault.Decorator = Logging{}

func NewLogging() Logging { return Logging{} }

func (Logging) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Checker) (*vault.CheckResult, error) {
	began := time.Now()
	res, err := next.Check(ctx, store, tx)
	line := txLine{tx: tx, took: time.Since(began), err: err, check: true}
	if res != nil {
		line.msg = res.Log
	}
	line.write(ctx)
	return res, err
}

func (Logging) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx, next vault.Deliverer) (*vault.DeliverResult, error) {
	began := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	line := txLine{tx: tx, took: time.Since(began), err: err}
	if res != nil {
		line.msg = res.Log
	}
	line.write(ctx)
	return res, err
}

type txLine struct {
	tx    vault.Tx
	took  time.Duration
	msg   string
	err   error
	check bool
}

func (l txLine) write(ctx vault.Context) {
	logger := vault.GetLogger(ctx).With(
		"path", vault.GetPath(l.tx),
		"micros", int64(l.took/time.Microsecond),
	)
	switch {
	case l.err != nil:
		logger.Error(l.msg, "err", l.err)
	case l.check:
		logger.Debug(l.msg)
	default:
		logger.Info(l.msg)
	}
}
