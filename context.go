package vault

import (
	"context"
	"regexp"
	"time"

	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information and the logger down to the
// handlers. Use the helpers below to read and extend it.
type Context = context.Context

type ctxKey string

const (
	headerKey    ctxKey = "header"
	heightKey    ctxKey = "height"
	chainIDKey   ctxKey = "chain_id"
	loggerKey    ctxKey = "logger"
	blockTimeKey ctxKey = "block_time"
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID reports whether a chain id is 6 to 20 characters of
	// letters, digits, dashes or underscores.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

// setOnce stores a value that must not be overwritten further down the
// stack.
func setOnce(ctx Context, key ctxKey, val interface{}) Context {
	if ctx.Value(key) != nil {
		panic(string(key) + " already set")
	}
	return context.WithValue(ctx, key, val)
}

// WithHeader stores the block header. It panics if a header is already
// present.
func WithHeader(ctx Context, header abci.Header) Context {
	return setOnce(ctx, headerKey, header)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(headerKey).(abci.Header)
	return h, ok
}

// WithHeight stores the block height. It panics if a height is already
// present.
func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, heightKey, height)
}

func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(heightKey).(int64)
	return h, ok
}

// WithBlockTime stores the block time, converted to UTC. It takes
// precedence over the header time.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, blockTimeKey, t.UTC())
}

// BlockTime returns the time of the block being processed. Running a
// handler without one is a setup mistake and fails with ErrHuman.
func BlockTime(ctx Context) (time.Time, error) {
	t, ok := ctx.Value(blockTimeKey).(time.Time)
	if !ok {
		h, _ := GetHeader(ctx)
		t = h.Time.UTC()
	}
	if t.IsZero() {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "no block time in context")
	}
	return t, nil
}

// IsExpired is true once the block time reached t. A lock unlocking at t
// can be claimed in the block with time t.
//
// It panics without a block time in the context.
func IsExpired(ctx Context, t UnixTime) bool {
	now, err := BlockTime(ctx)
	if err != nil {
		panic(err)
	}
	return AsUnixTime(now) >= t
}

// WithChainID stores the chain id. It panics on an invalid id and when an
// id is already present.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic("invalid chain id " + chainID)
	}
	return setOnce(ctx, chainIDKey, chainID)
}

// GetChainID panics when no chain id was set. The app always sets one.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(chainIDKey).(string)
	if !ok {
		panic("no chain id in context")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(loggerKey).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}

// WithLogInfo attaches keyvals to every line logged through the returned
// context.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}
