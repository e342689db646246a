/*
Package app links together all the various components
to construct the vault application.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store/iavl"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/admin"
	"github.com/iov-one/vault/x/emergency"
	"github.com/iov-one/vault/x/ledger"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/stats"
	"github.com/iov-one/vault/x/timelock"
	"github.com/iov-one/vault/x/upgrade"
	"github.com/iov-one/vault/x/utils"
	"github.com/iov-one/vault/x/vesting"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// signatureCacheSize is the number of verified signatures remembered
// between CheckTx and DeliverTx.
const signatureCacheSize = 2048

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle panics, logging,
// authentication and atomicity. Metrics are collected only when a
// registerer is given.
func Chain(reg prometheus.Registerer) (app.Decorators, error) {
	cache, err := sigs.NewSignatureCache(signatureCacheSize)
	if err != nil {
		return app.Decorators{}, err
	}
	decorators := []vault.Decorator{
		utils.NewRecovery(),
		utils.NewLogging(),
	}
	if reg != nil {
		m, err := utils.NewMetrics(reg)
		if err != nil {
			return app.Decorators{}, errors.Wrap(err, "metrics")
		}
		decorators = append(decorators, m)
	}
	decorators = append(decorators,
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator().WithCache(cache),
		// on DeliverTx, a failed message leaves the vault untouched
		// but the signer sequence is still incremented
		utils.NewSavepoint().OnDeliver(),
		utils.NewEventPublisher(utils.LogSink{}),
	)
	return app.ChainDecorators(decorators...), nil
}

// Router returns a router dispatching to all vault handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	admin.RegisterRoutes(r, authFn, upgrade.Keeper{})
	timelock.RegisterRoutes(r, authFn)
	vesting.RegisterRoutes(r, authFn)
	emergency.RegisterRoutes(r, authFn)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/vault", "/locks", "/vestings", "/approvals",
// "/ledger", "/stats", "/upgrade" and "/auth"
func QueryRouter() vault.QueryRouter {
	r := vault.NewQueryRouter()
	r.RegisterAll(
		admin.RegisterQuery,
		timelock.RegisterQuery,
		vesting.RegisterQuery,
		emergency.RegisterQuery,
		ledger.RegisterQuery,
		stats.RegisterQuery,
		upgrade.RegisterQuery,
		sigs.RegisterQuery,
	)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) (vault.Handler, error) {
	authFn := Authenticator()
	chain, err := Chain(reg)
	if err != nil {
		return nil, err
	}
	return chain.WithHandler(Router(authFn)), nil
}

// Application constructs a basic ABCI application with
// the given arguments.
func Application(name string, h vault.Handler, tx vault.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path. An empty path returns an in memory store.
func CommitKVStore(dbPath string) (vault.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}
	// Some external calls accidentally add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path)), nil
}

// Options configure the node application.
type Options struct {
	Home    string
	Logger  log.Logger
	Debug   bool
	Metrics prometheus.Registerer
}

// GenerateApp creates the vault application. The database is stored in
// the home directory, an empty home keeps everything in memory.
func GenerateApp(opts Options) (abci.Application, error) {
	var dbPath string
	if opts.Home != "" {
		dbPath = filepath.Join(opts.Home, "vault.db")
	}
	stack, err := Stack(opts.Metrics)
	if err != nil {
		return nil, err
	}
	application, err := Application("vault", stack, TxDecoder, dbPath, opts.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(app.ChainInitializers(
		&admin.Initializer{},
	))
	if opts.Logger != nil {
		application.WithLogger(opts.Logger)
	}
	return application, nil
}
