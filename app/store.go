package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the storage related part of abci.Application: Info,
// Query, InitChain, BeginBlock, EndBlock and Commit. Embed it to provide
// transaction processing on top.
//
// None of the methods above can return an error to tendermint. Failure in
// any of them means the node state is broken and results in a panic.
type StoreApp struct {
	name   string
	logger log.Logger
	debug  bool

	store       *CommitStore
	initializer vault.Initializer
	queryRouter vault.QueryRouter

	// chainID is empty until genesis is loaded.
	chainID string

	// lastBlockTime guards the clock against going backwards.
	lastBlockTime time.Time

	// appContext holds values valid for the lifetime of the application,
	// blockContext extends it with values of the block being processed.
	appContext   vault.Context
	blockContext vault.Context
}

// NewStoreApp returns an application using given store. It panics if the
// store state cannot be loaded.
func NewStoreApp(name string, db vault.CommitKVStore, qr vault.QueryRouter, ctx vault.Context) *StoreApp {
	s := &StoreApp{
		name:        name,
		store:       NewCommitStore(db),
		queryRouter: qr,
		appContext:  ctx,
	}
	s = s.WithLogger(log.NewNopLogger())

	chainID, err := loadChainID(s.DeliverStore())
	if err != nil {
		panic(err)
	}
	if chainID != "" {
		s.chainID = chainID
		s.appContext = vault.WithChainID(s.appContext, chainID)
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockContext = vault.WithHeight(s.appContext, info.Version)
	return s
}

// WithInit sets the genesis initializer.
func (s *StoreApp) WithInit(init vault.Initializer) *StoreApp {
	s.initializer = init
	return s
}

// WithDebug enables full error information in query responses.
func (s *StoreApp) WithDebug(debug bool) *StoreApp {
	s.debug = debug
	return s
}

// WithLogger sets the application logger. The logger is also available to
// handlers through the context.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appContext = vault.WithLogger(s.appContext, logger)
	return s
}

// Logger returns the application logger.
func (s *StoreApp) Logger() log.Logger { return s.logger }

// GetChainID returns the chain id or an empty string before genesis.
func (s *StoreApp) GetChainID() string { return s.chainID }

// BlockContext returns the context of the block being processed.
func (s *StoreApp) BlockContext() vault.Context { return s.blockContext }

// DeliverStore returns the store of the delivery phase.
func (s *StoreApp) DeliverStore() vault.CacheableKVStore { return s.store.DeliverStore() }

// CheckStore returns the store of the check phase.
func (s *StoreApp) CheckStore() vault.CacheableKVStore { return s.store.CheckStore() }

// Info implements abci.Application.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info, err := s.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          vault.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

// SetOption implements abci.Application. Options are not supported.
func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// Query implements abci.Application. Only the committed state of the
// latest height can be queried.
//
// The path selects the query handler and may carry a modifier after a
// question mark, for example "/locks?prefix". Both key and value of the
// response are serialized ResultSet instances of the same length.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, vault.KeyQueryMod
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.queryRouter.Handler(path)
	if h == nil {
		return s.queryError(errors.Wrapf(errors.ErrNotFound, "no handler for query path %q", req.Path))
	}

	info, err := s.store.CommitInfo()
	if err != nil {
		return s.queryError(err)
	}
	if req.Height != 0 && req.Height != info.Version {
		return s.queryError(errors.Wrap(errors.ErrInput, "only the latest height can be queried"))
	}

	db := s.store.committed.CacheWrap()
	defer db.Discard()
	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return s.queryError(err)
	}

	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return s.queryError(err)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return s.queryError(err)
	}
	return abci.ResponseQuery{Height: info.Version, Key: keys, Value: values}
}

func (s *StoreApp) queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, s.debug)
	return abci.ResponseQuery{Code: code, Log: log}
}

// InitChain implements abci.Application. It is called once, when the
// chain starts for the first time.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if !req.Time.IsZero() {
		s.lastBlockTime = req.Time
		s.blockContext = vault.WithBlockTime(s.blockContext, req.Time)
	}
	if err := s.loadGenesis(req.ChainId, req.AppStateBytes); err != nil {
		panic(err)
	}
	s.logger.Info("genesis loaded", "chain_id", req.ChainId)
	return abci.ResponseInitChain{}
}

func (s *StoreApp) loadGenesis(chainID string, raw []byte) error {
	if s.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %q", s.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrState, "app_state missing in genesis, initialize it before starting the chain")
	}
	var opts vault.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.appContext = vault.WithChainID(s.appContext, chainID)

	if s.initializer == nil {
		return nil
	}
	return s.initializer.FromGenesis(opts, s.DeliverStore())
}

// BeginBlock implements abci.Application. It panics when the block time
// is before the time of the previous block.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	now := req.Header.GetTime()
	if now.Before(s.lastBlockTime) {
		panic(fmt.Sprintf("block time %s is before the previous block time %s", now, s.lastBlockTime))
	}
	s.lastBlockTime = now

	ctx := vault.WithHeader(s.appContext, req.Header)
	ctx = vault.WithHeight(ctx, req.Header.GetHeight())
	s.blockContext = vault.WithBlockTime(ctx, now)
	return abci.ResponseBeginBlock{}
}

// EndBlock implements abci.Application.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit implements abci.Application.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.store.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}
