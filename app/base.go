package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete abci.Application. StoreApp provides storage,
// queries and block handling, transactions are decoded and passed to the
// handler.
type BaseApp struct {
	*StoreApp
	decoder vault.TxDecoder
	handler vault.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application processing transactions with given
// handler. When debug is set, error responses carry full details.
func NewBaseApp(store *StoreApp, decoder vault.TxDecoder, handler vault.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store.WithDebug(debug),
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx implements abci.Application.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return vault.DeliverTxError(err, b.debug)
	}
	ctx := b.txContext("deliver_tx", tx)
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return vault.DeliverOrError(res, err, b.debug)
}

// CheckTx implements abci.Application.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return vault.CheckTxError(err, b.debug)
	}
	ctx := b.txContext("check_tx", tx)
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return vault.CheckOrError(res, err, b.debug)
}

func (b BaseApp) txContext(call string, tx vault.Tx) vault.Context {
	return vault.WithLogInfo(b.BlockContext(), "call", call, "path", vault.GetPath(tx))
}

// decode turns a decoder panic on malformed input into an error.
func (b BaseApp) decode(raw []byte) (tx vault.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
