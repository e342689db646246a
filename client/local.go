package client

import (
	"time"

	"github.com/iov-one/vault/app"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/p2p"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// LocalConn is a Conn that executes every broadcast transaction in its own
// block of an in process application. The application must already have
// been initialized with InitChain.
//
// It is meant for tests and local tooling, there is no consensus involved.
type LocalConn struct {
	app     app.BaseApp
	chainID string
	height  int64

	// Now returns the time of the next block. Defaults to time.Now.
	Now func() time.Time
}

var _ Conn = (*LocalConn)(nil)

// NewLocalConn returns a connection to given application.
func NewLocalConn(a app.BaseApp, chainID string) *LocalConn {
	return &LocalConn{app: a, chainID: chainID, Now: time.Now}
}

func (c *LocalConn) Status() (*ctypes.ResultStatus, error) {
	return &ctypes.ResultStatus{
		NodeInfo: p2p.DefaultNodeInfo{Network: c.chainID},
		SyncInfo: ctypes.SyncInfo{LatestBlockHeight: c.height},
	}, nil
}

func (c *LocalConn) ABCIQueryWithOptions(path string, data cmn.HexBytes, opts rpcclient.ABCIQueryOptions) (*ctypes.ResultABCIQuery, error) {
	res := c.app.Query(abci.RequestQuery{Path: path, Data: data, Height: opts.Height})
	return &ctypes.ResultABCIQuery{Response: res}, nil
}

func (c *LocalConn) BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error) {
	res := &ctypes.ResultBroadcastTxCommit{Hash: tx.Hash()}
	res.CheckTx = c.app.CheckTx(tx)
	if res.CheckTx.Code != 0 {
		return res, nil
	}
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: c.chainID, Height: c.height, Time: c.Now()},
	})
	res.DeliverTx = c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	res.Height = c.height
	return res, nil
}
