/*
Package client is a thin wrapper around a tendermint rpc connection that
gives access to the vault state and submits vault transactions.
*/
package client

import (
	"context"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Conn is the subset of the tendermint rpc client used by the vault
// client.
type Conn interface {
	Status() (*ctypes.ResultStatus, error)
	ABCIQueryWithOptions(path string, data cmn.HexBytes, opts rpcclient.ABCIQueryOptions) (*ctypes.ResultABCIQuery, error)
	BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error)
}

var _ Conn = (*rpcclient.HTTP)(nil)

// NewHTTPConnection takes a URL and sends all requests to the remote node
func NewHTTPConnection(remote string) Conn {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// Client provides access to a vault node.
type Client struct {
	conn    Conn
	chainID string
}

// NewClient wraps a Client around an existing tendermint connection.
func NewClient(conn Conn) *Client {
	return &Client{conn: conn}
}

// Status is the current status of the node we connect to.
type Status struct {
	ChainID    string
	Height     int64
	CatchingUp bool
}

// Status returns current height and other (subjective) status info from this node
func (c *Client) Status(ctx context.Context) (*Status, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "status: %s", err)
	}
	return &Status{
		ChainID:    status.NodeInfo.Network,
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// ChainID returns the chain id of the node. The value is cached after the
// first successful call.
func (c *Client) ChainID(ctx context.Context) (string, error) {
	if c.chainID != "" {
		return c.chainID, nil
	}
	s, err := c.Status(ctx)
	if err != nil {
		return "", err
	}
	c.chainID = s.ChainID
	return c.chainID, nil
}

// CommitResult is the outcome of a transaction included in a block.
type CommitResult struct {
	Hash   cmn.HexBytes
	Height int64
	// Data is the value returned by the message handler, for example the
	// identifier of a created entity.
	Data []byte
	Tags []cmn.KVPair
}

// CommitTx submits the transaction and blocks until it is included in a
// block. A transaction rejected by the node is returned as an error that
// can be compared with the registered errors.
func (c *Client) CommitTx(ctx context.Context, tx vault.Tx) (*CommitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bz, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "marshaling: %s", err)
	}
	res, err := c.conn.BroadcastTxCommit(bz)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast tx: %s", err)
	}
	if res.CheckTx.Code != 0 {
		return nil, errors.Wrap(errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log), "check tx")
	}
	if res.DeliverTx.Code != 0 {
		return nil, errors.Wrap(errors.ABCIError(res.DeliverTx.Code, res.DeliverTx.Log), "deliver tx")
	}
	return &CommitResult{
		Hash:   res.Hash,
		Height: res.Height,
		Data:   res.DeliverTx.Data,
		Tags:   res.DeliverTx.Tags,
	}, nil
}

// Query returns the models found under given query path. Only the latest
// state is queried.
func (c *Client) Query(path string, data []byte) ([]vault.Model, error) {
	res, err := c.conn.ABCIQueryWithOptions(path, data, rpcclient.ABCIQueryOptions{})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "query %s: %s", path, err)
	}
	if res.Response.Code != 0 {
		return nil, errors.ABCIError(res.Response.Code, res.Response.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(res.Response.Key); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "result keys: %s", err)
	}
	if err := values.Unmarshal(res.Response.Value); err != nil {
		return nil, errors.Wrapf(errors.ErrState, "result values: %s", err)
	}
	return app.JoinResults(&keys, &values)
}

// queryOne loads the single result of a query into dst. notFound is
// returned when the query has no result.
func (c *Client) queryOne(path string, data []byte, dst vault.Persistent, notFound *errors.Error) error {
	models, err := c.Query(path, data)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return errors.Wrapf(notFound, "query %s", path)
	}
	if err := dst.Unmarshal(models[0].Value); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %s result: %s", path, err)
	}
	return nil
}
