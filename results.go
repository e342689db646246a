package vault

import (
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// CheckResult is the outcome of a successful transaction check. Failures
// are always reported as errors.
type CheckResult struct {
	// Data is a machine readable return value.
	Data []byte
	// Log is a human readable message.
	Log string
	// GasWanted is the amount of work the transaction is expected to take.
	GasWanted int64
}

// ToABCI returns the tendermint representation of this result.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{Data: c.Data, Log: c.Log, GasWanted: c.GasWanted}
}

// DeliverResult is the outcome of a successfully delivered transaction.
type DeliverResult struct {
	// Data is a machine readable return value, for example the id of a
	// created lock.
	Data []byte
	// Log is a human readable message.
	Log string
	// Events describe state changes done by the transaction. They are
	// published once the transaction succeeded and never read back.
	Events []Event
	// Tags are indexed by tendermint and allow to search transactions.
	Tags []common.KVPair
}

// ToABCI returns the tendermint representation of this result.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{Data: d.Data, Log: d.Log, Tags: d.Tags}
}

// DeliverOrError returns the response for DeliverTx, built from the error
// if present.
func DeliverOrError(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return res.ToABCI()
}

// CheckOrError returns the response for CheckTx, built from the error if
// present.
func CheckOrError(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return res.ToABCI()
}

// DeliverTxError renders an error as a DeliverTx response. Details of
// unregistered errors are redacted unless debug is set.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := txErrorInfo("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError renders an error as a CheckTx response. Details of
// unregistered errors are redacted unless debug is set.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := txErrorInfo("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func txErrorInfo(phase string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code != errors.SuccessABCICode {
		log = "cannot " + phase + " tx: " + log
	}
	return code, log
}
