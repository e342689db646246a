package vaulttest

import "github.com/iov-one/vault"

// Handler is a mock implementation of the vault.Handler interface.
//
// Each method call is counted. When Key is set, Deliver writes the Key and
// Value pair to the store before returning.
type Handler struct {
	checkCall   int
	CheckResult vault.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult vault.DeliverResult
	DeliverErr    error

	Key   []byte
	Value []byte
}

var _ vault.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	h.deliverCall++
	if h.Key != nil {
		if err := db.Set(h.Key, h.Value); err != nil {
			return nil, err
		}
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// PanicHandler panics on every call.
type PanicHandler struct {
	Msg string
}

func (h PanicHandler) Check(vault.Context, vault.KVStore, vault.Tx) (*vault.CheckResult, error) {
	panic(h.Msg)
}

func (h PanicHandler) Deliver(vault.Context, vault.KVStore, vault.Tx) (*vault.DeliverResult, error) {
	panic(h.Msg)
}
