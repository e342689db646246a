package vaulttest

import "github.com/iov-one/vault"

// Tx carries Msg. When Err is set every method fails with it.
type Tx struct {
	Msg vault.Msg
	Err error
}

var _ vault.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (vault.Msg, error) {
	return tx.Msg, tx.Err
}

// Marshal returns the serialized message.
func (tx *Tx) Marshal() ([]byte, error) {
	switch {
	case tx.Err != nil:
		return nil, tx.Err
	case tx.Msg == nil:
		return nil, nil
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	panic("vaulttest.Tx cannot be unmarshaled")
}

// Msg routes to RoutePath and serializes to Serialized. Err, when set, is
// returned by Validate, Marshal and Unmarshal.
type Msg struct {
	RoutePath  string
	Serialized []byte
	Err        error
}

var _ vault.Msg = (*Msg)(nil)

func (m *Msg) Path() string    { return m.RoutePath }
func (m *Msg) Validate() error { return m.Err }

func (m *Msg) Marshal() ([]byte, error) {
	return m.Serialized, m.Err
}

func (m *Msg) Unmarshal(raw []byte) error {
	m.Serialized = raw
	return m.Err
}
