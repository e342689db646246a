package app

import (
	"reflect"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/admin"
	"github.com/iov-one/vault/x/emergency"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/timelock"
	"github.com/iov-one/vault/x/vesting"
)

// Tx is the transaction envelope accepted by the vault node. It carries a
// single message, identified by its path, together with the signatures
// of the message authors.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	MsgPath    string               `protobuf:"bytes,2,opt,name=msg_path,json=msgPath,proto3" json:"msg_path"`
	MsgData    []byte               `protobuf:"bytes,3,opt,name=msg_data,json=msgData,proto3" json:"msg_data"`
}

var _ vault.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

type txCodec Tx

func (m *txCodec) Reset()         { *m = txCodec{} }
func (m *txCodec) String() string { return proto.CompactTextString(m) }
func (*txCodec) ProtoMessage()    {}

func (tx *Tx) Marshal() ([]byte, error) { return proto.Marshal((*txCodec)(tx)) }
func (tx *Tx) Unmarshal(b []byte) error { return proto.Unmarshal(b, (*txCodec)(tx)) }

// NewTx returns an unsigned transaction carrying given message.
func NewTx(msg vault.Msg) (*Tx, error) {
	if _, ok := messages[msg.Path()]; !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "unknown message path %q", msg.Path())
	}
	raw, err := msg.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "marshal message")
	}
	return &Tx{MsgPath: msg.Path(), MsgData: raw}, nil
}

// GetMsg decodes the message carried by this transaction.
func (tx *Tx) GetMsg() (vault.Msg, error) {
	t, ok := messages[tx.MsgPath]
	if !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "unknown message path %q", tx.MsgPath)
	}
	msg := reflect.New(t).Interface().(vault.Msg)
	if err := msg.Unmarshal(tx.MsgData); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot decode %s: %s", tx.MsgPath, err)
	}
	return msg, nil
}

// GetSignatures returns the signatures of the message authors.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the serialized transaction without signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	cp := *tx
	cp.Signatures = nil
	return cp.Marshal()
}

// TxDecoder creates a Tx and unmarshals bytes into it.
func TxDecoder(bz []byte) (vault.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return tx, nil
}

// messages maps a message path to the message type.
var messages = map[string]reflect.Type{}

func init() {
	for _, m := range []vault.Msg{
		&admin.InitializeMsg{},
		&admin.TransferAdminMsg{},
		&admin.UpgradeMsg{},
		&timelock.LockTokensMsg{},
		&timelock.ClaimMsg{},
		&vesting.CreateVestingMsg{},
		&vesting.ClaimVestedMsg{},
		&emergency.ApproveEmergencyMsg{},
		&emergency.EmergencyUnlockMsg{},
	} {
		messages[m.Path()] = reflect.TypeOf(m).Elem()
	}
}

// MessagePaths returns the sorted paths of all supported messages.
func MessagePaths() []string {
	paths := make([]string, 0, len(messages))
	for p := range messages {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
