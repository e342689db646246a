package vault

import (
	"reflect"

	"github.com/iov-one/vault/errors"
)

// Msg is a requested state transition. It carries no authentication,
// signatures live in the wrapping Tx.
type Msg interface {
	Persistent

	// Path routes the message to its handler. It must match
	// [0-9A-Za-z_\-/]+ and is usually "<extension>/<action>".
	Path() string

	// Validate runs the stateless checks.
	Validate() error
}

// Marshaller is anything with a binary form.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent can be written and read back. Unmarshal requires a pointer
// receiver, which is why it is split from Marshaller.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits: one message plus whatever the decorators
// need, signatures first of all.
type Tx interface {
	Persistent
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath is the path of the transaction message or "(missing)".
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg validates the message of tx and copies it into destination,
// which must be a pointer of the same type as the message.
func LoadMsg(tx Tx, destination interface{}) error {
	return loadMsg(tx, destination, true)
}

// ExtractMsg copies the message of tx into destination without
// validating it. Handlers that must check state before the message
// content call Validate on their own.
func ExtractMsg(tx Tx, destination interface{}) error {
	return loadMsg(tx, destination, false)
}

func loadMsg(tx Tx, destination interface{}, validate bool) error {
	msg, err := tx.GetMsg()
	switch {
	case err != nil:
		return errors.Wrap(err, "cannot get transaction message")
	case msg == nil:
		return errors.Wrap(errors.ErrState, "nil message")
	}
	if validate {
		if err := msg.Validate(); err != nil {
			return errors.Wrap(err, "invalid message")
		}
	}

	src := reflect.ValueOf(msg)
	if src.Kind() != reflect.Ptr || src.IsNil() {
		return errors.Wrapf(errors.ErrType, "message %T is not a pointer", msg)
	}
	if destination == nil {
		return errors.Wrap(errors.ErrType, "nil destination")
	}
	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination %T is not a non nil pointer", destination)
	}
	if src.Type() != dst.Type() {
		return errors.Wrapf(errors.ErrType, "cannot load %T into %T", msg, destination)
	}
	dst.Elem().Set(src.Elem())
	return nil
}
