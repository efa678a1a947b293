package poolshare

import (
	"reflect"

	"github.com/iov-one/poolshare/errors"
)

// Msg is a request for the state machine to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	// Validate returns an error if the message content is not valid. This
	// is a local check only, performed before the message reaches any
	// handler, and must not require access to the application state.
	Validate() error

	// Path returns the message path.
	// This is used by the Router to locate the proper Handler. Msg should
	// be created alongside the Handler that corresponds to it.
	//
	// Path must be constructed of two alphanumeric segments separated
	// with a single / character, for example "token/send".
	Path() string
}

// Tx represents the data sent from the user to the chain. It includes the
// actual message, along with information needed to authenticate the sender,
// and anything else needed to pass through middleware.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, ensures its validity,
// and loads it into the destination. Destination must be a pointer to a
// message instance of the same type as the one carried by the transaction.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrType, "destination must be a non-nil pointer, got %T", destination)
	}
	src := reflect.ValueOf(msg)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}
	if dst.Elem().Type() != src.Type() {
		return errors.Wrapf(errors.ErrType, "want %s message, got %T", dst.Elem().Type(), msg)
	}
	dst.Elem().Set(src)
	return nil
}
