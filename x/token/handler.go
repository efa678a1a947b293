package token

import (
	"encoding/json"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/x"
)

const sendTxCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r poolshare.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, ctrl))
}

// SendHandler will handle sending tokens between accounts.
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ poolshare.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, ctrl Controller) SendHandler {
	return SendHandler{
		auth: auth,
		ctrl: ctrl,
	}
}

// Check just verifies the message is properly formed and authorized and
// returns the cost of executing it.
func (h SendHandler) Check(ctx poolshare.Context, db poolshare.KVStore, tx poolshare.Tx) (*poolshare.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return poolshare.NewCheck(sendTxCost, ""), nil
}

// Deliver moves the tokens from the source to the destination if all
// preconditions are met.
func (h SendHandler) Deliver(ctx poolshare.Context, db poolshare.KVStore, tx poolshare.Tx) (*poolshare.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.ctrl.Move(db, msg.Ticker, msg.Source, msg.Destination, msg.Amount); err != nil {
		return nil, err
	}

	tag, err := sentTag(msg)
	if err != nil {
		return nil, err
	}
	return &poolshare.DeliverResult{
		Tags:    []poolshare.Tag{tag},
		GasUsed: sendTxCost,
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h SendHandler) validate(ctx poolshare.Context, db poolshare.KVStore, tx poolshare.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := poolshare.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Make sure we have permission from the source.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "source account signature missing")
	}
	return &msg, nil
}

// sentTag builds the transaction history tag for one executed transfer.
func sentTag(msg *SendMsg) (poolshare.Tag, error) {
	value, err := json.Marshal(struct {
		Source      poolshare.Address `json:"source"`
		Destination poolshare.Address `json:"destination"`
		Ticker      string            `json:"ticker"`
		Amount      string            `json:"amount"`
	}{
		Source:      msg.Source,
		Destination: msg.Destination,
		Ticker:      msg.Ticker,
		Amount:      msg.Amount.String(),
	})
	if err != nil {
		return poolshare.Tag{}, errors.Wrap(err, "cannot serialize tag")
	}
	return poolshare.Tag{Key: []byte("token/sent"), Value: value}, nil
}
