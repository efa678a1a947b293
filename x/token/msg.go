package token

import (
	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

const pathSendMsg = "token/send"

// SendMsg requests a token transfer from the source to the destination
// account. The source must authorize the transaction.
type SendMsg struct {
	Source      poolshare.Address `json:"source"`
	Destination poolshare.Address `json:"destination"`
	Ticker      string            `json:"ticker"`
	Amount      sdkmath.Int       `json:"amount"`
	// Memo is a human readable note attached to the transfer.
	Memo string `json:"memo,omitempty"`
}

var _ poolshare.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return pathSendMsg
}

func (msg *SendMsg) Validate() error {
	if err := msg.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := msg.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if err := ValidateTicker(msg.Ticker); err != nil {
		return err
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "transfer amount must be positive")
	}
	if len(msg.Memo) > maxMemoSize {
		return errors.ErrInput.Newf("memo longer than %d characters", maxMemoSize)
	}
	return nil
}

// maxMemoSize bounds the memo so a message cannot be abused to bloat
// the transaction history.
const maxMemoSize = 128
