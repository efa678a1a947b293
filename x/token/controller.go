package token

import (
	"fmt"
	"regexp"

	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// IsTicker returns true for a valid ticker symbol.
var IsTicker = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// ValidateTicker returns an error if this is not a valid ticker symbol.
func ValidateTicker(ticker string) error {
	if !IsTicker(ticker) {
		return errors.ErrInput.Newf("invalid ticker: %q", ticker)
	}
	return nil
}

// Controller manages the token balances stored in the key-value store.
// It performs no authorization checks, the callers are responsible for
// those (see GuardedMover).
type Controller struct{}

// NewController returns a ledger controller.
func NewController() Controller {
	return Controller{}
}

func walletKey(ticker string, addr poolshare.Address) []byte {
	return []byte(fmt.Sprintf("token:wallet:%s:%s", ticker, addr))
}

// Balance returns the amount of given token owned by the account. An
// account without a wallet has a zero balance.
func (c Controller) Balance(db poolshare.KVStore, ticker string, addr poolshare.Address) (sdkmath.Int, error) {
	raw, err := db.Get(walletKey(ticker, addr))
	if err != nil {
		return sdkmath.Int{}, errors.Wrap(err, "cannot load wallet")
	}
	if raw == nil {
		return sdkmath.ZeroInt(), nil
	}
	var amount sdkmath.Int
	if err := amount.Unmarshal(raw); err != nil {
		return sdkmath.Int{}, errors.Wrapf(errors.ErrState, "corrupted wallet: %s", err)
	}
	return amount, nil
}

// Move transfers the given amount from the source to the destination
// account. A zero amount move is a no-op, so a rounding dust share of
// zero does not fail a distribution. A negative amount is rejected
// because that would silently reverse the transfer direction.
func (c Controller) Move(db poolshare.KVStore, ticker string, src, dest poolshare.Address, amount sdkmath.Int) error {
	if err := ValidateTicker(ticker); err != nil {
		return err
	}
	if amount.IsNil() || amount.IsNegative() {
		return errors.Wrap(errors.ErrAmount, "transfer amount must not be negative")
	}
	if amount.IsZero() {
		return nil
	}

	srcBalance, err := c.Balance(db, ticker, src)
	if err != nil {
		return errors.Wrap(err, "source")
	}
	if srcBalance.LT(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount,
			"%s has %s %s, want to move %s", src, srcBalance, ticker, amount)
	}
	destBalance, err := c.Balance(db, ticker, dest)
	if err != nil {
		return errors.Wrap(err, "destination")
	}

	if err := c.setBalance(db, ticker, src, srcBalance.Sub(amount)); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := c.setBalance(db, ticker, dest, destBalance.Add(amount)); err != nil {
		return errors.Wrap(err, "destination")
	}
	return nil
}

// Issue mints the given amount of tokens to the account. This is meant
// for genesis initialization and for the vault minting claim units.
func (c Controller) Issue(db poolshare.KVStore, ticker string, addr poolshare.Address, amount sdkmath.Int) error {
	if err := ValidateTicker(ticker); err != nil {
		return err
	}
	if amount.IsNil() || amount.IsNegative() {
		return errors.Wrap(errors.ErrAmount, "issued amount must not be negative")
	}
	if amount.IsZero() {
		return nil
	}
	balance, err := c.Balance(db, ticker, addr)
	if err != nil {
		return err
	}
	return c.setBalance(db, ticker, addr, balance.Add(amount))
}

func (c Controller) setBalance(db poolshare.KVStore, ticker string, addr poolshare.Address, amount sdkmath.Int) error {
	key := walletKey(ticker, addr)
	if amount.IsZero() {
		// Do not keep empty wallets around.
		return db.Delete(key)
	}
	raw, err := amount.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize amount")
	}
	return db.Set(key, raw)
}
