package distributor

import (
	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// Share pairs a recipient account with the claim units assigned to it.
type Share struct {
	Address poolshare.Address `json:"address"`
	Units   sdkmath.Int       `json:"units"`
}

// Allocate apportions minted claim units across recipients pro-rata to
// their contribution. Every recipient except the positionally last one
// receives floor(amount * minted / basis). The last recipient receives
// whatever remains, which conserves the minted units exactly and
// assigns all rounding dust to one recipient instead of losing it.
// A single recipient receives the entire minted amount.
//
// The basis is the value the contributions are measured against, either
// the raw aggregate of the input amounts or a vault valuation of the
// minted units (see Policy.UseVaultValuation).
func Allocate(minted, basis sdkmath.Int, recipients []Recipient) ([]Share, error) {
	if len(recipients) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "no recipients")
	}
	if minted.IsNil() || minted.IsNegative() {
		return nil, errors.Wrap(errors.ErrAmount, "minted units must not be negative")
	}
	if basis.IsNil() || !basis.IsPositive() {
		return nil, errors.Wrap(errors.ErrAmount, "allocation basis must be positive")
	}

	shares := make([]Share, len(recipients))
	assigned := sdkmath.ZeroInt()
	last := len(recipients) - 1

	for i, r := range recipients {
		var units sdkmath.Int
		if i == last {
			units = minted.Sub(assigned)
			// Structurally impossible with valid inputs, because each
			// floored share is at most its exact pro-rata value. If it
			// happens anyway, aborting is the only safe reaction.
			if units.IsNegative() {
				return nil, errors.Wrap(errors.ErrHuman, "allocation underflow on last recipient")
			}
		} else {
			units = r.Amount.Mul(minted).Quo(basis)
		}
		assigned = assigned.Add(units)
		shares[i] = Share{
			Address: r.Address,
			Units:   units,
		}
	}
	return shares, nil
}
