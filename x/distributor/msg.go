package distributor

import (
	"math/big"

	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

const pathDistributeMsg = "distributor/distribute"

// maxAmount is the largest value accepted for a single contribution and
// for the aggregate of all contributions. It is the upper bound of a
// signed 128-bit integer, matching the amount range of the ledgers this
// module interoperates with.
var maxAmount = sdkmath.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1)))

// Recipient is a single entry of a distribution request: the account
// that contributed and the amount it contributed.
type Recipient struct {
	Address poolshare.Address `json:"address"`
	Amount  sdkmath.Int       `json:"amount"`
}

// DistributeMsg requests depositing the sum of all recipient amounts
// into a vault on behalf of the source, and distributing the minted
// claim units back to each recipient pro-rata.
type DistributeMsg struct {
	// Source funds the deposit and must authorize the transaction.
	Source poolshare.Address `json:"source"`
	// Vault identifier, resolved through the vault registry.
	Vault string `json:"vault"`
	// Recipients in the order the shares are to be assigned. The last
	// recipient absorbs the rounding dust.
	Recipients []Recipient `json:"recipients"`
}

var _ poolshare.Msg = (*DistributeMsg)(nil)

func (DistributeMsg) Path() string {
	return pathDistributeMsg
}

// Validate ensures the message is complete and each recipient entry is
// acceptable. Policy dependent rules (list length, vault as recipient)
// are enforced by the handler, because they require configuration and
// state access.
func (msg *DistributeMsg) Validate() error {
	if err := msg.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if msg.Vault == "" {
		return errors.Wrap(errors.ErrEmpty, "vault")
	}
	if len(msg.Recipients) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no recipients")
	}

	// Recipient accounts must not repeat. A repeated account would not
	// break the arithmetic, but it is almost certainly a caller bug and
	// allowing it would make the emitted records ambiguous.
	seen := make(map[string]struct{}, len(msg.Recipients))

	for i, r := range msg.Recipients {
		if err := r.Address.Validate(); err != nil {
			return errors.Wrapf(err, "recipient %d address", i)
		}
		if r.Amount.IsNil() || !r.Amount.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "recipient %d amount must be positive", i)
		}
		if r.Amount.GT(maxAmount) {
			return errors.Wrapf(errors.ErrOverflow, "recipient %d amount exceeds 128 bits", i)
		}
		addr := r.Address.String()
		if _, ok := seen[addr]; ok {
			return errors.Wrapf(errors.ErrDuplicate, "recipient address %q", addr)
		}
		seen[addr] = struct{}{}
	}
	return nil
}

// SumAmounts returns the aggregate of all recipient amounts. The sum is
// bound to the signed 128-bit range, anything above fails with
// ErrOverflow instead of wrapping or growing silently.
func SumAmounts(recipients []Recipient) (sdkmath.Int, error) {
	total := sdkmath.ZeroInt()
	for i, r := range recipients {
		if r.Amount.IsNil() || !r.Amount.IsPositive() {
			return sdkmath.Int{}, errors.Wrapf(errors.ErrAmount, "recipient %d amount must be positive", i)
		}
		total = total.Add(r.Amount)
		if total.GT(maxAmount) {
			return sdkmath.Int{}, errors.Wrap(errors.ErrOverflow, "recipient amounts")
		}
	}
	return total, nil
}
