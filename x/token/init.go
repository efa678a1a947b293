package token

import (
	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// Initializer fulfils the poolshare.Initializer interface to load data
// from the genesis file.
type Initializer struct{}

var _ poolshare.Initializer = (*Initializer)(nil)

type genesisAccount struct {
	Address poolshare.Address `json:"address"`
	Ticker  string            `json:"ticker"`
	Amount  sdkmath.Int       `json:"amount"`
}

// FromGenesis will parse initial account balances from genesis and
// issue the tokens to the respective accounts.
func (Initializer) FromGenesis(opts poolshare.Options, db poolshare.KVStore) error {
	var accounts []genesisAccount
	if err := opts.ReadOptions("token", &accounts); err != nil {
		return errors.Wrap(err, "cannot load token genesis")
	}

	ctrl := NewController()
	for i, a := range accounts {
		if err := a.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d address", i)
		}
		if a.Amount.IsNil() || !a.Amount.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "account %d amount must be positive", i)
		}
		if err := ctrl.Issue(db, a.Ticker, a.Address, a.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
