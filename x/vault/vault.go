package vault

import (
	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// Vault is the pool collaborator consumed by the distributor. It is an
// interface so allocation and validation logic can be tested without
// any live deployment.
type Vault interface {
	// Deposit exchanges the underlying asset for newly minted claim
	// units. The vault pulls the accepted amount from the depositor
	// account, so the pull is subject to the token ledger
	// authorization. Minted units are credited to the depositor.
	// The returned minted count is authoritative and may differ from
	// the deposited amount when the vault exchange rate is not 1:1.
	Deposit(ctx poolshare.Context, db poolshare.KVStore, desired, minimum sdkmath.Int, from poolshare.Address, invest bool) (accepted, minted sdkmath.Int, err error)

	// ValuationOf returns the underlying-equivalent value of the given
	// number of claim units at the current vault exchange rate.
	ValuationOf(db poolshare.KVStore, units sdkmath.Int) (sdkmath.Int, error)

	// Address of the vault account holding the reserves.
	Address() poolshare.Address

	// AssetTicker is the underlying asset this vault accepts.
	AssetTicker() string

	// ClaimTicker is the token the vault mints claim units in.
	ClaimTicker() string
}

// Registry resolves a vault identifier from a message into a vault
// instance.
type Registry interface {
	Lookup(id string) (Vault, error)
}

// StaticRegistry is a Registry with a fixed set of vaults, configured
// during application setup.
type StaticRegistry map[string]Vault

var _ Registry = (StaticRegistry)(nil)

func (r StaticRegistry) Lookup(id string) (Vault, error) {
	v, ok := r[id]
	if !ok {
		return nil, errors.ErrNotFound.Newf("vault: %q", id)
	}
	return v, nil
}
