package vault

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/x/token"
)

// SingleAssetVault is a reference vault implementation backed by the
// token ledger. Reserves are the vault account balance of the
// underlying asset. The exchange rate follows the usual share formula:
// the first deposit mints 1:1, later deposits mint
// floor(amount * supply / reserves). Yield accrued to the vault account
// (reserves growing while supply stays) makes a claim unit worth more
// than one underlying unit.
type SingleAssetVault struct {
	id    string
	asset string
	claim string
	addr  poolshare.Address
	ctrl  token.Controller
	mover token.Mover
}

var _ Vault = (*SingleAssetVault)(nil)

// NewSingleAssetVault returns a vault holding the given underlying
// asset and minting claim units in the claim ticker. The mover is used
// to pull deposits from the depositor account and is expected to
// enforce the ledger authorization rules.
func NewSingleAssetVault(id, asset, claim string, ctrl token.Controller, mover token.Mover) (*SingleAssetVault, error) {
	if id == "" {
		return nil, errors.Wrap(errors.ErrEmpty, "vault id")
	}
	if err := token.ValidateTicker(asset); err != nil {
		return nil, errors.Wrap(err, "asset")
	}
	if err := token.ValidateTicker(claim); err != nil {
		return nil, errors.Wrap(err, "claim")
	}
	if asset == claim {
		return nil, errors.Wrap(errors.ErrInput, "asset and claim ticker must differ")
	}
	return &SingleAssetVault{
		id:    id,
		asset: asset,
		claim: claim,
		addr:  poolshare.NewCondition("vault", "single", []byte(id)).Address(),
		ctrl:  ctrl,
		mover: mover,
	}, nil
}

func (v *SingleAssetVault) Address() poolshare.Address {
	return v.addr
}

func (v *SingleAssetVault) AssetTicker() string {
	return v.asset
}

func (v *SingleAssetVault) ClaimTicker() string {
	return v.claim
}

// Deposit pulls the underlying from the depositor and mints claim units
// back to the same account.
func (v *SingleAssetVault) Deposit(ctx poolshare.Context, db poolshare.KVStore, desired, minimum sdkmath.Int, from poolshare.Address, invest bool) (sdkmath.Int, sdkmath.Int, error) {
	var zero sdkmath.Int
	if desired.IsNil() || !desired.IsPositive() {
		return zero, zero, errors.Wrap(errors.ErrAmount, "deposit amount must be positive")
	}
	if minimum.IsNil() || minimum.IsNegative() {
		return zero, zero, errors.Wrap(errors.ErrAmount, "minimum amount must not be negative")
	}
	if minimum.GT(desired) {
		return zero, zero, errors.Wrap(errors.ErrAmount, "minimum amount exceeds desired amount")
	}

	// Exchange rate is fixed by the state before the deposit arrives.
	reserves, err := v.ctrl.Balance(db, v.asset, v.addr)
	if err != nil {
		return zero, zero, errors.Wrap(err, "reserves")
	}
	supply, err := v.totalSupply(db)
	if err != nil {
		return zero, zero, err
	}

	// This vault accepts the full desired amount or nothing.
	accepted := desired

	var minted sdkmath.Int
	switch {
	case supply.IsZero():
		minted = accepted
	case reserves.IsZero():
		// Claim units exist but reserves are gone. Minting anything
		// here would dilute existing holders arbitrarily.
		return zero, zero, errors.Wrap(errors.ErrState, "vault reserves drained")
	default:
		minted = accepted.Mul(supply).Quo(reserves)
	}

	// Pull the funds. The mover rejects the transfer unless the
	// depositor signed it or delegated it with a grant.
	if err := v.mover.Move(ctx, db, v.asset, from, v.addr, accepted); err != nil {
		return zero, zero, errors.Wrap(err, "cannot pull deposit")
	}

	if err := v.ctrl.Issue(db, v.claim, from, minted); err != nil {
		return zero, zero, errors.Wrap(err, "cannot mint claim units")
	}
	if err := v.setTotalSupply(db, supply.Add(minted)); err != nil {
		return zero, zero, err
	}

	// The reference vault has no separate idle/invested buckets, the
	// invest flag only shows up in the log.
	poolshare.GetLogger(ctx).Debug("vault deposit",
		"vault", v.id,
		"from", from.String(),
		"accepted", accepted.String(),
		"minted", minted.String(),
		"invest", invest,
	)
	return accepted, minted, nil
}

// ValuationOf returns the underlying value of the given claim units at
// the current exchange rate, rounded down.
func (v *SingleAssetVault) ValuationOf(db poolshare.KVStore, units sdkmath.Int) (sdkmath.Int, error) {
	var zero sdkmath.Int
	if units.IsNil() || units.IsNegative() {
		return zero, errors.Wrap(errors.ErrAmount, "units must not be negative")
	}
	supply, err := v.totalSupply(db)
	if err != nil {
		return zero, err
	}
	if supply.IsZero() {
		return zero, errors.Wrap(errors.ErrState, "no claim units minted")
	}
	reserves, err := v.ctrl.Balance(db, v.asset, v.addr)
	if err != nil {
		return zero, errors.Wrap(err, "reserves")
	}
	return units.Mul(reserves).Quo(supply), nil
}

func (v *SingleAssetVault) supplyKey() []byte {
	return []byte(fmt.Sprintf("vault:supply:%s", v.id))
}

func (v *SingleAssetVault) totalSupply(db poolshare.KVStore) (sdkmath.Int, error) {
	raw, err := db.Get(v.supplyKey())
	if err != nil {
		return sdkmath.Int{}, errors.Wrap(err, "cannot load supply")
	}
	if raw == nil {
		return sdkmath.ZeroInt(), nil
	}
	var supply sdkmath.Int
	if err := supply.Unmarshal(raw); err != nil {
		return sdkmath.Int{}, errors.Wrapf(errors.ErrState, "corrupted supply: %s", err)
	}
	return supply, nil
}

func (v *SingleAssetVault) setTotalSupply(db poolshare.KVStore, supply sdkmath.Int) error {
	raw, err := supply.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot serialize supply")
	}
	return db.Set(v.supplyKey(), raw)
}
