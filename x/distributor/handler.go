package distributor

import (
	"encoding/json"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/x"
	"github.com/iov-one/poolshare/x/grant"
	"github.com/iov-one/poolshare/x/token"
	"github.com/iov-one/poolshare/x/vault"
)

const distributePerRecipientCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r poolshare.Registry, auth x.Authenticator, ctrl token.Controller, vaults vault.Registry, policy Policy) {
	r.Handle(pathDistributeMsg, NewDistributeHandler(auth, ctrl, vaults, policy))
}

// DistributeHandler processes DistributeMsg: validate, deposit,
// allocate, transfer per recipient, emit one record per recipient.
type DistributeHandler struct {
	auth   x.Authenticator
	ctrl   token.Controller
	vaults vault.Registry
	policy Policy
}

var _ poolshare.Handler = DistributeHandler{}

// NewDistributeHandler creates a handler for DistributeMsg.
func NewDistributeHandler(auth x.Authenticator, ctrl token.Controller, vaults vault.Registry, policy Policy) DistributeHandler {
	return DistributeHandler{
		auth:   auth,
		ctrl:   ctrl,
		vaults: vaults,
		policy: policy,
	}
}

// custodyAddress derives the account the distributor stages funds in
// while processing a distribution for the given vault. Nobody can sign
// for a condition derived address, so every transfer out of it requires
// a grant.
func custodyAddress(vaultID string) poolshare.Address {
	return poolshare.NewCondition("distributor", "custody", []byte(vaultID)).Address()
}

// Check verifies the message is properly formed and authorized and
// returns the cost of executing it, counted per recipient.
func (h DistributeHandler) Check(ctx poolshare.Context, db poolshare.KVStore, tx poolshare.Tx) (*poolshare.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return poolshare.NewCheck(distributePerRecipientCost*int64(len(msg.Recipients)), ""), nil
}

// Deliver executes the whole distribution as one unit: stage the
// aggregate in custody, deposit it into the vault, allocate the minted
// claim units pro-rata and transfer each share. Any failure aborts the
// delivery and the surrounding cache wrap discards all effects.
func (h DistributeHandler) Deliver(ctx poolshare.Context, db poolshare.KVStore, tx poolshare.Tx) (*poolshare.DeliverResult, error) {
	msg, vlt, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	total, err := SumAmounts(msg.Recipients)
	if err != nil {
		return nil, err
	}

	asset := vlt.AssetTicker()
	claim := vlt.ClaimTicker()
	custody := custodyAddress(msg.Vault)

	// All transfers of this delivery go through the guarded mover.
	// Grants issued below authorize the moves the source did not sign.
	book := grant.NewBook()
	ctx = grant.WithBook(ctx, book)
	mover := token.GuardedMover{Auth: h.auth, Ctrl: h.ctrl}

	// Stage the aggregate in custody. This transfer is covered by the
	// source signature checked during validation.
	if err := mover.Move(ctx, db, asset, msg.Source, custody, total); err != nil {
		return nil, errors.Wrap(err, "cannot stage funds")
	}

	// Delegate the vault pull out of custody, then deposit with zero
	// slippage tolerance and immediate investing.
	pull := grant.Grant{
		Capability:  token.PathMove,
		Ticker:      asset,
		Source:      custody,
		Destination: vlt.Address(),
		Amount:      total,
	}
	if err := book.Issue(pull); err != nil {
		return nil, err
	}
	accepted, minted, err := vlt.Deposit(ctx, db, total, total, custody, true)
	if err != nil {
		return nil, errors.Wrap(err, "vault deposit")
	}
	if !accepted.Equal(total) {
		return nil, errors.Wrapf(errors.ErrState, "vault accepted %s of %s", accepted, total)
	}

	basis := total
	if h.policy.UseVaultValuation {
		basis, err = vlt.ValuationOf(db, minted)
		if err != nil {
			return nil, errors.Wrap(err, "vault valuation")
		}
		if !basis.IsPositive() {
			return nil, errors.Wrapf(errors.ErrState, "vault valuation basis: %s", basis)
		}
	}

	shares, err := Allocate(minted, basis, msg.Recipients)
	if err != nil {
		return nil, err
	}

	tags := make([]poolshare.Tag, 0, len(shares))
	for i, s := range shares {
		// One grant per transfer, consumed by the very next move.
		g := grant.Grant{
			Capability:  token.PathMove,
			Ticker:      claim,
			Source:      custody,
			Destination: s.Address,
			Amount:      s.Units,
		}
		if err := book.Issue(g); err != nil {
			return nil, err
		}
		if err := mover.Move(ctx, db, claim, custody, s.Address, s.Units); err != nil {
			return nil, errors.Wrapf(err, "recipient %d transfer", i)
		}

		record := DistributedRecord{
			Asset:            asset,
			Vault:            vlt.Address(),
			Recipient:        s.Address,
			UnderlyingAmount: msg.Recipients[i].Amount,
			ClaimUnits:       s.Units,
		}
		tag, err := record.Tag()
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	// Custody is transient. Both balances must be exactly zero now,
	// anything else means value was created or destroyed.
	if err := h.assertCustodyDrained(db, custody, asset, claim); err != nil {
		return nil, err
	}
	if n := book.Outstanding(); n != 0 {
		return nil, errors.Wrapf(errors.ErrHuman, "%d issued grants were never consumed", n)
	}

	data, err := json.Marshal(shares)
	if err != nil {
		return nil, errors.Wrap(err, "cannot serialize result")
	}

	poolshare.GetLogger(ctx).Info("distributed pooled deposit",
		"vault", msg.Vault,
		"recipients", len(shares),
		"total", total.String(),
		"minted", minted.String(),
	)

	return &poolshare.DeliverResult{
		Data:    data,
		Tags:    tags,
		GasUsed: distributePerRecipientCost * int64(len(shares)),
	}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h DistributeHandler) validate(ctx poolshare.Context, db poolshare.KVStore, tx poolshare.Tx) (*DistributeMsg, vault.Vault, error) {
	var msg DistributeMsg
	if err := poolshare.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}

	if max := h.policy.MaxRecipients; max > 0 && len(msg.Recipients) > max {
		return nil, nil, errors.Wrapf(errors.ErrMsg, "too many recipients (max %d)", max)
	}

	// The source funds the deposit, so it must have authorized this.
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source account signature missing")
	}

	vlt, err := h.vaults.Lookup(msg.Vault)
	if err != nil {
		return nil, nil, errors.Wrap(err, "vault lookup")
	}

	if !h.policy.AllowVaultRecipient {
		for i, r := range msg.Recipients {
			if r.Address.Equals(vlt.Address()) {
				return nil, nil, errors.Wrapf(errors.ErrMsg, "recipient %d must not be the vault", i)
			}
		}
	}

	return &msg, vlt, nil
}

func (h DistributeHandler) assertCustodyDrained(db poolshare.KVStore, custody poolshare.Address, tickers ...string) error {
	for _, ticker := range tickers {
		balance, err := h.ctrl.Balance(db, ticker, custody)
		if err != nil {
			return errors.Wrap(err, "custody balance")
		}
		if !balance.IsZero() {
			return errors.Wrapf(errors.ErrHuman, "custody retains %s %s", balance, ticker)
		}
	}
	return nil
}
