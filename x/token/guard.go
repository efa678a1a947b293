package token

import (
	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/x"
	"github.com/iov-one/poolshare/x/grant"
)

// PathMove is the capability name a grant must carry to authorize a
// transfer that was not signed by the source account.
const PathMove = "token/move"

// Mover transfers tokens between accounts on behalf of a source that
// must have authorized the transfer.
type Mover interface {
	Move(ctx poolshare.Context, db poolshare.KVStore, ticker string, src, dest poolshare.Address, amount sdkmath.Int) error
}

// GuardedMover executes a transfer only when the source account
// authorized it. Two authorization paths are accepted:
//
// - the transaction authenticator vouches for the source account
//   (the account owner signed the transaction), or
// - a single-use grant in the context covers the exact transfer tuple
//   (a handler acting for an account it controls delegated the move).
//
// Any other transfer attempt is rejected and the delivery aborts.
type GuardedMover struct {
	Auth x.Authenticator
	Ctrl Controller
}

var _ Mover = GuardedMover{}

func (m GuardedMover) Move(ctx poolshare.Context, db poolshare.KVStore, ticker string, src, dest poolshare.Address, amount sdkmath.Int) error {
	if !m.Auth.HasAddress(ctx, src) {
		book := grant.FromContext(ctx)
		if book == nil {
			return errors.Wrapf(errors.ErrUnauthorized, "source %s did not sign and no grants issued", src)
		}
		g := grant.Grant{
			Capability:  PathMove,
			Ticker:      ticker,
			Source:      src,
			Destination: dest,
			Amount:      amount,
		}
		if err := book.Consume(g); err != nil {
			return errors.Wrapf(err, "source %s did not sign", src)
		}
	}
	return m.Ctrl.Move(db, ticker, src, dest, amount)
}
