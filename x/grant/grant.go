package grant

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// Grant is a one-time authorization for a single downstream capability
// invocation. The capability and the full argument tuple must match
// exactly for the grant to apply.
type Grant struct {
	// Capability is the message path of the operation this grant
	// authorizes, for example "token/move".
	Capability string
	// Ticker of the moved token.
	Ticker string
	// Source account the operation acts on behalf of.
	Source poolshare.Address
	// Destination account of the operation.
	Destination poolshare.Address
	// Amount moved by the operation.
	Amount sdkmath.Int
}

// Validate returns an error if the grant does not describe a complete
// capability invocation.
func (g Grant) Validate() error {
	if g.Capability == "" {
		return errors.Wrap(errors.ErrEmpty, "capability")
	}
	if g.Ticker == "" {
		return errors.Wrap(errors.ErrEmpty, "ticker")
	}
	if err := g.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := g.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if g.Amount.IsNil() || g.Amount.IsNegative() {
		return errors.Wrap(errors.ErrAmount, "amount must not be negative")
	}
	return nil
}

// matches returns true if both grants describe the same capability
// invocation.
func (g Grant) matches(o Grant) bool {
	return g.Capability == o.Capability &&
		g.Ticker == o.Ticker &&
		g.Source.Equals(o.Source) &&
		g.Destination.Equals(o.Destination) &&
		g.Amount.Equal(o.Amount)
}

type entry struct {
	grant Grant
	used  bool
}

// Book tracks the grants issued during a single delivery. It is not safe
// for concurrent use, which is fine because a delivery is processed by a
// single goroutine.
type Book struct {
	entries []*entry
}

// NewBook returns an empty grant book.
func NewBook() *Book {
	return &Book{}
}

// Issue adds a grant to the book. The grant authorizes exactly one
// matching Consume call.
func (b *Book) Issue(g Grant) error {
	if err := g.Validate(); err != nil {
		return errors.Wrap(err, "invalid grant")
	}
	b.entries = append(b.entries, &entry{grant: g})
	return nil
}

// Consume uses up a single unused grant matching the given capability
// invocation. If no such grant exists, ErrUnauthorized is returned.
func (b *Book) Consume(g Grant) error {
	for _, e := range b.entries {
		if e.used || !e.grant.matches(g) {
			continue
		}
		e.used = true
		return nil
	}
	return errors.Wrapf(errors.ErrUnauthorized,
		"no grant for %s %s %s -> %s", g.Capability, g.Ticker, g.Source, g.Destination)
}

// Outstanding returns the number of issued grants that were never
// consumed. A handler that issues grants should verify this is zero
// before returning, so no authorization outlives the operation it was
// issued for.
func (b *Book) Outstanding() int {
	var n int
	for _, e := range b.entries {
		if !e.used {
			n++
		}
	}
	return n
}

type contextKey int

const contextKeyBook contextKey = iota

// WithBook stores the grant book in the context.
func WithBook(ctx poolshare.Context, b *Book) poolshare.Context {
	return context.WithValue(ctx, contextKeyBook, b)
}

// FromContext returns the grant book from the context, or nil if the
// current delivery did not set one up.
func FromContext(ctx poolshare.Context) *Book {
	b, _ := ctx.Value(contextKeyBook).(*Book)
	return b
}
