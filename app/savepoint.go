package app

import (
	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// Savepoint will isolate all data inside of the call, and commit/discard
// at the end of the transaction. It makes every wrapped execution
// all-or-nothing: either every write of the downstream handler is
// applied, or none is.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ poolshare.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator, but you must call
// OnCheck or OnDeliver (or both) so it will be triggered.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that isolates all checks.
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{onCheck: true, onDeliver: s.onDeliver}
}

// OnDeliver returns a savepoint that isolates all deliveries.
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{onCheck: s.onCheck, onDeliver: true}
}

// Check runs the next handler inside a cache wrap when activated.
func (s Savepoint) Check(ctx poolshare.Context, store poolshare.KVStore, tx poolshare.Tx, next poolshare.Checker) (*poolshare.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	cstore, ok := store.(poolshare.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrDatabase, "store cannot be cache wrapped")
	}
	cache := cstore.CacheWrap()
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write savepoint")
	}
	return res, nil
}

// Deliver runs the next handler inside a cache wrap when activated.
func (s Savepoint) Deliver(ctx poolshare.Context, store poolshare.KVStore, tx poolshare.Tx, next poolshare.Deliverer) (*poolshare.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	cstore, ok := store.(poolshare.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrDatabase, "store cannot be cache wrapped")
	}
	cache := cstore.CacheWrap()
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot write savepoint")
	}
	return res, nil
}
