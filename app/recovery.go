package app

import (
	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// Recovery is a decorator to recover from panics in transactions,
// so we can log them as errors.
type Recovery struct{}

var _ poolshare.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator.
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors.
func (r Recovery) Check(ctx poolshare.Context, store poolshare.KVStore, tx poolshare.Tx, next poolshare.Checker) (res *poolshare.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors.
func (r Recovery) Deliver(ctx poolshare.Context, store poolshare.KVStore, tx poolshare.Tx, next poolshare.Deliverer) (res *poolshare.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, store, tx)
}
