package app

import (
	"time"

	"github.com/iov-one/poolshare"
)

// Logging is a decorator to log messages as they pass through the
// stack. It reports the message path, the execution time and the
// outcome through the logger carried in the context.
type Logging struct{}

var _ poolshare.Decorator = Logging{}

// NewLogging creates a Logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error/success and the duration of the operation.
func (l Logging) Check(ctx poolshare.Context, store poolshare.KVStore, tx poolshare.Tx, next poolshare.Checker) (*poolshare.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logDuration(ctx, tx, start, err, true)
	return res, err
}

// Deliver logs error/success and the duration of the operation.
func (l Logging) Deliver(ctx poolshare.Context, store poolshare.KVStore, tx poolshare.Tx, next poolshare.Deliverer) (*poolshare.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logDuration(ctx, tx, start, err, false)
	return res, err
}

func logDuration(ctx poolshare.Context, tx poolshare.Tx, start time.Time, err error, check bool) {
	logger := poolshare.GetLogger(ctx).With(
		"path", poolshare.GetPath(tx),
		"duration", time.Since(start).String(),
		"check", check,
	)
	if err != nil {
		logger.Error("transaction failed", "err", err)
	} else {
		logger.Debug("transaction processed")
	}
}
