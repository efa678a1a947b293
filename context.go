package poolshare

import (
	"context"
	"regexp"

	"cosmossdk.io/log"
	"github.com/iov-one/poolshare/errors"
)

// IsValidChainID is the RegExp to ensure valid chain IDs
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// Context is just a reference to the standard implementation.
// We use it to pass request-scoped information such as the chain ID,
// block height and logger between the application and the handlers.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyChainID
	contextKeyLogger
)

// WithHeight sets the block height for the Context.
// Panics if the height was already set to avoid lower-level modules
// overwriting the value.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("height already set")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height and whether it was set.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithChainID sets the chain ID for the Context.
// Panics if the chain ID was already set.
func WithChainID(ctx Context, chainID string) Context {
	if ctx.Value(contextKeyChainID) != nil {
		panic("chain id already set")
	}
	if !IsValidChainID(chainID) {
		panic(errors.ErrInput.Newf("chain id: %q", chainID))
	}
	return context.WithValue(ctx, contextKeyChainID, chainID)
}

// GetChainID returns the chain ID from the context.
// Panics if the chain ID was never set, as this is a configuration
// error that must not be silently tolerated.
func GetChainID(ctx Context) string {
	if ctx.Value(contextKeyChainID) == nil {
		panic("chain id is not set")
	}
	return ctx.Value(contextKeyChainID).(string)
}

// WithLogger sets the logger for the Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	// Do not check for an existing value. Logger can be overwritten to
	// attach additional key value pairs as the call descends.
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger from the context, or a no-op logger if
// none was configured.
func GetLogger(ctx Context) log.Logger {
	if logger, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return logger
	}
	return log.NewNopLogger()
}
