/*
Package app provides the application wiring: a decorator chain resolved
into a handler stack, genesis driven initialization and an Application
that executes transactions against a cache wrapped store.
*/
package app

import (
	"context"

	"cosmossdk.io/log"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// Application executes transactions against a store through a handler
// stack. It is the glue between the transport layer and the extensions.
type Application struct {
	store   poolshare.CacheableKVStore
	handler poolshare.Handler
	init    poolshare.Initializer
	logger  log.Logger
	chainID string
	height  int64
}

// NewApplication wires the store, the resolved handler stack and the
// genesis initializer together.
func NewApplication(store poolshare.CacheableKVStore, handler poolshare.Handler, init poolshare.Initializer, logger log.Logger) *Application {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Application{
		store:   store,
		handler: handler,
		init:    init,
		logger:  logger,
	}
}

// InitGenesis stores the chain identity and lets every extension
// initialize its state from the genesis options. It must be called
// exactly once, on a fresh store.
func (a *Application) InitGenesis(gen Genesis) error {
	if err := saveChainID(a.store, gen.ChainID); err != nil {
		return err
	}
	a.chainID = gen.ChainID
	if a.init == nil {
		return nil
	}
	if err := a.init.FromGenesis(gen.AppOptions, a.store); err != nil {
		return errors.Wrap(err, "cannot initialize from genesis")
	}
	return nil
}

// LoadChainID restores the chain identity from the store, for an
// application resumed on existing state.
func (a *Application) LoadChainID() error {
	chainID, err := loadChainID(a.store)
	if err != nil {
		return err
	}
	if chainID == "" {
		return errors.Wrap(errors.ErrState, "chain id not initialized")
	}
	a.chainID = chainID
	return nil
}

// NextBlock advances the application to the given height. Transactions
// executed afterwards see the new height in their context.
func (a *Application) NextBlock(height int64) {
	a.height = height
}

// CheckTx runs the transaction through the check path of the stack.
// State isolation is the stack's job (see Savepoint).
func (a *Application) CheckTx(tx poolshare.Tx) (*poolshare.CheckResult, error) {
	return a.handler.Check(a.context(), a.store, tx)
}

// DeliverTx runs the transaction through the deliver path of the stack.
// State isolation is the stack's job (see Savepoint).
func (a *Application) DeliverTx(tx poolshare.Tx) (*poolshare.DeliverResult, error) {
	return a.handler.Deliver(a.context(), a.store, tx)
}

func (a *Application) context() poolshare.Context {
	ctx := context.Background()
	ctx = poolshare.WithLogger(ctx, a.logger)
	if a.chainID != "" {
		ctx = poolshare.WithChainID(ctx, a.chainID)
	}
	if a.height > 0 {
		ctx = poolshare.WithHeight(ctx, a.height)
	}
	return ctx
}
