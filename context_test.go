package poolshare

import (
	"context"
	"testing"

	"cosmossdk.io/log"

	"github.com/iov-one/poolshare/poolsharetest/assert"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()

	if _, ok := GetHeight(ctx); ok {
		t.Fatal("height must not be set on a fresh context")
	}

	ctx = WithHeight(ctx, 42)
	height, ok := GetHeight(ctx)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(42), height)

	assert.Panics(t, func() {
		WithHeight(ctx, 43)
	})
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()

	assert.Panics(t, func() {
		GetChainID(ctx)
	})
	assert.Panics(t, func() {
		WithChainID(ctx, "bad id!")
	})

	ctx = WithChainID(ctx, "pool-chain-1")
	assert.Equal(t, "pool-chain-1", GetChainID(ctx))

	assert.Panics(t, func() {
		WithChainID(ctx, "pool-chain-2")
	})
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()

	// Without a logger configured a no-op instance is returned, so the
	// callers never need a nil check.
	GetLogger(ctx).Info("into the void")

	logger := log.NewTestLogger(t)
	ctx = WithLogger(ctx, logger)
	GetLogger(ctx).Info("through the configured logger")
}

func TestIsValidChainID(t *testing.T) {
	cases := map[string]bool{
		"pool-chain-1":               true,
		"chain_7":                    true,
		"ABCDEF":                     true,
		"short":                      false,
		"way-too-long-chain-id-name": false,
		"spaces not allowed":         false,
		"":                           false,
	}
	for chainID, want := range cases {
		if got := IsValidChainID(chainID); got != want {
			t.Errorf("%q: want %v, got %v", chainID, want, got)
		}
	}
}
