package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/poolsharetest"
	"github.com/iov-one/poolshare/poolsharetest/assert"
	"github.com/iov-one/poolshare/x"
)

func TestChainAuth(t *testing.T) {
	a := poolsharetest.NewCondition()
	b := poolsharetest.NewCondition()
	stranger := poolsharetest.NewCondition()

	auth := x.ChainAuth(
		&poolsharetest.Auth{Signer: a},
		&poolsharetest.Auth{Signer: b},
	)
	ctx := context.Background()

	assert.Equal(t, true, auth.HasAddress(ctx, a.Address()))
	assert.Equal(t, true, auth.HasAddress(ctx, b.Address()))
	assert.Equal(t, false, auth.HasAddress(ctx, stranger.Address()))

	conds := auth.GetConditions(ctx)
	assert.Equal(t, []poolshare.Condition{a, b}, conds)
}

func TestMainSigner(t *testing.T) {
	first := poolsharetest.NewCondition()
	second := poolsharetest.NewCondition()
	ctx := context.Background()

	auth := &poolsharetest.Auth{Signers: []poolshare.Condition{first, second}}
	assert.Equal(t, first, x.MainSigner(ctx, auth))

	empty := &poolsharetest.Auth{}
	if x.MainSigner(ctx, empty) != nil {
		t.Fatal("want no main signer")
	}
}

func TestGetAddresses(t *testing.T) {
	a := poolsharetest.NewCondition()
	b := poolsharetest.NewCondition()
	ctx := context.Background()

	auth := &poolsharetest.Auth{Signers: []poolshare.Condition{a, b}}
	addrs := x.GetAddresses(ctx, auth)
	assert.Equal(t, []poolshare.Address{a.Address(), b.Address()}, addrs)
}

func TestHasAllAddresses(t *testing.T) {
	a := poolsharetest.NewCondition()
	b := poolsharetest.NewCondition()
	stranger := poolsharetest.NewCondition()
	ctx := context.Background()

	auth := &poolsharetest.Auth{Signers: []poolshare.Condition{a, b}}

	assert.Equal(t, true, x.HasAllAddresses(ctx, auth, nil))
	assert.Equal(t, true, x.HasAllAddresses(ctx, auth, []poolshare.Address{a.Address()}))
	assert.Equal(t, true, x.HasAllAddresses(ctx, auth, []poolshare.Address{a.Address(), b.Address()}))
	assert.Equal(t, false, x.HasAllAddresses(ctx, auth, []poolshare.Address{a.Address(), stranger.Address()}))
}
