package app

import (
	"encoding/json"
	"fmt"
	"testing"

	sdkmath "cosmossdk.io/math"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/poolsharetest"
	"github.com/iov-one/poolshare/poolsharetest/assert"
	"github.com/iov-one/poolshare/store"
	"github.com/iov-one/poolshare/x/distributor"
	"github.com/iov-one/poolshare/x/token"
	"github.com/iov-one/poolshare/x/vault"
)

// testApp wires a complete application: in-memory store, token and
// distributor extensions, one reference vault and the standard
// decorator chain.
func testApp(t *testing.T, source poolshare.Condition, gen Genesis) (*Application, token.Controller, *vault.SingleAssetVault) {
	t.Helper()

	auth := &poolsharetest.Auth{Signer: source}
	ctrl := token.NewController()
	mover := token.GuardedMover{Auth: auth, Ctrl: ctrl}
	vlt, err := vault.NewSingleAssetVault("main", "USDC", "DFT", ctrl, mover)
	assert.Nil(t, err)

	policy, err := distributor.LoadPolicy(gen.AppOptions)
	assert.Nil(t, err)

	r := poolshare.NewRouter()
	token.RegisterRoutes(r, auth, ctrl)
	distributor.RegisterRoutes(r, auth, ctrl, vault.StaticRegistry{"main": vlt}, policy)

	stack := ChainDecorators(
		NewLogging(),
		NewRecovery(),
		NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(r)

	a := NewApplication(store.MemStore(), stack, ChainInitializers(token.Initializer{}), nil)
	assert.Nil(t, a.InitGenesis(gen))
	return a, ctrl, vlt
}

func testGenesis(source poolshare.Condition, funds int64) Genesis {
	tokenOpts := fmt.Sprintf(`[{"address": %q, "ticker": "USDC", "amount": "%d"}]`,
		source.Address().String(), funds)
	return Genesis{
		ChainID: "pool-chain-1",
		AppOptions: poolshare.Options{
			"token":       json.RawMessage(tokenOpts),
			"distributor": json.RawMessage(`{"max_recipients": 10}`),
		},
	}
}

func TestApplicationDistributeFlow(t *testing.T) {
	source := poolsharetest.NewCondition()
	a, ctrl, vlt := testApp(t, source, testGenesis(source, 1000))
	a.NextBlock(1)

	alice := poolsharetest.NewAddress()
	bob := poolsharetest.NewAddress()
	tx := &poolsharetest.Tx{
		Msg: &distributor.DistributeMsg{
			Source: source.Address(),
			Vault:  "main",
			Recipients: []distributor.Recipient{
				{Address: alice, Amount: sdkmath.NewInt(300)},
				{Address: bob, Amount: sdkmath.NewInt(700)},
			},
		},
	}

	cres, err := a.CheckTx(tx)
	assert.Nil(t, err)
	if cres.GasAllocated == 0 {
		t.Fatal("check must allocate gas")
	}

	dres, err := a.DeliverTx(tx)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(dres.Tags))

	assertBalance(t, a.store, ctrl, "DFT", alice, 300)
	assertBalance(t, a.store, ctrl, "DFT", bob, 700)
	assertBalance(t, a.store, ctrl, "USDC", vlt.Address(), 1000)
	assertBalance(t, a.store, ctrl, "USDC", source.Address(), 0)
}

func TestApplicationFailedDeliveryLeavesNoTrace(t *testing.T) {
	source := poolsharetest.NewCondition()
	a, ctrl, _ := testApp(t, source, testGenesis(source, 50))
	a.NextBlock(1)

	// The source cannot cover the aggregate, so the delivery fails
	// after the message already passed validation. The savepoint must
	// discard every write of the partial execution.
	tx := &poolsharetest.Tx{
		Msg: &distributor.DistributeMsg{
			Source: source.Address(),
			Vault:  "main",
			Recipients: []distributor.Recipient{
				{Address: poolsharetest.NewAddress(), Amount: sdkmath.NewInt(30)},
				{Address: poolsharetest.NewAddress(), Amount: sdkmath.NewInt(70)},
			},
		},
	}
	if _, err := a.DeliverTx(tx); !errors.ErrInsufficientAmount.Is(err) {
		t.Fatalf("want an insufficient amount error, got %+v", err)
	}
	assertBalance(t, a.store, ctrl, "USDC", source.Address(), 50)
}

func TestApplicationSendTx(t *testing.T) {
	source := poolsharetest.NewCondition()
	a, ctrl, _ := testApp(t, source, testGenesis(source, 100))

	dest := poolsharetest.NewAddress()
	tx := &poolsharetest.Tx{
		Msg: &token.SendMsg{
			Source:      source.Address(),
			Destination: dest,
			Ticker:      "USDC",
			Amount:      sdkmath.NewInt(40),
		},
	}
	_, err := a.DeliverTx(tx)
	assert.Nil(t, err)
	assertBalance(t, a.store, ctrl, "USDC", dest, 40)
	assertBalance(t, a.store, ctrl, "USDC", source.Address(), 60)
}

func TestApplicationGenesisCanRunOnlyOnce(t *testing.T) {
	source := poolsharetest.NewCondition()
	a, _, _ := testApp(t, source, testGenesis(source, 10))

	if err := a.InitGenesis(testGenesis(source, 10)); !errors.ErrState.Is(err) {
		t.Fatalf("want a state error, got %+v", err)
	}
}

func TestApplicationLoadChainID(t *testing.T) {
	source := poolsharetest.NewCondition()
	a, _, _ := testApp(t, source, testGenesis(source, 10))

	b := NewApplication(a.store, a.handler, nil, nil)
	assert.Nil(t, b.LoadChainID())
	assert.Equal(t, "pool-chain-1", b.chainID)
}

func assertBalance(t *testing.T, db poolshare.KVStore, ctrl token.Controller, ticker string, addr poolshare.Address, want int64) {
	t.Helper()
	b, err := ctrl.Balance(db, ticker, addr)
	assert.Nil(t, err)
	if !b.Equal(sdkmath.NewInt(want)) {
		t.Fatalf("want %s %d, got %s", ticker, want, b)
	}
}
