package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/poolsharetest/assert"
	"github.com/iov-one/poolshare/store"
)

func TestLoadGenesis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.json")
	raw := `{
		"chain_id": "pool-chain-1",
		"app_options": {
			"distributor": {"max_recipients": 5}
		}
	}`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	gen, err := LoadGenesis(path)
	assert.Nil(t, err)
	assert.Equal(t, "pool-chain-1", gen.ChainID)

	var opts struct {
		MaxRecipients int `json:"max_recipients"`
	}
	assert.Nil(t, gen.AppOptions.ReadOptions("distributor", &opts))
	assert.Equal(t, 5, opts.MaxRecipients)
}

func TestLoadGenesisMissingFile(t *testing.T) {
	if _, err := LoadGenesis(filepath.Join(t.TempDir(), "no-such-file.json")); err == nil {
		t.Fatal("want an error, got none")
	}
}

func TestChainIDPersistence(t *testing.T) {
	db := store.MemStore()

	if err := saveChainID(db, "bad chain id!"); !errors.ErrInput.Is(err) {
		t.Fatalf("want an input error, got %+v", err)
	}

	assert.Nil(t, saveChainID(db, "pool-chain-1"))
	chainID, err := loadChainID(db)
	assert.Nil(t, err)
	assert.Equal(t, "pool-chain-1", chainID)

	if err := saveChainID(db, "pool-chain-2"); !errors.ErrState.Is(err) {
		t.Fatalf("want a state error, got %+v", err)
	}
}

func TestChainInitializers(t *testing.T) {
	var order []string
	init := ChainInitializers(
		initFunc(func(poolshare.Options, poolshare.KVStore) error {
			order = append(order, "first")
			return nil
		}),
		nil,
		initFunc(func(poolshare.Options, poolshare.KVStore) error {
			order = append(order, "second")
			return nil
		}),
	)
	assert.Nil(t, init.FromGenesis(poolshare.Options{}, store.MemStore()))
	assert.Equal(t, []string{"first", "second"}, order)
}

type initFunc func(poolshare.Options, poolshare.KVStore) error

func (f initFunc) FromGenesis(opts poolshare.Options, kv poolshare.KVStore) error {
	return f(opts, kv)
}
