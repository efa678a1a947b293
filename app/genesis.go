package app

import (
	"encoding/json"
	"os"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/errors"
)

// Genesis file format, holding the chain identity and the per extension
// configuration.
type Genesis struct {
	ChainID    string            `json:"chain_id"`
	AppOptions poolshare.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(err, "loading genesis file")
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrap(err, "unmarshaling genesis file")
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one
// Initializer.
func ChainInitializers(inits ...poolshare.Initializer) poolshare.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []poolshare.Initializer
}

// FromGenesis will pass opts to all initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts poolshare.Options, kv poolshare.KVStore) error {
	for _, i := range c.inits {
		if i == nil {
			continue
		}
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

//------- storing chainID ---------

var chainIDKey = []byte("internal:chain-id")

// loadChainID returns the chain id stored if any.
func loadChainID(kv poolshare.KVStore) (string, error) {
	v, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "cannot load chain id")
	}
	return string(v), nil
}

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name.
func saveChainID(kv poolshare.KVStore, chainID string) error {
	if !poolshare.IsValidChainID(chainID) {
		return errors.ErrInput.Newf("chain id: %q", chainID)
	}
	ok, err := kv.Has(chainIDKey)
	if err != nil {
		return errors.Wrap(err, "cannot check chain id")
	}
	if ok {
		return errors.Wrap(errors.ErrState, "chain id already set")
	}
	return kv.Set(chainIDKey, []byte(chainID))
}
