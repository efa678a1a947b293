// poolshared is a development tool that replays a batch of transactions
// against a fresh application state initialized from a genesis file.
// It is meant for inspecting distribution outcomes offline: signatures
// are not verified, the batch declares which accounts are trusted as
// signers.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"cosmossdk.io/log"

	"github.com/iov-one/poolshare"
	"github.com/iov-one/poolshare/app"
	"github.com/iov-one/poolshare/errors"
	"github.com/iov-one/poolshare/store"
	"github.com/iov-one/poolshare/x/distributor"
	"github.com/iov-one/poolshare/x/token"
	"github.com/iov-one/poolshare/x/vault"
)

func main() {
	genesisFl := flag.String("genesis", "", "Path to the genesis file.")
	batchFl := flag.String("batch", "-", "Path to the transaction batch file, - for stdin.")
	verboseFl := flag.Bool("v", false, "Log the stack activity to stderr.")
	flag.Parse()

	if *genesisFl == "" {
		flag.Usage()
		os.Exit(2)
	}

	logger := log.NewNopLogger()
	if *verboseFl {
		logger = log.NewLogger(os.Stderr)
	}

	if err := run(*genesisFl, *batchFl, logger, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "poolshared: %+v\n", err)
		os.Exit(1)
	}
}

// batch is the input file format: the trusted signers and the
// transactions to execute, in order.
type batch struct {
	Signers      []poolshare.Condition `json:"signers"`
	Transactions []envelope            `json:"transactions"`
}

// vaultGenesis configures a single reference vault.
type vaultGenesis struct {
	ID    string `json:"id"`
	Asset string `json:"asset"`
	Claim string `json:"claim"`
}

func run(genesisPath, batchPath string, logger log.Logger, out io.Writer) error {
	gen, err := app.LoadGenesis(genesisPath)
	if err != nil {
		return err
	}

	var b batch
	raw, err := readInput(batchPath)
	if err != nil {
		return errors.Wrap(err, "loading batch file")
	}
	if err := json.Unmarshal(raw, &b); err != nil {
		return errors.Wrap(err, "unmarshaling batch file")
	}

	a, err := buildApplication(gen, staticAuth(b.Signers), logger)
	if err != nil {
		return err
	}
	a.NextBlock(1)

	var failed int
	for i, tx := range b.Transactions {
		res, err := a.DeliverTx(&tx)
		if err != nil {
			failed++
			fmt.Fprintf(out, "tx %d: FAILED: %v\n", i, err)
			continue
		}
		fmt.Fprintf(out, "tx %d: ok gas=%d tags=%d data=%s\n", i, res.GasUsed, len(res.Tags), res.Data)
	}
	if failed > 0 {
		return errors.ErrState.Newf("%d of %d transactions failed", failed, len(b.Transactions))
	}
	return nil
}

func buildApplication(gen app.Genesis, auth staticAuth, logger log.Logger) (*app.Application, error) {
	ctrl := token.NewController()
	mover := token.GuardedMover{Auth: auth, Ctrl: ctrl}

	var vaultConfs []vaultGenesis
	if err := gen.AppOptions.ReadOptions("vaults", &vaultConfs); err != nil {
		return nil, errors.Wrap(err, "cannot load vaults genesis")
	}
	vaults := vault.StaticRegistry{}
	for i, conf := range vaultConfs {
		v, err := vault.NewSingleAssetVault(conf.ID, conf.Asset, conf.Claim, ctrl, mover)
		if err != nil {
			return nil, errors.Wrapf(err, "vault %d", i)
		}
		vaults[conf.ID] = v
	}

	policy, err := distributor.LoadPolicy(gen.AppOptions)
	if err != nil {
		return nil, err
	}

	r := poolshare.NewRouter()
	token.RegisterRoutes(r, auth, ctrl)
	distributor.RegisterRoutes(r, auth, ctrl, vaults, policy)

	stack := app.ChainDecorators(
		app.NewLogging(),
		app.NewRecovery(),
		app.NewSavepoint().OnCheck().OnDeliver(),
	).WithHandler(r)

	a := app.NewApplication(store.MemStore(), stack, app.ChainInitializers(token.Initializer{}), logger)
	if err := a.InitGenesis(gen); err != nil {
		return nil, err
	}
	return a, nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// staticAuth authenticates the accounts declared as trusted in the
// batch file. This tool does not verify signatures.
type staticAuth []poolshare.Condition

func (a staticAuth) GetConditions(poolshare.Context) []poolshare.Condition {
	return a
}

func (a staticAuth) HasAddress(ctx poolshare.Context, addr poolshare.Address) bool {
	for _, c := range a {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
