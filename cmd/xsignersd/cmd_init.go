package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/app"
	"github.com/iov-one/xsigners/x/cash"
	"github.com/iov-one/xsigners/x/multisig"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize the state from a genesis file.

Genesis accounts are funded and genesis wallets are deployed. The address of
every deployed wallet is printed, in genesis order. The state can be
initialized only once.
`)
		fl.PrintDefaults()
	}
	var (
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis file.")
	)
	fl.Parse(args)

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	n, err := openNode(conf)
	if err != nil {
		return err
	}
	defer n.Close()

	wallets := &multisig.Initializer{Deployer: n.ledger}
	init := xsigners.ChainInitializers(app.GasInitializer{}, cash.Initializer{}, wallets)
	if err := app.InitChain(n.state.DeliverStore(), gen, init); err != nil {
		n.state.Discard()
		return err
	}
	id, err := n.state.Commit()
	if err != nil {
		return err
	}
	n.logger.Info("chain initialized", "chain_id", gen.ChainID, "version", id.Version)
	for _, w := range wallets.Deployed {
		if _, err := fmt.Fprintln(output, w); err != nil {
			return err
		}
	}
	return nil
}
