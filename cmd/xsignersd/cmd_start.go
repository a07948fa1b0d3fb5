package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/tendermint/tendermint/abci/server"
	"github.com/iov-one/xsigners/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
)

func cmdStart(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Serve the ledger as an ABCI application to a tendermint node.

Transactions are signed calls of external accounts. The app state of the
tendermint genesis file is loaded the same way as by the init command.
`)
		fl.PrintDefaults()
	}
	var (
		bindFl  = fl.String("bind", "tcp://localhost:46658", "Address the server listens on.")
		debugFl = fl.Bool("debug", false, "Return full error information to clients.")
	)
	fl.Parse(args)

	conf, err := loadConfig()
	if err != nil {
		return err
	}
	n, err := openNode(conf)
	if err != nil {
		return err
	}
	defer n.Close()

	application, err := n.application(*debugFl)
	if err != nil {
		return err
	}

	n.logger.Info("Starting ABCI app", "bind", *bindFl)
	svr, err := server.NewServer(*bindFl, "socket", application)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "create listener on %s: %s", *bindFl, err)
	}
	svr.SetLogger(n.logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrState, "start server: %s", err)
	}

	// TrapSignal exits the process once the server is stopped.
	cmn.TrapSignal(n.logger, func() {
		if err := svr.Stop(); err != nil {
			n.logger.Error("stop server", "err", err)
		}
		n.Close()
	})
	select {}
}
