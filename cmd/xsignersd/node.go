package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/app"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/store/iavl"
	"github.com/iov-one/xsigners/x/cash"
	"github.com/iov-one/xsigners/x/multisig"
	"github.com/tendermint/tendermint/libs/log"
)

// node is a ledger with the wallet code registered, running on top of the
// state stored in the home directory.
type node struct {
	conf   config
	logger log.Logger
	db     iavl.CommitStore
	state  *app.CommitStore
	ledger *app.Ledger
}

func openNode(conf config) (*node, error) {
	logger, err := conf.logger()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(conf.dataDir(), 0700); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	db, err := iavl.NewCommitStore(conf.dataDir(), "xsigners")
	if err != nil {
		return nil, err
	}
	state, err := app.NewCommitStore(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &node{
		conf:   conf,
		logger: logger,
		db:     db,
		state:  state,
		ledger: newLedger(conf),
	}, nil
}

// newLedger returns a ledger that can deploy wallets.
func newLedger(conf config) *app.Ledger {
	ledger := app.NewLedger()
	ctrl := multisig.NewController(ledger, ledger, multisig.Config{
		ReloadAfterEveryCall: conf.ReloadAlways,
	})
	ledger.Register(multisig.CodeName, multisig.NewHandler(ctrl))
	return ledger
}

// application returns the ABCI application serving this node.
func (n *node) application(debug bool) (*app.Application, error) {
	init := xsigners.ChainInitializers(app.GasInitializer{}, cash.Initializer{}, &multisig.Initializer{Deployer: n.ledger})
	return app.NewApplication("xsigners", n.state, n.ledger, init, n.logger, debug)
}

func (n *node) Close() {
	n.db.Close()
}

func (n *node) context() context.Context {
	return xsigners.WithLogger(context.Background(), n.logger)
}

// execute runs a single transaction, writes its events to out and commits
// the result.
func (n *node) execute(out io.Writer, caller xsigners.Address, call xsigners.Call) ([]byte, error) {
	res, events, err := n.ledger.Execute(n.context(), n.state.DeliverStore(), caller, call)
	if err != nil {
		n.state.Discard()
		return nil, err
	}
	for _, e := range events {
		if err := writeEvent(out, e); err != nil {
			return nil, err
		}
	}
	id, err := n.state.Commit()
	if err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	n.logger.Debug("state committed", "version", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return res, nil
}

// query calls a wallet without changing the state. A nil msg is sent as
// empty input.
func (n *node) query(wallet xsigners.Address, name string, msg, res proto.Message) error {
	var input []byte
	if msg != nil {
		raw, err := multisig.Encode(msg)
		if err != nil {
			return err
		}
		input = raw
	}
	out, err := n.ledger.Query(n.context(), n.state.DeliverStore(), wallet, xsigners.NewSelector(name), input)
	if err != nil {
		return errors.Wrap(err, name)
	}
	if err := proto.Unmarshal(out, res); err != nil {
		return errors.Wrapf(errors.ErrMsg, "%s: %s", name, err)
	}
	return nil
}

func writeEvent(w io.Writer, e xsigners.Event) error {
	tags := make([]string, 0, len(e.Tags()))
	for _, t := range e.Tags() {
		tags = append(tags, fmt.Sprintf("%s=%s", t.Key, t.Value))
	}
	_, err := fmt.Fprintf(w, "%s\t%s\n", e.EventName(), strings.Join(tags, " "))
	return err
}
