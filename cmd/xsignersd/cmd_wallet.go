package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/x/multisig"
)

func cmdPropose(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Propose a transaction to a wallet. The proposal counts as the approval of the
proposing owner, so it may be executed right away.

Emitted events are printed, followed by the id of the new transaction.
`)
		fl.PrintDefaults()
	}
	var (
		keyFl      = fl.String("key", "", "Name of the key of the proposing owner.")
		walletFl   = flAddress(fl, "wallet", "", "Address of the wallet.")
		targetFl   = flAddress(fl, "target", "", "Address of the contract to call.")
		selectorFl = fl.String("selector", "", "Message name of the call, or a hex encoded selector prefixed with 0x.")
		inputFl    = flHex(fl, "input", "", "Hex encoded input of the call.")
		valueFl    = fl.Uint64("value", 0, "Funds transferred by the call.")
		gasFl      = fl.Uint64("gas", 0, "Gas limit of the call. Zero means no limit.")
		reentryFl  = fl.Bool("reentry", false, "Allow the called contract to call back into the wallet.")
	)
	fl.Parse(args)

	sel, err := parseSelector(*selectorFl)
	if err != nil {
		return err
	}
	msg := &multisig.ProposeTxMsg{
		Tx: &multisig.Transaction{
			Address:          *targetFl,
			Selector:         sel.Bytes(),
			Input:            *inputFl,
			TransferredValue: *valueFl,
			GasLimit:         *gasFl,
			AllowReentry:     *reentryFl,
		},
	}
	out, err := walletCall(output, *keyFl, *walletFl, multisig.ProposeTxName, msg)
	if err != nil {
		return err
	}
	var res multisig.TxMsg
	if err := proto.Unmarshal(out, &res); err != nil {
		return errors.Wrapf(errors.ErrMsg, "decode result: %s", err)
	}
	id, err := multisig.TxIDFromBytes(res.TxId)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, id)
	return err
}

func cmdApprove(input io.Reader, output io.Writer, args []string) error {
	return txCommand(output, args, multisig.ApproveTxName, `
Approve a transaction. The transaction is executed once enough owners
approved it.
`)
}

func cmdReject(input io.Reader, output io.Writer, args []string) error {
	return txCommand(output, args, multisig.RejectTxName, `
Reject a transaction. The transaction is removed once it can no longer gather
enough approvals.
`)
}

func cmdTryExecute(input io.Reader, output io.Writer, args []string) error {
	return txCommand(output, args, multisig.TryExecuteTxName, `
Execute a transaction if it has enough approvals.
`)
}

func cmdTryRemove(input io.Reader, output io.Writer, args []string) error {
	return txCommand(output, args, multisig.TryRemoveTxName, `
Remove a transaction if it can no longer gather enough approvals.
`)
}

// txCommand runs an operation that refers to a single transaction of a
// wallet.
func txCommand(output io.Writer, args []string, name, usage string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		fl.PrintDefaults()
	}
	var (
		keyFl    = fl.String("key", "", "Name of the key of the owner.")
		walletFl = flAddress(fl, "wallet", "", "Address of the wallet.")
		idFl     = fl.String("id", "", "Id of the transaction.")
	)
	fl.Parse(args)

	id, err := multisig.ParseTxID(*idFl)
	if err != nil {
		return err
	}
	_, err = walletCall(output, *keyFl, *walletFl, name, multisig.NewTxMsg(id))
	return err
}

// walletCall runs a single call of an owner to a wallet and commits the
// result.
func walletCall(output io.Writer, key string, wallet xsigners.Address, name string, msg proto.Message) ([]byte, error) {
	conf, err := loadConfig()
	if err != nil {
		return nil, err
	}
	caller, err := loadKey(conf, key)
	if err != nil {
		return nil, err
	}
	input, err := multisig.Encode(msg)
	if err != nil {
		return nil, err
	}
	n, err := openNode(conf)
	if err != nil {
		return nil, err
	}
	defer n.Close()

	return n.execute(output, caller, xsigners.Call{
		Target:   wallet,
		Selector: xsigners.NewSelector(name),
		Input:    input,
	})
}

func parseSelector(s string) (xsigners.Selector, error) {
	if strings.HasPrefix(s, "0x") {
		return xsigners.ParseSelector(s)
	}
	if s == "" {
		return xsigners.Selector{}, errors.Wrap(errors.ErrEmpty, "selector is required")
	}
	return xsigners.NewSelector(s), nil
}
