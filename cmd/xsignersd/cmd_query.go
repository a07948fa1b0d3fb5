package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/x/multisig"
)

func cmdShow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the owners, the threshold and all active transactions of a wallet.
`)
		fl.PrintDefaults()
	}
	var (
		walletFl = flAddress(fl, "wallet", "", "Address of the wallet.")
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

	w, err := loadWalletView(n, *walletFl)
	if err != nil {
		return err
	}
	return w.write(output)
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the funds held by an account or a contract.
`)
		fl.PrintDefaults()
	}
	var (
		addressFl = flAddress(fl, "address", "", "Address of the account.")
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

	amount, err := n.ledger.Balance(n.state.DeliverStore(), *addressFl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(output, amount)
	return err
}

type txView struct {
	ID         multisig.TxID
	Tx         multisig.Transaction
	Approvals  uint32
	Rejections uint32
}

type walletView struct {
	Address   xsigners.Address
	Owners    []xsigners.Address
	Threshold uint32
	NextTxID  multisig.TxID
	Txs       []txView
}

// loadWalletView reads the state of a wallet using its queries only.
func loadWalletView(n *node, wallet xsigners.Address) (*walletView, error) {
	w := &walletView{Address: wallet}

	var owners multisig.Addresses
	if err := n.query(wallet, multisig.GetOwnersName, nil, &owners); err != nil {
		return nil, err
	}
	for _, o := range owners.Addresses {
		w.Owners = append(w.Owners, o)
	}

	var threshold multisig.Counter
	if err := n.query(wallet, multisig.GetThresholdName, nil, &threshold); err != nil {
		return nil, err
	}
	w.Threshold = threshold.Count

	var next multisig.TxMsg
	if err := n.query(wallet, multisig.GetNextTxIDName, nil, &next); err != nil {
		return nil, err
	}
	nextID, err := multisig.TxIDFromBytes(next.TxId)
	if err != nil {
		return nil, err
	}
	w.NextTxID = nextID

	var active multisig.TxIDs
	if err := n.query(wallet, multisig.GetActiveTxIDListName, nil, &active); err != nil {
		return nil, err
	}
	for _, raw := range active.TxIds {
		id, err := multisig.TxIDFromBytes(raw)
		if err != nil {
			return nil, err
		}
		v := txView{ID: id}
		msg := multisig.NewTxMsg(id)
		if err := n.query(wallet, multisig.GetTxName, msg, &v.Tx); err != nil {
			return nil, err
		}
		var c multisig.Counter
		if err := n.query(wallet, multisig.GetTxApprovalsName, msg, &c); err != nil {
			return nil, err
		}
		v.Approvals = c.Count
		c.Reset()
		if err := n.query(wallet, multisig.GetTxRejectionsName, msg, &c); err != nil {
			return nil, err
		}
		v.Rejections = c.Count
		w.Txs = append(w.Txs, v)
	}
	return w, nil
}

func (w *walletView) write(out io.Writer) error {
	fmt.Fprintf(out, "wallet\t%s\n", w.Address)
	fmt.Fprintf(out, "threshold\t%d\n", w.Threshold)
	for _, o := range w.Owners {
		fmt.Fprintf(out, "owner\t%s\n", o)
	}
	fmt.Fprintf(out, "next_tx_id\t%s\n", w.NextTxID)
	for _, t := range w.Txs {
		call := t.Tx.Call()
		fmt.Fprintf(out, "tx\t%s\ttarget=%s selector=%s value=%d gas=%d reentry=%t approvals=%d rejections=%d\n",
			t.ID, call.Target, call.Selector, call.Value, call.GasLimit, call.AllowReentry, t.Approvals, t.Rejections)
	}
	_, err := fmt.Fprintln(out)
	return err
}
