package multisig

import (
	"context"
	"strconv"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
)

// CodeName is the name the wallet contract code is registered under.
const CodeName = "multisig"

// Deployer instantiates contracts.
type Deployer interface {
	Deploy(ctx context.Context, db xsigners.KVStore, creator xsigners.Address, code string, input []byte) (xsigners.Address, error)
}

// GenesisWallet describes a wallet created at genesis.
type GenesisWallet struct {
	Threshold uint32             `json:"threshold"`
	Owners    []xsigners.Address `json:"owners"`
}

// Initializer deploys wallets listed in the genesis file under the
// "multisig" key.
type Initializer struct {
	Deployer Deployer
	// Deployed holds the addresses of created wallets, in genesis order.
	Deployed []xsigners.Address
}

var _ xsigners.Initializer = (*Initializer)(nil)

// FromGenesis deploys all genesis wallets. Their creator is the zero
// address, so every wallet must list its owners.
func (i *Initializer) FromGenesis(opts xsigners.Options, db xsigners.KVStore) error {
	var conf struct {
		Wallets []GenesisWallet `json:"wallets"`
	}
	if err := opts.ReadOptions("multisig", &conf); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if len(conf.Wallets) > 0 && i.Deployer == nil {
		return errors.Wrap(errors.ErrState, "no deployer")
	}

	creator := make(xsigners.Address, xsigners.AddressLength)
	for n, w := range conf.Wallets {
		if len(w.Owners) == 0 {
			return errors.Field("Wallets."+strconv.Itoa(n)+".Owners", ErrOwnersCantBeEmpty, "genesis wallet")
		}
		msg := CreateMsg{Threshold: w.Threshold}
		for _, o := range w.Owners {
			msg.Owners = append(msg.Owners, o)
		}
		input, err := Encode(&msg)
		if err != nil {
			return err
		}
		addr, err := i.Deployer.Deploy(context.Background(), db, creator, CodeName, input)
		if err != nil {
			return errors.Wrapf(err, "wallet %d", n)
		}
		i.Deployed = append(i.Deployed, addr)
	}
	return nil
}
