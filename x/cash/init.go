package cash

import (
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file.
// Address is hex encoded.
type GenesisAccount struct {
	Address xsigners.Address `json:"address"`
	Amount  uint64           `json:"amount"`
}

// Initializer fulfils the Initializer interface to load balances from the
// genesis file.
type Initializer struct{}

var _ xsigners.Initializer = Initializer{}

// FromGenesis issues the listed balances.
func (Initializer) FromGenesis(opts xsigners.Options, kv xsigners.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	ctrl := NewController()
	for i, acct := range accts {
		if err := ctrl.Issue(kv, acct.Address, acct.Amount); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}
