package app

import (
	"encoding/json"
	"io/ioutil"
	"regexp"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
)

// Genesis file format.
type Genesis struct {
	ChainID  string           `json:"chain_id"`
	AppState xsigners.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// InitChain stores the chain ID and runs all initializers. It fails if the
// state was already initialized.
func InitChain(kv xsigners.KVStore, gen Genesis, init xsigners.Initializer) error {
	if err := saveChainID(kv, gen.ChainID); err != nil {
		return err
	}
	return errors.Wrap(init.FromGenesis(gen.AppState, kv), "genesis")
}

// ChainID returns the chain ID stored at genesis, or an empty string.
func ChainID(kv xsigners.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

// _xs: is a prefix for ledger internal data
const chainIDKey = "_xs:chainID"

var isChainID = regexp.MustCompile(`^[a-zA-Z0-9_.-]{4,32}$`).MatchString

// saveChainID stores a chain id in the kv store.
// Returns error if already set, or invalid name
func saveChainID(kv xsigners.KVStore, chainID string) error {
	if !isChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	k := []byte(chainIDKey)
	exists, err := kv.Has(k)
	if err != nil {
		return errors.Wrap(err, "load chainId")
	}
	if exists {
		return errors.Wrap(errors.ErrDuplicate, "can't modify chain id after genesis init")
	}
	if err := kv.Set(k, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chainId")
	}
	return nil
}
