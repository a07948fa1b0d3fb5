package app

import (
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/gconf"
	"github.com/iov-one/xsigners/store"
)

// Default gas prices of store access, used unless the genesis file
// configures the ledger.
const (
	ReadCost  uint64 = 10
	WriteCost uint64 = 100
	ByteCost  uint64 = 1
)

// gasConfigKey is the gconf package name of the gas prices.
const gasConfigKey = "ledger"

// DefaultGasConfig returns the default gas prices.
func DefaultGasConfig() GasConfig {
	return GasConfig{ReadCost: ReadCost, WriteCost: WriteCost, ByteCost: ByteCost}
}

var _ gconf.Configuration = (*GasConfig)(nil)

// Validate requires writes to cost gas.
func (m *GasConfig) Validate() error {
	if m.WriteCost == 0 {
		return errors.Field("WriteCost", errors.ErrAmount, "must not be zero")
	}
	return nil
}

// loadGasConfig returns the gas prices stored in db, or the default ones.
func loadGasConfig(db xsigners.ReadOnlyKVStore) (GasConfig, error) {
	var conf GasConfig
	switch err := gconf.Load(db, gasConfigKey, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultGasConfig(), nil
	default:
		return conf, err
	}
}

// GasInitializer stores the gas prices found in the "conf" section of the
// genesis file under the "ledger" key. Without them the defaults are used.
type GasInitializer struct{}

var _ xsigners.Initializer = GasInitializer{}

func (GasInitializer) FromGenesis(opts xsigners.Options, db xsigners.KVStore) error {
	var conf GasConfig
	if err := gconf.InitConfig(db, opts, gasConfigKey, &conf); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	return nil
}

type outOfGas struct {
	used  uint64
	limit uint64
}

// gasMeter counts the gas used by a single call. A zero limit never runs
// out.
type gasMeter struct {
	limit uint64
	used  uint64
	costs GasConfig
}

func newGasMeter(limit uint64, costs GasConfig) *gasMeter {
	return &gasMeter{limit: limit, costs: costs}
}

// consume charges n gas and panics with outOfGas once the limit is passed.
func (g *gasMeter) consume(n uint64) {
	if g.used+n < g.used {
		g.used = ^uint64(0)
	} else {
		g.used += n
	}
	if g.limit != 0 && g.used > g.limit {
		panic(outOfGas{used: g.used, limit: g.limit})
	}
}

// gasStore charges every access to the wrapped store.
type gasStore struct {
	kv    xsigners.KVStore
	meter *gasMeter
}

var _ xsigners.KVStore = gasStore{}

func (g gasStore) Get(key []byte) ([]byte, error) {
	c := g.meter.costs
	g.meter.consume(c.ReadCost + c.ByteCost*uint64(len(key)))
	val, err := g.kv.Get(key)
	g.meter.consume(c.ByteCost * uint64(len(val)))
	return val, err
}

func (g gasStore) Has(key []byte) (bool, error) {
	c := g.meter.costs
	g.meter.consume(c.ReadCost + c.ByteCost*uint64(len(key)))
	return g.kv.Has(key)
}

func (g gasStore) Set(key, value []byte) error {
	c := g.meter.costs
	g.meter.consume(c.WriteCost + c.ByteCost*uint64(len(key)+len(value)))
	return g.kv.Set(key, value)
}

func (g gasStore) Delete(key []byte) error {
	c := g.meter.costs
	g.meter.consume(c.WriteCost + c.ByteCost*uint64(len(key)))
	return g.kv.Delete(key)
}

func (g gasStore) NewBatch() xsigners.Batch {
	return store.NewNonAtomicBatch(g)
}
