package app

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/orm"
	"github.com/iov-one/xsigners/store"
	"github.com/iov-one/xsigners/x/cash"
)

// MaxCallDepth is the maximum number of nested calls.
const MaxCallDepth = 16

// Contract is code that can be deployed on the ledger.
type Contract interface {
	// Init is called once when an instance is deployed.
	Init(ctx context.Context, db xsigners.KVStore, input []byte) error
	// Handle processes a call. The returned bytes are passed back to the
	// caller.
	Handle(ctx context.Context, db xsigners.KVStore, sel xsigners.Selector, input []byte) ([]byte, error)
}

// Ledger runs contracts. Execute, Query and Deploy are entry points for
// external callers and may be used concurrently. Invoke, Transfer and Emit
// are meant for contracts being executed.
type Ledger struct {
	mu sync.Mutex

	codes     map[string]Contract
	cash      *cash.Controller
	contracts orm.ModelBucket
	sequence  orm.ModelBucket

	// stack holds the calls in progress, innermost last.
	stack []*frame
	// pending collects events of completed top level calls.
	pending []xsigners.Event
}

// NewLedger returns a ledger without any registered code.
func NewLedger() *Ledger {
	return &Ledger{
		codes:     make(map[string]Contract),
		cash:      cash.NewController(),
		contracts: orm.NewModelBucket("contracts", &ContractInfo{}),
		sequence:  orm.NewModelBucket("sequence", &Sequence{}),
	}
}

// Register makes contract code available for deployment under given name.
func (l *Ledger) Register(code string, c Contract) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.codes[code]; ok {
		panic("code already registered: " + code)
	}
	l.codes[code] = c
}

// frame is a single call in progress.
type frame struct {
	contract xsigners.Address
	caller   xsigners.Address
	layer    xsigners.KVCacheWrap
	gas      *gasMeter
	events   []xsigners.Event
	// reentry is the allow reentry flag of the outgoing call this frame
	// is currently making.
	reentry bool
}

// Deploy creates a new instance of registered code and initializes it
// with given input. The instance is not created if initialization fails.
func (l *Ledger) Deploy(ctx context.Context, db xsigners.KVStore, creator xsigners.Address, code string, input []byte) (xsigners.Address, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.codes[code]
	if !ok {
		return nil, errors.Wrap(ErrUnknownCode, code)
	}
	layer := cacheWrap(db)
	addr, err := l.nextAddress(layer)
	if err != nil {
		layer.Discard()
		return nil, err
	}
	if err := l.contracts.Put(layer, addr, &ContractInfo{Code: code}); err != nil {
		layer.Discard()
		return nil, errors.Wrap(err, "contract info")
	}

	f := &frame{contract: addr, caller: creator, layer: layer, gas: newGasMeter(0, DefaultGasConfig())}
	l.pending = nil
	_, err = l.run(ctx, f, func(ctx context.Context, db xsigners.KVStore) ([]byte, error) {
		return nil, c.Init(ctx, db, input)
	})
	if err != nil {
		layer.Discard()
		return nil, errors.Wrapf(err, "init %s", code)
	}
	if err := layer.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	l.publish(ctx, f.events)
	xsigners.GetLogger(ctx).Info("contract deployed", "contract", addr, "code", code)
	return addr, nil
}

// Execute runs a call made by an external account. All writes of the call
// are applied to db when it succeeds. Events of the whole call tree are
// returned in emission order.
func (l *Ledger) Execute(ctx context.Context, db xsigners.CacheableKVStore, caller xsigners.Address, call xsigners.Call) ([]byte, []xsigners.Event, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = nil
	out, err := l.call(ctx, caller, call, db)
	events := l.pending
	l.pending = nil
	if err != nil {
		return nil, nil, err
	}
	l.publish(ctx, events)
	return out, events, nil
}

// Query runs a call without keeping any of its writes or events.
func (l *Ledger) Query(ctx context.Context, db xsigners.CacheableKVStore, target xsigners.Address, sel xsigners.Selector, input []byte) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	layer := db.CacheWrap()
	defer layer.Discard()
	out, err := l.call(ctx, nil, xsigners.Call{Target: target, Selector: sel, Input: input}, layer)
	l.pending = nil
	return out, err
}

// Balance returns the funds held by given address.
func (l *Ledger) Balance(db xsigners.ReadOnlyKVStore, a xsigners.Address) (uint64, error) {
	return l.cash.Balance(db, a)
}

// Code returns the name of the code deployed at given address.
func (l *Ledger) Code(db xsigners.ReadOnlyKVStore, a xsigners.Address) (string, error) {
	var info ContractInfo
	if err := l.contracts.One(db, a, &info); err != nil {
		if errors.ErrNotFound.Is(err) {
			return "", errors.Wrapf(errors.ErrNotCallable, "%s", a)
		}
		return "", err
	}
	return info.Code, nil
}

// Invoke calls another contract on behalf of the contract being executed.
func (l *Ledger) Invoke(ctx context.Context, call xsigners.Call) ([]byte, error) {
	f := l.top()
	if f == nil {
		return nil, errors.Wrap(errors.ErrState, "invoke outside of a call")
	}
	f.reentry = call.AllowReentry
	defer func() { f.reentry = false }()
	return l.call(ctx, f.contract, call, f.layer)
}

// Transfer moves funds held by the contract being executed.
func (l *Ledger) Transfer(ctx context.Context, to xsigners.Address, amount uint64) error {
	f := l.top()
	if f == nil {
		return errors.Wrap(errors.ErrState, "transfer outside of a call")
	}
	return l.cash.Transfer(f.layer, f.contract, to, amount)
}

// Emit buffers an event of the contract being executed. It is published
// only if every call up the stack succeeds.
func (l *Ledger) Emit(ctx context.Context, e xsigners.Event) {
	if f := l.top(); f != nil {
		f.events = append(f.events, e)
		return
	}
	l.pending = append(l.pending, e)
}

func (l *Ledger) top() *frame {
	if len(l.stack) == 0 {
		return nil
	}
	return l.stack[len(l.stack)-1]
}

// call runs a call on a new layer over parent.
func (l *Ledger) call(ctx context.Context, from xsigners.Address, call xsigners.Call, parent xsigners.CacheableKVStore) ([]byte, error) {
	if len(l.stack) >= MaxCallDepth {
		return nil, errors.Wrapf(errors.ErrCalleeTrapped, "max call depth %d", MaxCallDepth)
	}
	for _, f := range l.stack {
		if f.contract.Equals(call.Target) && !f.reentry {
			return nil, errors.Wrapf(errors.ErrCalleeTrapped, "reentry into %s", call.Target)
		}
	}
	if err := call.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrNotCallable, err.Error())
	}
	codeName, err := l.Code(parent, call.Target)
	if err != nil {
		return nil, err
	}
	c, ok := l.codes[codeName]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotCallable, "code %q not registered", codeName)
	}

	costs, err := l.gasCosts(parent)
	if err != nil {
		return nil, err
	}

	layer := parent.CacheWrap()
	if err := l.cash.Transfer(layer, from, call.Target, call.Value); err != nil {
		layer.Discard()
		return nil, errors.Wrap(errors.ErrTransferFailed, err.Error())
	}

	f := &frame{
		contract: call.Target,
		caller:   from,
		layer:    layer,
		gas:      newGasMeter(call.GasLimit, costs),
	}
	out, err := l.run(ctx, f, func(ctx context.Context, db xsigners.KVStore) ([]byte, error) {
		return c.Handle(ctx, db, call.Selector, call.Input)
	})
	if err != nil {
		layer.Discard()
		return nil, err
	}
	if err := layer.Write(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if up := l.top(); up != nil {
		up.events = append(up.events, f.events...)
	} else {
		l.pending = append(l.pending, f.events...)
	}
	return out, nil
}

// gasCosts returns the gas prices of a new call. Nested calls use the
// prices loaded by the top level call.
func (l *Ledger) gasCosts(db xsigners.ReadOnlyKVStore) (GasConfig, error) {
	if len(l.stack) > 0 {
		return l.stack[0].gas.costs, nil
	}
	return loadGasConfig(db)
}

// run executes fn as frame f. The frame is on the stack while fn runs.
// Panics trap the call and errors other than unreadable input revert it.
func (l *Ledger) run(ctx context.Context, f *frame, fn func(context.Context, xsigners.KVStore) ([]byte, error)) (out []byte, err error) {
	l.stack = append(l.stack, f)
	defer func() {
		l.stack = l.stack[:len(l.stack)-1]
		if p := recover(); p != nil {
			out, err = nil, trap(p)
		}
	}()

	ctx = xsigners.WithContract(ctx, f.contract)
	ctx = xsigners.WithCaller(ctx, f.caller)
	ctx = xsigners.WithLogInfo(ctx, "contract", f.contract)
	db := store.NewPrefixStore(gasStore{kv: f.layer, meter: f.gas}, storagePrefix(f.contract))

	out, err = fn(ctx, db)
	if err != nil && !errors.ErrCouldNotReadInput.Is(err) {
		return nil, errors.Wrapf(errors.ErrCalleeReverted, "%s", err)
	}
	return out, err
}

func (l *Ledger) publish(ctx context.Context, events []xsigners.Event) {
	logger := xsigners.GetLogger(ctx)
	for _, e := range events {
		keyvals := []interface{}{"name", e.EventName()}
		for _, t := range e.Tags() {
			keyvals = append(keyvals, string(t.Key), string(t.Value))
		}
		logger.Info("event", keyvals...)
	}
}

var sequenceKey = []byte("contract")

func (l *Ledger) nextAddress(db xsigners.KVStore) (xsigners.Address, error) {
	var seq Sequence
	if err := l.sequence.One(db, sequenceKey, &seq); err != nil && !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	n := seq.Next
	seq.Next++
	if err := l.sequence.Put(db, sequenceKey, &seq); err != nil {
		return nil, errors.Wrap(err, "sequence")
	}
	return ContractAddress(n), nil
}

// ContractAddress returns the address of the n-th deployed contract,
// counting from zero. A failed deployment does not consume an address.
func ContractAddress(n uint64) xsigners.Address {
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, n)
	return xsigners.NewCondition("ledger", "contract", id).Address()
}

func storagePrefix(a xsigners.Address) []byte {
	return append([]byte("storage:"), a...)
}

// cacheWrap returns a layer over db that can be discarded.
func cacheWrap(db xsigners.KVStore) xsigners.KVCacheWrap {
	if c, ok := db.(xsigners.CacheableKVStore); ok {
		return c.CacheWrap()
	}
	return store.NewBTreeCacheWrap(db, db.NewBatch(), nil)
}
