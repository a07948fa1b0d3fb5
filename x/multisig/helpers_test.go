package multisig

import (
	"context"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/store"
	"github.com/iov-one/xsigners/weavetest"
	"github.com/iov-one/xsigners/weavetest/assert"
)

// testHost dispatches calls that target the wallet back into its handler,
// mimicking a ledger that denies reentry unless the call allows it. All
// other calls succeed unless invoke is set.
type testHost struct {
	db      xsigners.KVStore
	self    xsigners.Address
	handler *Handler
	calls   []xsigners.Call
	invoke  func(ctx context.Context, call xsigners.Call) ([]byte, error)

	transferErr error
	transfers   []Transfer
}

func (h *testHost) Invoke(ctx context.Context, call xsigners.Call) ([]byte, error) {
	h.calls = append(h.calls, call)
	if h.invoke != nil {
		return h.invoke(ctx, call)
	}
	if call.Target.Equals(h.self) {
		return h.reenter(ctx, h.self, call)
	}
	return []byte("ok"), nil
}

// reenter calls the wallet on behalf of caller.
func (h *testHost) reenter(ctx context.Context, caller xsigners.Address, call xsigners.Call) ([]byte, error) {
	if !call.AllowReentry {
		return nil, errors.Wrap(errors.ErrCalleeTrapped, "reentry denied")
	}
	ctx = xsigners.WithCaller(ctx, caller)
	out, err := h.handler.Handle(ctx, h.db, call.Selector, call.Input)
	if err != nil && !errors.ErrCouldNotReadInput.Is(err) {
		return nil, errors.Wrap(errors.ErrCalleeReverted, err.Error())
	}
	return out, err
}

func (h *testHost) Transfer(ctx context.Context, to xsigners.Address, amount uint64) error {
	if h.transferErr != nil {
		return h.transferErr
	}
	h.transfers = append(h.transfers, Transfer{To: to, Value: amount})
	return nil
}

type eventLog struct {
	events []xsigners.Event
}

func (l *eventLog) Emit(ctx context.Context, e xsigners.Event) {
	l.events = append(l.events, e)
}

func (l *eventLog) names() []string {
	res := make([]string, len(l.events))
	for i, e := range l.events {
		res[i] = e.EventName()
	}
	return res
}

func (l *eventLog) executed() []TransactionExecuted {
	var res []TransactionExecuted
	for _, e := range l.events {
		if ev, ok := e.(TransactionExecuted); ok {
			res = append(res, ev)
		}
	}
	return res
}

func (l *eventLog) reset() {
	l.events = nil
}

type testEnv struct {
	db      xsigners.KVStore
	self    xsigners.Address
	owners  []xsigners.Address
	ctrl    *Controller
	handler *Handler
	host    *testHost
	events  *eventLog
}

// newTestEnv creates a wallet with n fresh owners.
func newTestEnv(t testing.TB, threshold uint32, n int, conf Config) *testEnv {
	t.Helper()
	env := newEmptyTestEnv(conf)
	env.owners = weavetest.NewAddresses(n)
	assert.Nil(t, env.ctrl.Create(env.ctx(env.owners[0]), env.db, threshold, env.owners))
	env.events.reset()
	return env
}

func newEmptyTestEnv(conf Config) *testEnv {
	env := &testEnv{
		db:     store.MemStore(),
		self:   weavetest.NewAddress(),
		events: &eventLog{},
	}
	env.host = &testHost{db: env.db, self: env.self}
	env.ctrl = NewController(env.host, env.events, conf)
	env.handler = NewHandler(env.ctrl)
	env.host.handler = env.handler
	return env
}

// ctx returns a context of a call made by caller into the wallet.
func (e *testEnv) ctx(caller xsigners.Address) context.Context {
	ctx := xsigners.WithContract(context.Background(), e.self)
	return xsigners.WithCaller(ctx, caller)
}

// selfCtx returns a context of a call made by the wallet into itself.
func (e *testEnv) selfCtx() context.Context {
	return e.ctx(e.self)
}

// externalTx returns a transaction calling a contract other than the wallet.
func externalTx() *Transaction {
	return &Transaction{
		Address:  weavetest.NewAddress(),
		Selector: xsigners.NewSelector("flip").Bytes(),
		Input:    []byte{1, 2, 3},
		GasLimit: 1000,
	}
}

// selfTx returns a transaction calling the wallet with given message.
func (e *testEnv) selfTx(t testing.TB, name string, msg proto.Message) *Transaction {
	t.Helper()
	input, err := Encode(msg)
	assert.Nil(t, err)
	return &Transaction{
		Address:      e.self,
		Selector:     xsigners.NewSelector(name).Bytes(),
		Input:        input,
		AllowReentry: true,
	}
}

func (e *testEnv) mustPropose(t testing.TB, proposer xsigners.Address, tx *Transaction) TxID {
	t.Helper()
	id, err := e.ctrl.Propose(e.ctx(proposer), e.db, tx)
	assert.Nil(t, err)
	return id
}

func (e *testEnv) active(t testing.TB) []TxID {
	t.Helper()
	ids, err := e.ctrl.ActiveTxIDs(e.db)
	assert.Nil(t, err)
	return ids
}

func (e *testEnv) ownerList(t testing.TB) []xsigners.Address {
	t.Helper()
	owners, err := e.ctrl.Owners(e.db)
	assert.Nil(t, err)
	return owners
}
