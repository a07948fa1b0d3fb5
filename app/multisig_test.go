package app_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/app"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/store"
	"github.com/iov-one/xsigners/weavetest"
	"github.com/iov-one/xsigners/x/cash"
	"github.com/iov-one/xsigners/x/multisig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walletEnv struct {
	ledger *app.Ledger
	db     xsigners.CacheableKVStore
	wallet xsigners.Address
	owners []xsigners.Address
}

func newWalletEnv(t testing.TB, threshold uint32, n int) *walletEnv {
	t.Helper()
	l := app.NewLedger()
	ctrl := multisig.NewController(l, l, multisig.Config{})
	l.Register(multisig.CodeName, multisig.NewHandler(ctrl))

	env := &walletEnv{
		ledger: l,
		db:     store.MemStore(),
		owners: weavetest.NewAddresses(n),
	}
	msg := multisig.CreateMsg{Threshold: threshold}
	for _, o := range env.owners {
		msg.Owners = append(msg.Owners, o)
	}
	input, err := multisig.Encode(&msg)
	require.NoError(t, err)
	env.wallet, err = l.Deploy(context.Background(), env.db, env.owners[0], multisig.CodeName, input)
	require.NoError(t, err)
	return env
}

func (e *walletEnv) send(t testing.TB, caller xsigners.Address, name string, msg proto.Message) []xsigners.Event {
	t.Helper()
	input, err := multisig.Encode(msg)
	require.NoError(t, err)
	call := xsigners.Call{
		Target:   e.wallet,
		Selector: xsigners.NewSelector(name),
		Input:    input,
	}
	_, events, err := e.ledger.Execute(context.Background(), e.db, caller, call)
	require.NoError(t, err)
	return events
}

func (e *walletEnv) query(t testing.TB, name string, msg, res proto.Message) {
	t.Helper()
	var input []byte
	if msg != nil {
		raw, err := multisig.Encode(msg)
		require.NoError(t, err)
		input = raw
	}
	out, err := e.ledger.Query(context.Background(), e.db, e.wallet, xsigners.NewSelector(name), input)
	require.NoError(t, err)
	require.NoError(t, proto.Unmarshal(out, res))
}

func (e *walletEnv) selfTx(t testing.TB, name string, msg proto.Message) *multisig.Transaction {
	t.Helper()
	input, err := multisig.Encode(msg)
	require.NoError(t, err)
	return &multisig.Transaction{
		Address:      e.wallet,
		Selector:     xsigners.NewSelector(name).Bytes(),
		Input:        input,
		AllowReentry: true,
	}
}

func (e *walletEnv) ownerList(t testing.TB) [][]byte {
	t.Helper()
	var res multisig.Addresses
	e.query(t, multisig.GetOwnersName, nil, &res)
	return res.Addresses
}

func executed(events []xsigners.Event) []multisig.TransactionExecuted {
	var res []multisig.TransactionExecuted
	for _, e := range events {
		if ev, ok := e.(multisig.TransactionExecuted); ok {
			res = append(res, ev)
		}
	}
	return res
}

func names(events []xsigners.Event) []string {
	res := make([]string, len(events))
	for i, e := range events {
		res[i] = e.EventName()
	}
	return res
}

func TestWalletAddsOwnerThroughReentrantCall(t *testing.T) {
	env := newWalletEnv(t, 1, 1)
	newcomer := weavetest.NewAddress()

	tx := env.selfTx(t, multisig.AddOwnerName, &multisig.AddOwnerMsg{Owner: newcomer})
	events := env.send(t, env.owners[0], multisig.ProposeTxName, &multisig.ProposeTxMsg{Tx: tx})

	assert.Equal(t, []string{
		"TransactionProposed",
		"OwnerAdded",
		"TransactionExecuted",
		"TransactionRemoved",
	}, names(events))
	res := executed(events)
	require.Len(t, res, 1)
	assert.True(t, res[0].Result.Success())
	assert.Equal(t, [][]byte{env.owners[0], newcomer}, env.ownerList(t))
}

func TestWalletDispatchOutcomes(t *testing.T) {
	cases := map[string]struct {
		Tx          func(t testing.TB, env *walletEnv) *multisig.Transaction
		WantOutcome string
	}{
		"owner set full": {
			Tx: func(t testing.TB, env *walletEnv) *multisig.Transaction {
				return env.selfTx(t, multisig.AddOwnerName, &multisig.AddOwnerMsg{Owner: weavetest.NewAddress()})
			},
			WantOutcome: "env_failed:CalleeReverted",
		},
		"self call without reentry": {
			Tx: func(t testing.TB, env *walletEnv) *multisig.Transaction {
				tx := env.selfTx(t, multisig.ChangeThresholdName, &multisig.ChangeThresholdMsg{Threshold: 1})
				tx.AllowReentry = false
				return tx
			},
			WantOutcome: "env_failed:CalleeTrapped",
		},
		"wallet cannot read input": {
			Tx: func(t testing.TB, env *walletEnv) *multisig.Transaction {
				tx := env.selfTx(t, multisig.ChangeThresholdName, &multisig.ChangeThresholdMsg{Threshold: 1})
				tx.Selector = xsigners.NewSelector("self_destruct").Bytes()
				return tx
			},
			WantOutcome: "lang_failed",
		},
		"target is not a contract": {
			Tx: func(t testing.TB, env *walletEnv) *multisig.Transaction {
				return &multisig.Transaction{
					Address:  weavetest.NewAddress(),
					Selector: xsigners.NewSelector("flip").Bytes(),
				}
			},
			WantOutcome: "env_failed:NotCallable",
		},
		"value exceeds wallet funds": {
			Tx: func(t testing.TB, env *walletEnv) *multisig.Transaction {
				tx := env.selfTx(t, multisig.GetThresholdName, &multisig.Flag{})
				tx.TransferredValue = 1
				return tx
			},
			WantOutcome: "env_failed:TransferFailed",
		},
		"gas exhausted": {
			Tx: func(t testing.TB, env *walletEnv) *multisig.Transaction {
				tx := env.selfTx(t, multisig.ChangeThresholdName, &multisig.ChangeThresholdMsg{Threshold: 1})
				tx.GasLimit = 5
				return tx
			},
			WantOutcome: "env_failed:CalleeTrapped",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			env := newWalletEnv(t, 1, multisig.MaxOwners)
			events := env.send(t, env.owners[0], multisig.ProposeTxName, &multisig.ProposeTxMsg{Tx: tc.Tx(t, env)})

			res := executed(events)
			require.Len(t, res, 1)
			assert.Equal(t, tc.WantOutcome, res[0].Result.Outcome())
			assert.Len(t, env.ownerList(t), multisig.MaxOwners)

			var ids multisig.TxIDs
			env.query(t, multisig.GetActiveTxIDListName, nil, &ids)
			assert.Empty(t, ids.TxIds)
		})
	}
}

func TestWalletTransfer(t *testing.T) {
	env := newWalletEnv(t, 2, 2)
	a, b := env.owners[0], env.owners[1]
	bob := weavetest.NewAddress()

	// Fund the wallet with a call carrying value.
	funder := weavetest.NewAddress()
	issue := app.Genesis{ChainID: "test-chain", AppState: xsigners.Options{}}
	raw, err := json.Marshal([]cash.GenesisAccount{{Address: funder, Amount: 100}})
	require.NoError(t, err)
	issue.AppState["cash"] = raw
	require.NoError(t, app.InitChain(env.db, issue, cash.Initializer{}))

	input, err := multisig.Encode(&multisig.OwnerQueryMsg{Owner: a})
	require.NoError(t, err)
	_, _, err = env.ledger.Execute(context.Background(), env.db, funder, xsigners.Call{
		Target:   env.wallet,
		Selector: xsigners.NewSelector(multisig.IsOwnerName),
		Input:    input,
		Value:    50,
	})
	require.NoError(t, err)

	tx := env.selfTx(t, multisig.TransferName, &multisig.TransferMsg{To: bob, Amount: 30})
	env.send(t, a, multisig.ProposeTxName, &multisig.ProposeTxMsg{Tx: tx})
	events := env.send(t, b, multisig.ApproveTxName, multisig.NewTxMsg(multisig.NewTxID(0)))

	assert.Equal(t, []string{"Approve", "Transfer", "TransactionExecuted", "TransactionRemoved"}, names(events))
	got, err := env.ledger.Balance(env.db, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), got)
	got, err = env.ledger.Balance(env.db, env.wallet)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), got)
}

func TestWalletGenesis(t *testing.T) {
	l := app.NewLedger()
	ctrl := multisig.NewController(l, l, multisig.Config{})
	l.Register(multisig.CodeName, multisig.NewHandler(ctrl))

	owners := weavetest.NewAddresses(3)
	raw, err := json.Marshal(map[string]interface{}{
		"wallets": []multisig.GenesisWallet{{Threshold: 2, Owners: owners}},
	})
	require.NoError(t, err)

	db := store.MemStore()
	wallets := &multisig.Initializer{Deployer: l}
	gen := app.Genesis{ChainID: "test-chain", AppState: xsigners.Options{"multisig": raw}}
	require.NoError(t, app.InitChain(db, gen, xsigners.ChainInitializers(cash.Initializer{}, wallets)))
	require.Len(t, wallets.Deployed, 1)

	code, err := l.Code(db, wallets.Deployed[0])
	require.NoError(t, err)
	assert.Equal(t, multisig.CodeName, code)

	out, err := l.Query(context.Background(), db, wallets.Deployed[0], xsigners.NewSelector(multisig.GetThresholdName), nil)
	require.NoError(t, err)
	var threshold multisig.Counter
	require.NoError(t, proto.Unmarshal(out, &threshold))
	assert.Equal(t, uint32(2), threshold.Count)
}

func TestWalletGenesisRequiresOwners(t *testing.T) {
	l := app.NewLedger()
	ctrl := multisig.NewController(l, l, multisig.Config{})
	l.Register(multisig.CodeName, multisig.NewHandler(ctrl))

	raw := []byte(`{"wallets": [{"threshold": 0, "owners": []}]}`)
	db := store.MemStore()
	wallets := &multisig.Initializer{Deployer: l}
	gen := app.Genesis{ChainID: "test-chain", AppState: xsigners.Options{"multisig": raw}}
	err := app.InitChain(db, gen, xsigners.ChainInitializers(cash.Initializer{}, wallets))
	require.Error(t, err)
	assert.True(t, multisig.ErrOwnersCantBeEmpty.Is(err))
	assert.Empty(t, wallets.Deployed)

	_, err = l.Code(db, app.ContractAddress(0))
	assert.True(t, errors.ErrNotCallable.Is(err))
}
