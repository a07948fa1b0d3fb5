package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/orm"
	"github.com/iov-one/xsigners/x/cash"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// Application runs the ledger as a tendermint ABCI application. Every
// transaction is a single signed call of an external account.
//
// Errors on ABCI steps that do not take user input (InitChain, Commit) are
// handled as panics. There is no way to recover from them.
type Application struct {
	name    string
	logger  log.Logger
	store   *CommitStore
	ledger  *Ledger
	init    xsigners.Initializer
	nonces  orm.ModelBucket
	chainID string
	debug   bool
}

var _ abci.Application = (*Application)(nil)

// NewApplication returns an application running on top of the latest
// version of store. init is called with the app state of the genesis file.
func NewApplication(name string, store *CommitStore, ledger *Ledger, init xsigners.Initializer, logger log.Logger, debug bool) (*Application, error) {
	chainID, err := ChainID(store.DeliverStore())
	if err != nil {
		return nil, err
	}
	return &Application{
		name:    name,
		logger:  logger,
		store:   store,
		ledger:  ledger,
		init:    init,
		nonces:  orm.NewModelBucket("nonce", &Sequence{}),
		chainID: chainID,
		debug:   debug,
	}, nil
}

func (a *Application) context(call string) context.Context {
	ctx := xsigners.WithLogger(context.Background(), a.logger)
	return xsigners.WithLogInfo(ctx, "call", call)
}

// Info implements abci.Application. It returns the height and hash of the
// last committed state.
func (a *Application) Info(req abci.RequestInfo) abci.ResponseInfo {
	id, err := a.store.CommitInfo()
	if err != nil {
		panic(err)
	}
	a.logger.Info("Info synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseInfo{
		Data:             a.name,
		LastBlockHeight:  id.Version,
		LastBlockAppHash: id.Hash,
	}
}

// SetOption is not supported.
func (a *Application) SetOption(req abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain stores the chain id and loads the app state.
func (a *Application) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	var state xsigners.Options
	if len(req.AppStateBytes) > 0 {
		if err := json.Unmarshal(req.AppStateBytes, &state); err != nil {
			panic(errors.Wrapf(errors.ErrInput, "app state: %s", err))
		}
	}
	gen := Genesis{ChainID: req.ChainId, AppState: state}
	if err := InitChain(a.store.DeliverStore(), gen, a.init); err != nil {
		panic(err)
	}
	a.chainID = req.ChainId
	return abci.ResponseInitChain{}
}

// BeginBlock implements abci.Application.
func (a *Application) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	return abci.ResponseBeginBlock{}
}

// EndBlock implements abci.Application. The validator set never changes.
func (a *Application) EndBlock(req abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// CheckTx verifies the signature and the nonce of a transaction. The call
// itself is not run.
func (a *Application) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := a.authenticate(a.store.CheckStore(), raw)
	if err != nil {
		code, msg := errors.ABCIInfo(err, a.debug)
		return abci.ResponseCheckTx{Code: code, Log: "cannot check tx: " + msg}
	}
	return abci.ResponseCheckTx{Log: fmt.Sprintf("nonce %d", tx.Nonce)}
}

// DeliverTx executes a transaction. Emitted events are returned as tags.
// An authenticated transaction consumes its nonce even if the call fails,
// so it cannot be replayed. No other write of a failed call is kept.
func (a *Application) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	layer := a.store.DeliverStore().CacheWrap()
	tx, err := a.authenticate(layer, raw)
	if err != nil {
		layer.Discard()
		return a.deliverError(err)
	}

	caller := tx.Caller()
	ctx := xsigners.WithLogInfo(a.context("deliver_tx"), "caller", caller, "nonce", tx.Nonce)
	out, events, callErr := a.ledger.Execute(ctx, layer, caller, tx.Call())
	if err := layer.Write(); err != nil {
		return a.deliverError(errors.Wrap(errors.ErrDatabase, err.Error()))
	}
	if callErr != nil {
		return a.deliverError(callErr)
	}
	return abci.ResponseDeliverTx{Data: out, Tags: EventTags(events)}
}

func (a *Application) deliverError(err error) abci.ResponseDeliverTx {
	code, msg := errors.ABCIInfo(err, a.debug)
	return abci.ResponseDeliverTx{Code: code, Log: "cannot deliver tx: " + msg}
}

// authenticate decodes a transaction, verifies it and consumes its nonce.
func (a *Application) authenticate(db xsigners.KVStore, raw []byte) (*SignedTx, error) {
	tx, err := DecodeTx(raw)
	if err != nil {
		return nil, err
	}
	if err := tx.Verify(a.chainID); err != nil {
		return nil, err
	}
	caller := tx.Caller()
	var seq Sequence
	if err := a.nonces.One(db, caller, &seq); err != nil && !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	if tx.Nonce != seq.Next {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "nonce %d, expected %d", tx.Nonce, seq.Next)
	}
	seq.Next++
	if err := a.nonces.Put(db, caller, &seq); err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	return tx, nil
}

// Nonce returns the nonce the next transaction of given account must use.
func (a *Application) Nonce(acct xsigners.Address) (uint64, error) {
	var seq Sequence
	if err := a.nonces.One(a.store.CommittedStore(), acct, &seq); err != nil && !errors.ErrNotFound.Is(err) {
		return 0, err
	}
	return seq.Next, nil
}

// Query reads the last committed state. Supported paths are:
//
//   /call     Data is an encoded QueryCall; returns the output of the call
//   /balance  Data is an address; returns an encoded cash.Account
//   /nonce    Data is an address; returns an encoded Sequence
func (a *Application) Query(req abci.RequestQuery) abci.ResponseQuery {
	id, err := a.store.CommitInfo()
	if err != nil {
		return a.queryError(err)
	}
	value, err := a.query(req.Path, req.Data)
	if err != nil {
		return a.queryError(err)
	}
	return abci.ResponseQuery{Key: req.Data, Value: value, Height: id.Version}
}

func (a *Application) query(path string, data []byte) ([]byte, error) {
	db := a.store.CommittedStore()
	switch path {
	case "/call":
		var q QueryCall
		if err := proto.Unmarshal(data, &q); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "query: %s", err)
		}
		sel, err := xsigners.SelectorFromBytes(q.Selector)
		if err != nil {
			return nil, err
		}
		return a.ledger.Query(a.context("query"), db, q.Target, sel, q.Input)
	case "/balance":
		amount, err := a.ledger.Balance(db, data)
		if err != nil {
			return nil, err
		}
		return proto.Marshal(&cash.Account{Amount: amount})
	case "/nonce":
		n, err := a.Nonce(data)
		if err != nil {
			return nil, err
		}
		return proto.Marshal(&Sequence{Next: n})
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown query path %q", path)
	}
}

func (a *Application) queryError(err error) abci.ResponseQuery {
	code, msg := errors.ABCIInfo(err, a.debug)
	return abci.ResponseQuery{Code: code, Log: msg}
}

// Commit writes the block to the store and returns the new hash.
func (a *Application) Commit() abci.ResponseCommit {
	id, err := a.store.Commit()
	if err != nil {
		panic(err)
	}
	a.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// EventTags flattens events into tags. Every tag key is prefixed with the
// name of its event.
func EventTags(events []xsigners.Event) []common.KVPair {
	var tags []common.KVPair
	for _, e := range events {
		for _, t := range e.Tags() {
			key := append([]byte(e.EventName()+"."), t.Key...)
			tags = append(tags, common.KVPair{Key: key, Value: t.Value})
		}
	}
	return tags
}
