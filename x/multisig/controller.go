package multisig

import (
	"context"
	"math"
	"strconv"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/orm"
)

// Host is the ledger a wallet is deployed on.
type Host interface {
	// Invoke performs a call on behalf of the wallet executing in ctx and
	// blocks until it returns. Contracts may call back into the wallet
	// before Invoke returns if the call allows reentry.
	Invoke(ctx context.Context, call xsigners.Call) ([]byte, error)
	// Transfer moves funds held by the wallet executing in ctx.
	Transfer(ctx context.Context, to xsigners.Address, amount uint64) error
}

// EventSink publishes domain events.
type EventSink interface {
	Emit(ctx context.Context, e xsigners.Event)
}

// Config tunes the dispatcher.
type Config struct {
	// ReloadAfterEveryCall reloads the wallet state after every
	// dispatched transaction, not only after self calls that allow
	// reentry.
	ReloadAfterEveryCall bool
}

// Controller implements all wallet operations. It keeps no state of its own,
// every call works on the key space given to it.
type Controller struct {
	host   Host
	events EventSink
	conf   Config
	b      buckets
}

// NewController returns a controller dispatching transactions through given
// host.
func NewController(host Host, events EventSink, conf Config) *Controller {
	return &Controller{
		host:   host,
		events: events,
		conf:   conf,
		b:      newBuckets(),
	}
}

// Create initializes a wallet. Duplicated owners are ignored, the first
// occurrence decides the position in the owner list.
func (c *Controller) Create(ctx context.Context, db xsigners.KVStore, threshold uint32, owners []xsigners.Address) error {
	list := dedup(owners)
	if err := ensureCreationParams(threshold, list); err != nil {
		return err
	}
	for i, o := range list {
		if err := o.Validate(); err != nil {
			return errors.Field("Owners."+strconv.Itoa(i), err, "invalid owner")
		}
	}

	switch err := c.b.wallet.Has(db, walletKey); {
	case err == nil:
		return errors.Wrap(errors.ErrDuplicate, "wallet already created")
	case !errors.ErrNotFound.Is(err):
		return err
	}

	w := Wallet{
		Threshold: threshold,
		NextTxId:  TxID{}.Bytes(),
	}
	for _, o := range list {
		w.Owners = append(w.Owners, o)
		if err := c.b.owners.Put(db, o, &Owner{Address: o}); err != nil {
			return errors.Wrap(err, "owner")
		}
	}
	if err := c.b.wallet.Put(db, walletKey, &w); err != nil {
		return errors.Wrap(err, "wallet")
	}

	self, _ := xsigners.GetContract(ctx)
	xsigners.GetLogger(ctx).Info("wallet created",
		"wallet", self, "owners", len(list), "threshold", threshold)
	return nil
}

// CreateDefault initializes a wallet owned by the caller alone, with a
// threshold of one.
func (c *Controller) CreateDefault(ctx context.Context, db xsigners.KVStore) error {
	caller, ok := xsigners.GetCaller(ctx)
	if !ok {
		return errors.Wrap(errors.ErrUnauthorized, "no caller")
	}
	return c.Create(ctx, db, 1, []xsigners.Address{caller})
}

func dedup(owners []xsigners.Address) []xsigners.Address {
	seen := make(map[string]bool, len(owners))
	res := make([]xsigners.Address, 0, len(owners))
	for _, o := range owners {
		if seen[string(o)] {
			continue
		}
		seen[string(o)] = true
		res = append(res, o)
	}
	return res
}

func ensureCreationParams(threshold uint32, owners []xsigners.Address) error {
	switch {
	case len(owners) == 0:
		return errors.Wrap(ErrOwnersCantBeEmpty, "create")
	case len(owners) > MaxOwners:
		return errors.Wrapf(ErrMaxOwnersReached, "%d owners", len(owners))
	case int(threshold) > len(owners):
		return errors.Wrapf(ErrThresholdGreaterThanOwners, "%d > %d", threshold, len(owners))
	case threshold == 0:
		return errors.Wrap(ErrThresholdCantBeZero, "create")
	}
	return nil
}

// Propose stores a new transaction approved by the caller. The transaction
// is executed right away if the caller's approval alone satisfies the
// threshold.
func (c *Controller) Propose(ctx context.Context, db xsigners.KVStore, tx *Transaction) (TxID, error) {
	f, err := c.load(ctx, db)
	if err != nil {
		return TxID{}, err
	}
	caller, _ := xsigners.GetCaller(ctx)
	if err := f.ensureOwner(caller); err != nil {
		return TxID{}, err
	}
	if len(f.wallet.TxIds) >= MaxTransactions {
		return TxID{}, errors.Wrapf(ErrMaxTransactionsReached, "%d active", len(f.wallet.TxIds))
	}
	if tx == nil {
		return TxID{}, errors.Wrap(errors.ErrInput, "no transaction")
	}
	if err := tx.Validate(); err != nil {
		return TxID{}, errors.Wrap(errors.ErrInput, err.Error())
	}

	id, err := TxIDFromBytes(f.wallet.NextTxId)
	if err != nil {
		return TxID{}, errors.Wrap(errors.ErrHuman, err.Error())
	}
	next, err := id.Next()
	if err != nil {
		return TxID{}, err
	}
	f.wallet.NextTxId = next.Bytes()
	f.wallet.TxIds = append(f.wallet.TxIds, id.Bytes())

	if err := c.b.txs.Put(db, id[:], tx); err != nil {
		return TxID{}, errors.Wrap(err, "transaction")
	}
	if err := c.b.approvals.Put(db, id[:], &Counter{Count: 1}); err != nil {
		return TxID{}, errors.Wrap(err, "approvals")
	}
	if err := c.b.rejections.Put(db, id[:], &Counter{Count: 0}); err != nil {
		return TxID{}, errors.Wrap(err, "rejections")
	}
	if err := c.recordVote(db, id, caller, true); err != nil {
		return TxID{}, err
	}

	c.events.Emit(ctx, TransactionProposed{TxID: id, Tx: *tx})
	proposalsTotal.Inc()
	xsigners.GetLogger(ctx).Info("transaction proposed",
		"wallet", f.self, "tx", id, "proposer", caller)

	if err := c.maybeExecute(ctx, f, id); err != nil {
		return TxID{}, err
	}
	if err := f.flush(); err != nil {
		return TxID{}, err
	}
	return id, nil
}

// Approve records the caller's approval and executes the transaction once
// the threshold is met.
func (c *Controller) Approve(ctx context.Context, db xsigners.KVStore, id TxID) error {
	f, err := c.load(ctx, db)
	if err != nil {
		return err
	}
	caller, _ := xsigners.GetCaller(ctx)
	if err := f.ensureCanVote(caller, id); err != nil {
		return err
	}
	if err := f.incr(c.b.approvals, id); err != nil {
		return err
	}
	if err := c.recordVote(db, id, caller, true); err != nil {
		return err
	}
	c.events.Emit(ctx, Approve{TxID: id, Owner: caller})
	votesTotal.WithLabelValues("approve").Inc()

	if err := c.maybeExecute(ctx, f, id); err != nil {
		return err
	}
	return f.flush()
}

// Reject records the caller's rejection and cancels the transaction once
// the threshold cannot be reached anymore.
func (c *Controller) Reject(ctx context.Context, db xsigners.KVStore, id TxID) error {
	f, err := c.load(ctx, db)
	if err != nil {
		return err
	}
	caller, _ := xsigners.GetCaller(ctx)
	if err := f.ensureCanVote(caller, id); err != nil {
		return err
	}
	if err := f.incr(c.b.rejections, id); err != nil {
		return err
	}
	if err := c.recordVote(db, id, caller, false); err != nil {
		return err
	}
	c.events.Emit(ctx, Reject{TxID: id, Owner: caller})
	votesTotal.WithLabelValues("reject").Inc()

	if err := c.maybeCancel(ctx, f, id); err != nil {
		return err
	}
	return f.flush()
}

// TryExecute executes an active transaction if it has enough approvals.
// Anybody can call it.
func (c *Controller) TryExecute(ctx context.Context, db xsigners.KVStore, id TxID) error {
	f, err := c.load(ctx, db)
	if err != nil {
		return err
	}
	if err := f.ensureValidTx(id); err != nil {
		return err
	}
	if err := c.maybeExecute(ctx, f, id); err != nil {
		return err
	}
	return f.flush()
}

// TryRemove cancels an active transaction if it can no longer reach the
// threshold. Anybody can call it.
func (c *Controller) TryRemove(ctx context.Context, db xsigners.KVStore, id TxID) error {
	f, err := c.load(ctx, db)
	if err != nil {
		return err
	}
	if err := f.ensureValidTx(id); err != nil {
		return err
	}
	if err := c.maybeCancel(ctx, f, id); err != nil {
		return err
	}
	return f.flush()
}

// frame is the in memory view of a wallet during a single call. The root
// state is read when the frame is loaded and written back with flush. All
// other records are read and written directly.
type frame struct {
	db     xsigners.KVStore
	self   xsigners.Address
	b      buckets
	wallet Wallet
}

func (c *Controller) load(ctx context.Context, db xsigners.KVStore) (*frame, error) {
	self, ok := xsigners.GetContract(ctx)
	if !ok {
		return nil, errors.Wrap(errors.ErrState, "no wallet address")
	}
	f := &frame{db: db, self: self, b: c.b}
	if err := f.reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// reload reads the root state again, dropping all unflushed changes.
func (f *frame) reload() error {
	var w Wallet
	if err := f.b.wallet.One(f.db, walletKey, &w); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrap(errors.ErrState, "wallet not created")
		}
		return err
	}
	f.wallet = w
	return nil
}

func (f *frame) flush() error {
	return errors.Wrap(f.b.wallet.Put(f.db, walletKey, &f.wallet), "wallet")
}

func (f *frame) isOwner(a xsigners.Address) (bool, error) {
	if len(a) == 0 {
		return false, nil
	}
	switch err := f.b.owners.Has(f.db, a); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

func (f *frame) ensureOwner(a xsigners.Address) error {
	ok, err := f.isOwner(a)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrNotOwner, "%s", a)
	}
	return nil
}

func (f *frame) ensureValidTx(id TxID) error {
	switch err := f.b.txs.Has(f.db, id[:]); {
	case err == nil:
		return nil
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(ErrInvalidTxID, "%s", id)
	default:
		return err
	}
}

// ensureCanVote checks membership, transaction validity and that no vote
// was cast yet, in that order.
func (f *frame) ensureCanVote(a xsigners.Address, id TxID) error {
	if err := f.ensureOwner(a); err != nil {
		return err
	}
	if err := f.ensureValidTx(id); err != nil {
		return err
	}
	switch err := f.b.votes.Has(f.db, voteKey(id, a)); {
	case err == nil:
		return errors.Wrapf(ErrAlreadyVoted, "%s on %s", a, id)
	case !errors.ErrNotFound.Is(err):
		return err
	}
	return nil
}

// count returns the value of a counter of an active transaction. A missing
// counter breaks the storage invariants and panics.
func (f *frame) count(b orm.ModelBucket, id TxID) (uint32, error) {
	var c Counter
	switch err := b.One(f.db, id[:], &c); {
	case err == nil:
		return c.Count, nil
	case errors.ErrNotFound.Is(err):
		panic(errors.Wrapf(errors.ErrHuman, "no counter for transaction %s", id))
	default:
		return 0, err
	}
}

func (f *frame) incr(b orm.ModelBucket, id TxID) error {
	n, err := f.count(b, id)
	if err != nil {
		return err
	}
	if n == math.MaxUint32 {
		return errors.Wrapf(errors.ErrOverflow, "counter of %s", id)
	}
	return b.Put(f.db, id[:], &Counter{Count: n + 1})
}

// recordVote stores the vote of owner and adds owner to the voters of the
// transaction, so that removal can find every vote record.
func (c *Controller) recordVote(db xsigners.KVStore, id TxID, owner xsigners.Address, approved bool) error {
	if err := c.b.votes.Put(db, voteKey(id, owner), &Vote{Approved: approved}); err != nil {
		return errors.Wrap(err, "vote")
	}
	var v Voters
	if err := c.b.voters.One(db, id[:], &v); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "voters")
	}
	v.Addresses = append(v.Addresses, owner)
	return errors.Wrap(c.b.voters.Put(db, id[:], &v), "voters")
}
