package multisig

import (
	"context"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/orm"
)

// execute dispatches an approved transaction and removes it. The outcome
// of the call never fails the operation that triggered the execution, it is
// published with the TransactionExecuted event instead.
func (c *Controller) execute(ctx context.Context, f *frame, id TxID) error {
	var tx Transaction
	switch err := c.b.txs.One(f.db, id[:], &tx); {
	case errors.ErrNotFound.Is(err):
		panic(errors.Wrapf(errors.ErrHuman, "executing unknown transaction %s", id))
	case err != nil:
		return err
	}

	// A reentrant frame reads the root state from the store. It must see
	// this transaction in flight together with all changes made so far.
	f.wallet.Executing = append(f.wallet.Executing, id.Bytes())
	if err := f.flush(); err != nil {
		return err
	}

	call := tx.Call()
	out, err := c.host.Invoke(ctx, call)
	result := classify(out, err)

	// Any call that allows reentry may have reached back into this wallet,
	// either directly when targeting itself or through the callee.
	if call.AllowReentry || c.conf.ReloadAfterEveryCall {
		if err := f.reload(); err != nil {
			return errors.Wrap(err, "reload after dispatch")
		}
	}

	f.wallet.Executing = without(f.wallet.Executing, id[:])
	if err := c.removeTx(f, id); err != nil {
		return err
	}

	c.events.Emit(ctx, TransactionExecuted{TxID: id, Result: result})
	c.events.Emit(ctx, TransactionRemoved{TxID: id})
	executionsTotal.WithLabelValues(result.Outcome()).Inc()

	logger := xsigners.GetLogger(ctx)
	if result.Success() {
		logger.Info("transaction executed", "wallet", f.self, "tx", id, "outcome", result.Outcome())
	} else {
		logger.Info("transaction failed", "wallet", f.self, "tx", id, "outcome", result.Outcome(), "err", result.Err)
	}
	return nil
}

func deleteIfExists(db xsigners.KVStore, b orm.ModelBucket, key []byte) error {
	err := b.Delete(db, key)
	if errors.ErrNotFound.Is(err) {
		return nil
	}
	return err
}
