package multisig

import (
	"context"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
)

// thresholdMet reports whether given number of approvals is enough to
// execute a transaction. The live threshold is used.
func (w *Wallet) thresholdMet(approvals uint32) bool {
	return approvals >= w.Threshold
}

// thresholdReachable reports whether the owners that did not reject a
// transaction can still approve it. Both the owner count and the threshold
// are read at the time of the check, so a governance change may turn an
// open transaction unreachable or reachable again.
func (w *Wallet) thresholdReachable(rejections uint32) bool {
	return int64(rejections) <= int64(len(w.Owners))-int64(w.Threshold)
}

// maybeExecute dispatches the transaction if it has enough approvals.
// Transactions that are being dispatched by an outer frame are left alone.
func (c *Controller) maybeExecute(ctx context.Context, f *frame, id TxID) error {
	if f.wallet.isExecuting(id) {
		return nil
	}
	approvals, err := f.count(c.b.approvals, id)
	if err != nil {
		return err
	}
	if !f.wallet.thresholdMet(approvals) {
		return nil
	}
	return c.execute(ctx, f, id)
}

// maybeCancel removes the transaction if it can no longer be approved.
func (c *Controller) maybeCancel(ctx context.Context, f *frame, id TxID) error {
	if f.wallet.isExecuting(id) {
		return nil
	}
	rejections, err := f.count(c.b.rejections, id)
	if err != nil {
		return err
	}
	if f.wallet.thresholdReachable(rejections) {
		return nil
	}
	if err := c.removeTx(f, id); err != nil {
		return err
	}
	c.events.Emit(ctx, TransactionRemoved{TxID: id})
	cancellationsTotal.Inc()
	xsigners.GetLogger(ctx).Info("transaction cancelled",
		"wallet", f.self, "tx", id, "rejections", rejections)
	return nil
}

// removeTx deletes every trace of a transaction: its position in the active
// list, the record, both counters and the vote of everyone who voted,
// including owners removed since.
func (c *Controller) removeTx(f *frame, id TxID) error {
	f.wallet.TxIds = without(f.wallet.TxIds, id[:])
	if err := c.b.txs.Delete(f.db, id[:]); err != nil {
		return err
	}
	if err := c.b.approvals.Delete(f.db, id[:]); err != nil {
		return err
	}
	if err := c.b.rejections.Delete(f.db, id[:]); err != nil {
		return err
	}
	var voters Voters
	if err := c.b.voters.One(f.db, id[:], &voters); err != nil && !errors.ErrNotFound.Is(err) {
		return err
	}
	for _, a := range voters.Addresses {
		if err := deleteIfExists(f.db, c.b.votes, voteKey(id, a)); err != nil {
			return err
		}
	}
	return deleteIfExists(f.db, c.b.voters, id[:])
}
