package multisig

import (
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/orm"
)

func (c *Controller) wallet(db xsigners.ReadOnlyKVStore) (*Wallet, error) {
	var w Wallet
	if err := c.b.wallet.One(db, walletKey, &w); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(errors.ErrState, "wallet not created")
		}
		return nil, err
	}
	return &w, nil
}

// Owners returns the owner list in insertion order.
func (c *Controller) Owners(db xsigners.ReadOnlyKVStore) ([]xsigners.Address, error) {
	w, err := c.wallet(db)
	if err != nil {
		return nil, err
	}
	res := make([]xsigners.Address, len(w.Owners))
	for i, o := range w.Owners {
		res[i] = o
	}
	return res, nil
}

// IsOwner returns true if given address belongs to the owner set.
func (c *Controller) IsOwner(db xsigners.ReadOnlyKVStore, a xsigners.Address) (bool, error) {
	switch err := c.b.owners.Has(db, a); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Threshold returns the number of approvals required for execution.
func (c *Controller) Threshold(db xsigners.ReadOnlyKVStore) (uint32, error) {
	w, err := c.wallet(db)
	if err != nil {
		return 0, err
	}
	return w.Threshold, nil
}

// NextTxID returns the ID the next proposed transaction receives.
func (c *Controller) NextTxID(db xsigners.ReadOnlyKVStore) (TxID, error) {
	w, err := c.wallet(db)
	if err != nil {
		return TxID{}, err
	}
	return TxIDFromBytes(w.NextTxId)
}

// ActiveTxIDs returns the IDs of all transactions awaiting a decision, in
// proposal order.
func (c *Controller) ActiveTxIDs(db xsigners.ReadOnlyKVStore) ([]TxID, error) {
	w, err := c.wallet(db)
	if err != nil {
		return nil, err
	}
	res := make([]TxID, 0, len(w.TxIds))
	for _, raw := range w.TxIds {
		id, err := TxIDFromBytes(raw)
		if err != nil {
			return nil, err
		}
		res = append(res, id)
	}
	return res, nil
}

// Transaction returns an active transaction.
func (c *Controller) Transaction(db xsigners.ReadOnlyKVStore, id TxID) (*Transaction, error) {
	var tx Transaction
	if err := c.b.txs.One(db, id[:], &tx); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrInvalidTxID, "%s", id)
		}
		return nil, err
	}
	return &tx, nil
}

// IsTxValid returns true if the ID references an active transaction.
func (c *Controller) IsTxValid(db xsigners.ReadOnlyKVStore, id TxID) (bool, error) {
	switch err := c.b.txs.Has(db, id[:]); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// Approvals returns the number of approvals of an active transaction.
func (c *Controller) Approvals(db xsigners.ReadOnlyKVStore, id TxID) (uint32, error) {
	return c.counter(db, c.b.approvals, id)
}

// Rejections returns the number of rejections of an active transaction.
func (c *Controller) Rejections(db xsigners.ReadOnlyKVStore, id TxID) (uint32, error) {
	return c.counter(db, c.b.rejections, id)
}

func (c *Controller) counter(db xsigners.ReadOnlyKVStore, b orm.ModelBucket, id TxID) (uint32, error) {
	var cnt Counter
	if err := b.One(db, id[:], &cnt); err != nil {
		if errors.ErrNotFound.Is(err) {
			return 0, errors.Wrapf(ErrInvalidTxID, "%s", id)
		}
		return 0, err
	}
	return cnt.Count, nil
}

// VoteOf returns the vote of an owner on an active transaction. Voted is
// false if the owner did not vote yet.
func (c *Controller) VoteOf(db xsigners.ReadOnlyKVStore, id TxID, owner xsigners.Address) (voted bool, approved bool, err error) {
	var v Vote
	switch err := c.b.votes.One(db, voteKey(id, owner), &v); {
	case err == nil:
		return true, v.Approved, nil
	case errors.ErrNotFound.Is(err):
		return false, false, nil
	default:
		return false, false, err
	}
}
