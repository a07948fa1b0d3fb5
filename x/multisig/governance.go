package multisig

import (
	"context"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
)

// ensureSelf allows only calls made by the wallet itself, that is by an
// approved transaction targeting the wallet.
func ensureSelf(ctx context.Context) error {
	self, ok := xsigners.GetContract(ctx)
	if !ok {
		return errors.Wrap(errors.ErrState, "no wallet address")
	}
	caller, _ := xsigners.GetCaller(ctx)
	if !caller.Equals(self) {
		return errors.Wrapf(ErrUnauthorized, "caller %s", caller)
	}
	return nil
}

// AddOwner appends an owner to the owner set.
func (c *Controller) AddOwner(ctx context.Context, db xsigners.KVStore, owner xsigners.Address) error {
	if err := ensureSelf(ctx); err != nil {
		return err
	}
	f, err := c.load(ctx, db)
	if err != nil {
		return err
	}
	if len(f.wallet.Owners) >= MaxOwners {
		return errors.Wrapf(ErrMaxOwnersReached, "%d owners", len(f.wallet.Owners))
	}
	switch ok, err := f.isOwner(owner); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(ErrOwnerAlreadyExists, "%s", owner)
	}
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}

	if err := c.b.owners.Put(db, owner, &Owner{Address: owner}); err != nil {
		return errors.Wrap(err, "owner")
	}
	f.wallet.Owners = append(f.wallet.Owners, owner.Clone())
	c.events.Emit(ctx, OwnerAdded{Owner: owner})
	return f.flush()
}

// RemoveOwner removes an owner from the owner set. The last owner cannot be
// removed and the threshold must remain satisfiable.
func (c *Controller) RemoveOwner(ctx context.Context, db xsigners.KVStore, owner xsigners.Address) error {
	if err := ensureSelf(ctx); err != nil {
		return err
	}
	f, err := c.load(ctx, db)
	if err != nil {
		return err
	}
	if err := f.ensureOwner(owner); err != nil {
		return err
	}
	if len(f.wallet.Owners) == 1 {
		return errors.Wrap(ErrOwnersCantBeEmpty, "last owner")
	}
	if int(f.wallet.Threshold) > len(f.wallet.Owners)-1 {
		return errors.Wrapf(ErrThresholdGreaterThanOwners, "%d > %d", f.wallet.Threshold, len(f.wallet.Owners)-1)
	}

	if err := c.b.owners.Delete(db, owner); err != nil {
		return errors.Wrap(err, "owner")
	}
	f.wallet.Owners = without(f.wallet.Owners, owner)
	c.events.Emit(ctx, OwnerRemoved{Owner: owner})
	return f.flush()
}

// ChangeThreshold sets the number of approvals required to execute a
// transaction.
func (c *Controller) ChangeThreshold(ctx context.Context, db xsigners.KVStore, threshold uint32) error {
	if err := ensureSelf(ctx); err != nil {
		return err
	}
	f, err := c.load(ctx, db)
	if err != nil {
		return err
	}
	if int(threshold) > len(f.wallet.Owners) {
		return errors.Wrapf(ErrThresholdGreaterThanOwners, "%d > %d", threshold, len(f.wallet.Owners))
	}
	if threshold == 0 {
		return errors.Wrap(ErrThresholdCantBeZero, "change")
	}
	f.wallet.Threshold = threshold
	c.events.Emit(ctx, ThresholdChanged{Threshold: threshold})
	return f.flush()
}

// Transfer moves funds held by the wallet.
func (c *Controller) Transfer(ctx context.Context, to xsigners.Address, amount uint64) error {
	if err := ensureSelf(ctx); err != nil {
		return err
	}
	if err := c.host.Transfer(ctx, to, amount); err != nil {
		return errors.Wrap(ErrTransferFailed, err.Error())
	}
	c.events.Emit(ctx, Transfer{To: to, Value: amount})
	return nil
}
