package cash

import (
	"math"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/orm"
)

// BucketName is where balances are stored.
const BucketName = "cash"

var _ orm.Model = (*Account)(nil)

// Validate implements orm.Model. Any amount is valid.
func (m *Account) Validate() error {
	return nil
}

// Controller reads and moves balances.
type Controller struct {
	bucket orm.ModelBucket
}

// NewController returns a controller using the default bucket.
func NewController() *Controller {
	return &Controller{
		bucket: orm.NewModelBucket(BucketName, &Account{}),
	}
}

// Balance returns the funds held by given address. Unknown addresses hold
// nothing.
func (c *Controller) Balance(db xsigners.ReadOnlyKVStore, a xsigners.Address) (uint64, error) {
	var acc Account
	switch err := c.bucket.One(db, a, &acc); {
	case err == nil:
		return acc.Amount, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// Transfer moves amount from src to dest. Moving nothing always succeeds.
func (c *Controller) Transfer(db xsigners.KVStore, src, dest xsigners.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(ErrInvalidAccount, err.Error())
	}
	have, err := c.Balance(db, src)
	if err != nil {
		return err
	}
	if have < amount {
		return errors.Wrapf(ErrInsufficientFunds, "%s has %d, needs %d", src, have, amount)
	}
	if src.Equals(dest) {
		return nil
	}
	got, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	if got > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}
	if err := c.set(db, src, have-amount); err != nil {
		return err
	}
	return c.set(db, dest, got+amount)
}

// Issue creates funds out of thin air. It is used by genesis and tests.
func (c *Controller) Issue(db xsigners.KVStore, dest xsigners.Address, amount uint64) error {
	if err := dest.Validate(); err != nil {
		return errors.Wrap(ErrInvalidAccount, err.Error())
	}
	got, err := c.Balance(db, dest)
	if err != nil {
		return err
	}
	if got > math.MaxUint64-amount {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", dest)
	}
	return c.set(db, dest, got+amount)
}

func (c *Controller) set(db xsigners.KVStore, a xsigners.Address, amount uint64) error {
	return errors.Wrap(c.bucket.Put(db, a, &Account{Amount: amount}), "account")
}
