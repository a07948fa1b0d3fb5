package multisig

import (
	"bytes"
	"math/big"
	"strconv"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/orm"
)

const (
	// MaxOwners is the maximum size of the owner set.
	MaxOwners = 10
	// MaxTransactions is the maximum number of transactions that can be
	// awaiting approval at the same time.
	MaxTransactions = 10

	// TxIDLength is the size of a serialized transaction ID.
	TxIDLength = 16
)

// TxID is an unsigned 128 bit transaction counter, big endian encoded.
type TxID [TxIDLength]byte

// NewTxID returns the ID with given numeric value.
func NewTxID(n uint64) TxID {
	var id TxID
	for i := TxIDLength - 1; n != 0; i-- {
		id[i] = byte(n)
		n >>= 8
	}
	return id
}

// MaxTxID is the largest representable transaction ID.
func MaxTxID() TxID {
	var id TxID
	for i := range id {
		id[i] = 0xff
	}
	return id
}

// TxIDFromBytes converts a serialized ID. An empty value is the zero ID.
func TxIDFromBytes(raw []byte) (TxID, error) {
	var id TxID
	switch len(raw) {
	case 0:
		return id, nil
	case TxIDLength:
		copy(id[:], raw)
		return id, nil
	default:
		return id, errors.Wrapf(errors.ErrInput, "transaction id must be %d bytes, got %d", TxIDLength, len(raw))
	}
}

// ParseTxID decodes the decimal representation of an ID.
func ParseTxID(s string) (TxID, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 || n.BitLen() > TxIDLength*8 {
		return TxID{}, errors.Wrapf(errors.ErrInput, "invalid transaction id %q", s)
	}
	var id TxID
	raw := n.Bytes()
	copy(id[TxIDLength-len(raw):], raw)
	return id, nil
}

// Next returns the ID following this one. It fails when the counter would
// wrap around.
func (id TxID) Next() (TxID, error) {
	next := id
	for i := TxIDLength - 1; i >= 0; i-- {
		next[i]++
		if next[i] != 0 {
			return next, nil
		}
	}
	return id, errors.Wrap(ErrTxIDOverflow, id.String())
}

// Bytes returns a copy of the ID as a slice.
func (id TxID) Bytes() []byte {
	b := make([]byte, TxIDLength)
	copy(b, id[:])
	return b
}

// String returns the decimal representation.
func (id TxID) String() string {
	return new(big.Int).SetBytes(id[:]).String()
}

var _ orm.Model = (*Wallet)(nil)

// Validate checks the wallet invariants.
func (m *Wallet) Validate() error {
	switch n := len(m.Owners); {
	case n == 0:
		return errors.Wrap(ErrOwnersCantBeEmpty, "owners")
	case n > MaxOwners:
		return errors.Wrapf(ErrMaxOwnersReached, "%d owners", n)
	}
	if m.Threshold == 0 {
		return errors.Wrap(ErrThresholdCantBeZero, "threshold")
	}
	if int(m.Threshold) > len(m.Owners) {
		return errors.Wrapf(ErrThresholdGreaterThanOwners, "%d > %d", m.Threshold, len(m.Owners))
	}
	if len(m.TxIds) > MaxTransactions {
		return errors.Wrapf(ErrMaxTransactionsReached, "%d transactions", len(m.TxIds))
	}
	var errs error
	for _, o := range m.Owners {
		errs = errors.AppendField(errs, "Owners", xsigners.Address(o).Validate())
	}
	if _, err := TxIDFromBytes(m.NextTxId); err != nil {
		errs = errors.AppendField(errs, "NextTxId", err)
	}
	for _, id := range m.TxIds {
		if len(id) != TxIDLength {
			errs = errors.AppendField(errs, "TxIds", errors.ErrInput)
		}
	}
	return errs
}

func (m *Wallet) hasTx(id TxID) bool {
	return indexOf(m.TxIds, id[:]) >= 0
}

func (m *Wallet) isExecuting(id TxID) bool {
	return indexOf(m.Executing, id[:]) >= 0
}

func indexOf(list [][]byte, item []byte) int {
	for i, e := range list {
		if bytes.Equal(e, item) {
			return i
		}
	}
	return -1
}

// without returns a copy of list with the first occurrence of item removed.
func without(list [][]byte, item []byte) [][]byte {
	i := indexOf(list, item)
	if i < 0 {
		return list
	}
	res := make([][]byte, 0, len(list)-1)
	res = append(res, list[:i]...)
	return append(res, list[i+1:]...)
}

var _ orm.Model = (*Owner)(nil)

func (m *Owner) Validate() error {
	return errors.Wrap(xsigners.Address(m.Address).Validate(), "address")
}

var _ orm.Model = (*Transaction)(nil)

// Validate returns ErrInput if the transaction cannot be dispatched.
func (m *Transaction) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Address", xsigners.Address(m.Address).Validate())
	if _, err := xsigners.SelectorFromBytes(m.Selector); err != nil {
		errs = errors.AppendField(errs, "Selector", err)
	}
	return errs
}

// Call returns the call that executes this transaction.
func (m *Transaction) Call() xsigners.Call {
	sel, _ := xsigners.SelectorFromBytes(m.Selector)
	return xsigners.Call{
		Target:       xsigners.Address(m.Address),
		Selector:     sel,
		Input:        m.Input,
		Value:        m.TransferredValue,
		GasLimit:     m.GasLimit,
		AllowReentry: m.AllowReentry,
	}
}

var _ orm.Model = (*Counter)(nil)

func (m *Counter) Validate() error { return nil }

var _ orm.Model = (*Vote)(nil)

func (m *Vote) Validate() error { return nil }

var _ orm.Model = (*Voters)(nil)

func (m *Voters) Validate() error {
	var errs error
	for i, a := range m.Addresses {
		errs = errors.AppendField(errs, "Addresses."+strconv.Itoa(i), xsigners.Address(a).Validate())
	}
	return errs
}

// walletKey is the primary key of the root state within the wallet key
// space.
var walletKey = []byte("root")

func voteKey(id TxID, owner xsigners.Address) []byte {
	key := make([]byte, 0, TxIDLength+len(owner))
	key = append(key, id[:]...)
	return append(key, owner...)
}

// buckets groups all storage of a single wallet.
type buckets struct {
	wallet     orm.ModelBucket
	owners     orm.ModelBucket
	txs        orm.ModelBucket
	approvals  orm.ModelBucket
	rejections orm.ModelBucket
	votes      orm.ModelBucket
	voters     orm.ModelBucket
}

func newBuckets() buckets {
	return buckets{
		wallet:     orm.NewModelBucket("wallet", &Wallet{}),
		owners:     orm.NewModelBucket("owner", &Owner{}),
		txs:        orm.NewModelBucket("txs", &Transaction{}),
		approvals:  orm.NewModelBucket("approvals", &Counter{}),
		rejections: orm.NewModelBucket("rejections", &Counter{}),
		votes:      orm.NewModelBucket("vote", &Vote{}),
		voters:     orm.NewModelBucket("voters", &Voters{}),
	}
}
