package weavetest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/xsigners"
)

var sequence uint64

// NewCondition returns a unique condition. Each call returns a different
// value, so that tests do not need to care about collisions.
func NewCondition() xsigners.Condition {
	n := atomic.AddUint64(&sequence, 1)
	return xsigners.NewCondition("test", "acct", SequenceID(n))
}

// NewAddress returns the address of a unique condition.
func NewAddress() xsigners.Address {
	return NewCondition().Address()
}

// NewAddresses returns n unique addresses.
func NewAddresses(n int) []xsigners.Address {
	res := make([]xsigners.Address, n)
	for i := range res {
		res[i] = NewAddress()
	}
	return res
}

// SequenceID returns an ID encoded as if it was generated by a sequence.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
