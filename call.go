package xsigners

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/xsigners/errors"
	"github.com/tendermint/tendermint/libs/common"
	"golang.org/x/crypto/blake2b"
)

// SelectorLength is the size of a message selector in bytes.
const SelectorLength = 4

// Selector identifies the message a contract is called with.
type Selector [SelectorLength]byte

// NewSelector returns the selector of the message with given name: the first
// four bytes of the BLAKE2b-256 digest of the name.
func NewSelector(name string) Selector {
	h := blake2b.Sum256([]byte(name))
	var s Selector
	copy(s[:], h[:SelectorLength])
	return s
}

// SelectorFromBytes converts a raw selector. It fails unless exactly four
// bytes are given.
func SelectorFromBytes(raw []byte) (Selector, error) {
	var s Selector
	if len(raw) != SelectorLength {
		return s, errors.Wrapf(errors.ErrInput, "selector must be %d bytes, got %d", SelectorLength, len(raw))
	}
	copy(s[:], raw)
	return s, nil
}

// ParseSelector accepts a hex encoded selector, optionally prefixed with
// "0x".
func ParseSelector(enc string) (Selector, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(enc, "0x"))
	if err != nil {
		return Selector{}, errors.Wrapf(errors.ErrInput, "selector: %s", err)
	}
	return SelectorFromBytes(raw)
}

// Bytes returns a copy of the selector as a slice.
func (s Selector) Bytes() []byte {
	b := make([]byte, SelectorLength)
	copy(b, s[:])
	return b
}

func (s Selector) String() string {
	return "0x" + hex.EncodeToString(s[:])
}

// Call describes a single call from one contract into another.
type Call struct {
	// Target is the address of the called contract.
	Target Address
	// Selector picks the message of the called contract.
	Selector Selector
	// Input is the encoded message, opaque to the caller.
	Input []byte
	// Value is transferred from the caller to the target together with
	// the call.
	Value uint64
	// GasLimit bounds the work the callee may perform. Zero means no
	// limit.
	GasLimit uint64
	// AllowReentry permits the callee, or anything it calls, to call back
	// into the caller while this call is in progress.
	AllowReentry bool
}

// Validate returns an error if the call cannot be dispatched.
func (c Call) Validate() error {
	return errors.Wrap(c.Target.Validate(), "target")
}

// Event is a domain event published by a contract. Events are buffered by
// the ledger and only published when the call that emitted them succeeds.
type Event interface {
	// EventName returns the name the event is published under.
	EventName() string
	// Tags returns the indexed attributes of the event.
	Tags() []common.KVPair
}
