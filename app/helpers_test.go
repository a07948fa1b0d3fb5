package app

import (
	"context"
	"encoding/binary"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/tendermint/tendermint/libs/common"
)

var (
	selIncr       = xsigners.NewSelector("incr")
	selGet        = xsigners.NewSelector("get")
	selFail       = xsigners.NewSelector("fail")
	selUnreadable = xsigners.NewSelector("unreadable")
	selPanic      = xsigners.NewSelector("panic")
	selLoop       = xsigners.NewSelector("loop")
	selCall       = xsigners.NewSelector("call")
	selRecurse    = xsigners.NewSelector("recurse")
	selPay        = xsigners.NewSelector("pay")
)

// testContract keeps a counter and calls other contracts on request.
type testContract struct {
	ledger *Ledger
}

func (c testContract) Init(ctx context.Context, db xsigners.KVStore, input []byte) error {
	if string(input) == "fail" {
		return errors.Wrap(errors.ErrInput, "init refused")
	}
	return nil
}

func (c testContract) Handle(ctx context.Context, db xsigners.KVStore, sel xsigners.Selector, input []byte) ([]byte, error) {
	switch sel {
	case selIncr:
		n := incr(db, "n")
		c.ledger.Emit(ctx, pinged{n: n})
		return nil, nil
	case selGet:
		return db.Get([]byte("n"))
	case selFail:
		incr(db, "n")
		c.ledger.Emit(ctx, pinged{})
		return nil, errors.Wrap(errors.ErrState, "refused")
	case selUnreadable:
		incr(db, "n")
		return nil, errors.Wrap(errors.ErrCouldNotReadInput, "garbage")
	case selPanic:
		panic("boom")
	case selLoop:
		for {
			incr(db, "n")
		}
	case selCall:
		n := incr(db, "n")
		c.ledger.Emit(ctx, pinged{n: n})
		out, err := c.ledger.Invoke(ctx, decodeCall(input))
		if err != nil {
			return []byte(outcome(err)), nil
		}
		return out, nil
	case selRecurse:
		incr(db, "n")
		self, _ := xsigners.GetContract(ctx)
		out, err := c.ledger.Invoke(ctx, xsigners.Call{Target: self, Selector: selRecurse, AllowReentry: true})
		if err != nil {
			return []byte(outcome(err)), nil
		}
		return out, nil
	case selPay:
		to := xsigners.Address(input[:xsigners.AddressLength])
		amount := binary.BigEndian.Uint64(input[xsigners.AddressLength:])
		if err := c.ledger.Transfer(ctx, to, amount); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return nil, errors.Wrap(errors.ErrCouldNotReadInput, "unknown selector")
}

func incr(db xsigners.KVStore, key string) int {
	raw, err := db.Get([]byte(key))
	if err != nil {
		panic(err)
	}
	var n uint64
	if raw != nil {
		n = binary.BigEndian.Uint64(raw)
	}
	n++
	raw = make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	if err := db.Set([]byte(key), raw); err != nil {
		panic(err)
	}
	return int(n)
}

func counterValue(n uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return raw
}

// encodeCall serializes a call for the "call" selector.
func encodeCall(target xsigners.Address, allowReentry bool, sel xsigners.Selector, input []byte) []byte {
	raw := append([]byte{}, target...)
	if allowReentry {
		raw = append(raw, 1)
	} else {
		raw = append(raw, 0)
	}
	raw = append(raw, sel[:]...)
	return append(raw, input...)
}

func decodeCall(raw []byte) xsigners.Call {
	n := xsigners.AddressLength
	sel, _ := xsigners.SelectorFromBytes(raw[n+1 : n+1+xsigners.SelectorLength])
	return xsigners.Call{
		Target:       xsigners.Address(raw[:n]),
		AllowReentry: raw[n] == 1,
		Selector:     sel,
		Input:        raw[n+1+xsigners.SelectorLength:],
	}
}

func payInput(to xsigners.Address, amount uint64) []byte {
	raw := append([]byte{}, to...)
	return append(raw, counterValue(amount)...)
}

func outcome(err error) string {
	switch {
	case errors.ErrCalleeTrapped.Is(err):
		return "trapped"
	case errors.ErrCalleeReverted.Is(err):
		return "reverted"
	case errors.ErrNotCallable.Is(err):
		return "not_callable"
	case errors.ErrTransferFailed.Is(err):
		return "transfer_failed"
	case errors.ErrCouldNotReadInput.Is(err):
		return "unreadable"
	default:
		return "other"
	}
}

type pinged struct {
	n int
}

func (pinged) EventName() string { return "Pinged" }

func (p pinged) Tags() []common.KVPair {
	return []common.KVPair{{Key: []byte("n"), Value: counterValue(uint64(p.n))}}
}
