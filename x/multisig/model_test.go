package multisig

import (
	"testing"

	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
	"github.com/iov-one/xsigners/weavetest"
	"github.com/iov-one/xsigners/weavetest/assert"
)

func TestTxIDNext(t *testing.T) {
	cases := map[string]struct {
		ID      TxID
		Want    TxID
		WantErr *errors.Error
	}{
		"zero": {
			ID:   NewTxID(0),
			Want: NewTxID(1),
		},
		"byte carry": {
			ID:   NewTxID(0xff),
			Want: NewTxID(0x100),
		},
		"beyond 64 bits": {
			ID:   NewTxID(^uint64(0)),
			Want: TxID{7: 1},
		},
		"maximum": {
			ID:      MaxTxID(),
			WantErr: ErrTxIDOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.ID.Next()
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr == nil {
				assert.Equal(t, tc.Want, got)
			}
		})
	}
}

func TestTxIDEncoding(t *testing.T) {
	cases := map[string]struct {
		Raw     string
		Want    TxID
		WantErr *errors.Error
	}{
		"zero":         {Raw: "0", Want: TxID{}},
		"small":        {Raw: "258", Want: NewTxID(258)},
		"maximum":      {Raw: "340282366920938463463374607431768211455", Want: MaxTxID()},
		"too big":      {Raw: "340282366920938463463374607431768211456", WantErr: errors.ErrInput},
		"negative":     {Raw: "-1", WantErr: errors.ErrInput},
		"not a number": {Raw: "ten", WantErr: errors.ErrInput},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseTxID(tc.Raw)
			assert.IsErr(t, tc.WantErr, err)
			if tc.WantErr != nil {
				return
			}
			assert.Equal(t, tc.Want, got)
			assert.Equal(t, tc.Raw, got.String())

			back, err := TxIDFromBytes(got.Bytes())
			assert.Nil(t, err)
			assert.Equal(t, got, back)
		})
	}
}

func TestTxIDFromBytes(t *testing.T) {
	id, err := TxIDFromBytes(nil)
	assert.Nil(t, err)
	assert.Equal(t, TxID{}, id)

	_, err = TxIDFromBytes([]byte{1, 2, 3})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestWalletValidate(t *testing.T) {
	owners := func(n int) [][]byte {
		var res [][]byte
		for _, a := range weavetest.NewAddresses(n) {
			res = append(res, a)
		}
		return res
	}

	cases := map[string]struct {
		Wallet  Wallet
		WantErr *errors.Error
	}{
		"valid": {
			Wallet: Wallet{Owners: owners(3), Threshold: 2, NextTxId: NewTxID(4).Bytes()},
		},
		"no owners": {
			Wallet:  Wallet{Threshold: 1},
			WantErr: ErrOwnersCantBeEmpty,
		},
		"too many owners": {
			Wallet:  Wallet{Owners: owners(MaxOwners + 1), Threshold: 1},
			WantErr: ErrMaxOwnersReached,
		},
		"zero threshold": {
			Wallet:  Wallet{Owners: owners(1)},
			WantErr: ErrThresholdCantBeZero,
		},
		"threshold above owner count": {
			Wallet:  Wallet{Owners: owners(1), Threshold: 2},
			WantErr: ErrThresholdGreaterThanOwners,
		},
		"too many transactions": {
			Wallet: Wallet{
				Owners:    owners(1),
				Threshold: 1,
				TxIds:     make([][]byte, MaxTransactions+1),
			},
			WantErr: ErrMaxTransactionsReached,
		},
		"invalid owner": {
			Wallet:  Wallet{Owners: [][]byte{[]byte("foo")}, Threshold: 1},
			WantErr: errors.ErrInput,
		},
		"invalid next id": {
			Wallet:  Wallet{Owners: owners(1), Threshold: 1, NextTxId: []byte{1}},
			WantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.WantErr, tc.Wallet.Validate())
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	sel := xsigners.NewSelector("flip").Bytes()

	cases := map[string]struct {
		Tx      Transaction
		WantErr map[string]*errors.Error
	}{
		"valid": {
			Tx: Transaction{Address: weavetest.NewAddress(), Selector: sel},
			WantErr: map[string]*errors.Error{
				"Address":  nil,
				"Selector": nil,
			},
		},
		"missing address": {
			Tx: Transaction{Selector: sel},
			WantErr: map[string]*errors.Error{
				"Address":  errors.ErrInput,
				"Selector": nil,
			},
		},
		"short selector": {
			Tx: Transaction{Address: weavetest.NewAddress(), Selector: sel[:3]},
			WantErr: map[string]*errors.Error{
				"Address":  nil,
				"Selector": errors.ErrInput,
			},
		},
		"empty": {
			WantErr: map[string]*errors.Error{
				"Address":  errors.ErrInput,
				"Selector": errors.ErrInput,
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Tx.Validate()
			for field, want := range tc.WantErr {
				assert.FieldError(t, err, field, want)
			}
		})
	}
}

func TestTransactionCall(t *testing.T) {
	target := weavetest.NewAddress()
	sel := xsigners.NewSelector("flip")
	tx := Transaction{
		Address:          target,
		Selector:         sel.Bytes(),
		Input:            []byte("in"),
		TransferredValue: 5,
		GasLimit:         7,
		AllowReentry:     true,
	}
	want := xsigners.Call{
		Target:       target,
		Selector:     sel,
		Input:        []byte("in"),
		Value:        5,
		GasLimit:     7,
		AllowReentry: true,
	}
	assert.Equal(t, want, tx.Call())
}

func TestWithout(t *testing.T) {
	list := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	assert.Equal(t, [][]byte{[]byte("a"), []byte("c")}, without(list, []byte("b")))
	assert.Equal(t, 3, len(without(list, []byte("x"))))
	assert.Equal(t, -1, indexOf(list, []byte("x")))
	assert.Equal(t, 2, indexOf(list, []byte("c")))
}
