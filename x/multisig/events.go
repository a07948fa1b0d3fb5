package multisig

import (
	"strconv"

	"github.com/iov-one/xsigners"
	"github.com/tendermint/tendermint/libs/common"
)

func tag(key, value string) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: []byte(value)}
}

// OwnerAdded is emitted when a new owner joins the wallet.
type OwnerAdded struct {
	Owner xsigners.Address
}

func (OwnerAdded) EventName() string { return "OwnerAdded" }

func (e OwnerAdded) Tags() []common.KVPair {
	return []common.KVPair{tag("owner", e.Owner.String())}
}

// OwnerRemoved is emitted when an owner leaves the wallet.
type OwnerRemoved struct {
	Owner xsigners.Address
}

func (OwnerRemoved) EventName() string { return "OwnerRemoved" }

func (e OwnerRemoved) Tags() []common.KVPair {
	return []common.KVPair{tag("owner", e.Owner.String())}
}

// ThresholdChanged is emitted when the number of required approvals
// changes.
type ThresholdChanged struct {
	Threshold uint32
}

func (ThresholdChanged) EventName() string { return "ThresholdChanged" }

func (e ThresholdChanged) Tags() []common.KVPair {
	return []common.KVPair{tag("threshold", strconv.FormatUint(uint64(e.Threshold), 10))}
}

// TransactionProposed carries the full content of a new transaction.
type TransactionProposed struct {
	TxID TxID
	Tx   Transaction
}

func (TransactionProposed) EventName() string { return "TransactionProposed" }

func (e TransactionProposed) Tags() []common.KVPair {
	return []common.KVPair{
		tag("tx_id", e.TxID.String()),
		tag("contract_address", xsigners.Address(e.Tx.Address).String()),
		tag("selector", e.Tx.Call().Selector.String()),
		tag("transferred_value", strconv.FormatUint(e.Tx.TransferredValue, 10)),
		tag("gas_limit", strconv.FormatUint(e.Tx.GasLimit, 10)),
		tag("allow_reentry", strconv.FormatBool(e.Tx.AllowReentry)),
	}
}

// Approve is emitted for every approval vote.
type Approve struct {
	TxID  TxID
	Owner xsigners.Address
}

func (Approve) EventName() string { return "Approve" }

func (e Approve) Tags() []common.KVPair {
	return []common.KVPair{tag("tx_id", e.TxID.String()), tag("owner", e.Owner.String())}
}

// Reject is emitted for every rejection vote.
type Reject struct {
	TxID  TxID
	Owner xsigners.Address
}

func (Reject) EventName() string { return "Reject" }

func (e Reject) Tags() []common.KVPair {
	return []common.KVPair{tag("tx_id", e.TxID.String()), tag("owner", e.Owner.String())}
}

// TransactionExecuted carries the outcome of a dispatched transaction.
type TransactionExecuted struct {
	TxID   TxID
	Result TxResult
}

func (TransactionExecuted) EventName() string { return "TransactionExecuted" }

func (e TransactionExecuted) Tags() []common.KVPair {
	return []common.KVPair{tag("tx_id", e.TxID.String()), tag("result", e.Result.Outcome())}
}

// TransactionRemoved is emitted when a transaction record is purged, after
// execution or cancellation.
type TransactionRemoved struct {
	TxID TxID
}

func (TransactionRemoved) EventName() string { return "TransactionRemoved" }

func (e TransactionRemoved) Tags() []common.KVPair {
	return []common.KVPair{tag("tx_id", e.TxID.String())}
}

// Transfer is emitted when the wallet moved funds it holds.
type Transfer struct {
	To    xsigners.Address
	Value uint64
}

func (Transfer) EventName() string { return "Transfer" }

func (e Transfer) Tags() []common.KVPair {
	return []common.KVPair{tag("to", e.To.String()), tag("value", strconv.FormatUint(e.Value, 10))}
}
