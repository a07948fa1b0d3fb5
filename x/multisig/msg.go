package multisig

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
)

// Message names. The selector of a message is derived from its name.
const (
	ProposeTxName               = "propose_tx"
	ApproveTxName               = "approve_tx"
	RejectTxName                = "reject_tx"
	TryExecuteTxName            = "try_execute_tx"
	TryRemoveTxName             = "try_remove_tx"
	AddOwnerName                = "add_owner"
	RemoveOwnerName             = "remove_owner"
	ChangeThresholdName         = "change_threshold"
	TransferName                = "transfer"
	GetOwnersName               = "get_owners"
	IsOwnerName                 = "is_owner"
	GetThresholdName            = "get_threshold"
	GetNextTxIDName             = "get_next_tx_id"
	GetActiveTxIDListName       = "get_active_txid_list"
	GetTxName                   = "get_tx"
	IsTxValidName               = "is_tx_valid"
	GetTxApprovalsName          = "get_tx_approvals"
	GetTxRejectionsName         = "get_tx_rejections"
	GetTxApprovalForAccountName = "get_tx_approval_for_account"
)

// Encode serializes a message passed to or returned by a wallet.
func Encode(m proto.Message) ([]byte, error) {
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return raw, nil
}

// decode loads the input of a call into msg. Any failure means the wallet
// could not read its input.
func decode(input []byte, msg proto.Message) error {
	if err := proto.Unmarshal(input, msg); err != nil {
		return errors.Wrapf(errors.ErrCouldNotReadInput, "%T: %s", msg, err)
	}
	if v, ok := msg.(interface{ Validate() error }); ok {
		if err := v.Validate(); err != nil {
			return errors.Wrapf(errors.ErrCouldNotReadInput, "%T: %s", msg, err)
		}
	}
	return nil
}

func txID(raw []byte) (TxID, error) {
	if len(raw) != TxIDLength {
		return TxID{}, errors.Wrapf(errors.ErrInput, "transaction id must be %d bytes", TxIDLength)
	}
	return TxIDFromBytes(raw)
}

func (m *CreateMsg) Validate() error {
	var errs error
	if m.Default && (m.Threshold != 0 || len(m.Owners) != 0) {
		errs = errors.AppendField(errs, "Default", errors.Wrap(errors.ErrInput, "owners and threshold must be empty"))
	}
	for _, o := range m.Owners {
		errs = errors.AppendField(errs, "Owners", xsigners.Address(o).Validate())
	}
	return errs
}

func (m *ProposeTxMsg) Validate() error {
	if m.Tx == nil {
		return errors.Field("Tx", errors.ErrEmpty, "required")
	}
	return nil
}

func (m *TxMsg) Validate() error {
	_, err := txID(m.TxId)
	return errors.Field("TxId", err, "")
}

// NewTxMsg returns a message referencing given transaction.
func NewTxMsg(id TxID) *TxMsg {
	return &TxMsg{TxId: id.Bytes()}
}

func (m *AddOwnerMsg) Validate() error {
	return errors.Field("Owner", xsigners.Address(m.Owner).Validate(), "")
}

func (m *RemoveOwnerMsg) Validate() error {
	return errors.Field("Owner", xsigners.Address(m.Owner).Validate(), "")
}

func (m *TransferMsg) Validate() error {
	return errors.Field("To", xsigners.Address(m.To).Validate(), "")
}

func (m *OwnerQueryMsg) Validate() error {
	return errors.Field("Owner", xsigners.Address(m.Owner).Validate(), "")
}

func (m *VoteQueryMsg) Validate() error {
	var errs error
	_, err := txID(m.TxId)
	errs = errors.AppendField(errs, "TxId", err)
	errs = errors.AppendField(errs, "Owner", xsigners.Address(m.Owner).Validate())
	return errs
}
