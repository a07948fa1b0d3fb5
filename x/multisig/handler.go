package multisig

import (
	"context"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xsigners"
	"github.com/iov-one/xsigners/errors"
)

type route func(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error)

// Handler exposes a wallet as a contract. Every operation and query is
// reachable under the selector of its message name.
type Handler struct {
	ctrl   *Controller
	routes map[xsigners.Selector]route
}

// NewHandler returns a contract dispatching to given controller.
func NewHandler(ctrl *Controller) *Handler {
	h := &Handler{ctrl: ctrl}
	h.routes = map[xsigners.Selector]route{
		xsigners.NewSelector(ProposeTxName):               h.proposeTx,
		xsigners.NewSelector(ApproveTxName):               h.approveTx,
		xsigners.NewSelector(RejectTxName):                h.rejectTx,
		xsigners.NewSelector(TryExecuteTxName):            h.tryExecuteTx,
		xsigners.NewSelector(TryRemoveTxName):             h.tryRemoveTx,
		xsigners.NewSelector(AddOwnerName):                h.addOwner,
		xsigners.NewSelector(RemoveOwnerName):             h.removeOwner,
		xsigners.NewSelector(ChangeThresholdName):         h.changeThreshold,
		xsigners.NewSelector(TransferName):                h.transfer,
		xsigners.NewSelector(GetOwnersName):               h.getOwners,
		xsigners.NewSelector(IsOwnerName):                 h.isOwner,
		xsigners.NewSelector(GetThresholdName):            h.getThreshold,
		xsigners.NewSelector(GetNextTxIDName):             h.getNextTxID,
		xsigners.NewSelector(GetActiveTxIDListName):       h.getActiveTxIDList,
		xsigners.NewSelector(GetTxName):                   h.getTx,
		xsigners.NewSelector(IsTxValidName):               h.isTxValid,
		xsigners.NewSelector(GetTxApprovalsName):          h.getTxApprovals,
		xsigners.NewSelector(GetTxRejectionsName):         h.getTxRejections,
		xsigners.NewSelector(GetTxApprovalForAccountName): h.getTxApprovalForAccount,
	}
	return h
}

// Init creates the wallet. Only a message with Default set creates a
// wallet owned by the caller alone.
func (h *Handler) Init(ctx context.Context, db xsigners.KVStore, input []byte) error {
	var msg CreateMsg
	if err := decode(input, &msg); err != nil {
		return err
	}
	if msg.Default {
		return h.ctrl.CreateDefault(ctx, db)
	}
	owners := make([]xsigners.Address, len(msg.Owners))
	for i, o := range msg.Owners {
		owners[i] = o
	}
	return h.ctrl.Create(ctx, db, msg.Threshold, owners)
}

// Handle routes a call to the operation registered under its selector.
func (h *Handler) Handle(ctx context.Context, db xsigners.KVStore, sel xsigners.Selector, input []byte) ([]byte, error) {
	r, ok := h.routes[sel]
	if !ok {
		return nil, errors.Wrapf(errors.ErrCouldNotReadInput, "unknown selector %s", sel)
	}
	out, err := r(ctx, db, input)
	if err != nil || out == nil {
		return nil, err
	}
	return Encode(out)
}

func (h *Handler) proposeTx(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	var msg ProposeTxMsg
	if err := decode(input, &msg); err != nil {
		return nil, err
	}
	id, err := h.ctrl.Propose(ctx, db, msg.Tx)
	if err != nil {
		return nil, err
	}
	return NewTxMsg(id), nil
}

func (h *Handler) approveTx(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	id, err := decodeTxID(input)
	if err != nil {
		return nil, err
	}
	return nil, h.ctrl.Approve(ctx, db, id)
}

func (h *Handler) rejectTx(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	id, err := decodeTxID(input)
	if err != nil {
		return nil, err
	}
	return nil, h.ctrl.Reject(ctx, db, id)
}

func (h *Handler) tryExecuteTx(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	id, err := decodeTxID(input)
	if err != nil {
		return nil, err
	}
	return nil, h.ctrl.TryExecute(ctx, db, id)
}

func (h *Handler) tryRemoveTx(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	id, err := decodeTxID(input)
	if err != nil {
		return nil, err
	}
	return nil, h.ctrl.TryRemove(ctx, db, id)
}

func (h *Handler) addOwner(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	var msg AddOwnerMsg
	if err := decode(input, &msg); err != nil {
		return nil, err
	}
	return nil, h.ctrl.AddOwner(ctx, db, msg.Owner)
}

func (h *Handler) removeOwner(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	var msg RemoveOwnerMsg
	if err := decode(input, &msg); err != nil {
		return nil, err
	}
	return nil, h.ctrl.RemoveOwner(ctx, db, msg.Owner)
}

func (h *Handler) changeThreshold(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	var msg ChangeThresholdMsg
	if err := decode(input, &msg); err != nil {
		return nil, err
	}
	return nil, h.ctrl.ChangeThreshold(ctx, db, msg.Threshold)
}

func (h *Handler) transfer(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	var msg TransferMsg
	if err := decode(input, &msg); err != nil {
		return nil, err
	}
	return nil, h.ctrl.Transfer(ctx, msg.To, msg.Amount)
}

func (h *Handler) getOwners(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	owners, err := h.ctrl.Owners(db)
	if err != nil {
		return nil, err
	}
	res := &Addresses{Addresses: make([][]byte, len(owners))}
	for i, o := range owners {
		res.Addresses[i] = o
	}
	return res, nil
}

func (h *Handler) isOwner(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	var msg OwnerQueryMsg
	if err := decode(input, &msg); err != nil {
		return nil, err
	}
	ok, err := h.ctrl.IsOwner(db, msg.Owner)
	if err != nil {
		return nil, err
	}
	return &Flag{Value: ok}, nil
}

func (h *Handler) getThreshold(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	t, err := h.ctrl.Threshold(db)
	if err != nil {
		return nil, err
	}
	return &Counter{Count: t}, nil
}

func (h *Handler) getNextTxID(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	id, err := h.ctrl.NextTxID(db)
	if err != nil {
		return nil, err
	}
	return NewTxMsg(id), nil
}

func (h *Handler) getActiveTxIDList(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	ids, err := h.ctrl.ActiveTxIDs(db)
	if err != nil {
		return nil, err
	}
	res := &TxIDs{TxIds: make([][]byte, len(ids))}
	for i, id := range ids {
		res.TxIds[i] = id.Bytes()
	}
	return res, nil
}

func (h *Handler) getTx(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	id, err := decodeTxID(input)
	if err != nil {
		return nil, err
	}
	return h.ctrl.Transaction(db, id)
}

func (h *Handler) isTxValid(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	id, err := decodeTxID(input)
	if err != nil {
		return nil, err
	}
	ok, err := h.ctrl.IsTxValid(db, id)
	if err != nil {
		return nil, err
	}
	return &Flag{Value: ok}, nil
}

func (h *Handler) getTxApprovals(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	id, err := decodeTxID(input)
	if err != nil {
		return nil, err
	}
	n, err := h.ctrl.Approvals(db, id)
	if err != nil {
		return nil, err
	}
	return &Counter{Count: n}, nil
}

func (h *Handler) getTxRejections(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	id, err := decodeTxID(input)
	if err != nil {
		return nil, err
	}
	n, err := h.ctrl.Rejections(db, id)
	if err != nil {
		return nil, err
	}
	return &Counter{Count: n}, nil
}

func (h *Handler) getTxApprovalForAccount(ctx context.Context, db xsigners.KVStore, input []byte) (proto.Message, error) {
	var msg VoteQueryMsg
	if err := decode(input, &msg); err != nil {
		return nil, err
	}
	id, _ := TxIDFromBytes(msg.TxId)
	voted, approved, err := h.ctrl.VoteOf(db, id, msg.Owner)
	if err != nil {
		return nil, err
	}
	return &VoteResult{Voted: voted, Approved: approved}, nil
}

func decodeTxID(input []byte) (TxID, error) {
	var msg TxMsg
	if err := decode(input, &msg); err != nil {
		return TxID{}, err
	}
	return TxIDFromBytes(msg.TxId)
}
