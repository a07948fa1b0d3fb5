package multisig

import (
	"github.com/gogo/protobuf/proto"
)

// The types below mirror codec.proto. They are serialized by the reflection
// based gogo/protobuf marshaler.

type Wallet struct {
	Owners    [][]byte `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
	Threshold uint32   `protobuf:"varint,2,opt,name=threshold,proto3" json:"threshold,omitempty"`
	NextTxId  []byte   `protobuf:"bytes,3,opt,name=next_tx_id,json=nextTxId,proto3" json:"next_tx_id,omitempty"`
	TxIds     [][]byte `protobuf:"bytes,4,rep,name=tx_ids,json=txIds,proto3" json:"tx_ids,omitempty"`
	Executing [][]byte `protobuf:"bytes,5,rep,name=executing,proto3" json:"executing,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

type Owner struct {
	Address []byte `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
}

func (m *Owner) Reset()         { *m = Owner{} }
func (m *Owner) String() string { return proto.CompactTextString(m) }
func (*Owner) ProtoMessage()    {}

type Transaction struct {
	Address          []byte `protobuf:"bytes,1,opt,name=address,proto3" json:"address,omitempty"`
	Selector         []byte `protobuf:"bytes,2,opt,name=selector,proto3" json:"selector,omitempty"`
	Input            []byte `protobuf:"bytes,3,opt,name=input,proto3" json:"input,omitempty"`
	TransferredValue uint64 `protobuf:"varint,4,opt,name=transferred_value,json=transferredValue,proto3" json:"transferred_value,omitempty"`
	GasLimit         uint64 `protobuf:"varint,5,opt,name=gas_limit,json=gasLimit,proto3" json:"gas_limit,omitempty"`
	AllowReentry     bool   `protobuf:"varint,6,opt,name=allow_reentry,json=allowReentry,proto3" json:"allow_reentry,omitempty"`
}

func (m *Transaction) Reset()         { *m = Transaction{} }
func (m *Transaction) String() string { return proto.CompactTextString(m) }
func (*Transaction) ProtoMessage()    {}

type Counter struct {
	Count uint32 `protobuf:"varint,1,opt,name=count,proto3" json:"count,omitempty"`
}

func (m *Counter) Reset()         { *m = Counter{} }
func (m *Counter) String() string { return proto.CompactTextString(m) }
func (*Counter) ProtoMessage()    {}

type Vote struct {
	Approved bool `protobuf:"varint,1,opt,name=approved,proto3" json:"approved,omitempty"`
}

type Voters struct {
	Addresses [][]byte `protobuf:"bytes,1,rep,name=addresses,proto3" json:"addresses,omitempty"`
}

func (m *Voters) Reset()         { *m = Voters{} }
func (m *Voters) String() string { return proto.CompactTextString(m) }
func (*Voters) ProtoMessage()    {}

func (m *Vote) Reset()         { *m = Vote{} }
func (m *Vote) String() string { return proto.CompactTextString(m) }
func (*Vote) ProtoMessage()    {}

type CreateMsg struct {
	Threshold uint32   `protobuf:"varint,1,opt,name=threshold,proto3" json:"threshold,omitempty"`
	Owners    [][]byte `protobuf:"bytes,2,rep,name=owners,proto3" json:"owners,omitempty"`
	Default   bool     `protobuf:"varint,3,opt,name=default,proto3" json:"default,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

type ProposeTxMsg struct {
	Tx *Transaction `protobuf:"bytes,1,opt,name=tx,proto3" json:"tx,omitempty"`
}

func (m *ProposeTxMsg) Reset()         { *m = ProposeTxMsg{} }
func (m *ProposeTxMsg) String() string { return proto.CompactTextString(m) }
func (*ProposeTxMsg) ProtoMessage()    {}

type TxMsg struct {
	TxId []byte `protobuf:"bytes,1,opt,name=tx_id,json=txId,proto3" json:"tx_id,omitempty"`
}

func (m *TxMsg) Reset()         { *m = TxMsg{} }
func (m *TxMsg) String() string { return proto.CompactTextString(m) }
func (*TxMsg) ProtoMessage()    {}

type AddOwnerMsg struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *AddOwnerMsg) Reset()         { *m = AddOwnerMsg{} }
func (m *AddOwnerMsg) String() string { return proto.CompactTextString(m) }
func (*AddOwnerMsg) ProtoMessage()    {}

type RemoveOwnerMsg struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *RemoveOwnerMsg) Reset()         { *m = RemoveOwnerMsg{} }
func (m *RemoveOwnerMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveOwnerMsg) ProtoMessage()    {}

type ChangeThresholdMsg struct {
	Threshold uint32 `protobuf:"varint,1,opt,name=threshold,proto3" json:"threshold,omitempty"`
}

func (m *ChangeThresholdMsg) Reset()         { *m = ChangeThresholdMsg{} }
func (m *ChangeThresholdMsg) String() string { return proto.CompactTextString(m) }
func (*ChangeThresholdMsg) ProtoMessage()    {}

type TransferMsg struct {
	To     []byte `protobuf:"bytes,1,opt,name=to,proto3" json:"to,omitempty"`
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

type OwnerQueryMsg struct {
	Owner []byte `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *OwnerQueryMsg) Reset()         { *m = OwnerQueryMsg{} }
func (m *OwnerQueryMsg) String() string { return proto.CompactTextString(m) }
func (*OwnerQueryMsg) ProtoMessage()    {}

type VoteQueryMsg struct {
	TxId  []byte `protobuf:"bytes,1,opt,name=tx_id,json=txId,proto3" json:"tx_id,omitempty"`
	Owner []byte `protobuf:"bytes,2,opt,name=owner,proto3" json:"owner,omitempty"`
}

func (m *VoteQueryMsg) Reset()         { *m = VoteQueryMsg{} }
func (m *VoteQueryMsg) String() string { return proto.CompactTextString(m) }
func (*VoteQueryMsg) ProtoMessage()    {}

type Addresses struct {
	Addresses [][]byte `protobuf:"bytes,1,rep,name=addresses,proto3" json:"addresses,omitempty"`
}

func (m *Addresses) Reset()         { *m = Addresses{} }
func (m *Addresses) String() string { return proto.CompactTextString(m) }
func (*Addresses) ProtoMessage()    {}

type TxIDs struct {
	TxIds [][]byte `protobuf:"bytes,1,rep,name=tx_ids,json=txIds,proto3" json:"tx_ids,omitempty"`
}

func (m *TxIDs) Reset()         { *m = TxIDs{} }
func (m *TxIDs) String() string { return proto.CompactTextString(m) }
func (*TxIDs) ProtoMessage()    {}

type Flag struct {
	Value bool `protobuf:"varint,1,opt,name=value,proto3" json:"value,omitempty"`
}

func (m *Flag) Reset()         { *m = Flag{} }
func (m *Flag) String() string { return proto.CompactTextString(m) }
func (*Flag) ProtoMessage()    {}

type VoteResult struct {
	Voted    bool `protobuf:"varint,1,opt,name=voted,proto3" json:"voted,omitempty"`
	Approved bool `protobuf:"varint,2,opt,name=approved,proto3" json:"approved,omitempty"`
}

func (m *VoteResult) Reset()         { *m = VoteResult{} }
func (m *VoteResult) String() string { return proto.CompactTextString(m) }
func (*VoteResult) ProtoMessage()    {}
