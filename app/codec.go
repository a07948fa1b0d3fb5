package app

import (
	"github.com/gogo/protobuf/proto"
)

// The types below mirror codec.proto.

type ContractInfo struct {
	Code string `protobuf:"bytes,1,opt,name=code,proto3" json:"code,omitempty"`
}

func (m *ContractInfo) Reset()         { *m = ContractInfo{} }
func (m *ContractInfo) String() string { return proto.CompactTextString(m) }
func (*ContractInfo) ProtoMessage()    {}

type Sequence struct {
	Next uint64 `protobuf:"varint,1,opt,name=next,proto3" json:"next,omitempty"`
}

func (m *Sequence) Reset()         { *m = Sequence{} }
func (m *Sequence) String() string { return proto.CompactTextString(m) }
func (*Sequence) ProtoMessage()    {}

type SignedTx struct {
	PubKey       []byte `protobuf:"bytes,1,opt,name=pub_key,json=pubKey,proto3" json:"pub_key,omitempty"`
	Signature    []byte `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
	Nonce        uint64 `protobuf:"varint,3,opt,name=nonce,proto3" json:"nonce,omitempty"`
	Target       []byte `protobuf:"bytes,4,opt,name=target,proto3" json:"target,omitempty"`
	Selector     []byte `protobuf:"bytes,5,opt,name=selector,proto3" json:"selector,omitempty"`
	Input        []byte `protobuf:"bytes,6,opt,name=input,proto3" json:"input,omitempty"`
	Value        uint64 `protobuf:"varint,7,opt,name=value,proto3" json:"value,omitempty"`
	GasLimit     uint64 `protobuf:"varint,8,opt,name=gas_limit,json=gasLimit,proto3" json:"gas_limit,omitempty"`
	AllowReentry bool   `protobuf:"varint,9,opt,name=allow_reentry,json=allowReentry,proto3" json:"allow_reentry,omitempty"`
}

func (m *SignedTx) Reset()         { *m = SignedTx{} }
func (m *SignedTx) String() string { return proto.CompactTextString(m) }
func (*SignedTx) ProtoMessage()    {}

type QueryCall struct {
	Target   []byte `protobuf:"bytes,1,opt,name=target,proto3" json:"target,omitempty"`
	Selector []byte `protobuf:"bytes,2,opt,name=selector,proto3" json:"selector,omitempty"`
	Input    []byte `protobuf:"bytes,3,opt,name=input,proto3" json:"input,omitempty"`
}

func (m *QueryCall) Reset()         { *m = QueryCall{} }
func (m *QueryCall) String() string { return proto.CompactTextString(m) }
func (*QueryCall) ProtoMessage()    {}

type GasConfig struct {
	ReadCost  uint64 `protobuf:"varint,1,opt,name=read_cost,json=readCost,proto3" json:"read_cost,omitempty"`
	WriteCost uint64 `protobuf:"varint,2,opt,name=write_cost,json=writeCost,proto3" json:"write_cost,omitempty"`
	ByteCost  uint64 `protobuf:"varint,3,opt,name=byte_cost,json=byteCost,proto3" json:"byte_cost,omitempty"`
}

func (m *GasConfig) Reset()         { *m = GasConfig{} }
func (m *GasConfig) String() string { return proto.CompactTextString(m) }
func (*GasConfig) ProtoMessage()    {}
