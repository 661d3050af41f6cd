package cash

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/coin"
	proto "github.com/gogo/protobuf/proto"
)

// Set keeps the currency balances of a single wallet. The structure is
// hand-maintained together with codec.proto.
type Set struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Coins    []*coin.Coin    `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (s *Set) GetMetadata() *fibon.Metadata { return s.Metadata }

func (s *Set) Marshal() ([]byte, error) {
	return proto.Marshal((*setPB)(s))
}

func (s *Set) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*setPB)(s))
}

type setPB Set

func (s *setPB) Reset()         { *s = setPB{} }
func (s *setPB) String() string { return proto.CompactTextString(s) }
func (*setPB) ProtoMessage()    {}

// SendMsg is a request to move tokens between two wallets.
type SendMsg struct {
	Metadata    *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Source      fibon.Address   `protobuf:"bytes,2,opt,name=source,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"source,omitempty"`
	Destination fibon.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"destination,omitempty"`
	Amount      *coin.Coin      `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// Memo is a max 128 characters long free form note attached to the
	// payment.
	Memo string `protobuf:"bytes,5,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *SendMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*sendMsgPB)(m))
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*sendMsgPB)(m))
}

type sendMsgPB SendMsg

func (m *sendMsgPB) Reset()         { *m = sendMsgPB{} }
func (m *sendMsgPB) String() string { return proto.CompactTextString(m) }
func (*sendMsgPB) ProtoMessage()    {}
