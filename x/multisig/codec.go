package multisig

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/coin"
	proto "github.com/gogo/protobuf/proto"
)

// Wallet is a multi signature account. Funds deposited to the wallet
// address can only leave it through a transaction that collected enough
// owner approvals. All structures in this file are hand-maintained together
// with codec.proto.
type Wallet struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Owners are the addresses allowed to submit and approve
	// transactions.
	Owners []fibon.Address `protobuf:"bytes,2,rep,name=owners,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"owners,omitempty"`
	// Required is how many owner approvals a transaction needs before it
	// is executed.
	Required uint32 `protobuf:"varint,3,opt,name=required,proto3" json:"required,omitempty"`
}

func (w *Wallet) GetMetadata() *fibon.Metadata { return w.Metadata }

func (w *Wallet) Marshal() ([]byte, error) {
	return proto.Marshal((*walletPB)(w))
}

func (w *Wallet) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*walletPB)(w))
}

type walletPB Wallet

func (w *walletPB) Reset()         { *w = walletPB{} }
func (w *walletPB) String() string { return proto.CompactTextString(w) }
func (*walletPB) ProtoMessage()    {}

// Transaction is a pending or executed operation of a wallet. It either
// transfers wallet funds (amount and destination set), forwards an embedded
// message (raw_msg set), or both.
type Transaction struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// WalletID references the wallet this transaction belongs to.
	WalletID []byte `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	// Destination receives the funds on execution.
	Destination fibon.Address `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"destination,omitempty"`
	// Amount of wallet funds transferred to the destination on execution.
	Amount *coin.Coin `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// RawMsg is a serialized message executed with the wallet authority.
	RawMsg []byte `protobuf:"bytes,5,opt,name=raw_msg,json=rawMsg,proto3" json:"raw_msg,omitempty"`
	// Approvals are the owner addresses that confirmed this transaction.
	Approvals []fibon.Address `protobuf:"bytes,6,rep,name=approvals,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"approvals,omitempty"`
	// Executed is set once the transaction was successfully processed.
	// An executed transaction is final.
	Executed bool `protobuf:"varint,7,opt,name=executed,proto3" json:"executed,omitempty"`
}

func (t *Transaction) GetMetadata() *fibon.Metadata { return t.Metadata }

func (t *Transaction) Marshal() ([]byte, error) {
	return proto.Marshal((*transactionPB)(t))
}

func (t *Transaction) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*transactionPB)(t))
}

type transactionPB Transaction

func (t *transactionPB) Reset()         { *t = transactionPB{} }
func (t *transactionPB) String() string { return proto.CompactTextString(t) }
func (*transactionPB) ProtoMessage()    {}

// CreateWalletMsg creates a new multi signature wallet.
type CreateWalletMsg struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owners   []fibon.Address `protobuf:"bytes,2,rep,name=owners,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"owners,omitempty"`
	Required uint32          `protobuf:"varint,3,opt,name=required,proto3" json:"required,omitempty"`
}

func (m *CreateWalletMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *CreateWalletMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createWalletMsgPB)(m))
}

func (m *CreateWalletMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createWalletMsgPB)(m))
}

type createWalletMsgPB CreateWalletMsg

func (m *createWalletMsgPB) Reset()         { *m = createWalletMsgPB{} }
func (m *createWalletMsgPB) String() string { return proto.CompactTextString(m) }
func (*createWalletMsgPB) ProtoMessage()    {}

// SubmitTransactionMsg proposes a new wallet transaction. The submitting
// owner approves it implicitly.
type SubmitTransactionMsg struct {
	Metadata    *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID    []byte          `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Destination fibon.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"destination,omitempty"`
	Amount      *coin.Coin      `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
	RawMsg      []byte          `protobuf:"bytes,5,opt,name=raw_msg,json=rawMsg,proto3" json:"raw_msg,omitempty"`
}

func (m *SubmitTransactionMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *SubmitTransactionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*submitTransactionMsgPB)(m))
}

func (m *SubmitTransactionMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*submitTransactionMsgPB)(m))
}

type submitTransactionMsgPB SubmitTransactionMsg

func (m *submitTransactionMsgPB) Reset()         { *m = submitTransactionMsgPB{} }
func (m *submitTransactionMsgPB) String() string { return proto.CompactTextString(m) }
func (*submitTransactionMsgPB) ProtoMessage()    {}

// SubmitWithdrawalMsg proposes a transfer of wallet funds to the
// destination. It is a shorthand for a transaction submission with no
// embedded message.
type SubmitWithdrawalMsg struct {
	Metadata    *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	WalletID    []byte          `protobuf:"bytes,2,opt,name=wallet_id,json=walletId,proto3" json:"wallet_id,omitempty"`
	Destination fibon.Address   `protobuf:"bytes,3,opt,name=destination,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"destination,omitempty"`
	Amount      *coin.Coin      `protobuf:"bytes,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *SubmitWithdrawalMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *SubmitWithdrawalMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*submitWithdrawalMsgPB)(m))
}

func (m *SubmitWithdrawalMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*submitWithdrawalMsgPB)(m))
}

type submitWithdrawalMsgPB SubmitWithdrawalMsg

func (m *submitWithdrawalMsgPB) Reset()         { *m = submitWithdrawalMsgPB{} }
func (m *submitWithdrawalMsgPB) String() string { return proto.CompactTextString(m) }
func (*submitWithdrawalMsgPB) ProtoMessage()    {}

// ApproveTransactionMsg confirms a pending transaction. The transaction is
// executed as soon as the approval count reaches the wallet requirement.
type ApproveTransactionMsg struct {
	Metadata      *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	TransactionID []byte          `protobuf:"bytes,2,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
}

func (m *ApproveTransactionMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *ApproveTransactionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*approveTransactionMsgPB)(m))
}

func (m *ApproveTransactionMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*approveTransactionMsgPB)(m))
}

type approveTransactionMsgPB ApproveTransactionMsg

func (m *approveTransactionMsgPB) Reset()         { *m = approveTransactionMsgPB{} }
func (m *approveTransactionMsgPB) String() string { return proto.CompactTextString(m) }
func (*approveTransactionMsgPB) ProtoMessage()    {}

// ExecuteTransactionMsg retries the execution of a transaction that already
// collected enough approvals but failed to execute before.
type ExecuteTransactionMsg struct {
	Metadata      *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	TransactionID []byte          `protobuf:"bytes,2,opt,name=transaction_id,json=transactionId,proto3" json:"transaction_id,omitempty"`
}

func (m *ExecuteTransactionMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *ExecuteTransactionMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*executeTransactionMsgPB)(m))
}

func (m *ExecuteTransactionMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*executeTransactionMsgPB)(m))
}

type executeTransactionMsgPB ExecuteTransactionMsg

func (m *executeTransactionMsgPB) Reset()         { *m = executeTransactionMsgPB{} }
func (m *executeTransactionMsgPB) String() string { return proto.CompactTextString(m) }
func (*executeTransactionMsgPB) ProtoMessage()    {}
