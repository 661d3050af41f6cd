package vesting

import (
	fibon "github.com/fibondev/fibon-token"
	proto "github.com/gogo/protobuf/proto"
)

// Phase is a single interval of a vesting curve. Offsets are relative to
// the schedule start time. Within the interval the phase share of the
// allocation unlocks linearly. A phase with equal offsets unlocks its whole
// share at once. All structures in this file are hand-maintained together
// with codec.proto.
type Phase struct {
	StartOffset fibon.UnixDuration `protobuf:"varint,1,opt,name=start_offset,json=startOffset,proto3,casttype=github.com/fibondev/fibon-token.UnixDuration" json:"start_offset,omitempty"`
	EndOffset   fibon.UnixDuration `protobuf:"varint,2,opt,name=end_offset,json=endOffset,proto3,casttype=github.com/fibondev/fibon-token.UnixDuration" json:"end_offset,omitempty"`
	// Percentage is the share of the total allocation unlocked by this
	// phase. All phases of a curve sum up to one hundred.
	Percentage uint32 `protobuf:"varint,3,opt,name=percentage,proto3" json:"percentage,omitempty"`
}

func (p *Phase) Reset()         { *p = Phase{} }
func (p *Phase) String() string { return proto.CompactTextString(p) }
func (*Phase) ProtoMessage()    {}

// VestingType is a reusable vesting curve in the catalog. Schedules are
// created from a type and copy its phases, so later catalog changes do not
// affect existing schedules.
type VestingType struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Phases   []*Phase        `protobuf:"bytes,2,rep,name=phases,proto3" json:"phases,omitempty"`
}

func (v *VestingType) GetMetadata() *fibon.Metadata { return v.Metadata }

func (v *VestingType) Marshal() ([]byte, error) {
	return proto.Marshal((*vestingTypePB)(v))
}

func (v *VestingType) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*vestingTypePB)(v))
}

type vestingTypePB VestingType

func (v *vestingTypePB) Reset()         { *v = vestingTypePB{} }
func (v *vestingTypePB) String() string { return proto.CompactTextString(v) }
func (*vestingTypePB) ProtoMessage()    {}

// Schedule is the vesting state of a single beneficiary.
type Schedule struct {
	Metadata    *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Beneficiary fibon.Address   `protobuf:"bytes,2,opt,name=beneficiary,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"beneficiary,omitempty"`
	// StartTime anchors the phase offsets on the time line.
	StartTime fibon.UnixTime `protobuf:"varint,3,opt,name=start_time,json=startTime,proto3,casttype=github.com/fibondev/fibon-token.UnixTime" json:"start_time,omitempty"`
	// Allocation is the total amount promised to the beneficiary.
	Allocation int64 `protobuf:"varint,4,opt,name=allocation,proto3" json:"allocation,omitempty"`
	// Released is the amount already paid out. Released never exceeds the
	// vested amount and never decreases.
	Released int64 `protobuf:"varint,5,opt,name=released,proto3" json:"released,omitempty"`
	// Phases are copied from the vesting type at creation.
	Phases []*Phase `protobuf:"bytes,6,rep,name=phases,proto3" json:"phases,omitempty"`
	// Disabled freezes the schedule. A disabled schedule vests nothing
	// beyond what was already released. Disabling is final.
	Disabled bool `protobuf:"varint,7,opt,name=disabled,proto3" json:"disabled,omitempty"`
}

func (s *Schedule) GetMetadata() *fibon.Metadata { return s.Metadata }

func (s *Schedule) Marshal() ([]byte, error) {
	return proto.Marshal((*schedulePB)(s))
}

func (s *Schedule) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*schedulePB)(s))
}

type schedulePB Schedule

func (s *schedulePB) Reset()         { *s = schedulePB{} }
func (s *schedulePB) String() string { return proto.CompactTextString(s) }
func (*schedulePB) ProtoMessage()    {}

// Pool tracks how much of the custody balance is promised to schedules.
// The custody wallet balance must always cover the total allocation.
type Pool struct {
	Metadata       *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	TotalAllocated int64           `protobuf:"varint,2,opt,name=total_allocated,json=totalAllocated,proto3" json:"total_allocated,omitempty"`
}

func (p *Pool) GetMetadata() *fibon.Metadata { return p.Metadata }

func (p *Pool) Marshal() ([]byte, error) {
	return proto.Marshal((*poolPB)(p))
}

func (p *Pool) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*poolPB)(p))
}

type poolPB Pool

func (p *poolPB) Reset()         { *p = poolPB{} }
func (p *poolPB) String() string { return proto.CompactTextString(p) }
func (*poolPB) ProtoMessage()    {}

// Config holds the package configuration: the administrator allowed to
// manage the catalog and the schedules, and the ticker of the vested
// token.
type Config struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Admin    fibon.Address   `protobuf:"bytes,2,opt,name=admin,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"admin,omitempty"`
	Ticker   string          `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
}

func (c *Config) GetMetadata() *fibon.Metadata { return c.Metadata }

func (c *Config) Marshal() ([]byte, error) {
	return proto.Marshal((*configPB)(c))
}

func (c *Config) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*configPB)(c))
}

type configPB Config

func (c *configPB) Reset()         { *c = configPB{} }
func (c *configPB) String() string { return proto.CompactTextString(c) }
func (*configPB) ProtoMessage()    {}

// AddVestingTypeMsg adds a new curve to the catalog under a caller chosen
// identifier. The identifier must not be in use.
type AddVestingTypeMsg struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	TypeID   uint32          `protobuf:"varint,2,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	Phases   []*Phase        `protobuf:"bytes,3,rep,name=phases,proto3" json:"phases,omitempty"`
}

func (m *AddVestingTypeMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *AddVestingTypeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*addVestingTypeMsgPB)(m))
}

func (m *AddVestingTypeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*addVestingTypeMsgPB)(m))
}

type addVestingTypeMsgPB AddVestingTypeMsg

func (m *addVestingTypeMsgPB) Reset()         { *m = addVestingTypeMsgPB{} }
func (m *addVestingTypeMsgPB) String() string { return proto.CompactTextString(m) }
func (*addVestingTypeMsgPB) ProtoMessage()    {}

// CreateScheduleMsg creates a vesting schedule for a beneficiary from a
// catalog type. A zero start time anchors the schedule at the block time of
// the creating transaction.
type CreateScheduleMsg struct {
	Metadata    *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Beneficiary fibon.Address   `protobuf:"bytes,2,opt,name=beneficiary,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"beneficiary,omitempty"`
	TypeID      uint32          `protobuf:"varint,3,opt,name=type_id,json=typeId,proto3" json:"type_id,omitempty"`
	StartTime   fibon.UnixTime  `protobuf:"varint,4,opt,name=start_time,json=startTime,proto3,casttype=github.com/fibondev/fibon-token.UnixTime" json:"start_time,omitempty"`
	Allocation  int64           `protobuf:"varint,5,opt,name=allocation,proto3" json:"allocation,omitempty"`
}

func (m *CreateScheduleMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *CreateScheduleMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*createScheduleMsgPB)(m))
}

func (m *CreateScheduleMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*createScheduleMsgPB)(m))
}

type createScheduleMsgPB CreateScheduleMsg

func (m *createScheduleMsgPB) Reset()         { *m = createScheduleMsgPB{} }
func (m *createScheduleMsgPB) String() string { return proto.CompactTextString(m) }
func (*createScheduleMsgPB) ProtoMessage()    {}

// BatchCreateScheduleMsg creates many schedules at once. Either all
// schedules are created or none.
type BatchCreateScheduleMsg struct {
	Metadata *fibon.Metadata      `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Items    []*CreateScheduleMsg `protobuf:"bytes,2,rep,name=items,proto3" json:"items,omitempty"`
}

func (m *BatchCreateScheduleMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *BatchCreateScheduleMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*batchCreateScheduleMsgPB)(m))
}

func (m *BatchCreateScheduleMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*batchCreateScheduleMsgPB)(m))
}

type batchCreateScheduleMsgPB BatchCreateScheduleMsg

func (m *batchCreateScheduleMsgPB) Reset()         { *m = batchCreateScheduleMsgPB{} }
func (m *batchCreateScheduleMsgPB) String() string { return proto.CompactTextString(m) }
func (*batchCreateScheduleMsgPB) ProtoMessage()    {}

// ReleaseMsg pays out the releasable amount of the signer's schedule.
type ReleaseMsg struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

func (m *ReleaseMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *ReleaseMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*releaseMsgPB)(m))
}

func (m *ReleaseMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*releaseMsgPB)(m))
}

type releaseMsgPB ReleaseMsg

func (m *releaseMsgPB) Reset()         { *m = releaseMsgPB{} }
func (m *releaseMsgPB) String() string { return proto.CompactTextString(m) }
func (*releaseMsgPB) ProtoMessage()    {}

// RevokeMsg terminates a schedule. Everything not yet released returns to
// the administrator and the schedule is removed.
type RevokeMsg struct {
	Metadata    *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Beneficiary fibon.Address   `protobuf:"bytes,2,opt,name=beneficiary,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"beneficiary,omitempty"`
}

func (m *RevokeMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *RevokeMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*revokeMsgPB)(m))
}

func (m *RevokeMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*revokeMsgPB)(m))
}

type revokeMsgPB RevokeMsg

func (m *revokeMsgPB) Reset()         { *m = revokeMsgPB{} }
func (m *revokeMsgPB) String() string { return proto.CompactTextString(m) }
func (*revokeMsgPB) ProtoMessage()    {}

// DisableMsg freezes a schedule. The vested remainder is paid to the
// beneficiary, the unvested share is forfeited and the schedule stays
// disabled for auditability.
type DisableMsg struct {
	Metadata    *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Beneficiary fibon.Address   `protobuf:"bytes,2,opt,name=beneficiary,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"beneficiary,omitempty"`
}

func (m *DisableMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *DisableMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*disableMsgPB)(m))
}

func (m *DisableMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*disableMsgPB)(m))
}

type disableMsgPB DisableMsg

func (m *disableMsgPB) Reset()         { *m = disableMsgPB{} }
func (m *disableMsgPB) String() string { return proto.CompactTextString(m) }
func (*disableMsgPB) ProtoMessage()    {}

// RecoverMsg moves tokens that do not belong to the vesting custody out of
// the pool wallet. The vested token itself cannot be recovered.
type RecoverMsg struct {
	Metadata    *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Destination fibon.Address   `protobuf:"bytes,2,opt,name=destination,proto3,casttype=github.com/fibondev/fibon-token.Address" json:"destination,omitempty"`
	Ticker      string          `protobuf:"bytes,3,opt,name=ticker,proto3" json:"ticker,omitempty"`
	Amount      int64           `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *RecoverMsg) GetMetadata() *fibon.Metadata { return m.Metadata }

func (m *RecoverMsg) Marshal() ([]byte, error) {
	return proto.Marshal((*recoverMsgPB)(m))
}

func (m *RecoverMsg) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*recoverMsgPB)(m))
}

type recoverMsgPB RecoverMsg

func (m *recoverMsgPB) Reset()         { *m = recoverMsgPB{} }
func (m *recoverMsgPB) String() string { return proto.CompactTextString(m) }
func (*recoverMsgPB) ProtoMessage()    {}
