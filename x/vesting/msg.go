package vesting

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/migration"
)

func init() {
	migration.MustRegister(1, &AddVestingTypeMsg{}, migration.NoModification)
	migration.MustRegister(1, &CreateScheduleMsg{}, migration.NoModification)
	migration.MustRegister(1, &BatchCreateScheduleMsg{}, migration.NoModification)
	migration.MustRegister(1, &ReleaseMsg{}, migration.NoModification)
	migration.MustRegister(1, &RevokeMsg{}, migration.NoModification)
	migration.MustRegister(1, &DisableMsg{}, migration.NoModification)
	migration.MustRegister(1, &RecoverMsg{}, migration.NoModification)
}

var _ fibon.Msg = (*AddVestingTypeMsg)(nil)
var _ fibon.Msg = (*CreateScheduleMsg)(nil)
var _ fibon.Msg = (*BatchCreateScheduleMsg)(nil)
var _ fibon.Msg = (*ReleaseMsg)(nil)
var _ fibon.Msg = (*RevokeMsg)(nil)
var _ fibon.Msg = (*DisableMsg)(nil)
var _ fibon.Msg = (*RecoverMsg)(nil)

func (AddVestingTypeMsg) Path() string {
	return "vesting/add_type"
}

func (m *AddVestingTypeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.TypeID == 0 {
		return errors.Wrap(errors.ErrInput, "type id")
	}
	return validatePhases(m.Phases)
}

func (CreateScheduleMsg) Path() string {
	return "vesting/create_schedule"
}

func (m *CreateScheduleMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if m.TypeID == 0 {
		return errors.Wrap(errors.ErrInput, "type id")
	}
	// A zero start time is allowed, the block time is used instead.
	if err := m.StartTime.Validate(); err != nil {
		return errors.Wrap(err, "start time")
	}
	if m.Allocation < 1 {
		return errors.Wrap(errors.ErrAmount, "allocation must be positive")
	}
	return nil
}

func (BatchCreateScheduleMsg) Path() string {
	return "vesting/batch_create_schedule"
}

func (m *BatchCreateScheduleMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.Items) == 0 {
		return errors.Wrap(errors.ErrEmpty, "no items")
	}
	for i, item := range m.Items {
		if item == nil {
			return errors.Wrapf(errors.ErrEmpty, "item #%d", i)
		}
		if err := item.Validate(); err != nil {
			return errors.Wrapf(err, "item #%d", i)
		}
	}
	return nil
}

func (ReleaseMsg) Path() string {
	return "vesting/release"
}

func (m *ReleaseMsg) Validate() error {
	return errors.Wrap(m.Metadata.Validate(), "metadata")
}

func (RevokeMsg) Path() string {
	return "vesting/revoke"
}

func (m *RevokeMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Wrap(m.Beneficiary.Validate(), "beneficiary")
}

func (DisableMsg) Path() string {
	return "vesting/disable"
}

func (m *DisableMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return errors.Wrap(m.Beneficiary.Validate(), "beneficiary")
}

func (RecoverMsg) Path() string {
	return "vesting/recover"
}

func (m *RecoverMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Ticker) == 0 {
		return errors.Wrap(errors.ErrEmpty, "ticker")
	}
	if m.Amount < 1 {
		return errors.Wrap(errors.ErrAmount, "amount must be positive")
	}
	return nil
}
