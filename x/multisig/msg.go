package multisig

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/migration"
)

func init() {
	migration.MustRegister(1, &CreateWalletMsg{}, migration.NoModification)
	migration.MustRegister(1, &SubmitTransactionMsg{}, migration.NoModification)
	migration.MustRegister(1, &SubmitWithdrawalMsg{}, migration.NoModification)
	migration.MustRegister(1, &ApproveTransactionMsg{}, migration.NoModification)
	migration.MustRegister(1, &ExecuteTransactionMsg{}, migration.NoModification)
}

var _ fibon.Msg = (*CreateWalletMsg)(nil)
var _ fibon.Msg = (*SubmitTransactionMsg)(nil)
var _ fibon.Msg = (*SubmitWithdrawalMsg)(nil)
var _ fibon.Msg = (*ApproveTransactionMsg)(nil)
var _ fibon.Msg = (*ExecuteTransactionMsg)(nil)

func (CreateWalletMsg) Path() string {
	return "multisig/create"
}

func (m *CreateWalletMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := validateOwners(m.Owners); err != nil {
		return err
	}
	if m.Required < 1 {
		return errors.Wrap(errors.ErrMsg, "required must be at least one")
	}
	if int(m.Required) > len(m.Owners) {
		return errors.Wrap(errors.ErrMsg, "required exceeds owner count")
	}
	return nil
}

func (SubmitTransactionMsg) Path() string {
	return "multisig/submit"
}

func (m *SubmitTransactionMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.WalletID) != 8 {
		return errors.Wrap(errors.ErrInput, "wallet id")
	}
	if m.Amount == nil && len(m.RawMsg) == 0 {
		return errors.Wrap(errors.ErrEmpty, "transaction without a payload")
	}
	if m.Amount != nil {
		if err := m.Amount.Validate(); err != nil {
			return errors.Wrap(err, "amount")
		}
		if !m.Amount.IsPositive() {
			return errors.Wrap(errors.ErrAmount, "non-positive amount")
		}
		if err := m.Destination.Validate(); err != nil {
			return errors.Wrap(err, "destination")
		}
	}
	return nil
}

func (SubmitWithdrawalMsg) Path() string {
	return "multisig/submit_withdrawal"
}

func (m *SubmitWithdrawalMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.WalletID) != 8 {
		return errors.Wrap(errors.ErrInput, "wallet id")
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	return errors.Wrap(m.Destination.Validate(), "destination")
}

// asSubmission converts the withdrawal into the transaction submission it
// is a shorthand for.
func (m *SubmitWithdrawalMsg) asSubmission() *SubmitTransactionMsg {
	return &SubmitTransactionMsg{
		Metadata:    m.Metadata,
		WalletID:    m.WalletID,
		Destination: m.Destination,
		Amount:      m.Amount,
	}
}

func (ApproveTransactionMsg) Path() string {
	return "multisig/approve"
}

func (m *ApproveTransactionMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.TransactionID) != 8 {
		return errors.Wrap(errors.ErrInput, "transaction id")
	}
	return nil
}

func (ExecuteTransactionMsg) Path() string {
	return "multisig/execute"
}

func (m *ExecuteTransactionMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.TransactionID) != 8 {
		return errors.Wrap(errors.ErrInput, "transaction id")
	}
	return nil
}
