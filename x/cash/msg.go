package cash

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/migration"
)

const maxMemoSize = 128

func init() {
	migration.MustRegister(1, &SendMsg{}, migration.NoModification)
}

var _ fibon.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible.
func (m *SendMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Amount == nil {
		return errors.Wrap(errors.ErrAmount, "missing amount")
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive send: %v", m.Amount.Amount)
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	// Source is optional, the main signer is used when empty.
	if len(m.Source) != 0 {
		if err := m.Source.Validate(); err != nil {
			return errors.Wrap(err, "source")
		}
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}
