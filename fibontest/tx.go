package fibontest

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// Tx is a mock implementing fibon.Tx interface. It carries a single
// message.
type Tx struct {
	// Msg is the message that this transaction is transporting.
	Msg fibon.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ fibon.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (fibon.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	if tx.Err != nil {
		return tx.Err
	}
	return errors.Wrap(errors.ErrHuman, "mock tx cannot be unmarshaled")
}
