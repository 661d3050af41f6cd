package multisig

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// Executor runs a message with the authority already injected into the
// context. It is the bridge between a wallet transaction and the rest of
// the application.
type Executor func(ctx fibon.Context, db fibon.KVStore, msg fibon.Msg) (*fibon.DeliverResult, error)

// HandlerAsExecutor wraps a handler, usually the application router, so it
// can execute forwarded messages.
func HandlerAsExecutor(h fibon.Handler) Executor {
	return func(ctx fibon.Context, db fibon.KVStore, msg fibon.Msg) (*fibon.DeliverResult, error) {
		tx := &execTx{msg: msg}
		return h.Deliver(ctx, db, tx)
	}
}

// OptionDecoder parses a serialized message of a wallet transaction. The
// application provides the decoder, as only it knows the full message set.
type OptionDecoder func(raw []byte) (fibon.Msg, error)

// execTx wraps a message so it can be passed through handlers that expect a
// transaction.
type execTx struct {
	msg fibon.Msg
}

var _ fibon.Tx = (*execTx)(nil)

func (tx *execTx) GetMsg() (fibon.Msg, error) {
	return tx.msg, nil
}

func (tx *execTx) Marshal() ([]byte, error) {
	return nil, errors.Wrap(errors.ErrHuman, "execution tx cannot be marshaled")
}

func (tx *execTx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "execution tx cannot be unmarshaled")
}
