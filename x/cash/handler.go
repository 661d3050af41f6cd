package cash

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/migration"
	"github.com/fibondev/fibon-token/x"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	sendTxCost int64 = 100

	tagSend = "cash/send"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r fibon.Registry, auth x.Authenticator, ctrl Controller) {
	r = migration.SchemaMigratingRegistry("cash", r)
	r.Handle(&SendMsg{}, NewSendHandler(auth, ctrl))
}

// SendHandler moves tokens from one wallet to another.
type SendHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ fibon.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg.
func NewSendHandler(auth x.Authenticator, ctrl Controller) SendHandler {
	return SendHandler{
		auth: auth,
		ctrl: ctrl,
	}
}

// Check verifies the message and the authorization without moving any
// funds.
func (h SendHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return fibon.NewCheck(sendTxCost, ""), nil
}

// Deliver moves the funds.
func (h SendHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MoveCoins(db, msg.Source, msg.Destination, *msg.Amount); err != nil {
		return nil, err
	}
	return &fibon.DeliverResult{
		Tags: []common.KVPair{
			{Key: []byte(tagSend), Value: []byte(msg.Amount.String())},
		},
	}, nil
}

// validate extracts the message and verifies the sender controls the source
// wallet. The returned message always has the source set.
func (h SendHandler) validate(ctx fibon.Context, tx fibon.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	if len(msg.Source) == 0 {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		msg.Source = signer.Address()
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "source %s not signed", msg.Source)
	}
	return &msg, nil
}
