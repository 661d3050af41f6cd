package multisig

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/migration"
	"github.com/fibondev/fibon-token/orm"
	"github.com/fibondev/fibon-token/x"
	"github.com/fibondev/fibon-token/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createWalletCost  int64 = 300
	submitCost        int64 = 200
	approveCost       int64 = 100
	executeCost       int64 = 100
	// Cost charged per owner of a created wallet.
	walletOwnerCost int64 = 10

	tagCreate      = "multisig/create"
	tagSubmit      = "multisig/submit"
	tagApprove     = "multisig/approve"
	tagExecuted    = "multisig/executed"
	tagExecFailure = "multisig/exec-failure"
)

// RegisterRoutes will instantiate and register all handlers in this
// package. The decoder parses forwarded messages and the executor runs
// them, usually the application router wrapped with HandlerAsExecutor.
func RegisterRoutes(r fibon.Registry, auth x.Authenticator, ctrl cash.Controller, decoder OptionDecoder, executor Executor) {
	r = migration.SchemaMigratingRegistry("multisig", r)

	wallets := NewWalletBucket()
	txs := NewTransactionBucket()
	exec := txExecutor{
		ctrl:     ctrl,
		decoder:  decoder,
		executor: executor,
	}

	submit := &SubmitTransactionHandler{
		auth: auth, wallets: wallets, txs: txs, ctrl: ctrl, exec: exec,
	}
	r.Handle(&CreateWalletMsg{}, &CreateWalletHandler{auth: auth, wallets: wallets})
	r.Handle(&SubmitTransactionMsg{}, submit)
	r.Handle(&SubmitWithdrawalMsg{}, &SubmitWithdrawalHandler{submissions: submit})
	r.Handle(&ApproveTransactionMsg{}, &ApproveTransactionHandler{
		auth: auth, wallets: wallets, txs: txs, exec: exec,
	})
	r.Handle(&ExecuteTransactionMsg{}, &ExecuteTransactionHandler{
		wallets: wallets, txs: txs, exec: exec,
	})
}

// CreateWalletHandler creates a new multi signature wallet.
type CreateWalletHandler struct {
	auth    x.Authenticator
	wallets orm.ModelBucket
}

var _ fibon.Handler = (*CreateWalletHandler)(nil)

func (h *CreateWalletHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	gas := createWalletCost + int64(len(msg.Owners))*walletOwnerCost
	return fibon.NewCheck(gas, ""), nil
}

func (h *CreateWalletHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	wallet := &Wallet{
		Metadata: &fibon.Metadata{Schema: 1},
		Owners:   msg.Owners,
		Required: msg.Required,
	}
	key, err := h.wallets.Put(db, nil, wallet)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store wallet")
	}
	return &fibon.DeliverResult{
		Data: key,
		Tags: []common.KVPair{{Key: []byte(tagCreate), Value: key}},
	}, nil
}

func (h *CreateWalletHandler) validate(ctx fibon.Context, tx fibon.Tx) (*CreateWalletMsg, error) {
	var msg CreateWalletMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if x.MainSigner(ctx, h.auth) == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return &msg, nil
}

// SubmitTransactionHandler proposes a new wallet transaction. The
// submission is the first approval and with a requirement of one it also
// executes.
type SubmitTransactionHandler struct {
	auth    x.Authenticator
	wallets orm.ModelBucket
	txs     orm.ModelBucket
	ctrl    cash.Controller
	exec    txExecutor
}

var _ fibon.Handler = (*SubmitTransactionHandler)(nil)

func (h *SubmitTransactionHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	var msg SubmitTransactionMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, _, err := h.validate(ctx, db, &msg); err != nil {
		return nil, err
	}
	return fibon.NewCheck(submitCost, ""), nil
}

func (h *SubmitTransactionHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	var msg SubmitTransactionMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return h.submit(ctx, db, &msg)
}

// submit stores the new transaction with the submitter's approval attached
// and executes it right away when the wallet requirement is already met.
func (h *SubmitTransactionHandler) submit(ctx fibon.Context, db fibon.KVStore, msg *SubmitTransactionMsg) (*fibon.DeliverResult, error) {
	wallet, signer, err := h.validate(ctx, db, msg)
	if err != nil {
		return nil, err
	}

	t := &Transaction{
		Metadata:    &fibon.Metadata{Schema: 1},
		WalletID:    msg.WalletID,
		Destination: msg.Destination,
		Amount:      msg.Amount,
		RawMsg:      msg.RawMsg,
		Approvals:   []fibon.Address{signer},
	}
	key, err := h.txs.Put(db, nil, t)
	if err != nil {
		return nil, errors.Wrap(err, "cannot store transaction")
	}

	tags := []common.KVPair{{Key: []byte(tagSubmit), Value: key}}
	if len(t.Approvals) >= int(wallet.Required) {
		execTags, err := h.exec.attemptExecution(ctx, db, key, t)
		if err != nil {
			return nil, err
		}
		tags = append(tags, execTags...)
		if _, err := h.txs.Put(db, key, t); err != nil {
			return nil, errors.Wrap(err, "cannot update transaction")
		}
	}

	return &fibon.DeliverResult{Data: key, Tags: tags}, nil
}

func (h *SubmitTransactionHandler) validate(ctx fibon.Context, db fibon.KVStore, msg *SubmitTransactionMsg) (*Wallet, fibon.Address, error) {
	var wallet Wallet
	if err := h.wallets.One(db, msg.WalletID, &wallet); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load wallet")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	addr := signer.Address()
	if !wallet.IsOwner(addr) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not a wallet owner")
	}

	// A funds transfer must be covered by the current wallet balance.
	// This is only a submission time check, the balance can change until
	// the execution and is verified again by moving the coins.
	if msg.Amount != nil {
		source := MultiSigCondition(msg.WalletID).Address()
		balance, err := h.ctrl.Balance(db, source)
		switch {
		case errors.ErrNotFound.Is(err):
			return nil, nil, errors.Wrap(errors.ErrAmount, "wallet has no funds")
		case err != nil:
			return nil, nil, errors.Wrap(err, "cannot check balance")
		}
		if !balance.Contains(*msg.Amount) {
			return nil, nil, errors.Wrap(errors.ErrAmount, "insufficient wallet funds")
		}
	}

	// A forwarded message must be parseable and valid on its own.
	if len(msg.RawMsg) != 0 {
		inner, err := h.exec.decoder(msg.RawMsg)
		if err != nil {
			return nil, nil, errors.Wrap(err, "raw msg")
		}
		if err := inner.Validate(); err != nil {
			return nil, nil, errors.Wrap(err, "raw msg")
		}
	}

	return &wallet, addr, nil
}

// SubmitWithdrawalHandler proposes a transfer of wallet funds. It shares
// the whole submission path with SubmitTransactionHandler.
type SubmitWithdrawalHandler struct {
	submissions *SubmitTransactionHandler
}

var _ fibon.Handler = (*SubmitWithdrawalHandler)(nil)

func (h *SubmitWithdrawalHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	var msg SubmitWithdrawalMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, _, err := h.submissions.validate(ctx, db, msg.asSubmission()); err != nil {
		return nil, err
	}
	return fibon.NewCheck(submitCost, ""), nil
}

func (h *SubmitWithdrawalHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	var msg SubmitWithdrawalMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return h.submissions.submit(ctx, db, msg.asSubmission())
}

// ApproveTransactionHandler records an owner confirmation. Reaching the
// wallet requirement triggers the execution.
type ApproveTransactionHandler struct {
	auth    x.Authenticator
	wallets orm.ModelBucket
	txs     orm.ModelBucket
	exec    txExecutor
}

var _ fibon.Handler = (*ApproveTransactionHandler)(nil)

func (h *ApproveTransactionHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if _, _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return fibon.NewCheck(approveCost, ""), nil
}

func (h *ApproveTransactionHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	msg, wallet, t, addr, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	t.Approvals = append(t.Approvals, addr)

	tags := []common.KVPair{{Key: []byte(tagApprove), Value: msg.TransactionID}}
	if len(t.Approvals) >= int(wallet.Required) {
		execTags, err := h.exec.attemptExecution(ctx, db, msg.TransactionID, t)
		if err != nil {
			return nil, err
		}
		tags = append(tags, execTags...)
	}

	// The approval is persisted regardless of the execution outcome.
	if _, err := h.txs.Put(db, msg.TransactionID, t); err != nil {
		return nil, errors.Wrap(err, "cannot update transaction")
	}
	return &fibon.DeliverResult{Tags: tags}, nil
}

func (h *ApproveTransactionHandler) validate(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*ApproveTransactionMsg, *Wallet, *Transaction, fibon.Address, error) {
	var msg ApproveTransactionMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "load msg")
	}

	var t Transaction
	if err := h.txs.One(db, msg.TransactionID, &t); err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "cannot load transaction")
	}
	if t.Executed {
		return nil, nil, nil, nil, errors.Wrap(errors.ErrState, "already executed")
	}

	var wallet Wallet
	if err := h.wallets.One(db, t.WalletID, &wallet); err != nil {
		return nil, nil, nil, nil, errors.Wrap(err, "cannot load wallet")
	}

	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	addr := signer.Address()
	if !wallet.IsOwner(addr) {
		return nil, nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "not a wallet owner")
	}
	if t.HasApproved(addr) {
		return nil, nil, nil, nil, errors.Wrap(errors.ErrDuplicate, "already approved")
	}

	return &msg, &wallet, &t, addr, nil
}

// ExecuteTransactionHandler retries the execution of a transaction that has
// enough approvals already. This is the recovery path after a failed
// execution attempt.
type ExecuteTransactionHandler struct {
	wallets orm.ModelBucket
	txs     orm.ModelBucket
	exec    txExecutor
}

var _ fibon.Handler = (*ExecuteTransactionHandler)(nil)

func (h *ExecuteTransactionHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return fibon.NewCheck(executeCost, ""), nil
}

func (h *ExecuteTransactionHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	msg, _, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	tags, err := h.exec.attemptExecution(ctx, db, msg.TransactionID, t)
	if err != nil {
		return nil, err
	}
	if _, err := h.txs.Put(db, msg.TransactionID, t); err != nil {
		return nil, errors.Wrap(err, "cannot update transaction")
	}
	return &fibon.DeliverResult{Tags: tags}, nil
}

func (h *ExecuteTransactionHandler) validate(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*ExecuteTransactionMsg, *Wallet, *Transaction, error) {
	var msg ExecuteTransactionMsg
	if err := fibon.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}

	var t Transaction
	if err := h.txs.One(db, msg.TransactionID, &t); err != nil {
		return nil, nil, nil, errors.Wrap(err, "cannot load transaction")
	}
	if t.Executed {
		return nil, nil, nil, errors.Wrap(errors.ErrState, "already executed")
	}

	var wallet Wallet
	if err := h.wallets.One(db, t.WalletID, &wallet); err != nil {
		return nil, nil, nil, errors.Wrap(err, "cannot load wallet")
	}

	// Anyone may retry the execution. The owners already had their say
	// when the approvals were collected.
	if len(t.Approvals) < int(wallet.Required) {
		return nil, nil, nil, errors.Wrap(errors.ErrState, "insufficient approvals")
	}

	return &msg, &wallet, &t, nil
}

// txExecutor runs a wallet transaction with all-or-nothing semantics.
type txExecutor struct {
	ctrl     cash.Controller
	decoder  OptionDecoder
	executor Executor
}

// attemptExecution runs the transaction payload inside a store cache. On
// success the cache is flushed and the transaction is marked as executed.
// On failure all payload writes are rolled back and a failure event is
// emitted instead of an error, so that the surrounding state change (the
// approval) is preserved and the execution can be retried.
func (e txExecutor) attemptExecution(ctx fibon.Context, db fibon.KVStore, txID []byte, t *Transaction) ([]common.KVPair, error) {
	cdb, ok := db.(fibon.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "store cannot be cache wrapped")
	}
	cache := cdb.CacheWrap()

	tags, err := e.execute(ctx, cache, t)
	if err != nil {
		cache.Discard()
		fibon.GetLogger(ctx).With(
			"transaction", txID,
			"err", err,
		).Error("wallet transaction execution failed")
		return []common.KVPair{
			{Key: []byte(tagExecFailure), Value: txID},
			{Key: []byte(tagExecFailure + "/reason"), Value: []byte(err.Error())},
		}, nil
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot flush cache")
	}
	t.Executed = true
	return append(tags, common.KVPair{Key: []byte(tagExecuted), Value: txID}), nil
}

func (e txExecutor) execute(ctx fibon.Context, db fibon.KVStore, t *Transaction) ([]common.KVPair, error) {
	source := MultiSigCondition(t.WalletID).Address()

	if t.Amount != nil {
		if err := e.ctrl.MoveCoins(db, source, t.Destination, *t.Amount); err != nil {
			return nil, errors.Wrap(err, "cannot move funds")
		}
	}

	if len(t.RawMsg) != 0 {
		msg, err := e.decoder(t.RawMsg)
		if err != nil {
			return nil, errors.Wrap(err, "raw msg")
		}
		res, err := e.executor(withMultisig(ctx, t.WalletID), db, msg)
		if err != nil {
			return nil, err
		}
		return res.Tags, nil
	}
	return nil, nil
}
