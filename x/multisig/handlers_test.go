package multisig

import (
	"context"
	"testing"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/app"
	"github.com/fibondev/fibon-token/coin"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/fibontest"
	"github.com/fibondev/fibon-token/fibontest/assert"
	"github.com/fibondev/fibon-token/migration"
	"github.com/fibondev/fibon-token/orm"
	"github.com/fibondev/fibon-token/store"
	"github.com/fibondev/fibon-token/x"
	"github.com/fibondev/fibon-token/x/cash"
)

type testEnv struct {
	db   fibon.CacheableKVStore
	auth *fibontest.CtxAuth
	rt   *app.Router
	ctrl cash.CashController
	txs  orm.ModelBucket
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := store.MemStore()
	migration.MustInitPkg(db, "multisig", "cash")

	ctxAuth := &fibontest.CtxAuth{Key: "auth"}
	auth := x.ChainAuth(ctxAuth, Authenticate{})

	rt := app.NewRouter()
	ctrl := cash.NewController(cash.NewWalletBucket())
	cash.RegisterRoutes(rt, auth, ctrl)

	decoder := func(raw []byte) (fibon.Msg, error) {
		var msg cash.SendMsg
		if err := msg.Unmarshal(raw); err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		return &msg, nil
	}
	RegisterRoutes(rt, auth, ctrl, decoder, HandlerAsExecutor(rt))

	return &testEnv{
		db:   db,
		auth: ctxAuth,
		rt:   rt,
		ctrl: ctrl,
		txs:  NewTransactionBucket(),
	}
}

func (e *testEnv) deliver(signer fibon.Condition, msg fibon.Msg) (*fibon.DeliverResult, error) {
	ctx := e.auth.SetConditions(context.Background(), signer)
	return e.rt.Deliver(ctx, e.db, &fibontest.Tx{Msg: msg})
}

func (e *testEnv) createWallet(t *testing.T, creator fibon.Condition, required uint32, owners ...fibon.Address) []byte {
	t.Helper()
	res, err := e.deliver(creator, &CreateWalletMsg{
		Metadata: &fibon.Metadata{Schema: 1},
		Owners:   owners,
		Required: required,
	})
	assert.Nil(t, err)
	return res.Data
}

func (e *testEnv) transaction(t *testing.T, id []byte) *Transaction {
	t.Helper()
	var tx Transaction
	assert.Nil(t, e.txs.One(e.db, id, &tx))
	return &tx
}

func hasTag(res *fibon.DeliverResult, key string) bool {
	for _, tag := range res.Tags {
		if string(tag.Key) == key {
			return true
		}
	}
	return false
}

func TestWithdrawalLifecycle(t *testing.T) {
	env := newTestEnv(t)
	alice := fibontest.NewCondition()
	bob := fibontest.NewCondition()
	carl := fibontest.NewKey()

	walletID := env.createWallet(t, alice, 2, alice.Address(), bob.Address())
	walletAddr := MultiSigCondition(walletID).Address()
	assert.Nil(t, env.ctrl.CoinMint(env.db, walletAddr, coin.NewCoin(100, "FIB")))

	res, err := env.deliver(alice, &SubmitWithdrawalMsg{
		Metadata:    &fibon.Metadata{Schema: 1},
		WalletID:    walletID,
		Destination: carl,
		Amount:      coin.NewCoinp(40, "FIB"),
	})
	assert.Nil(t, err)
	txID := res.Data

	// The submission approves but with a requirement of two it does not
	// execute yet.
	pending := env.transaction(t, txID)
	assert.Equal(t, 1, len(pending.Approvals))
	assert.Equal(t, false, pending.Executed)
	if _, err := env.ctrl.Balance(env.db, carl); !errors.ErrNotFound.Is(err) {
		t.Fatalf("funds moved before execution: %+v", err)
	}

	// The second approval executes the transfer.
	res, err = env.deliver(bob, &ApproveTransactionMsg{
		Metadata:      &fibon.Metadata{Schema: 1},
		TransactionID: txID,
	})
	assert.Nil(t, err)
	if !hasTag(res, "multisig/executed") {
		t.Fatalf("missing executed tag: %v", res.Tags)
	}

	done := env.transaction(t, txID)
	assert.Equal(t, 2, len(done.Approvals))
	assert.Equal(t, true, done.Executed)

	got, err := env.ctrl.Balance(env.db, carl)
	assert.Nil(t, err)
	assert.Equal(t, int64(40), got.AmountOf("FIB"))
	rest, err := env.ctrl.Balance(env.db, walletAddr)
	assert.Nil(t, err)
	assert.Equal(t, int64(60), rest.AmountOf("FIB"))
}

func TestSubmitExecutesWithSingleRequirement(t *testing.T) {
	env := newTestEnv(t)
	alice := fibontest.NewCondition()
	carl := fibontest.NewKey()

	walletID := env.createWallet(t, alice, 1, alice.Address())
	walletAddr := MultiSigCondition(walletID).Address()
	assert.Nil(t, env.ctrl.CoinMint(env.db, walletAddr, coin.NewCoin(30, "FIB")))

	res, err := env.deliver(alice, &SubmitTransactionMsg{
		Metadata:    &fibon.Metadata{Schema: 1},
		WalletID:    walletID,
		Destination: carl,
		Amount:      coin.NewCoinp(30, "FIB"),
	})
	assert.Nil(t, err)
	if !hasTag(res, "multisig/executed") {
		t.Fatalf("missing executed tag: %v", res.Tags)
	}

	got, err := env.ctrl.Balance(env.db, carl)
	assert.Nil(t, err)
	assert.Equal(t, int64(30), got.AmountOf("FIB"))
}

func TestSubmitAuthorization(t *testing.T) {
	env := newTestEnv(t)
	alice := fibontest.NewCondition()
	eve := fibontest.NewCondition()
	carl := fibontest.NewKey()

	walletID := env.createWallet(t, alice, 1, alice.Address())
	walletAddr := MultiSigCondition(walletID).Address()
	assert.Nil(t, env.ctrl.CoinMint(env.db, walletAddr, coin.NewCoin(30, "FIB")))

	_, err := env.deliver(eve, &SubmitTransactionMsg{
		Metadata:    &fibon.Metadata{Schema: 1},
		WalletID:    walletID,
		Destination: carl,
		Amount:      coin.NewCoinp(10, "FIB"),
	})
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestSubmitInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	alice := fibontest.NewCondition()
	carl := fibontest.NewKey()

	walletID := env.createWallet(t, alice, 1, alice.Address())

	// The wallet holds nothing yet, a withdrawal cannot be submitted.
	_, err := env.deliver(alice, &SubmitTransactionMsg{
		Metadata:    &fibon.Metadata{Schema: 1},
		WalletID:    walletID,
		Destination: carl,
		Amount:      coin.NewCoinp(10, "FIB"),
	})
	assert.IsErr(t, errors.ErrAmount, err)
}

func TestApproveErrors(t *testing.T) {
	env := newTestEnv(t)
	alice := fibontest.NewCondition()
	bob := fibontest.NewCondition()
	eve := fibontest.NewCondition()
	carl := fibontest.NewKey()

	walletID := env.createWallet(t, alice, 2, alice.Address(), bob.Address())
	walletAddr := MultiSigCondition(walletID).Address()
	assert.Nil(t, env.ctrl.CoinMint(env.db, walletAddr, coin.NewCoin(100, "FIB")))

	res, err := env.deliver(alice, &SubmitTransactionMsg{
		Metadata:    &fibon.Metadata{Schema: 1},
		WalletID:    walletID,
		Destination: carl,
		Amount:      coin.NewCoinp(10, "FIB"),
	})
	assert.Nil(t, err)
	txID := res.Data

	approve := &ApproveTransactionMsg{
		Metadata:      &fibon.Metadata{Schema: 1},
		TransactionID: txID,
	}

	// The submitter already approved.
	_, err = env.deliver(alice, approve)
	assert.IsErr(t, errors.ErrDuplicate, err)

	// Outsiders cannot approve.
	_, err = env.deliver(eve, approve)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// The second owner executes it.
	_, err = env.deliver(bob, approve)
	assert.Nil(t, err)

	// An executed transaction is final.
	_, err = env.deliver(bob, approve)
	assert.IsErr(t, errors.ErrState, err)

	// Unknown transaction.
	_, err = env.deliver(bob, &ApproveTransactionMsg{
		Metadata:      &fibon.Metadata{Schema: 1},
		TransactionID: fibontest.SequenceID(123),
	})
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestFailedExecutionIsRetryable(t *testing.T) {
	env := newTestEnv(t)
	alice := fibontest.NewCondition()
	bob := fibontest.NewCondition()
	carl := fibontest.NewKey()

	walletID := env.createWallet(t, alice, 2, alice.Address(), bob.Address())
	walletAddr := MultiSigCondition(walletID).Address()
	assert.Nil(t, env.ctrl.CoinMint(env.db, walletAddr, coin.NewCoin(50, "FIB")))

	res, err := env.deliver(alice, &SubmitTransactionMsg{
		Metadata:    &fibon.Metadata{Schema: 1},
		WalletID:    walletID,
		Destination: carl,
		Amount:      coin.NewCoinp(50, "FIB"),
	})
	assert.Nil(t, err)
	txID := res.Data

	// The wallet balance changes between the submission and the final
	// approval.
	assert.Nil(t, env.ctrl.MoveCoins(env.db, walletAddr, fibontest.NewKey(), coin.NewCoin(30, "FIB")))

	// The approval succeeds even though the execution cannot.
	res, err = env.deliver(bob, &ApproveTransactionMsg{
		Metadata:      &fibon.Metadata{Schema: 1},
		TransactionID: txID,
	})
	assert.Nil(t, err)
	if !hasTag(res, "multisig/exec-failure") {
		t.Fatalf("missing failure tag: %v", res.Tags)
	}

	failed := env.transaction(t, txID)
	assert.Equal(t, 2, len(failed.Approvals))
	assert.Equal(t, false, failed.Executed)
	if _, err := env.ctrl.Balance(env.db, carl); !errors.ErrNotFound.Is(err) {
		t.Fatalf("funds moved on a failed execution: %+v", err)
	}

	// Not enough funds yet, the explicit retry fails the same way.
	res, err = env.deliver(alice, &ExecuteTransactionMsg{
		Metadata:      &fibon.Metadata{Schema: 1},
		TransactionID: txID,
	})
	assert.Nil(t, err)
	if !hasTag(res, "multisig/exec-failure") {
		t.Fatalf("missing failure tag: %v", res.Tags)
	}

	// Once the wallet is funded again the retry goes through. The
	// execution itself is open to anyone, the approvals are collected
	// already.
	assert.Nil(t, env.ctrl.CoinMint(env.db, walletAddr, coin.NewCoin(30, "FIB")))
	res, err = env.deliver(fibontest.NewCondition(), &ExecuteTransactionMsg{
		Metadata:      &fibon.Metadata{Schema: 1},
		TransactionID: txID,
	})
	assert.Nil(t, err)
	if !hasTag(res, "multisig/executed") {
		t.Fatalf("missing executed tag: %v", res.Tags)
	}

	got, err := env.ctrl.Balance(env.db, carl)
	assert.Nil(t, err)
	assert.Equal(t, int64(50), got.AmountOf("FIB"))

	// Execution is exactly once, another retry must be rejected.
	_, err = env.deliver(alice, &ExecuteTransactionMsg{
		Metadata:      &fibon.Metadata{Schema: 1},
		TransactionID: txID,
	})
	assert.IsErr(t, errors.ErrState, err)
}

func TestForwardedMessageExecution(t *testing.T) {
	env := newTestEnv(t)
	alice := fibontest.NewCondition()
	carl := fibontest.NewKey()

	walletID := env.createWallet(t, alice, 1, alice.Address())
	walletAddr := MultiSigCondition(walletID).Address()
	assert.Nil(t, env.ctrl.CoinMint(env.db, walletAddr, coin.NewCoin(70, "FIB")))

	// The wallet sends its own funds through a forwarded cash message,
	// authorized by the wallet condition.
	inner := &cash.SendMsg{
		Metadata:    &fibon.Metadata{Schema: 1},
		Source:      walletAddr,
		Destination: carl,
		Amount:      coin.NewCoinp(25, "FIB"),
	}
	raw, err := inner.Marshal()
	assert.Nil(t, err)

	res, err := env.deliver(alice, &SubmitTransactionMsg{
		Metadata: &fibon.Metadata{Schema: 1},
		WalletID: walletID,
		RawMsg:   raw,
	})
	assert.Nil(t, err)
	if !hasTag(res, "multisig/executed") {
		t.Fatalf("missing executed tag: %v", res.Tags)
	}

	got, err := env.ctrl.Balance(env.db, carl)
	assert.Nil(t, err)
	assert.Equal(t, int64(25), got.AmountOf("FIB"))
}
