package cash

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
	"github.com/fibondev/fibon-token/store"
)

func TestSendHandler(t *testing.T) {
	alice := fibontest.NewCondition()
	bob := fibontest.NewCondition()

	cases := map[string]struct {
		msg     *SendMsg
		signer  fibon.Condition
		wantErr *errors.Error
	}{
		"send with explicit source": {
			msg: &SendMsg{
				Metadata:    &fibon.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(10, "FIB"),
			},
			signer: alice,
		},
		"send with default source": {
			msg: &SendMsg{
				Metadata:    &fibon.Metadata{Schema: 1},
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(10, "FIB"),
			},
			signer: alice,
		},
		"source not signed": {
			msg: &SendMsg{
				Metadata:    &fibon.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(10, "FIB"),
			},
			signer:  bob,
			wantErr: errors.ErrUnauthorized,
		},
		"missing amount": {
			msg: &SendMsg{
				Metadata:    &fibon.Metadata{Schema: 1},
				Source:      alice.Address(),
				Destination: bob.Address(),
			},
			signer:  alice,
			wantErr: errors.ErrAmount,
		},
		"missing metadata": {
			msg: &SendMsg{
				Source:      alice.Address(),
				Destination: bob.Address(),
				Amount:      coin.NewCoinp(10, "FIB"),
			},
			signer:  alice,
			wantErr: errors.ErrMetadata,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			migration.MustInitPkg(db, "cash")

			ctrl := NewController(NewWalletBucket())
			assert.Nil(t, ctrl.CoinMint(db, alice.Address(), coin.NewCoin(100, "FIB")))

			auth := &fibontest.Auth{Signer: tc.signer}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth, ctrl)

			tx := &fibontest.Tx{Msg: tc.msg}
			ctx := context.Background()

			if _, err := rt.Check(ctx, db, tx); tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}

			_, err := rt.Deliver(ctx, db, tx)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			got, err := ctrl.Balance(db, bob.Address())
			assert.Nil(t, err)
			assert.Equal(t, int64(10), got.AmountOf("FIB"))
		})
	}
}
