package cash

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/coin"
	"github.com/fibondev/fibon-token/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ fibon.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis and save it to
// the database.
//
//	"cash": [
//	  {"address": "hex:...", "coins": [{"ticker": "FIB", "amount": 1000}]}
//	]
func (Initializer) FromGenesis(opts fibon.Options, db fibon.KVStore) error {
	accounts := []struct {
		Address fibon.Address `json:"address"`
		Coins   []coin.Coin   `json:"coins"`
	}{}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(err, "cannot load cash")
	}

	bucket := NewWalletBucket()
	for i, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d address", i)
		}
		set, err := coin.CombineCoins(acc.Coins...)
		if err != nil {
			return errors.Wrapf(err, "account #%d coins", i)
		}
		wallet := NewWallet()
		wallet.Coins = set
		if _, err := bucket.Put(db, acc.Address, wallet); err != nil {
			return errors.Wrapf(err, "cannot store account #%d", i)
		}
	}
	return nil
}
