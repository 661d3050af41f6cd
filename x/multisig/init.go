package multisig

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// Initializer fulfils the Initializer interface to load data from the
// genesis file.
type Initializer struct{}

var _ fibon.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial wallets from genesis and save them to the
// database.
//
//	"multisig": [
//	  {"owners": ["hex:...", "hex:..."], "required": 2}
//	]
func (Initializer) FromGenesis(opts fibon.Options, db fibon.KVStore) error {
	wallets := []struct {
		Owners   []fibon.Address `json:"owners"`
		Required uint32          `json:"required"`
	}{}
	if err := opts.ReadOptions("multisig", &wallets); err != nil {
		return errors.Wrap(err, "cannot load multisig")
	}

	bucket := NewWalletBucket()
	for i, w := range wallets {
		wallet := &Wallet{
			Metadata: &fibon.Metadata{Schema: 1},
			Owners:   w.Owners,
			Required: w.Required,
		}
		if _, err := bucket.Put(db, nil, wallet); err != nil {
			return errors.Wrapf(err, "cannot store wallet #%d", i)
		}
	}
	return nil
}
