package cash

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/coin"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/migration"
	"github.com/fibondev/fibon-token/orm"
)

func init() {
	migration.MustRegister(1, &Set{}, migration.NoModification)
}

var _ orm.Model = (*Set)(nil)

// Validate requires a valid metadata and a normalized coin set.
func (s *Set) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return coin.Coins(s.Coins).Validate()
}

// NewWallet returns an empty wallet in the current schema.
func NewWallet() *Set {
	return &Set{
		Metadata: &fibon.Metadata{Schema: 1},
	}
}

// NewWalletBucket returns a bucket of wallets keyed by the owner address.
func NewWalletBucket() orm.ModelBucket {
	b := orm.NewModelBucket("cash", &Set{})
	return migration.NewModelBucket("cash", b)
}

// RegisterQuery registers the wallet bucket for queries.
func RegisterQuery(qr fibon.QueryRouter) {
	NewWalletBucket().Register("accounts", qr)
}
