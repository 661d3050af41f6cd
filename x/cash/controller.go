package cash

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/coin"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/orm"
)

// Controller is the functionality needed by the handlers of this and other
// packages that move funds around. This is implemented by CashController
// and can be mocked in tests.
type Controller interface {
	// MoveCoins removes funds from the source wallet and adds them to the
	// destination wallet.
	MoveCoins(db fibon.KVStore, source, destination fibon.Address, amount coin.Coin) error

	// CoinMint creates new tokens out of thin air and adds them to the
	// destination wallet. Use with care, this breaks the supply unless
	// accounted for.
	CoinMint(db fibon.KVStore, destination fibon.Address, amount coin.Coin) error

	// Balance returns the full balance of a wallet. ErrNotFound is
	// returned for a wallet that does not exist.
	Balance(db fibon.KVStore, addr fibon.Address) (coin.Coins, error)
}

// CashController is the standard implementation of the Controller backed by
// the wallet bucket.
type CashController struct {
	bucket orm.ModelBucket
}

var _ Controller = CashController{}

// NewController returns a controller using the given wallet bucket.
func NewController(bucket orm.ModelBucket) CashController {
	return CashController{bucket: bucket}
}

// MoveCoins transfers funds between wallets. The source must exist and hold
// at least the requested amount. A wallet that is drained to zero is
// removed from the database.
func (c CashController) MoveCoins(db fibon.KVStore, source, destination fibon.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive send: %v", amount.Amount)
	}

	var src Set
	switch err := c.bucket.One(db, source, &src); {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrEmpty, "source %s", source)
	case err != nil:
		return errors.Wrap(err, "cannot load source")
	}

	if !coin.Coins(src.Coins).Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds in %s", source)
	}
	rest, err := coin.Coins(src.Coins).Subtract(amount)
	if err != nil {
		return errors.Wrap(err, "cannot subtract")
	}

	if rest.IsEmpty() {
		if err := c.bucket.Delete(db, source); err != nil {
			return errors.Wrap(err, "cannot prune source")
		}
	} else {
		src.Coins = rest
		if _, err := c.bucket.Put(db, source, &src); err != nil {
			return errors.Wrap(err, "cannot store source")
		}
	}

	return c.credit(db, destination, amount)
}

// CoinMint issues new tokens into the destination wallet.
func (c CashController) CoinMint(db fibon.KVStore, destination fibon.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive mint: %v", amount.Amount)
	}
	return c.credit(db, destination, amount)
}

func (c CashController) credit(db fibon.KVStore, addr fibon.Address, amount coin.Coin) error {
	dst := NewWallet()
	switch err := c.bucket.One(db, addr, dst); {
	case err == nil, errors.ErrNotFound.Is(err):
		// A destination wallet is created on demand.
	default:
		return errors.Wrap(err, "cannot load destination")
	}

	sum, err := coin.Coins(dst.Coins).Add(amount)
	if err != nil {
		return errors.Wrap(err, "cannot add")
	}
	dst.Coins = sum
	if _, err := c.bucket.Put(db, addr, dst); err != nil {
		return errors.Wrap(err, "cannot store destination")
	}
	return nil
}

// Balance returns the coins in the given wallet.
func (c CashController) Balance(db fibon.KVStore, addr fibon.Address) (coin.Coins, error) {
	var wallet Set
	if err := c.bucket.One(db, addr, &wallet); err != nil {
		return nil, errors.Wrap(err, "cannot load wallet")
	}
	return wallet.Coins, nil
}
