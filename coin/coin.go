package coin

import (
	"regexp"

	"github.com/fibondev/fibon-token/errors"
	proto "github.com/gogo/protobuf/proto"
)

// isTicker is the RegExp to ensure valid tickers.
var isTicker = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

// Coin is an amount of a given currency. The amount is kept in the smallest
// indivisible unit of the token, so there is no fractional part.
//
// The structure is hand-maintained together with codec.proto.
type Coin struct {
	// Ticker is 3-4 upper-case letters and all Coins of the same currency
	// can be combined.
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	// Amount in the smallest unit, may be negative for deltas.
	Amount int64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

// NewCoin creates a new coin object.
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns the ticker of the coin.
func (c Coin) ID() string {
	return c.Ticker
}

// IsZero returns true if the amount is zero.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the amount is greater than zero.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the amount is zero or greater.
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if c is same type and at least as big as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if both coins have the same ticker.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Equals returns true if both coins are identical.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// Add combines two coins of the same currency. It returns an error on a
// currency mismatch or an int64 overflow.
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins is zero it adopts the ticker of the other one.
	if c.Ticker == "" {
		c.Ticker = o.Ticker
	}
	if o.Ticker == "" {
		o.Ticker = c.Ticker
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "%s and %s", c.Ticker, o.Ticker)
	}

	sum := c.Amount + o.Amount
	if (c.Amount > 0 && o.Amount > 0 && sum < 0) ||
		(c.Amount < 0 && o.Amount < 0 && sum > 0) {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "amount")
	}
	c.Amount = sum
	return c, nil
}

// Subtract removes the amount of the other coin from this one. Errors on
// currency mismatch or overflow.
func (c Coin) Subtract(o Coin) (Coin, error) {
	return c.Add(o.Negative())
}

// Negative returns the opposite coin: (c.Add(c.Negative())).IsZero() == true.
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: -1 * c.Amount,
	}
}

// Multiply returns the result of a scalar multiplication of the amount.
// Errors on an int64 overflow.
func (c Coin) Multiply(times int64) (Coin, error) {
	if times == 0 || c.Amount == 0 {
		return Coin{Ticker: c.Ticker}, nil
	}
	amount := c.Amount * times
	if amount/times != c.Amount {
		return Coin{}, errors.Wrap(errors.ErrOverflow, "amount")
	}
	c.Amount = amount
	return c, nil
}

// Validate ensures the coin is well formed.
func (c Coin) Validate() error {
	if !isTicker(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid ticker: %s", c.Ticker)
	}
	return nil
}

// String provides a human readable representation of the coin.
func (c Coin) String() string {
	return proto.CompactTextString((*coinPB)(&c))
}

func (c *Coin) Marshal() ([]byte, error) {
	return proto.Marshal((*coinPB)(c))
}

func (c *Coin) Unmarshal(raw []byte) error {
	return proto.Unmarshal(raw, (*coinPB)(c))
}

type coinPB Coin

func (c *coinPB) Reset()         { *c = coinPB{} }
func (c *coinPB) String() string { return proto.CompactTextString(c) }
func (*coinPB) ProtoMessage()    {}
