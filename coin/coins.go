package coin

import (
	"sort"
	"strings"

	"github.com/fibondev/fibon-token/errors"
)

// Coins is a sorted set of coins, at most one per ticker. The set is kept
// normalized: sorted by ticker, no zero amounts, no duplicates.
type Coins []*Coin

// CombineCoins creates a sorted set of coins from any number of inputs.
// Coins of the same ticker are merged. An error is returned when the result
// is not a valid set.
func CombineCoins(cs ...Coin) (Coins, error) {
	var s Coins
	for _, c := range cs {
		next, err := s.Add(c)
		if err != nil {
			return nil, err
		}
		s = next
	}
	return s, s.Validate()
}

// Clone returns a deep copy of the set.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		cpy := *c
		res[i] = &cpy
	}
	return res
}

// Add modifies the set, returning a new set with the given coin merged in.
// The receiver is not modified, but may share members with the result.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	idx := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= c.Ticker
	})

	// A new ticker, insert at idx.
	if idx == len(cs) || cs[idx].Ticker != c.Ticker {
		res := make(Coins, 0, len(cs)+1)
		res = append(res, cs[:idx]...)
		res = append(res, &c)
		res = append(res, cs[idx:]...)
		return res, nil
	}

	sum, err := cs[idx].Add(c)
	if err != nil {
		return nil, err
	}
	res := make(Coins, 0, len(cs))
	res = append(res, cs[:idx]...)
	if !sum.IsZero() {
		res = append(res, &sum)
	}
	res = append(res, cs[idx+1:]...)
	return res, nil
}

// Subtract returns a new set with the given coin removed from it.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine merges two sets of coins into a new one.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs.Clone()
	for _, c := range o {
		next, err := res.Add(*c)
		if err != nil {
			return nil, err
		}
		res = next
	}
	return res, nil
}

// Contains returns true if there is at least that much coin in the set.
func (cs Coins) Contains(c Coin) bool {
	for _, has := range cs {
		if has.Ticker == c.Ticker {
			return has.IsGTE(c)
		}
	}
	return false
}

// AmountOf returns the amount stored for the given ticker, zero if absent.
func (cs Coins) AmountOf(ticker string) int64 {
	for _, c := range cs {
		if c.Ticker == ticker {
			return c.Amount
		}
	}
	return 0
}

// IsPositive returns true if all coins in the set are positive and the set
// is not empty.
func (cs Coins) IsPositive() bool {
	if len(cs) == 0 {
		return false
	}
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// IsNonNegative returns true if no coin in the set is negative. An empty
// set qualifies.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets contain the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// IsEmpty returns true when the set holds no value.
func (cs Coins) IsEmpty() bool {
	for _, c := range cs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Validate ensures the set is normalized: every coin valid and non-zero,
// tickers unique and in ascending order.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrState, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrState, "zero coin in set")
		}
		if c.Ticker <= last {
			return errors.Wrapf(errors.ErrState, "unsorted ticker: %s", c.Ticker)
		}
		last = c.Ticker
	}
	return nil
}

// String provides a human readable representation of the set.
func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
