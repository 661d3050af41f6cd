package vesting

import (
	"math/big"

	fibon "github.com/fibondev/fibon-token"
)

// scale is the fixed point precision of the vesting math. All intermediate
// values are computed on big integers, so the phase amounts cannot overflow
// and rounding always happens downwards. Rounding down keeps the released
// sum below the allocation until the curve completes.
var scale = big.NewInt(1_000_000_000_000_000_000)

var hundred = big.NewInt(100)

// VestedAmount returns how much of the allocation is unlocked at the given
// time. The result is monotonic in time and reaches the full allocation
// once the last phase is over. A disabled schedule unlocks nothing beyond
// the already released amount.
func (s *Schedule) VestedAmount(now fibon.UnixTime) int64 {
	if s.Disabled {
		return s.Released
	}
	return vestedAmount(s.Phases, s.StartTime, s.Allocation, now)
}

// ReleasableAmount returns the unlocked but not yet paid out amount.
func (s *Schedule) ReleasableAmount(now fibon.UnixTime) int64 {
	return s.VestedAmount(now) - s.Released
}

// VestedPercentage returns how many percent of the allocation is unlocked
// at the given time, rounded down.
func (s *Schedule) VestedPercentage(now fibon.UnixTime) int64 {
	if s.Allocation == 0 {
		return 0
	}
	return s.VestedAmount(now) * 100 / s.Allocation
}

func vestedAmount(phases []*Phase, start fibon.UnixTime, allocation int64, now fibon.UnixTime) int64 {
	if allocation == 0 {
		return 0
	}

	alloc := big.NewInt(allocation)
	total := new(big.Int)

	for _, p := range phases {
		pstart := start.Add(p.StartOffset.Duration())
		pend := start.Add(p.EndOffset.Duration())

		if now < pstart {
			// Phases are ordered, nothing further is unlocked.
			break
		}

		// share = allocation * percentage * scale / 100
		share := new(big.Int).Mul(alloc, big.NewInt(int64(p.Percentage)))
		share.Mul(share, scale)
		share.Div(share, hundred)

		if now >= pend {
			// Covers the degenerate instant unlock phase too, where
			// the start and end collapse into one point.
			total.Add(total, share)
			continue
		}

		elapsed := big.NewInt(int64(now - pstart))
		duration := big.NewInt(int64(pend - pstart))
		share.Mul(share, elapsed)
		share.Div(share, duration)
		total.Add(total, share)
	}

	total.Div(total, scale)
	return total.Int64()
}
