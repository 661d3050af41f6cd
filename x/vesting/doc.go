// Package vesting implements custody held token distribution over phase
// based vesting curves.
//
// The catalog holds reusable curves, each a list of ordered phases that
// together unlock one hundred percent of an allocation. A schedule binds a
// beneficiary to a copy of a curve, a start time and an allocation. The
// unlocked amount is a pure function of the block time and grows
// monotonically until it reaches the allocation.
//
// All promised funds live in a single custody wallet. The pool record
// tracks the promised total, and no schedule can be created unless the
// custody balance covers it. Releases pay from the custody to the
// beneficiary and never exceed the unlocked amount.
//
// A schedule can be terminated in two ways. Revoking returns everything
// not yet released to the administrator and removes the schedule.
// Disabling pays the unlocked share to the beneficiary, forfeits the rest
// into the unallocated custody and keeps the frozen schedule around. Both
// are final.
package vesting
