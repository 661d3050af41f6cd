// Package x contains the extensions of the state machine. Every extension
// is a package with message handlers and models that can be plugged into an
// application.
//
// This file holds the authentication helpers shared by all extensions.
package x

import (
	fibon "github.com/fibondev/fibon-token"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system besides signature
// verification.
type Authenticator interface {
	// GetConditions reveals all conditions fulfilled by the transaction
	// held in the context.
	GetConditions(fibon.Context) []fibon.Condition

	// HasAddress checks if any condition matches this address.
	HasAddress(fibon.Context, fibon.Address) bool
}

// MultiAuth chains together many authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of authenticators.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls: impls}
}

// GetConditions combines all conditions of all chained authenticators.
func (a MultiAuth) GetConditions(ctx fibon.Context) []fibon.Condition {
	var res []fibon.Condition
	for _, impl := range a.impls {
		add := impl.GetConditions(ctx)
		if len(add) > 0 {
			// Conditions may be duplicated, consumers must not rely on
			// uniqueness.
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true if any chained authenticator approves this
// address.
func (a MultiAuth) HasAddress(ctx fibon.Context, addr fibon.Address) bool {
	for _, impl := range a.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first condition, which is considered the primary
// author of the transaction, or nil if none.
func MainSigner(ctx fibon.Context, auth Authenticator) fibon.Condition {
	signers := auth.GetConditions(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

// GetAddresses returns the addresses for all conditions fulfilled by the
// transaction.
func GetAddresses(ctx fibon.Context, auth Authenticator) []fibon.Address {
	perms := auth.GetConditions(ctx)
	addrs := make([]fibon.Address, len(perms))
	for i, p := range perms {
		addrs[i] = p.Address()
	}
	return addrs
}

// HasAllAddresses returns true if all required addresses are fulfilled.
func HasAllAddresses(ctx fibon.Context, auth Authenticator, required []fibon.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}

// HasNAddresses returns true if at least n of the given addresses are
// fulfilled.
func HasNAddresses(ctx fibon.Context, auth Authenticator, addrs []fibon.Address, n int) bool {
	if n <= 0 {
		return true
	}
	count := 0
	for _, addr := range addrs {
		if auth.HasAddress(ctx, addr) {
			count++
			if count >= n {
				return true
			}
		}
	}
	return false
}
