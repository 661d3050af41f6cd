package multisig

import (
	"context"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/x"
)

type contextKey int

const contextKeyMultisig contextKey = iota

// withMultisig adds the wallet authority to the context. The condition is
// active for the lifetime of the execution only.
func withMultisig(ctx fibon.Context, walletID []byte) fibon.Context {
	val, _ := ctx.Value(contextKeyMultisig).([]fibon.Condition)
	return context.WithValue(ctx, contextKeyMultisig,
		append(val, MultiSigCondition(walletID)))
}

// Authenticate implements x.Authenticator and provides authentication with
// the authority of a wallet during the execution of its transactions.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the wallet conditions declared in the context.
func (Authenticate) GetConditions(ctx fibon.Context) []fibon.Condition {
	val, _ := ctx.Value(contextKeyMultisig).([]fibon.Condition)
	return val
}

// HasAddress returns true if any wallet condition in the context matches
// the given address.
func (a Authenticate) HasAddress(ctx fibon.Context, addr fibon.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
