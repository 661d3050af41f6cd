package fibontest

import (
	"context"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/x"
)

// Auth is a mock implementing x.Authenticator interface. It authenticates
// given conditions regardless of the context content.
type Auth struct {
	// Signer is the main signer of the context. Returned first.
	Signer fibon.Condition
	// Signers are additional signers of the context.
	Signers []fibon.Condition
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetConditions(fibon.Context) []fibon.Condition {
	var conds []fibon.Condition
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return append(conds, a.Signers...)
}

func (a *Auth) HasAddress(ctx fibon.Context, addr fibon.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is an x.Authenticator implementation that reads conditions from
// the context. Use the same authentication key for both setting and
// reading.
type CtxAuth struct {
	Key string
}

var _ x.Authenticator = (*CtxAuth)(nil)

type ctxAuthKey struct{ key string }

// SetConditions returns a context with the given conditions attached.
func (a *CtxAuth) SetConditions(ctx fibon.Context, conds ...fibon.Condition) fibon.Context {
	return context.WithValue(ctx, ctxAuthKey{key: a.Key}, conds)
}

func (a *CtxAuth) GetConditions(ctx fibon.Context) []fibon.Condition {
	conds, ok := ctx.Value(ctxAuthKey{key: a.Key}).([]fibon.Condition)
	if !ok {
		return nil
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx fibon.Context, addr fibon.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
