package app

import (
	fibon "github.com/fibondev/fibon-token"
)

// Decorators holds a chain of decorators, not yet resolved by a handler.
type Decorators struct {
	chain []fibon.Decorator
}

// ChainDecorators takes a chain of decorators. The first decorator passed
// in is called first.
func ChainDecorators(chain ...fibon.Decorator) Decorators {
	return Decorators{chain: chain}
}

// Chain appends more decorators to the chain.
func (d Decorators) Chain(next ...fibon.Decorator) Decorators {
	return Decorators{chain: append(d.chain, next...)}
}

// WithHandler resolves the chain with a final handler and returns a single
// handler that runs the whole stack.
func (d Decorators) WithHandler(h fibon.Handler) fibon.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = chainLink{dec: d.chain[i], next: h}
	}
	return h
}

// chainLink binds a decorator with its next handler.
type chainLink struct {
	dec  fibon.Decorator
	next fibon.Handler
}

var _ fibon.Handler = chainLink{}

func (l chainLink) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l chainLink) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
