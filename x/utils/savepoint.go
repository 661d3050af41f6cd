package utils

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// Savepoint wraps the call with a cache-wrap of the store. On success the
// cache is flushed, on an error all writes of the wrapped call are
// discarded.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ fibon.Decorator = Savepoint{}

// NewSavepoint creates a savepoint decorator that is a no-op until enabled
// with OnCheck or OnDeliver.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that is active on Check.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a savepoint that is active on Deliver.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx, next fibon.Checker) (*fibon.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	cache, err := cacheWrap(db)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot flush cache")
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx, next fibon.Deliverer) (*fibon.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	cache, err := cacheWrap(db)
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return res, err
	}
	if err := cache.Write(); err != nil {
		return nil, errors.Wrap(err, "cannot flush cache")
	}
	return res, nil
}

func cacheWrap(db fibon.KVStore) (fibon.KVCacheWrap, error) {
	cstore, ok := db.(fibon.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "store cannot be cache wrapped")
	}
	return cstore.CacheWrap(), nil
}
