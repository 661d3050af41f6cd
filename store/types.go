package store

import (
	fibon "github.com/fibondev/fibon-token"
)

// Concrete stores implement the interfaces defined in the root package. The
// aliases keep the store implementations readable.
type (
	ReadOnlyKVStore  = fibon.ReadOnlyKVStore
	KVStore          = fibon.KVStore
	SetDeleter       = fibon.SetDeleter
	Batch            = fibon.Batch
	CacheableKVStore = fibon.CacheableKVStore
	KVCacheWrap      = fibon.KVCacheWrap
	Model            = fibon.Model
)
