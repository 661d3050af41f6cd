package fibon

// Defines all public interfaces for interacting with stores.

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Errors on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Errors on nil key.
	Has(key []byte) (bool, error)
}

// KVStore is a simple interface to get/set data.
//
// For simplicity, we require all backing stores to implement this interface.
// They *may* implement other methods as well, but at least these are
// required.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Errors on nil key.
	Set(key, value []byte) error

	// Delete deletes the key. Errors on nil key.
	Delete(key []byte) error
}

// SetDeleter is a subset of the KVStore methods that modify state.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// Batch can write multiple operations to the store atomically.
type Batch interface {
	SetDeleter
	Write() error
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap() should not return a Committer, since Commit() on cache-wraps
// makes no sense.
//
// These extend KVStore to allow grouping temporary writes which may be
// committed/discarded together. Like Postgresql SAVEPOINT / ROLLBACK TO
// SAVEPOINT.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap allows us to maintain a scratch-pad of uncommitted data that
// we can view with all queries.
//
// At the end, call Write to use the cached data, or Discard to drop it.
type KVCacheWrap interface {
	// CacheableKVStore allows us to use this Cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// Model groups together key and value to return.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return Model{
		Key:   key,
		Value: value,
	}
}
