package store

import (
	"github.com/fibondev/fibon-token/errors"
)

// batchOp is a single operation to be performed in a batch.
type batchOp struct {
	key    []byte
	value  []byte // nil means delete
	delete bool
}

// NonAtomicBatch collects write operations and applies them to the
// underlying store on Write. There is no rollback on a partial failure, so
// wrap the store in a cache if atomicity matters.
type NonAtomicBatch struct {
	out SetDeleter
	ops []batchOp
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch that flushes into the given
// store.
func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, batchOp{key: key, value: value})
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, batchOp{key: key, delete: true})
	return nil
}

// Write flushes all pending operations in order.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		var err error
		if op.delete {
			err = b.out.Delete(op.key)
		} else {
			err = b.out.Set(op.key, op.value)
		}
		if err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}

// EmptyKVStore never holds any data. Writes succeed and are dropped. It is
// the terminal backing of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) {
	if key == nil {
		return nil, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return nil, nil
}

func (EmptyKVStore) Has(key []byte) (bool, error) {
	if key == nil {
		return false, errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return false, nil
}

func (EmptyKVStore) Set(key, value []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return nil
}

func (EmptyKVStore) Delete(key []byte) error {
	if key == nil {
		return errors.Wrap(errors.ErrDatabase, "nil key")
	}
	return nil
}

// NewBatch returns a batch that drops everything on Write.
func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}
