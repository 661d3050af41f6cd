package store

import (
	"bytes"

	"github.com/google/btree"
)

const (
	// Default btree degree, 32 children per node keeps the tree shallow
	// for typical block-sized write sets.
	defaultDegree = 32
)

// BTreeCacheable adds a CacheWrap to a KVStore by keeping the pending
// writes in an in-memory btree until they are flushed.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this
// store, or rolled back.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, NewNonAtomicBatch(b.KVStore), nil)
}

// MemStore returns an empty cacheable store, for tests and dry runs.
func MemStore() CacheableKVStore {
	bt := BTreeCacheable{KVStore: EmptyKVStore{}}
	// The cache wrap over an empty store never flushes anywhere visible,
	// so the wrap itself is the store.
	return NewBTreeCacheWrap(bt.KVStore, NewNonAtomicBatch(bt.KVStore), nil)
}

// keyer is an item in the btree that exposes the raw key it is stored
// under.
type keyer interface {
	btree.Item
	Key() []byte
}

type setItem struct {
	key   []byte
	value []byte
}

func (i setItem) Key() []byte { return i.key }

func (i setItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(keyer).Key()) < 0
}

type deletedItem struct {
	key []byte
}

func (i deletedItem) Key() []byte { return i.key }

func (i deletedItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(keyer).Key()) < 0
}

// BTreeCacheWrap places a btree on top of a backing store and records all
// writes in both the tree and a batch. Write flushes the batch into the
// backing store, Discard drops everything.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTreeCacheWrap and reserves the free
// list, so it is returned on Discard.
func NewBTreeCacheWrap(back ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(500)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(defaultDegree, free),
		free:  free,
		back:  back,
		batch: batch,
	}
}

// CacheWrap layers another cache on top of this one. All writes to the
// inner cache stay invisible until its Write.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	// The nested wrap gets its own free list. Two trees sharing one list
	// is not safe when the inner one is discarded.
	return NewBTreeCacheWrap(b, NewNonAtomicBatch(b), nil)
}

// Write syncs the cached writes with the underlying store.
func (b BTreeCacheWrap) Write() error {
	return b.batch.Write()
}

// Discard drops all cached writes and releases the tree nodes.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
}

func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(setItem{key: key, value: value})
	return b.batch.Set(key, value)
}

func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(deletedItem{key: key})
	return b.batch.Delete(key)
}

func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	switch item := b.bt.Get(setItem{key: key}).(type) {
	case setItem:
		return item.value, nil
	case deletedItem:
		return nil, nil
	}
	return b.back.Get(key)
}

func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	switch b.bt.Get(setItem{key: key}).(type) {
	case setItem:
		return true, nil
	case deletedItem:
		return false, nil
	}
	return b.back.Has(key)
}
