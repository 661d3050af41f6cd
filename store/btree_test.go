package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemStoreSetGetDelete(t *testing.T) {
	db := MemStore()

	k, v := []byte("hello"), []byte("world")

	has, err := db.Has(k)
	assert.NoError(t, err)
	assert.False(t, has)

	assert.NoError(t, db.Set(k, v))

	got, err := db.Get(k)
	assert.NoError(t, err)
	assert.Equal(t, v, got)

	assert.NoError(t, db.Delete(k))

	got, err = db.Get(k)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheWrapWrite(t *testing.T) {
	db := MemStore()
	assert.NoError(t, db.Set([]byte("a"), []byte("1")))

	cache := db.CacheWrap()
	assert.NoError(t, cache.Set([]byte("b"), []byte("2")))
	assert.NoError(t, cache.Delete([]byte("a")))

	// Changes are visible in the cache only.
	got, err := cache.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
	has, err := cache.Has([]byte("a"))
	assert.NoError(t, err)
	assert.False(t, has)

	has, err = db.Has([]byte("b"))
	assert.NoError(t, err)
	assert.False(t, has)
	has, err = db.Has([]byte("a"))
	assert.NoError(t, err)
	assert.True(t, has)

	// After a write they land in the backing store.
	assert.NoError(t, cache.Write())

	got, err = db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
	has, err = db.Has([]byte("a"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestCacheWrapDiscard(t *testing.T) {
	db := MemStore()
	assert.NoError(t, db.Set([]byte("a"), []byte("1")))

	cache := db.CacheWrap()
	assert.NoError(t, cache.Set([]byte("b"), []byte("2")))
	assert.NoError(t, cache.Delete([]byte("a")))
	cache.Discard()

	// The backing store is untouched.
	got, err := db.Get([]byte("a"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
	has, err := db.Has([]byte("b"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestNestedCacheWrap(t *testing.T) {
	db := MemStore()

	outer := db.CacheWrap()
	assert.NoError(t, outer.Set([]byte("a"), []byte("1")))

	inner := outer.CacheWrap()
	assert.NoError(t, inner.Set([]byte("b"), []byte("2")))
	assert.NoError(t, inner.Write())

	// Inner writes go to the outer cache, not the store.
	got, err := outer.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
	has, err := db.Has([]byte("b"))
	assert.NoError(t, err)
	assert.False(t, has)

	assert.NoError(t, outer.Write())
	got, err = db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), got)
}
