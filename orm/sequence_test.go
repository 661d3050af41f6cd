package orm

import (
	"encoding/binary"
	"testing"

	"github.com/fibondev/fibon-token/store"
	"github.com/stretchr/testify/assert"
)

func TestSequenceCounts(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("test", "counter")

	for want := uint64(1); want < 10; want++ {
		raw, err := s.NextVal(db)
		assert.NoError(t, err)
		assert.Equal(t, want, binary.BigEndian.Uint64(raw))
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("test", "aaa")
	b := NewSequence("test", "bbb")

	for i := 0; i < 3; i++ {
		if _, err := a.NextVal(db); err != nil {
			t.Fatalf("next val: %s", err)
		}
	}
	raw, err := b.NextVal(db)
	assert.NoError(t, err)
	assert.Equal(t, uint64(1), binary.BigEndian.Uint64(raw))
}
