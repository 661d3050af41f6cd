package orm

import (
	"encoding/binary"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// Sequence maintains a monotonic counter in the database. The first value
// returned is 1 and each NextVal call increments the state.
type Sequence struct {
	id []byte
}

// NewSequence returns a sequence counter. Sequence is identified by a
// bucket and name pair and those must not change during the lifetime of the
// database.
func NewSequence(bucket, name string) Sequence {
	return Sequence{
		id: []byte("_s." + bucket + ":" + name),
	}
}

// NextVal increments the sequence and returns its state as an 8 byte big
// endian encoded value.
func (s Sequence) NextVal(db fibon.KVStore) ([]byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get sequence state")
	}

	var val uint64
	if raw != nil {
		if len(raw) != 8 {
			return nil, errors.Wrapf(errors.ErrState, "invalid sequence state: %x", raw)
		}
		val = binary.BigEndian.Uint64(raw)
	}
	val++

	raw = make([]byte, 8)
	binary.BigEndian.PutUint64(raw, val)
	if err := db.Set(s.id, raw); err != nil {
		return nil, errors.Wrap(err, "cannot store sequence state")
	}
	return raw, nil
}
