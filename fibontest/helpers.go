package fibontest

import (
	"crypto/rand"
	"encoding/binary"

	fibon "github.com/fibondev/fibon-token"
)

// SequenceID returns an ID encoded the same way the bucket sequences do it,
// 8 bytes big endian.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// NewCondition returns a random signature condition, as if a new key was
// used to sign a transaction.
func NewCondition() fibon.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return fibon.NewCondition("sigs", "ed25519", data)
}

// NewKey returns a random address.
func NewKey() fibon.Address {
	return NewCondition().Address()
}
