package orm

import (
	"testing"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/store"
	proto "github.com/gogo/protobuf/proto"
	"github.com/stretchr/testify/assert"
)

// Counter is a minimal model used to exercise bucket functionality.
type Counter struct {
	Metadata *fibon.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Count    int64           `protobuf:"varint,2,opt,name=count,proto3" json:"count,omitempty"`
}

var _ Model = (*Counter)(nil)

func (c *Counter) GetMetadata() *fibon.Metadata { return c.Metadata }

func (c *Counter) Validate() error {
	if err := c.Metadata.Validate(); err != nil {
		return err
	}
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative count")
	}
	return nil
}

func (c *Counter) Marshal() ([]byte, error)  { return proto.Marshal((*counterPB)(c)) }
func (c *Counter) Unmarshal(raw []byte) error { return proto.Unmarshal(raw, (*counterPB)(c)) }

type counterPB Counter

func (c *counterPB) Reset()         { *c = counterPB{} }
func (c *counterPB) String() string { return proto.CompactTextString(c) }
func (*counterPB) ProtoMessage()    {}

func TestModelBucketPutAndOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	key, err := b.Put(db, []byte("c1"), &Counter{
		Metadata: &fibon.Metadata{Schema: 1},
		Count:    42,
	})
	assert.NoError(t, err)
	assert.Equal(t, []byte("c1"), key)

	var got Counter
	assert.NoError(t, b.One(db, []byte("c1"), &got))
	assert.Equal(t, int64(42), got.Count)
	assert.Equal(t, uint32(1), got.Metadata.Schema)
}

func TestModelBucketOneNotFound(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	var got Counter
	err := b.One(db, []byte("unknown"), &got)
	if !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestModelBucketPutValidates(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	// Missing metadata must not be persisted.
	if _, err := b.Put(db, []byte("c1"), &Counter{Count: 1}); err == nil {
		t.Fatal("want an error")
	}
}

func TestModelBucketPutSequence(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{},
		WithIDSequence(NewSequence("cnts", "id")))

	first, err := b.Put(db, nil, &Counter{Metadata: &fibon.Metadata{Schema: 1}})
	assert.NoError(t, err)
	second, err := b.Put(db, nil, &Counter{Metadata: &fibon.Metadata{Schema: 1}})
	assert.NoError(t, err)

	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, first)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 2}, second)
}

func TestModelBucketPutWrongModelType(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	if _, err := b.Put(db, []byte("k"), &badModel{}); !errors.ErrType.Is(err) {
		t.Fatalf("want type error, got %+v", err)
	}
}

func TestModelBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	_, err := b.Put(db, []byte("c1"), &Counter{Metadata: &fibon.Metadata{Schema: 1}})
	assert.NoError(t, err)

	assert.NoError(t, b.Has(db, []byte("c1")))
	assert.NoError(t, b.Delete(db, []byte("c1")))

	if err := b.Has(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
	if err := b.Delete(db, []byte("c1")); !errors.ErrNotFound.Is(err) {
		t.Fatalf("want not found, got %+v", err)
	}
}

func TestModelBucketQuery(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &Counter{})

	_, err := b.Put(db, []byte("c1"), &Counter{Metadata: &fibon.Metadata{Schema: 1}, Count: 9})
	assert.NoError(t, err)

	qr := fibon.NewQueryRouter()
	b.Register("counters", qr)
	h := qr.Handler("/counters")
	if h == nil {
		t.Fatal("query handler not registered")
	}

	models, err := h.Query(db, "", []byte("c1"))
	assert.NoError(t, err)
	assert.Equal(t, 1, len(models))
	assert.Equal(t, []byte("cnts:c1"), models[0].Key)

	models, err = h.Query(db, "", []byte("unknown"))
	assert.NoError(t, err)
	assert.Equal(t, 0, len(models))
}

// badModel implements Model but is not the bucket's model type.
type badModel struct{}

func (badModel) Validate() error          { return nil }
func (badModel) Marshal() ([]byte, error) { return nil, nil }
func (badModel) Unmarshal([]byte) error   { return nil }
