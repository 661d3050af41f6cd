package orm

import (
	"reflect"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	fibon.Persistent
	Validate() error
}

// ModelBucket is implemented by buckets that operate on a single model
// type.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db fibon.ReadOnlyKVStore, key []byte, dest Model) error

	// Put saves given model in the database. Before inserting into
	// database, model is validated using its Validate method. If the key
	// is nil or zero length then a sequence generator is used to create a
	// unique key value.
	// Using a key that already exists in the database overwrites the
	// entity.
	Put(db fibon.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db fibon.KVStore, key []byte) error

	// Has returns nil if an entity with given primary key value exists. It
	// returns ErrNotFound if no entity can be found.
	Has(db fibon.ReadOnlyKVStore, key []byte) error

	// Register registers this bucket for a query handling under given
	// name. Query is possible by the primary index key only.
	Register(name string, r fibon.QueryRouter)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIDSequence configures the bucket to use given sequence instance for
// generating ID.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = &s
	}
}

// NewModelBucket returns a ModelBucket instance. This implementation relies
// on a model being a protobuf message. All keys are prefixed with the
// bucket name.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	mb := &modelBucket{
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(m),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	prefix []byte
	model  reflect.Type
	idSeq  *Sequence
}

var _ ModelBucket = (*modelBucket)(nil)

func (b *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

func (b *modelBucket) One(db fibon.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	if typ := reflect.TypeOf(dest); typ != b.model {
		return errors.Wrapf(errors.ErrType, "%T cannot be loaded into %s", dest, b.model)
	}

	raw, err := db.Get(b.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from store")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%x", key)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal into %T", dest)
	}
	return nil
}

func (b *modelBucket) Put(db fibon.KVStore, key []byte, m Model) ([]byte, error) {
	if typ := reflect.TypeOf(m); typ != b.model {
		return nil, errors.Wrapf(errors.ErrType, "%T cannot be stored as %s", m, b.model)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}

	if len(key) == 0 {
		if b.idSeq == nil {
			return nil, errors.Wrap(errors.ErrInput, "empty key and no sequence configured")
		}
		var err error
		key, err = b.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return nil, errors.Wrapf(err, "cannot marshal %T", m)
	}
	if err := db.Set(b.dbKey(key), raw); err != nil {
		return nil, errors.Wrap(err, "cannot store in db")
	}
	return key, nil
}

func (b *modelBucket) Delete(db fibon.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(b.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from db")
	}
	return nil
}

func (b *modelBucket) Has(db fibon.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		// Calling Has with an empty key is a mistake and must not be
		// confused with an entity that cannot be found.
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	ok, err := db.Has(b.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot check db")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%x", key)
	}
	return nil
}

func (b *modelBucket) Register(name string, r fibon.QueryRouter) {
	r.RegisterQuery("/"+name, b)
}

// Query implements the fibon.QueryHandler interface. Only point lookups by
// the primary key are supported.
func (b *modelBucket) Query(db fibon.ReadOnlyKVStore, mod string, data []byte) ([]fibon.Model, error) {
	switch mod {
	case "":
		raw, err := db.Get(b.dbKey(data))
		if err != nil {
			return nil, errors.Wrap(err, "cannot get from store")
		}
		if raw == nil {
			return nil, nil
		}
		return []fibon.Model{fibon.Pair(b.dbKey(data), raw)}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}
