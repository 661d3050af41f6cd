package migration

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/orm"
)

// NewModelBucket returns a ModelBucket instance that ensures that all
// models are in the currently active schema version. Loaded entities are
// migrated on the fly and stored entities with a zero schema get the
// current version assigned.
func NewModelBucket(packageName string, b orm.ModelBucket) orm.ModelBucket {
	return &schemaMigratingModelBucket{
		ModelBucket: b,
		packageName: packageName,
		migrations:  reg,
	}
}

type schemaMigratingModelBucket struct {
	orm.ModelBucket
	packageName string
	migrations  *register
}

func (b *schemaMigratingModelBucket) One(db fibon.ReadOnlyKVStore, key []byte, dest orm.Model) error {
	if err := b.ModelBucket.One(db, key, dest); err != nil {
		return err
	}
	return b.migrate(db, dest)
}

func (b *schemaMigratingModelBucket) Put(db fibon.KVStore, key []byte, m orm.Model) ([]byte, error) {
	migratable, ok := m.(Migratable)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T cannot be migrated", m)
	}
	ver, err := CurrentSchema(db, b.packageName)
	if err != nil {
		return nil, errors.Wrap(err, "current schema")
	}
	meta := migratable.GetMetadata()
	if meta == nil {
		return nil, errors.Wrapf(errors.ErrMetadata, "%T metadata is nil", m)
	}
	// A zero schema is a request to use the current version.
	if meta.Schema == 0 {
		meta.Schema = ver
	}
	if meta.Schema > ver {
		return nil, errors.Wrapf(errors.ErrSchema, "%T schema %d ahead of package schema %d",
			m, meta.Schema, ver)
	}
	if err := b.migrate(db, m); err != nil {
		return nil, err
	}
	return b.ModelBucket.Put(db, key, m)
}

func (b *schemaMigratingModelBucket) migrate(db fibon.ReadOnlyKVStore, m orm.Model) error {
	migratable, ok := m.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrType, "%T cannot be migrated", m)
	}
	ver, err := CurrentSchema(db, b.packageName)
	if err != nil {
		return errors.Wrap(err, "current schema")
	}
	if err := b.migrations.Apply(db, migratable, ver); err != nil {
		return errors.Wrapf(err, "cannot migrate %T", m)
	}
	return nil
}
