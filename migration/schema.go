package migration

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
	"github.com/fibondev/fibon-token/orm"
)

// NewSchemaBucket returns a bucket that maintains the currently active
// schema version of every package.
func NewSchemaBucket() orm.ModelBucket {
	return orm.NewModelBucket("_schema", &Schema{})
}

// CurrentSchema returns the currently active schema version of a package.
// ErrSchema is returned if the package was never initialized.
func CurrentSchema(db fibon.ReadOnlyKVStore, packageName string) (uint32, error) {
	var s Schema
	switch err := NewSchemaBucket().One(db, []byte(packageName), &s); {
	case err == nil:
		return s.Version, nil
	case errors.ErrNotFound.Is(err):
		return 0, errors.Wrapf(errors.ErrSchema, "package %q not initialized", packageName)
	default:
		return 0, errors.Wrap(err, "cannot get schema")
	}
}

// MustInitPkg initializes given packages with schema version one. This
// function is meant to be used during the genesis setup of a test fixture.
// Panics on failure.
func MustInitPkg(db fibon.KVStore, packageNames ...string) {
	b := NewSchemaBucket()
	for _, name := range packageNames {
		// Re-initialization must not reset an already bumped version.
		if err := b.Has(db, []byte(name)); err == nil {
			continue
		}
		_, err := b.Put(db, []byte(name), &Schema{
			Metadata: &fibon.Metadata{Schema: 1},
			Pkg:      name,
			Version:  1,
		})
		if err != nil {
			panic(err)
		}
	}
}

// Initializer registers the initial schema version of packages declared in
// the genesis.
type Initializer struct{}

var _ fibon.Initializer = (*Initializer)(nil)

// FromGenesis initializes schema versions for all packages listed under the
// "initialize_schema" key.
func (Initializer) FromGenesis(opts fibon.Options, db fibon.KVStore) error {
	var pkgs []string
	if err := opts.ReadOptions("initialize_schema", &pkgs); err != nil {
		return errors.Wrap(err, "cannot load initialize_schema")
	}
	b := NewSchemaBucket()
	for _, name := range pkgs {
		_, err := b.Put(db, []byte(name), &Schema{
			Metadata: &fibon.Metadata{Schema: 1},
			Pkg:      name,
			Version:  1,
		})
		if err != nil {
			return errors.Wrapf(err, "cannot initialize %q schema", name)
		}
	}
	return nil
}
