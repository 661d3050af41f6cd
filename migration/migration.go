package migration

import (
	"fmt"
	"reflect"

	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// Migratable is implemented by any model or message that can be migrated
// between schema versions.
type Migratable interface {
	GetMetadata() *fibon.Metadata
	Validate() error
}

// Migrator is a function that migrates an entity in place from the previous
// schema version to the one it was registered for.
type Migrator func(db fibon.ReadOnlyKVStore, m Migratable) error

// NoModification is a migration that only bumps the schema version. Use it
// when the payload layout did not change between versions.
func NoModification(db fibon.ReadOnlyKVStore, m Migratable) error {
	return nil
}

// reg is the global migration routes registry. All migrations must be
// declared during the package initialization.
var reg = newRegister()

// MustRegister registers a migration of given payload to the given schema
// version. Panics on conflict or a version gap.
func MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	reg.MustRegister(migrationTo, m, fn)
}

type payloadVersion struct {
	payload reflect.Type
	version uint32
}

type register struct {
	migrations map[payloadVersion]Migrator
}

func newRegister() *register {
	return &register{
		migrations: make(map[payloadVersion]Migrator),
	}
}

func (r *register) MustRegister(migrationTo uint32, m Migratable, fn Migrator) {
	if migrationTo < 1 {
		panic("schema versions start with 1")
	}
	tp := reflect.TypeOf(m)
	pv := payloadVersion{version: migrationTo, payload: tp}
	if _, ok := r.migrations[pv]; ok {
		panic(fmt.Sprintf("migration to %d of %s already registered", migrationTo, tp))
	}
	if migrationTo > 1 {
		prev := payloadVersion{version: migrationTo - 1, payload: tp}
		if _, ok := r.migrations[prev]; !ok {
			panic(fmt.Sprintf("missing %s migration to version %d", tp, migrationTo-1))
		}
	}
	r.migrations[pv] = fn
}

// Apply migrates given payload, in place, to the given schema version. All
// migrations between the current version of the payload and the requested
// one are applied in order. Migrating to the current version is a noop.
func (r *register) Apply(db fibon.ReadOnlyKVStore, m Migratable, migrateTo uint32) error {
	meta := m.GetMetadata()
	if meta == nil {
		return errors.Wrapf(errors.ErrMetadata, "%T metadata is nil", m)
	}
	if meta.Schema == 0 {
		return errors.Wrapf(errors.ErrMetadata, "%T schema version is zero", m)
	}
	if meta.Schema > migrateTo {
		return errors.Wrapf(errors.ErrSchema, "cannot migrate %T from %d down to %d",
			m, meta.Schema, migrateTo)
	}

	tp := reflect.TypeOf(m)
	for v := meta.Schema + 1; v <= migrateTo; v++ {
		fn, ok := r.migrations[payloadVersion{version: v, payload: tp}]
		if !ok {
			return errors.Wrapf(errors.ErrSchema, "no %s migration to version %d", tp, v)
		}
		if err := fn(db, m); err != nil {
			return errors.Wrapf(err, "%s migration to version %d", tp, v)
		}
		meta.Schema = v
	}

	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "%T invalid after migration", m)
	}
	return nil
}
