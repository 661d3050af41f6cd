package migration

import (
	fibon "github.com/fibondev/fibon-token"
	"github.com/fibondev/fibon-token/errors"
)

// SchemaMigratingRegistry returns a registry that wraps every registered
// handler so that transaction messages are migrated to the current schema
// version before being processed.
func SchemaMigratingRegistry(packageName string, r fibon.Registry) fibon.Registry {
	return &schemaMigratingRegistry{
		reg:         r,
		packageName: packageName,
	}
}

type schemaMigratingRegistry struct {
	reg         fibon.Registry
	packageName string
}

func (r *schemaMigratingRegistry) Handle(m fibon.Msg, h fibon.Handler) {
	r.reg.Handle(m, &schemaMigratingHandler{
		handler:     h,
		packageName: r.packageName,
		migrations:  reg,
	})
}

type schemaMigratingHandler struct {
	handler     fibon.Handler
	packageName string
	migrations  *register
}

var _ fibon.Handler = (*schemaMigratingHandler)(nil)

func (h *schemaMigratingHandler) Check(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.CheckResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Check(ctx, db, tx)
}

func (h *schemaMigratingHandler) Deliver(ctx fibon.Context, db fibon.KVStore, tx fibon.Tx) (*fibon.DeliverResult, error) {
	if err := h.migrate(db, tx); err != nil {
		return nil, errors.Wrap(err, "migration")
	}
	return h.handler.Deliver(ctx, db, tx)
}

func (h *schemaMigratingHandler) migrate(db fibon.ReadOnlyKVStore, tx fibon.Tx) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "get msg")
	}
	migratable, ok := msg.(Migratable)
	if !ok {
		return errors.Wrapf(errors.ErrType, "message %T cannot be migrated", msg)
	}
	ver, err := CurrentSchema(db, h.packageName)
	if err != nil {
		return errors.Wrap(err, "current schema")
	}
	return h.migrations.Apply(db, migratable, ver)
}
