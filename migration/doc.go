// Package migration provides tooling to maintain entities in multiple
// schema versions.
//
// Every persisted model and every message carries a Metadata header with a
// schema version. Migration functions are registered per payload type and
// are applied in order to bring an old entity up to the version supported
// by the running code. Wrap your buckets with NewModelBucket and your
// routing with SchemaMigratingRegistry to get migrations applied
// transparently.
package migration
