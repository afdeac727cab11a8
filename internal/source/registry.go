package source

import (
	"context"

	"github.com/example/schema-bootloader/internal/migrate"
)

// Registry is an in-memory migration source for migrations defined in
// code. Find returns migrations in registration order, which is the
// discovery order the orchestrator's tie-breaking preserves.
type Registry struct {
	migrations []migrate.Migration
}

// NewRegistry creates a registry holding the given migrations.
func NewRegistry(migrations ...migrate.Migration) *Registry {
	return &Registry{
		migrations: append([]migrate.Migration(nil), migrations...),
	}
}

// Register adds a migration to the registry.
func (r *Registry) Register(migration migrate.Migration) {
	r.migrations = append(r.migrations, migration)
}

// Find returns the registered migrations whose target matches the given
// database. A migration with an empty target matches every database.
func (r *Registry) Find(ctx context.Context, targetDB string) ([]migrate.Migration, error) {
	var matched []migrate.Migration
	for _, migration := range r.migrations {
		if migration.TargetDB == "" || migration.TargetDB == targetDB {
			matched = append(matched, migration)
		}
	}
	return matched, nil
}
