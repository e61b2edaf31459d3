// Package persistence selects the snapshot store named by configuration.
package persistence

import (
	"context"
	"fmt"

	"propertybook/internal/config"
	"propertybook/internal/infra/persistence/jsonfile"
	"propertybook/internal/infra/persistence/memory"
	"propertybook/internal/infra/persistence/postgres"
	"propertybook/internal/infra/persistence/sqlite"
	"propertybook/pkg/domain"
)

// Driver names a snapshot store implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverJSON     Driver = "json"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open returns the store selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (domain.SnapshotStore, error) {
	switch Driver(cfg.Driver) {
	case DriverMemory:
		return memory.NewStore(), nil
	case DriverJSON, "":
		return jsonfile.NewStore(cfg.JSONPath)
	case DriverSQLite:
		return sqlite.NewStore(cfg.SQLitePath)
	case DriverPostgres:
		return postgres.NewStore(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.Driver)
	}
}
