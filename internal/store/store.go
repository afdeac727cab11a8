// Package store provides connection managers for the target database.
// The connection is acquired once at the start of a migration run and
// released exactly once at the end; release errors are logged by the
// caller, never fatal.
package store

import (
	"context"
	"database/sql"
	"time"
)

// Driver names accepted by configuration.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Manager opens a configured connection to the target database.
type Manager interface {
	Open(ctx context.Context) (*sql.DB, error)
}

// PoolConfig holds the connection pool settings shared by all drivers.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c PoolConfig) apply(db *sql.DB) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(c.ConnMaxLifetime)
	}
}
