package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteConfig holds SQLite-specific connection settings.
type SQLiteConfig struct {
	// DSN is the database file path or connection string.
	DSN string

	// BusyTimeout sets how long to wait for database locks.
	BusyTimeout time.Duration

	// EnableForeignKeys enables foreign key constraint checking.
	EnableForeignKeys bool

	// JournalMode sets the SQLite journal mode (WAL, DELETE, MEMORY, etc.).
	JournalMode string

	// Synchronous sets the synchronous mode (FULL, NORMAL, OFF).
	Synchronous string

	Pool PoolConfig
}

// DefaultSQLiteConfig returns a SQLite configuration with sensible
// defaults for a startup migration pass.
func DefaultSQLiteConfig(dsn string) SQLiteConfig {
	return SQLiteConfig{
		DSN:               dsn,
		BusyTimeout:       30 * time.Second,
		EnableForeignKeys: true,
		JournalMode:       "WAL",
		Synchronous:       "NORMAL",
		Pool: PoolConfig{
			MaxOpenConns:    1,
			MaxIdleConns:    1,
			ConnMaxLifetime: 5 * time.Minute,
		},
	}
}

// SQLiteManager implements Manager for SQLite databases.
type SQLiteManager struct {
	config SQLiteConfig
}

// NewSQLiteManager creates a connection manager for SQLite.
func NewSQLiteManager(config SQLiteConfig) *SQLiteManager {
	return &SQLiteManager{config: config}
}

// Open returns a configured SQLite connection, validated and pinged.
func (m *SQLiteManager) Open(ctx context.Context) (*sql.DB, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SQLite configuration: %w", err)
	}

	db, err := sql.Open("sqlite", m.config.DSN)
	if err != nil {
		return nil, fmt.Errorf("open SQLite database: %w", err)
	}

	m.config.Pool.apply(db)

	if err := m.configure(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure SQLite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping SQLite database: %w", err)
	}

	return db, nil
}

// configure applies PRAGMA settings to the connection.
func (m *SQLiteManager) configure(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", m.config.BusyTimeout.Milliseconds()),
	}
	if m.config.JournalMode != "" {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA journal_mode = %s", m.config.JournalMode))
	}
	if m.config.Synchronous != "" {
		pragmas = append(pragmas, fmt.Sprintf("PRAGMA synchronous = %s", m.config.Synchronous))
	}
	if m.config.EnableForeignKeys {
		pragmas = append(pragmas, "PRAGMA foreign_keys = ON")
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return fmt.Errorf("exec %q: %w", pragma, err)
		}
	}

	return nil
}

// Validate checks the SQLite configuration.
func (m *SQLiteManager) Validate() error {
	if m.config.DSN == "" {
		return fmt.Errorf("DSN cannot be empty")
	}
	if m.config.BusyTimeout < 0 {
		return fmt.Errorf("BusyTimeout cannot be negative")
	}

	validJournalModes := map[string]bool{
		"DELETE": true, "TRUNCATE": true, "PERSIST": true,
		"MEMORY": true, "WAL": true, "OFF": true,
	}
	if m.config.JournalMode != "" && !validJournalModes[m.config.JournalMode] {
		return fmt.Errorf("invalid journal mode: %s", m.config.JournalMode)
	}

	validSyncModes := map[string]bool{
		"OFF": true, "NORMAL": true, "FULL": true, "EXTRA": true,
	}
	if m.config.Synchronous != "" && !validSyncModes[m.config.Synchronous] {
		return fmt.Errorf("invalid synchronous mode: %s", m.config.Synchronous)
	}

	return nil
}
