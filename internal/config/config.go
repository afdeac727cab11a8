// Package config loads the bootloader configuration from the process
// environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/example/schema-bootloader/internal/store"
)

// Config captures environment driven configuration values for the
// migration bootloader.
type Config struct {
	DatabaseID    string // opaque identifier of the target database
	Driver        string // "sqlite" or "postgres"
	DSN           string
	MigrationsDir string
	TrackingTable string
}

// Load parses configuration values from the current process environment.
//
// The loader applies defaults for optional fields while validating
// required values. A missing BOOTLOADER_DATABASE_ID is a fatal
// configuration error reported before any connection attempt.
func Load() (Config, error) {
	cfg := Config{
		Driver:        store.DriverSQLite,
		DSN:           "file:bootloader.db",
		MigrationsDir: "migrations",
		TrackingTable: "schema_migrations",
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 1)

	if id := strings.TrimSpace(os.Getenv("BOOTLOADER_DATABASE_ID")); id == "" {
		missing = append(missing, "BOOTLOADER_DATABASE_ID")
	} else {
		cfg.DatabaseID = id
	}

	if driver := strings.TrimSpace(os.Getenv("BOOTLOADER_DRIVER")); driver != "" {
		switch driver {
		case store.DriverSQLite, store.DriverPostgres:
			cfg.Driver = driver
		default:
			invalid = append(invalid, "BOOTLOADER_DRIVER")
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("BOOTLOADER_DSN")); dsn != "" {
		cfg.DSN = dsn
	}

	if dir := strings.TrimSpace(os.Getenv("BOOTLOADER_MIGRATIONS_DIR")); dir != "" {
		cfg.MigrationsDir = dir
	}

	if table := strings.TrimSpace(os.Getenv("BOOTLOADER_TRACKING_TABLE")); table != "" {
		cfg.TrackingTable = table
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
