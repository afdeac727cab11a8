// Package runner executes migrations against a database/sql connection
// and records applied identifiers in the tracking table.
package runner

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/schema-bootloader/internal/migrate"
)

// ParamStyle selects the bind-parameter syntax for the target driver.
type ParamStyle int

const (
	// ParamQuestion uses "?" placeholders (SQLite).
	ParamQuestion ParamStyle = iota
	// ParamDollar uses "$1".."$n" placeholders (Postgres).
	ParamDollar
)

func (s ParamStyle) placeholder(n int) string {
	if s == ParamDollar {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// SQLRunner implements migrate.Runner for SQL migrations. Each migration
// runs in its own transaction together with its tracking-table record, so
// a failed migration leaves no trace in the ledger.
type SQLRunner struct {
	db     *sql.DB
	table  string
	style  ParamStyle
	logger *slog.Logger
}

// NewSQLRunner creates a runner that records applied migrations in the
// given tracking table.
func NewSQLRunner(db *sql.DB, table string, style ParamStyle, logger *slog.Logger) *SQLRunner {
	return &SQLRunner{
		db:     db,
		table:  table,
		style:  style,
		logger: logger,
	}
}

// EnsureTrackingTable creates the tracking table when absent. The id
// column holds the raw migration identifier the ledger matches on.
func (r *SQLRunner) EnsureTrackingTable(ctx context.Context) error {
	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL,
		checksum TEXT,
		execution_time_ms INTEGER
	)`, r.table)

	if _, err := r.db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("create tracking table %s: %w", r.table, err)
	}

	return nil
}

// Execute runs one migration and normalizes the result into an outcome.
//
// SQL failures inside the migration are reported as an error outcome, not
// an invocation error: the migration itself failed, the transport did
// not. Only failures to obtain a transaction surface as invocation
// errors. Migrations with no executable statements report a declared
// skip.
func (r *SQLRunner) Execute(ctx context.Context, migration migrate.Migration, opts migrate.ExecOptions) (migrate.Outcome, error) {
	if opts.Direction != migrate.DirectionUp {
		return migrate.Direct{
			Status: migrate.StatusSkipped,
			Reason: fmt.Sprintf("direction %q not supported", opts.Direction),
		}, nil
	}

	statements := SplitStatements(migration.SQL)
	if len(statements) == 0 {
		return migrate.Direct{
			Status: migrate.StatusSkipped,
			Reason: "no SQL statements",
		}, nil
	}

	start := time.Now()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction for %s: %w", migration.Ident.Raw, err)
	}

	for i, stmt := range statements {
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			r.rollback(tx, migration)
			return migrate.Direct{
				Status: migrate.StatusError,
				Error:  fmt.Sprintf("statement %d: %v", i+1, execErr),
			}, nil
		}
	}

	recordSQL := fmt.Sprintf(
		"INSERT INTO %s (id, applied_at, checksum, execution_time_ms) VALUES (%s, %s, %s, %s)",
		r.table,
		r.style.placeholder(1),
		r.style.placeholder(2),
		r.style.placeholder(3),
		r.style.placeholder(4))

	appliedAt := time.Now().UTC().Format(time.RFC3339)
	elapsed := time.Since(start).Milliseconds()

	if _, err := tx.ExecContext(ctx, recordSQL, migration.Ident.Raw, appliedAt, migration.Checksum, elapsed); err != nil {
		r.rollback(tx, migration)
		return migrate.Direct{
			Status: migrate.StatusError,
			Error:  fmt.Sprintf("record migration: %v", err),
		}, nil
	}

	if err := tx.Commit(); err != nil {
		return migrate.Direct{
			Status: migrate.StatusError,
			Error:  fmt.Sprintf("commit transaction: %v", err),
		}, nil
	}

	return migrate.Direct{Status: migrate.StatusApplied}, nil
}

func (r *SQLRunner) rollback(tx *sql.Tx, migration migrate.Migration) {
	if err := tx.Rollback(); err != nil {
		r.logger.Error("failed to rollback migration transaction",
			"migration", migration.Ident.Raw,
			"error", err)
	}
}

// SplitStatements splits SQL content into individual statements on
// semicolons, dropping empty statements and comment-only lines.
func SplitStatements(content string) []string {
	parts := strings.Split(content, ";")
	var statements []string

	for _, part := range parts {
		lines := strings.Split(part, "\n")
		var kept []string

		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "--") {
				kept = append(kept, line)
			}
		}

		if len(kept) > 0 {
			statements = append(statements, strings.Join(kept, "\n"))
		}
	}

	return statements
}
