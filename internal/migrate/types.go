package migrate

import (
	"context"
	"strings"
)

// Status is the closed set of statuses a migration unit may report.
type Status string

const (
	StatusApplied  Status = "applied"
	StatusComplete Status = "complete"
	StatusError    Status = "error"
	StatusSkipped  Status = "skipped"
)

// DirectionUp is the only execution direction this orchestrator drives.
const DirectionUp = "up"

// Ident is a migration identifier of the form "<namespace>:<name>",
// parsed once at discovery. Raw preserves the original string byte for
// byte; it is what the tracking ledger records and matches on.
type Ident struct {
	Namespace string
	Name      string
	Raw       string
}

// ParseIdent parses a raw identifier. It never fails: a string without a
// separator yields empty Namespace and Name, which sorts the migration
// deterministically first among equal timestamps.
func ParseIdent(raw string) Ident {
	sep := strings.Index(raw, ":")
	if sep < 0 {
		return Ident{Raw: raw}
	}
	return Ident{
		Namespace: raw[:sep],
		Name:      raw[sep+1:],
		Raw:       raw,
	}
}

// String returns the raw identifier.
func (id Ident) String() string {
	return id.Raw
}

// Migration is one discovered unit of schema change. It is immutable once
// discovered; the orchestrator only reads it.
type Migration struct {
	Ident     Ident
	Timestamp string // sortable string, empty when unknown
	TargetDB  string // database this migration applies to; empty matches any
	Checksum  string // content checksum computed at discovery
	SQL       string // statements to execute; may be empty for non-SQL units
}

// ExecOptions is the per-invocation value handed to the Runner. It is
// constructed fresh for every migration and never shared.
type ExecOptions struct {
	DatabaseID string
	Direction  string
	Ident      Ident
}

// Source supplies the candidate migrations matching a target database.
type Source interface {
	Find(ctx context.Context, targetDB string) ([]Migration, error)
}

// Ledger reports the identifiers already recorded as applied. It is
// queried exactly once per run; a query failure degrades to an empty set.
type Ledger interface {
	AppliedIdents(ctx context.Context) (map[string]struct{}, error)
}

// Runner executes a single migration and reports its outcome. A non-nil
// error means the invocation itself failed (transport or runtime fault),
// which is always fatal to forward progress. Outcome shapes the Runner
// may return are classified by Classify.
type Runner interface {
	Execute(ctx context.Context, migration Migration, opts ExecOptions) (Outcome, error)
}

// RunStats aggregates per-migration classifications for one run.
type RunStats struct {
	Applied int `json:"applied"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// RunResult is the final verdict the orchestrator returns to its caller.
// Success is true exactly when no migration failed; connection teardown
// problems never affect it.
type RunResult struct {
	Success bool     `json:"success"`
	Status  string   `json:"status"` // "success" or "error"
	Message string   `json:"message,omitempty"`
	Stats   RunStats `json:"stats"`
	RunID   string   `json:"run_id"`
}
