package migrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Orchestrator drives one startup migration pass: ordering, the
// applied-ledger check, runner invocation, outcome classification,
// fail-fast state, and statistics aggregation. Execution is strictly
// sequential; no migration is revisited within a run.
type Orchestrator struct {
	source     Source
	ledger     Ledger
	runner     Runner
	databaseID string
	logger     *slog.Logger
	newRunID   func() string
}

// NewOrchestrator creates an orchestrator for the given target database.
// All collaborators are required; the logger is used as a side channel
// only and never influences classification.
func NewOrchestrator(source Source, ledger Ledger, runner Runner, databaseID string, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		source:     source,
		ledger:     ledger,
		runner:     runner,
		databaseID: databaseID,
		logger:     logger,
		newRunID:   uuid.NewString,
	}
}

// Run executes one migration pass and returns the final verdict.
//
// Discovery failure aborts the run with Success=false before any
// migration work. An empty candidate set short-circuits to success. A
// ledger query failure degrades to an empty applied set. After the loop,
// Success is true exactly when no migration was classified as failed, and
// the statistics always satisfy applied+failed+skipped == total.
func (o *Orchestrator) Run(ctx context.Context) RunResult {
	runID := o.newRunID()
	logger := o.logger.With("run_id", runID, "database_id", o.databaseID)

	candidates, err := o.source.Find(ctx, o.databaseID)
	if err != nil {
		logger.Error("migration discovery failed", "error", err)
		return RunResult{
			Status:  "error",
			Message: fmt.Sprintf("%v: %v", ErrDiscoveryFailed, err),
			RunID:   runID,
		}
	}

	if len(candidates) == 0 {
		logger.Info("no candidate migrations, nothing to do")
		return RunResult{
			Success: true,
			Status:  "success",
			Message: "no migrations to run",
			RunID:   runID,
		}
	}

	ordered := SortMigrations(candidates)

	applied, err := o.ledger.AppliedIdents(ctx)
	if err != nil {
		if errors.Is(err, ErrLedgerUnavailable) {
			logger.Warn("tracking table unavailable, assuming nothing applied", "error", err)
		} else {
			logger.Warn("could not read applied set, assuming nothing applied", "error", err)
		}
		applied = map[string]struct{}{}
	}

	stats := RunStats{Total: len(ordered)}
	failFast := false

	for i, migration := range ordered {
		class, failed := o.step(ctx, logger, migration, i, len(ordered), applied, failFast)
		if failed {
			failFast = true
		}
		switch class.Class {
		case ClassApplied:
			stats.Applied++
		case ClassFailed:
			stats.Failed++
		case ClassSkipped:
			stats.Skipped++
		}
	}

	result := RunResult{Stats: stats, RunID: runID}
	if stats.Failed == 0 {
		result.Success = true
		result.Status = "success"
	} else {
		result.Status = "error"
	}

	logger.Info("migration run complete",
		"applied", stats.Applied,
		"failed", stats.Failed,
		"skipped", stats.Skipped,
		"total", stats.Total,
		"success", result.Success)

	return result
}

// step classifies a single migration and reports whether it entered
// fail-fast mode. The runner is invoked only when the run is not already
// failing fast and the identifier is not recorded as applied; such a
// migration passes through exactly one invocation.
func (o *Orchestrator) step(ctx context.Context, logger *slog.Logger, migration Migration, index, total int, applied map[string]struct{}, failFast bool) (Classification, bool) {
	stepLogger := logger.With(
		"migration", migration.Ident.Raw,
		"index", index+1,
		"total", total)

	if failFast {
		stepLogger.Info("skipping migration, earlier migration failed")
		return Classification{Class: ClassSkipped, Detail: "earlier migration failed"}, false
	}

	if _, ok := applied[migration.Ident.Raw]; ok {
		stepLogger.Info("migration already applied, skipping")
		return Classification{Class: ClassSkipped, Detail: "already applied"}, false
	}

	opts := ExecOptions{
		DatabaseID: o.databaseID,
		Direction:  DirectionUp,
		Ident:      migration.Ident,
	}

	outcome, err := o.runner.Execute(ctx, migration, opts)
	class := Classify(outcome, err)

	switch class.Class {
	case ClassApplied:
		stepLogger.Info("migration applied")
		return class, false
	case ClassFailed:
		stepLogger.Error("migration failed", "error", class.Detail)
		return class, true
	default:
		if class.Detail == "" {
			// Permissive default for unexpected result shapes; the count
			// matches a declared skip, only the log line differs.
			stepLogger.Debug("result shape not recognized, counting as skipped")
		} else {
			stepLogger.Info("migration skipped", "reason", class.Detail)
		}
		return class, false
	}
}
