// Package migrate implements the startup schema-migration orchestrator.
//
// The orchestrator takes the candidate migrations supplied by a Source,
// orders them deterministically, consults the tracking-table ledger for
// identifiers that were already applied, and runs the remainder one at a
// time. The first execution error flips the run into fail-fast mode: every
// later migration is counted as skipped without being attempted. The run
// always finishes with aggregate statistics satisfying
//
//	applied + failed + skipped == total
//
// and a success verdict that is true exactly when no migration failed.
//
// All collaborators (Source, Ledger, Runner, logger) are injected at
// construction; the package holds no process-wide state.
//
// Example usage:
//
//	orch := migrate.NewOrchestrator(src, ledger, runner, "core", logger)
//	result := orch.Run(ctx)
//	if !result.Success {
//		os.Exit(1)
//	}
package migrate
