package migrate

import (
	"errors"
	"fmt"
)

var (
	// ErrDiscoveryFailed indicates the migration source could not supply
	// the candidate set. Discovery failures abort the run before any
	// migration work happens.
	ErrDiscoveryFailed = errors.New("migration discovery failed")

	// ErrLedgerUnavailable indicates the tracking table could not be
	// queried. Ledger failures are recoverable: the run continues with an
	// empty applied set.
	ErrLedgerUnavailable = errors.New("tracking table unavailable")
)

// LedgerError wraps tracking-table failures with query context.
type LedgerError struct {
	Table     string // tracking table name
	Operation string // operation being performed (query, scan, etc.)
	Err       error  // underlying error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger error on %s during %s: %v", e.Table, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *LedgerError) Is(target error) bool {
	return target == ErrLedgerUnavailable || errors.Is(e.Err, target)
}

// NewLedgerError creates a new LedgerError with context.
func NewLedgerError(table, operation string, err error) *LedgerError {
	return &LedgerError{
		Table:     table,
		Operation: operation,
		Err:       err,
	}
}
