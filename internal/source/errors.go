package source

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFilename indicates a migration file does not follow the
	// naming convention.
	ErrInvalidFilename = errors.New("invalid migration filename")

	// ErrDuplicateIdent indicates two migration files produce the same
	// identifier.
	ErrDuplicateIdent = errors.New("duplicate migration identifier")

	// ErrEmptyMigration indicates a migration file has no content.
	ErrEmptyMigration = errors.New("migration file is empty")
)

// ScanError wraps discovery failures with file context.
type ScanError struct {
	Path      string // file or directory path
	Operation string // operation being performed (read, validate, etc.)
	Err       error  // underlying error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("scan error during %s of %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScanError) Unwrap() error {
	return e.Err
}

// NewScanError creates a new ScanError with context.
func NewScanError(path, operation string, err error) *ScanError {
	return &ScanError{
		Path:      path,
		Operation: operation,
		Err:       err,
	}
}
