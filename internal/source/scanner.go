// Package source provides migration discovery: a directory scanner for
// file-based migrations and an in-memory registry for code-defined ones.
// Both implement the orchestrator's Source interface.
package source

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/example/schema-bootloader/internal/migrate"
)

// targetDirective marks the database a migration file applies to, e.g.
// "-- target: core". Files without the directive match every database.
const targetDirective = "-- target:"

// DirScanner discovers migration files from a directory. Files follow the
// naming convention {timestamp}_{namespace}_{name}.sql with a 14-digit
// timestamp (e.g. "20240102150405_accounts_create_users.sql").
type DirScanner struct {
	dir     string
	pattern *regexp.Regexp
}

// NewDirScanner creates a scanner over the given migration directory.
func NewDirScanner(dir string) *DirScanner {
	return &DirScanner{
		dir:     dir,
		pattern: regexp.MustCompile(`^(\d{14})_([a-z][a-z0-9-]*)_([a-zA-Z0-9_-]+)\.sql$`),
	}
}

// Find scans the directory and returns the migrations whose target
// matches the given database, in directory order. The result order is
// only the discovery order; execution ordering is the orchestrator's job.
func (s *DirScanner) Find(ctx context.Context, targetDB string) ([]migrate.Migration, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, NewScanError(s.dir, "read directory", err)
	}

	var migrations []migrate.Migration
	seen := make(map[string]string) // ident -> filename for duplicate detection

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		migration, err := s.ParseFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, err
		}

		if existing, ok := seen[migration.Ident.Raw]; ok {
			return nil, NewScanError(entry.Name(), "check duplicates",
				fmt.Errorf("%w: %s found in both %s and %s",
					ErrDuplicateIdent, migration.Ident.Raw, existing, entry.Name()))
		}
		seen[migration.Ident.Raw] = entry.Name()

		if migration.TargetDB != "" && migration.TargetDB != targetDB {
			continue
		}

		migrations = append(migrations, *migration)
	}

	return migrations, nil
}

// ParseFile reads and parses a single migration file.
func (s *DirScanner) ParseFile(path string) (*migrate.Migration, error) {
	filename := filepath.Base(path)

	matches := s.pattern.FindStringSubmatch(filename)
	if len(matches) != 4 {
		return nil, NewScanError(path, "validate filename",
			fmt.Errorf("%w: %q does not match {timestamp}_{namespace}_{name}.sql",
				ErrInvalidFilename, filename))
	}
	timestamp, namespace, name := matches[1], matches[2], matches[3]

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, NewScanError(path, "read file", err)
	}

	if strings.TrimSpace(string(content)) == "" {
		return nil, NewScanError(path, "validate content", ErrEmptyMigration)
	}

	return &migrate.Migration{
		Ident:     migrate.ParseIdent(namespace + ":" + name),
		Timestamp: timestamp,
		TargetDB:  extractTarget(string(content)),
		Checksum:  Checksum(string(content)),
		SQL:       string(content),
	}, nil
}

// extractTarget returns the value of the target directive from the
// leading comment block, or "" when no directive is present.
func extractTarget(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, targetDirective) {
			return strings.TrimSpace(strings.TrimPrefix(line, targetDirective))
		}
		if !strings.HasPrefix(line, "--") {
			break
		}
	}
	return ""
}

// Checksum returns the hex BLAKE2b-256 digest of migration content.
func Checksum(content string) string {
	sum := blake2b.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
