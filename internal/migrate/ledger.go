package migrate

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLLedger reads applied-migration identifiers from the tracking table.
type SQLLedger struct {
	db    *sql.DB
	table string
}

// NewSQLLedger creates a ledger over the given tracking table.
func NewSQLLedger(db *sql.DB, table string) *SQLLedger {
	return &SQLLedger{
		db:    db,
		table: table,
	}
}

// AppliedIdents returns the set of identifiers recorded as applied.
//
// The query runs once per orchestration run; results are not refreshed
// between migrations. A failure here, including the tracking table being
// absent on a first run, surfaces as an error the orchestrator treats as
// an empty applied set.
func (l *SQLLedger) AppliedIdents(ctx context.Context) (map[string]struct{}, error) {
	query := fmt.Sprintf("SELECT id FROM %s", l.table)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, NewLedgerError(l.table, "query applied idents", err)
	}
	defer rows.Close()

	applied := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, NewLedgerError(l.table, "scan applied ident", err)
		}
		applied[id] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, NewLedgerError(l.table, "iterate applied idents", err)
	}

	return applied, nil
}
