package storage

import (
	"fmt"
	"strings"
)

// Dialect carries the backend specific fragments of the shared SQL.
type Dialect struct {
	// Identity is the full column definition of the surrogate key.
	Identity string
	// Timestamp is the column type of the audit timestamps.
	Timestamp string
	// Now is the current time expression.
	Now string
	// Bind renders the placeholder for the 1-based argument position i.
	Bind func(i int) string
}

var required = map[string]bool{
	"bill_type":    true,
	"action_type":  true,
	"source_url":   true,
	"source_site":  true,
	"scraped_date": true,
}

// Schema returns the idempotent DDL for both tables and their indexes.
func (d Dialect) Schema() []string {
	stmts := make([]string, 0, 5)
	for _, row := range []Row{BillRow{}, ActionRow{}} {
		stmts = append(stmts, d.createTable(row))
	}
	return append(stmts,
		"CREATE INDEX IF NOT EXISTS idx_bills_source_site ON bills (source_site)",
		"CREATE INDEX IF NOT EXISTS idx_bills_bill_type ON bills (bill_type)",
		"CREATE INDEX IF NOT EXISTS idx_executive_actions_action_type ON executive_actions (action_type)",
	)
}

func (d Dialect) createTable(row Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\t%s", row.Table(), d.Identity)
	for _, col := range row.Columns() {
		switch {
		case col == row.Key():
			fmt.Fprintf(&b, ",\n\t%s TEXT NOT NULL UNIQUE", col)
		case required[col]:
			fmt.Fprintf(&b, ",\n\t%s TEXT NOT NULL", col)
		default:
			fmt.Fprintf(&b, ",\n\t%s TEXT", col)
		}
	}
	fmt.Fprintf(&b, ",\n\tcreated_at %s NOT NULL DEFAULT %s", d.Timestamp, d.Now)
	fmt.Fprintf(&b, ",\n\tupdated_at %s NOT NULL DEFAULT %s\n)", d.Timestamp, d.Now)
	return b.String()
}

// Upsert renders the insert-or-overwrite statement for row. Every attribute
// is replaced on conflict; id and created_at are left alone.
func (d Dialect) Upsert(row Row) string {
	cols := row.Columns()
	binds := make([]string, len(cols))
	sets := make([]string, 0, len(cols))
	for i, col := range cols {
		binds[i] = d.Bind(i + 1)
		if col != row.Key() {
			sets = append(sets, col+" = excluded."+col)
		}
	}
	sets = append(sets, "updated_at = "+d.Now)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		row.Table(), strings.Join(cols, ", "), strings.Join(binds, ", "), row.Key(), strings.Join(sets, ", "))
}
