// Package sqlite implements the storage gateway on a local SQLite file. It is
// the default store for single-machine crawls.
package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/ncruces/go-sqlite3/driver" // registers the "sqlite3" driver
	_ "github.com/ncruces/go-sqlite3/embed"  // bundles the SQLite build

	"github.com/JakeFAU/govbills-crawler/internal/record"
	"github.com/JakeFAU/govbills-crawler/internal/storage"
)

// DriverName is the database/sql driver the store opens.
const DriverName = "sqlite3"

// Dialect is the SQLite flavor of the shared schema and upsert SQL.
var Dialect = storage.Dialect{
	Identity:  "id INTEGER PRIMARY KEY AUTOINCREMENT",
	Timestamp: "TEXT",
	Now:       "CURRENT_TIMESTAMP",
	Bind:      func(int) string { return "?" },
}

// Store writes bills and executive actions into a SQLite database.
type Store struct {
	db *sqlx.DB
}

var _ storage.Gateway = (*Store)(nil)

// DSN builds the connection string for the database file at path.
func DSN(path string) string {
	return "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
}

// Open opens (creating if needed) the database file at path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("storage.path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sqlx.Open(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing handle (primarily for testing).
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema implements storage.Gateway.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Dialect.Schema() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Upsert implements storage.Gateway.
func (s *Store) Upsert(ctx context.Context, rec record.Record) error {
	row, err := storage.RowFor(rec)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, Dialect.Upsert(row), row.Args()...); err != nil {
		return fmt.Errorf("upsert %s %q: %w", row.Table(), rec.NaturalKey(), err)
	}
	return nil
}

// Stats implements storage.Gateway.
func (s *Store) Stats(ctx context.Context) (storage.Stats, error) {
	var st storage.Stats
	gets := []struct {
		name  string
		dest  *int64
		query string
	}{
		{"count bills", &st.Bills, storage.CountBillsQuery},
		{"count executive actions", &st.Actions, storage.CountActionsQuery},
	}
	for _, g := range gets {
		if err := s.db.GetContext(ctx, g.dest, g.query); err != nil {
			return st, fmt.Errorf("%s: %w", g.name, err)
		}
	}
	counts := []struct {
		name  string
		dest  *[]storage.Count
		query string
	}{
		{"bills by source", &st.BillsBySource, storage.BillsBySourceQuery},
		{"bills by type", &st.BillsByType, storage.BillsByTypeQuery},
		{"executive actions by type", &st.ActionsByType, storage.ActionsByTypeQuery},
	}
	for _, c := range counts {
		if err := s.db.SelectContext(ctx, c.dest, c.query); err != nil {
			return st, fmt.Errorf("%s: %w", c.name, err)
		}
	}
	if err := s.db.SelectContext(ctx, &st.RecentBills, storage.RecentBillsQuery); err != nil {
		return st, fmt.Errorf("recent bills: %w", err)
	}
	if err := s.db.SelectContext(ctx, &st.RecentActions, storage.RecentActionsQuery); err != nil {
		return st, fmt.Errorf("recent executive actions: %w", err)
	}
	return st, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}
