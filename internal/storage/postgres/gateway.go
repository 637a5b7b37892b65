// Package postgres implements the storage gateway on a pgx connection pool.
package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JakeFAU/govbills-crawler/internal/record"
	"github.com/JakeFAU/govbills-crawler/internal/storage"
)

// Dialect is the Postgres flavor of the shared schema and upsert SQL.
var Dialect = storage.Dialect{
	Identity:  "id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY",
	Timestamp: "TIMESTAMPTZ",
	Now:       "now()",
	Bind:      func(i int) string { return "$" + strconv.Itoa(i) },
}

// Config controls the Postgres connection pool.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type pool interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	Close()
}

// Store writes bills and executive actions into Postgres.
type Store struct {
	pool pool
}

var _ storage.Gateway = (*Store)(nil)

// New connects a pool using cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("storage.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	p, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{pool: p}, nil
}

// NewWithPool constructs a store from an existing pool (primarily for testing).
func NewWithPool(p pool) (*Store, error) {
	if p == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &Store{pool: p}, nil
}

// EnsureSchema implements storage.Gateway.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range Dialect.Schema() {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
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
	if _, err := s.pool.Exec(ctx, Dialect.Upsert(row), row.Args()...); err != nil {
		return fmt.Errorf("upsert %s %q: %w", row.Table(), rec.NaturalKey(), err)
	}
	return nil
}

// Stats implements storage.Gateway.
func (s *Store) Stats(ctx context.Context) (storage.Stats, error) {
	var st storage.Stats
	var err error
	if err = s.pool.QueryRow(ctx, storage.CountBillsQuery).Scan(&st.Bills); err != nil {
		return st, fmt.Errorf("count bills: %w", err)
	}
	if err = s.pool.QueryRow(ctx, storage.CountActionsQuery).Scan(&st.Actions); err != nil {
		return st, fmt.Errorf("count executive actions: %w", err)
	}
	if st.BillsBySource, err = collect[storage.Count](ctx, s.pool, storage.BillsBySourceQuery); err != nil {
		return st, fmt.Errorf("bills by source: %w", err)
	}
	if st.BillsByType, err = collect[storage.Count](ctx, s.pool, storage.BillsByTypeQuery); err != nil {
		return st, fmt.Errorf("bills by type: %w", err)
	}
	if st.ActionsByType, err = collect[storage.Count](ctx, s.pool, storage.ActionsByTypeQuery); err != nil {
		return st, fmt.Errorf("executive actions by type: %w", err)
	}
	if st.RecentBills, err = collect[storage.Recent](ctx, s.pool, storage.RecentBillsQuery); err != nil {
		return st, fmt.Errorf("recent bills: %w", err)
	}
	if st.RecentActions, err = collect[storage.Recent](ctx, s.pool, storage.RecentActionsQuery); err != nil {
		return st, fmt.Errorf("recent executive actions: %w", err)
	}
	return st, nil
}

// Close releases the underlying pool resources.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}

func collect[T any](ctx context.Context, p pool, query string) ([]T, error) {
	rows, err := p.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}
