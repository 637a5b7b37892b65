// Package storage defines the persistence gateway for scraped records and the
// row shapes shared by its relational backends.
package storage

import (
	"context"
	"errors"

	"github.com/JakeFAU/govbills-crawler/internal/record"
)

var (
	// ErrMissingKey is returned when a record has an empty natural key.
	ErrMissingKey = errors.New("record natural key is empty")
	// ErrUnsupportedRecord is returned for record kinds without a table.
	ErrUnsupportedRecord = errors.New("unsupported record kind")
)

// Gateway persists records idempotently by natural key.
type Gateway interface {
	// EnsureSchema creates the tables if they do not exist yet.
	EnsureSchema(ctx context.Context) error
	// Upsert inserts the record or overwrites every attribute of the row that
	// already holds its natural key. The surrogate id and created_at survive.
	Upsert(ctx context.Context, rec record.Record) error
	// Stats summarizes what has been stored so far.
	Stats(ctx context.Context) (Stats, error)
	Close() error
}
