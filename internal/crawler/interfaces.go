package crawler

import (
	"context"
	"time"

	"github.com/JakeFAU/govbills-crawler/internal/record"
)

// Fetcher fetches a URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResponse, error)
}

// Frontier schedules pages for the workers.
type Frontier interface {
	Push(task Task) bool
	Pop(ctx context.Context) (Task, bool)
	Done()
}

// RateLimiter gates requests per host. Acquire blocks until a request to url
// may be sent; release must be called once the response has been handled.
type RateLimiter interface {
	Acquire(ctx context.Context, url string) (release func(), err error)
}

// RetryPolicy decides whether and when a failed fetch is attempted again.
type RetryPolicy interface {
	ShouldRetry(err error, attempt int) bool
	Backoff(attempt int) time.Duration
}

// RecordStore persists records produced by the site builders.
type RecordStore interface {
	Upsert(ctx context.Context, rec record.Record) error
}

// Hasher computes digests for deduplication/integrity.
type Hasher interface {
	Hash(data []byte) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
