package crawler

import (
	"fmt"
	"net/http"
	"time"
)

// Task is one page waiting in the frontier.
type Task struct {
	URL   string
	Site  string
	Depth int
}

// FetchRequest captures everything needed to fetch a URL.
type FetchRequest struct {
	URL     string
	Site    string
	Headers http.Header
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.URL)
}

// Temporary reports whether the server may answer differently later.
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

// Summary is the outcome of one crawl run.
type Summary struct {
	RunID         string    `json:"run_id"`
	Sites         []string  `json:"sites"`
	Pages         int64     `json:"pages"`
	PagesFailed   int64     `json:"pages_failed"`
	Records       int64     `json:"records"`
	RecordsFailed int64     `json:"records_failed"`
	RoutingFaults int64     `json:"routing_faults"`
	Started       time.Time `json:"started_at"`
	Finished      time.Time `json:"finished_at"`
}

// Duration is the wall time of the run.
func (s Summary) Duration() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}
