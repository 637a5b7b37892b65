package collyfetcher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobotsRetryReturnsAllowAllOnTimeout(t *testing.T) {
	t.Parallel()

	base := &stubRoundTripper{
		results: []roundTripResult{
			{err: context.DeadlineExceeded},
			{err: context.DeadlineExceeded},
			{err: context.DeadlineExceeded},
		},
	}
	var fallbackHost string
	transport := &robotsTransport{
		base:       base,
		backoff:    []time.Duration{time.Millisecond, time.Millisecond},
		onFallback: func(host string) { fallbackHost = host },
	}

	req := httptest.NewRequest(http.MethodGet, "https://www.congress.gov/robots.txt", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\nAllow: /", string(body))
	assert.Equal(t, "www.congress.gov", fallbackHost)
	assert.Equal(t, 3, base.calls)
}

func TestRobotsRetryStopsAfterSuccess(t *testing.T) {
	t.Parallel()

	base := &stubRoundTripper{
		results: []roundTripResult{
			{err: context.DeadlineExceeded},
			{resp: httptest.NewRecorder().Result()},
		},
	}
	transport := &robotsTransport{
		base:    base,
		backoff: []time.Duration{time.Millisecond, time.Millisecond},
		onFallback: func(string) {
			t.Error("fallback must not run after a successful retry")
		},
	}

	req := httptest.NewRequest(http.MethodGet, "https://www.govtrack.us/robots.txt", nil)
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, 2, base.calls)
}

func TestRobotsNonTransientErrorFails(t *testing.T) {
	t.Parallel()

	base := &stubRoundTripper{results: []roundTripResult{{err: errors.New("connection refused")}}}
	transport := &robotsTransport{base: base, backoff: robotsRetryBackoff}

	req := httptest.NewRequest(http.MethodGet, "https://www.whitehouse.gov/robots.txt", nil)
	_, err := transport.RoundTrip(req)
	require.ErrorContains(t, err, "non-transient")
	assert.Equal(t, 1, base.calls)
}

func TestRobotsTransportPassesOtherRequests(t *testing.T) {
	t.Parallel()

	base := &stubRoundTripper{results: []roundTripResult{{err: context.DeadlineExceeded}}}
	transport := &robotsTransport{base: base, backoff: robotsRetryBackoff}

	req := httptest.NewRequest(http.MethodGet, "https://www.whitehouse.gov/presidential-actions/", nil)
	_, err := transport.RoundTrip(req)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, base.calls)
}

type roundTripResult struct {
	resp *http.Response
	err  error
}

type stubRoundTripper struct {
	results []roundTripResult
	calls   int
}

func (s *stubRoundTripper) RoundTrip(_ *http.Request) (*http.Response, error) {
	defer func() { s.calls++ }()
	if len(s.results) == 0 {
		return nil, context.DeadlineExceeded
	}
	idx := s.calls
	if idx >= len(s.results) {
		idx = len(s.results) - 1
	}
	res := s.results[idx]
	return res.resp, res.err
}
