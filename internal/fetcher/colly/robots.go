package collyfetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// allowAllRobots is served in place of a robots.txt that never answered.
const allowAllRobots = "User-agent: *\nAllow: /"

// robotsRetryBackoff spaces the robots.txt probes of one host. A probe that
// still times out after the last wait falls back to allow-all.
var robotsRetryBackoff = []time.Duration{
	250 * time.Millisecond,
	500 * time.Millisecond,
	time.Second,
}

// robotsTransport gives slow government hosts a few chances to serve
// robots.txt. Every other request goes straight to base.
type robotsTransport struct {
	base       http.RoundTripper
	backoff    []time.Duration
	onFallback func(host string)
}

func (t *robotsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req == nil || req.URL == nil {
		return nil, errors.New("robots transport: nil request")
	}
	if !strings.EqualFold(req.URL.Path, "/robots.txt") {
		resp, err := t.base.RoundTrip(req)
		if err != nil {
			return nil, fmt.Errorf("page roundtrip: %w", err)
		}
		return resp, nil
	}

	for attempt := 0; ; attempt++ {
		probe := req.Clone(req.Context())
		probe.Body = req.Body
		resp, err := t.base.RoundTrip(probe)
		switch {
		case err == nil:
			return resp, nil
		case !timedOut(err):
			return nil, fmt.Errorf("robots.txt for %s failed (non-transient): %w", req.URL.Host, err)
		case attempt >= len(t.backoff):
			if t.onFallback != nil {
				t.onFallback(req.URL.Hostname())
			}
			return allowAll(req), nil
		}
		if err := wait(req.Context(), t.backoff[attempt]); err != nil {
			return nil, err
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("robots.txt retry: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}

func allowAll(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode:    http.StatusOK,
		Status:        "200 OK",
		Body:          io.NopCloser(strings.NewReader(allowAllRobots)),
		ContentLength: int64(len(allowAllRobots)),
		Header:        http.Header{"Content-Type": {"text/plain"}},
		Request:       req,
	}
}

// timedOut reports whether err is worth another robots.txt probe.
func timedOut(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return strings.Contains(err.Error(), "tls: handshake timeout")
}
