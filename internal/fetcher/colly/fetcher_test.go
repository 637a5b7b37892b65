package collyfetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/govbills-crawler/internal/crawler"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
	})
	mux.HandleFunc("/bill", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("X-Echo", r.Header.Get("X-Trace"))
		_, _ = w.Write([]byte("<html><h1>H.R. 1234</h1></html>"))
	})
	mux.HandleFunc("/private", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("secret"))
	})
	mux.HandleFunc("/missing", http.NotFound)
	mux.HandleFunc("/busy", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchReturnsBody(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	f := New(Config{UserAgent: "govbills-test", Timeout: time.Second})

	resp, err := f.Fetch(context.Background(), crawler.FetchRequest{
		URL:     srv.URL + "/bill",
		Headers: http.Header{"X-Trace": {"yes"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "<html><h1>H.R. 1234</h1></html>", string(resp.Body))
	assert.Equal(t, "yes", resp.Headers.Get("X-Echo"))
	assert.Equal(t, srv.URL+"/bill", resp.URL)

	// A second visit of the same URL is allowed.
	_, err = f.Fetch(context.Background(), crawler.FetchRequest{URL: srv.URL + "/bill"})
	require.NoError(t, err)
}

func TestFetchReportsStatusErrors(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	f := New(Config{Timeout: time.Second})

	tests := []struct {
		path      string
		code      int
		temporary bool
	}{
		{"/missing", http.StatusNotFound, false},
		{"/busy", http.StatusServiceUnavailable, true},
	}
	for _, tt := range tests {
		_, err := f.Fetch(context.Background(), crawler.FetchRequest{URL: srv.URL + tt.path})
		var statusErr *crawler.StatusError
		require.ErrorAs(t, err, &statusErr, tt.path)
		assert.Equal(t, tt.code, statusErr.Code)
		assert.Equal(t, tt.temporary, statusErr.Temporary())
	}
}

func TestFetchHonorsRobots(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	f := New(Config{RespectRobots: true, Timeout: time.Second})

	_, err := f.Fetch(context.Background(), crawler.FetchRequest{URL: srv.URL + "/private"})
	require.ErrorIs(t, err, colly.ErrRobotsTxtBlocked)

	_, err = f.Fetch(context.Background(), crawler.FetchRequest{URL: srv.URL + "/bill"})
	require.NoError(t, err)
}

func TestFetchCanceled(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	f := New(Config{Timeout: 5 * time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := f.Fetch(ctx, crawler.FetchRequest{URL: srv.URL + "/slow"})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBuildCollector(t *testing.T) {
	t.Parallel()

	f := New(Config{UserAgent: "coverage-agent", RespectRobots: false})
	collector := f.buildCollector(crawler.FetchRequest{URL: "https://example.com"},
		time.Unix(0, 0), &crawler.FetchResponse{}, new(error))
	assert.Equal(t, "coverage-agent", collector.UserAgent)
	assert.True(t, collector.IgnoreRobotsTxt)
}

func TestConfigureCollectorHooks(t *testing.T) {
	t.Parallel()

	f := New(Config{})
	req := crawler.FetchRequest{
		URL:     "https://example.com",
		Headers: http.Header{"X-Trace": {"yes"}},
	}
	var result crawler.FetchResponse
	var fetchErr error

	hooks := &stubHooks{}
	f.configureCollectorHooks(hooks, req, time.Unix(0, 0), &result, &fetchErr)
	require.NotNil(t, hooks.onRequest)
	require.NotNil(t, hooks.onResponse)
	require.NotNil(t, hooks.onError)

	collyReq := &colly.Request{Headers: &http.Header{}}
	hooks.onRequest(collyReq)
	assert.Equal(t, "yes", collyReq.Headers.Get("X-Trace"))

	hooks.onResponse(&colly.Response{
		StatusCode: http.StatusCreated,
		Body:       []byte("body"),
		Headers:    &http.Header{"X-Resp": {"ok"}},
		Request:    &colly.Request{URL: mustParseURL(t, "https://example.com")},
	})
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, "body", string(result.Body))
	assert.Equal(t, "ok", result.Headers.Get("X-Resp"))

	hooks.onError(&colly.Response{}, errors.New("boom"))
	require.EqualError(t, fetchErr, "boom")

	hooks.onError(&colly.Response{StatusCode: http.StatusBadGateway}, errors.New("Bad Gateway"))
	var statusErr *crawler.StatusError
	require.ErrorAs(t, fetchErr, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Code)
}

func TestCopyHeadersHandlesNil(t *testing.T) {
	t.Parallel()

	f := New(Config{})
	collyReq := &colly.Request{Headers: &http.Header{}}
	f.copyHeaders(crawler.FetchRequest{}, collyReq)
	assert.Empty(t, *collyReq.Headers)
}

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

type stubHooks struct {
	onRequest  colly.RequestCallback
	onResponse colly.ResponseCallback
	onError    colly.ErrorCallback
}

func (s *stubHooks) OnRequest(cb colly.RequestCallback) {
	s.onRequest = cb
}

func (s *stubHooks) OnResponse(cb colly.ResponseCallback) {
	s.onResponse = cb
}

func (s *stubHooks) OnError(cb colly.ErrorCallback) {
	s.onError = cb
}
