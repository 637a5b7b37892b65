// Package metrics exposes Prometheus collectors for the crawler.
package metrics

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Record outcomes.
const (
	OutcomeStored = "stored"
	OutcomeFailed = "failed"
)

var (
	pagesTotal                 *prometheus.CounterVec
	bytesTotal                 *prometheus.CounterVec
	recordsTotal               *prometheus.CounterVec
	routingFaultsTotal         *prometheus.CounterVec
	fetchDurationSeconds       *prometheus.HistogramVec
	robotsFallbackTotal        *prometheus.CounterVec
	activeWorkers              prometheus.Gauge
	rateLimitDelaysSeconds     *prometheus.HistogramVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		pagesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govbills_pages_total",
				Help: "Total number of pages crawled, labeled by site and status.",
			},
			[]string{"site", "status"},
		)

		bytesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govbills_bytes_total",
				Help: "Total number of bytes fetched, labeled by site.",
			},
			[]string{"site"},
		)

		recordsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govbills_records_total",
				Help: "Total number of records written, labeled by kind and outcome.",
			},
			[]string{"kind", "outcome"},
		)

		routingFaultsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govbills_routing_faults_total",
				Help: "Pages that could not be routed to a record builder, labeled by site.",
			},
			[]string{"site"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "govbills_fetch_duration_seconds",
				Help:    "Histogram of page fetch latencies, labeled by site.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"site"},
		)

		robotsFallbackTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "govbills_robots_fallback_total",
				Help: "robots.txt probes that timed out and fell back to allow-all, labeled by host.",
			},
			[]string{"host"},
		)

		activeWorkers = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "govbills_active_workers",
				Help: "Number of workers currently processing a page.",
			},
		)

		rateLimitDelaysSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "govbills_rate_limit_delays_seconds",
				Help:    "Histogram of rate limit wait durations.",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"domain"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// SanitizeSite sanitizes a URL to extract a lowercase hostname.
// It returns "unknown" if the URL is invalid.
func SanitizeSite(rawURL string) string {
	if !strings.HasPrefix(rawURL, "http") {
		rawURL = "http://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObservePage counts one crawled page and the bytes it carried.
func ObservePage(site, status string, bytesFetched int) {
	pagesTotal.WithLabelValues(site, status).Inc()
	if bytesFetched > 0 {
		bytesTotal.WithLabelValues(site).Add(float64(bytesFetched))
	}
}

// ObserveFetch records the latency of one fetch.
func ObserveFetch(site string, duration time.Duration) {
	fetchDurationSeconds.WithLabelValues(site).Observe(duration.Seconds())
}

// ObserveRecord counts one record write attempt.
func ObserveRecord(kind, outcome string) {
	recordsTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveRoutingFault counts one page that no builder accepted.
func ObserveRoutingFault(site string) {
	routingFaultsTotal.WithLabelValues(site).Inc()
}

// ObserveRobotsFallback counts one allow-all robots.txt fallback.
func ObserveRobotsFallback(host string) {
	robotsFallbackTotal.WithLabelValues(SanitizeSite(host)).Inc()
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncActiveWorkers increments the active workers gauge.
func IncActiveWorkers() {
	activeWorkers.Inc()
}

// DecActiveWorkers decrements the active workers gauge.
func DecActiveWorkers() {
	activeWorkers.Dec()
}

// ObserveRateLimitDelay records the duration of a rate limit wait.
func ObserveRateLimitDelay(domain string, duration time.Duration) {
	rateLimitDelaysSeconds.WithLabelValues(domain).Observe(duration.Seconds())
}
