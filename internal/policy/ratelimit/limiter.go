// Package ratelimit implements per-host politeness: a token bucket that spaces
// requests by a configured delay and a single in-flight request per host.
package ratelimit

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/JakeFAU/govbills-crawler/internal/crawler"
	"github.com/JakeFAU/govbills-crawler/internal/metrics"
)

// Rule sets the delay for a domain and its subdomains.
type Rule struct {
	Domain string
	Delay  time.Duration
}

// Config holds rate limiter configuration.
type Config struct {
	// DefaultDelay applies to hosts no rule matches. Zero means unlimited.
	DefaultDelay time.Duration
	Rules        []Rule
}

type hostState struct {
	limiter *rate.Limiter
	slot    chan struct{}
}

// Limiter manages per-host limits.
type Limiter struct {
	cfg Config

	mu    sync.Mutex
	hosts map[string]*hostState
}

var _ crawler.RateLimiter = (*Limiter)(nil)

// New creates a new Limiter.
func New(cfg Config) *Limiter {
	metrics.Init()
	return &Limiter{
		cfg:   cfg,
		hosts: make(map[string]*hostState),
	}
}

// Delay reports the spacing applied to host.
func (l *Limiter) Delay(host string) time.Duration {
	host = strings.ToLower(host)
	for _, rule := range l.cfg.Rules {
		d := strings.ToLower(rule.Domain)
		if host == d || strings.HasSuffix(host, "."+d) {
			return rule.Delay
		}
	}
	return l.cfg.DefaultDelay
}

// Acquire blocks until the host of rawURL has no request in flight and its
// delay has elapsed. The returned release must be called once the response
// has been handled.
func (l *Limiter) Acquire(ctx context.Context, rawURL string) (func(), error) {
	domain := hostOf(rawURL)
	state := l.state(domain)

	start := time.Now()
	select {
	case state.slot <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("rate limit wait: %w", ctx.Err())
	}
	if err := state.limiter.Wait(ctx); err != nil {
		<-state.slot
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	if duration := time.Since(start); duration > time.Millisecond {
		metrics.ObserveRateLimitDelay(domain, duration)
	}

	var once sync.Once
	return func() { once.Do(func() { <-state.slot }) }, nil
}

func (l *Limiter) state(domain string) *hostState {
	l.mu.Lock()
	defer l.mu.Unlock()
	state, ok := l.hosts[domain]
	if !ok {
		limit := rate.Inf
		if delay := l.Delay(domain); delay > 0 {
			limit = rate.Every(delay)
		}
		state = &hostState{
			limiter: rate.NewLimiter(limit, 1),
			slot:    make(chan struct{}, 1),
		}
		l.hosts[domain] = state
	}
	return state
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return "unknown"
	}
	return strings.ToLower(u.Hostname())
}
