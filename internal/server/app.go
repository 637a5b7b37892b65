// Package server provides the application container and dependency wiring.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/govbills-crawler/internal/clock/system"
	"github.com/JakeFAU/govbills-crawler/internal/config"
	"github.com/JakeFAU/govbills-crawler/internal/crawler"
	"github.com/JakeFAU/govbills-crawler/internal/dispatcher"
	collyfetcher "github.com/JakeFAU/govbills-crawler/internal/fetcher/colly"
	"github.com/JakeFAU/govbills-crawler/internal/hash/sha256"
	"github.com/JakeFAU/govbills-crawler/internal/id/uuid"
	"github.com/JakeFAU/govbills-crawler/internal/metrics"
	"github.com/JakeFAU/govbills-crawler/internal/pipeline"
	"github.com/JakeFAU/govbills-crawler/internal/policy/ratelimit"
	"github.com/JakeFAU/govbills-crawler/internal/sites"
	"github.com/JakeFAU/govbills-crawler/internal/storage"
	"github.com/JakeFAU/govbills-crawler/internal/storage/postgres"
	"github.com/JakeFAU/govbills-crawler/internal/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

// App contains the application's dependencies.
type App struct {
	cfg           config.Config
	logger        *zap.Logger
	store         storage.Gateway
	dispatch      *dispatcher.Dispatcher
	metricsServer *http.Server
}

// Build creates the crawl dependencies. The store schema is created before
// Build returns.
func Build(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{cfg: cfg, logger: logger}

	logger.Info("building application dependencies",
		zap.Strings("sites", cfg.SiteIDs()),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Int("concurrency", cfg.Crawler.Concurrency),
	)

	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	app.store = store

	app.dispatch, err = setupDispatcher(cfg, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

// OpenStore opens the configured backend and ensures its schema.
func OpenStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Gateway, error) {
	var (
		store storage.Gateway
		err   error
	)
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		store, err = postgres.New(ctx, postgres.Config{
			DSN:      cfg.Storage.DSN,
			MaxConns: cfg.Storage.MaxConns,
		})
		if err != nil {
			return nil, fmt.Errorf("postgres store init failed: %w", err)
		}
		logger.Info("using postgres storage backend")
	case config.DriverSQLite:
		store, err = sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("sqlite store init failed: %w", err)
		}
		logger.Info("using sqlite storage backend", zap.String("path", cfg.Storage.Path))
	default:
		return nil, fmt.Errorf("%w: storage.driver %q", config.ErrInvalid, cfg.Storage.Driver)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func setupDispatcher(cfg config.Config, store storage.Gateway, logger *zap.Logger) (*dispatcher.Dispatcher, error) {
	clock := system.New()
	registry, err := sites.NewRegistry(sites.Options{
		Clock:   clock,
		LinkCap: cfg.Crawler.CategoryLinkCap,
	}, cfg.SiteIDs()...)
	if err != nil {
		return nil, fmt.Errorf("site registry init failed: %w", err)
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:        cfg.Crawler.UserAgent,
		RespectRobots:    cfg.Crawler.RespectRobots,
		Timeout:          cfg.RequestTimeout(),
		OnRobotsFallback: robotsFallback(logger),
	})
	logger.Info("using colly fetcher",
		zap.String("user_agent", cfg.Crawler.UserAgent),
		zap.Bool("respect_robots", cfg.Crawler.RespectRobots),
	)

	limits := LimiterConfig(cfg, registry)
	for _, rule := range limits.Rules {
		logger.Debug("politeness delay", zap.String("domain", rule.Domain), zap.Duration("delay", rule.Delay))
	}

	d, err := dispatcher.New(dispatcher.Config{
		Concurrency: cfg.Crawler.Concurrency,
		MaxDepth:    cfg.Crawler.MaxDepth,
		MaxPages:    cfg.Crawler.MaxPages,
	}, dispatcher.Deps{
		Sites:     registry,
		Fetcher:   fetcher,
		Limiter:   ratelimit.New(limits),
		Retry:     crawler.NewExponentialRetryPolicy().WithMaxAttempts(cfg.Crawler.MaxRetries),
		Processor: pipeline.New(registry),
		Store:     store,
		Hasher:    sha256.New(),
		IDs:       uuid.New(),
		Clock:     clock,
	}, logger.Named("dispatcher"))
	if err != nil {
		return nil, fmt.Errorf("dispatcher init failed: %w", err)
	}
	return d, nil
}

// LimiterConfig maps every registered site's domains to its politeness delay.
func LimiterConfig(cfg config.Config, registry sites.Registry) ratelimit.Config {
	limits := ratelimit.Config{DefaultDelay: cfg.DefaultDelay()}
	for _, id := range sites.IDs() {
		site, ok := registry.Lookup(id)
		if !ok {
			continue
		}
		for _, domain := range site.Domains() {
			limits.Rules = append(limits.Rules, ratelimit.Rule{Domain: domain, Delay: cfg.SiteDelay(id)})
		}
	}
	return limits
}

func robotsFallback(logger *zap.Logger) func(host string) {
	return func(host string) {
		metrics.ObserveRobotsFallback(host)
		logger.Warn("robots.txt unavailable, assuming allow-all", zap.String("host", host))
	}
}

// Crawl runs one crawl over the configured sites, serving /metrics for its
// duration when metrics.addr is set.
func (a *App) Crawl(ctx context.Context) (crawler.Summary, error) {
	if a.cfg.Metrics.Addr != "" && a.metricsServer == nil {
		a.startMetrics()
	}
	summary, err := a.dispatch.Run(ctx, a.cfg.SiteIDs())
	if err != nil {
		return summary, fmt.Errorf("run crawl: %w", err)
	}
	return summary, nil
}

// Stats reads the store statistics.
func (a *App) Stats(ctx context.Context) (storage.Stats, error) {
	st, err := a.store.Stats(ctx)
	if err != nil {
		return storage.Stats{}, fmt.Errorf("read stats: %w", err)
	}
	return st, nil
}

func (a *App) startMetrics() {
	metrics.Init()
	a.metricsServer = metrics.NewServer(a.cfg.Metrics.Addr)
	srv := a.metricsServer
	go func() {
		a.logger.Info("metrics server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server error", zap.Error(err))
		}
	}()
}

// Close gracefully shuts down the application.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store close: %w", err))
		}
	}
	a.logger.Info("shutdown complete")
	return errors.Join(errs...)
}
