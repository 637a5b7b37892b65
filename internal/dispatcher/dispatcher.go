// Package dispatcher runs one crawl: it seeds a frontier from the selected
// sites and fans the work out to a pool of workers until the frontier drains.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/JakeFAU/govbills-crawler/internal/crawler"
	"github.com/JakeFAU/govbills-crawler/internal/frontier"
	"github.com/JakeFAU/govbills-crawler/internal/sites"
	"github.com/JakeFAU/govbills-crawler/internal/worker"
)

// ErrNoSeeds is returned when none of the requested sites produced a seed URL.
var ErrNoSeeds = errors.New("no seed urls")

// Config bounds a crawl run.
type Config struct {
	Concurrency int
	MaxDepth    int
	MaxPages    int
}

// Deps are the collaborators shared by every worker of a run.
type Deps struct {
	Sites     sites.Registry
	Fetcher   crawler.Fetcher
	Limiter   crawler.RateLimiter
	Retry     crawler.RetryPolicy
	Processor worker.Processor
	Store     crawler.RecordStore
	Hasher    crawler.Hasher
	IDs       crawler.IDGenerator
	Clock     crawler.Clock
}

// Dispatcher fans frontier work out to a pool of workers.
type Dispatcher struct {
	cfg    Config
	deps   Deps
	logger *zap.Logger
}

// New creates a Dispatcher.
func New(cfg Config, deps Deps, logger *zap.Logger) (*Dispatcher, error) {
	if cfg.Concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be > 0, got %d", cfg.Concurrency)
	}
	if deps.Fetcher == nil || deps.Processor == nil || deps.Store == nil {
		return nil, errors.New("fetcher, processor and store are required")
	}
	if deps.IDs == nil || deps.Clock == nil {
		return nil, errors.New("id generator and clock are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{cfg: cfg, deps: deps, logger: logger}, nil
}

// Run crawls the sites named by siteIDs and blocks until every reachable page
// has been handled or ctx ends. A site that cannot be seeded is logged and
// skipped; Run fails only when no site could be seeded at all.
func (d *Dispatcher) Run(ctx context.Context, siteIDs []string) (crawler.Summary, error) {
	runID, err := d.deps.IDs.NewID()
	if err != nil {
		return crawler.Summary{}, err
	}
	logger := d.logger.With(zap.String("run_id", runID))
	summary := crawler.Summary{RunID: runID, Started: d.deps.Clock.Now()}

	front := frontier.New(frontier.Options{MaxDepth: d.cfg.MaxDepth, MaxPages: d.cfg.MaxPages})
	summary.Sites = d.seed(front, siteIDs, logger)
	if len(summary.Sites) == 0 {
		summary.Finished = d.deps.Clock.Now()
		return summary, fmt.Errorf("%w for sites %v", ErrNoSeeds, siteIDs)
	}
	logger.Info("crawl started",
		zap.Strings("sites", summary.Sites),
		zap.Int("seeds", front.Pending()),
		zap.Int("concurrency", d.cfg.Concurrency),
	)

	tally := &worker.Tally{}
	var wg sync.WaitGroup
	for i := range d.cfg.Concurrency {
		w := worker.New(
			front,
			d.deps.Fetcher,
			d.deps.Limiter,
			d.deps.Retry,
			d.deps.Processor,
			d.deps.Store,
			d.deps.Hasher,
			tally,
			logger.Named("worker").With(zap.Int("index", i)),
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(ctx)
		}()
	}
	wg.Wait()

	tally.Fill(&summary)
	summary.Finished = d.deps.Clock.Now()
	logger.Info("crawl finished",
		zap.Int64("pages", summary.Pages),
		zap.Int64("pages_failed", summary.PagesFailed),
		zap.Int64("records", summary.Records),
		zap.Int64("records_failed", summary.RecordsFailed),
		zap.Int64("routing_faults", summary.RoutingFaults),
		zap.Duration("duration", summary.Duration()),
	)
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("crawl interrupted: %w", err)
	}
	return summary, nil
}

// seed pushes every site's seed URLs and returns the sites that contributed
// at least one.
func (d *Dispatcher) seed(front *frontier.Frontier, siteIDs []string, logger *zap.Logger) []string {
	var seeded []string
	for _, id := range siteIDs {
		site, ok := d.deps.Sites.Lookup(id)
		if !ok {
			logger.Error("site skipped", zap.String("site", id), zap.Error(sites.ErrUnknownSite))
			continue
		}
		queued := 0
		for _, u := range site.Seeds() {
			if front.Push(crawler.Task{URL: u, Site: site.ID()}) {
				queued++
			}
		}
		if queued == 0 {
			logger.Warn("site has no usable seeds", zap.String("site", id))
			continue
		}
		seeded = append(seeded, site.ID())
	}
	return seeded
}
