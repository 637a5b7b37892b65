// Package worker implements the per-page crawl loop.
package worker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/JakeFAU/govbills-crawler/internal/crawler"
	"github.com/JakeFAU/govbills-crawler/internal/metrics"
	"github.com/JakeFAU/govbills-crawler/internal/pipeline"
)

// Page statuses reported to metrics.
const (
	StatusOK         = "ok"
	StatusFetchError = "fetch_error"
	StatusEmpty      = "empty"
	StatusParseError = "parse_error"
)

// Processor turns a parsed page into a record or follow-up links.
type Processor interface {
	Process(doc *goquery.Document, pageURL, siteID string) (pipeline.Result, error)
}

// Tally accumulates run counters across workers.
type Tally struct {
	Pages         atomic.Int64
	PagesFailed   atomic.Int64
	Records       atomic.Int64
	RecordsFailed atomic.Int64
	RoutingFaults atomic.Int64
}

// Fill copies the counters into s.
func (t *Tally) Fill(s *crawler.Summary) {
	s.Pages = t.Pages.Load()
	s.PagesFailed = t.PagesFailed.Load()
	s.Records = t.Records.Load()
	s.RecordsFailed = t.RecordsFailed.Load()
	s.RoutingFaults = t.RoutingFaults.Load()
}

// Worker pops pages from the frontier until it drains.
type Worker struct {
	frontier  crawler.Frontier
	fetcher   crawler.Fetcher
	limiter   crawler.RateLimiter
	retry     crawler.RetryPolicy
	processor Processor
	store     crawler.RecordStore
	hasher    crawler.Hasher
	tally     *Tally
	logger    *zap.Logger
}

// New constructs a Worker.
func New(
	frontier crawler.Frontier,
	fetcher crawler.Fetcher,
	limiter crawler.RateLimiter,
	retry crawler.RetryPolicy,
	processor Processor,
	store crawler.RecordStore,
	hasher crawler.Hasher,
	tally *Tally,
	logger *zap.Logger,
) *Worker {
	metrics.Init()
	if logger == nil {
		logger = zap.NewNop()
	}
	if tally == nil {
		tally = &Tally{}
	}
	return &Worker{
		frontier:  frontier,
		fetcher:   fetcher,
		limiter:   limiter,
		retry:     retry,
		processor: processor,
		store:     store,
		hasher:    hasher,
		tally:     tally,
		logger:    logger,
	}
}

// Run blocks, processing pages until the frontier drains or ctx ends.
func (w *Worker) Run(ctx context.Context) {
	for {
		task, ok := w.frontier.Pop(ctx)
		if !ok {
			return
		}
		metrics.IncActiveWorkers()
		w.handlePage(ctx, task)
		metrics.DecActiveWorkers()
		w.frontier.Done()
	}
}

func (w *Worker) handlePage(ctx context.Context, task crawler.Task) {
	logger := w.logger.With(zap.String("site", task.Site), zap.String("url", task.URL))

	resp, err := w.fetchWithRetry(ctx, task)
	if err != nil {
		w.tally.PagesFailed.Add(1)
		metrics.ObservePage(task.Site, StatusFetchError, 0)
		if ctx.Err() == nil {
			logger.Warn("fetch failed", zap.Error(err))
		}
		return
	}
	metrics.ObserveFetch(task.Site, resp.Duration)
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		w.tally.PagesFailed.Add(1)
		metrics.ObservePage(task.Site, StatusEmpty, 0)
		logger.Warn("empty response skipped", zap.Int("status", resp.StatusCode))
		return
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body))
	if err != nil {
		w.tally.PagesFailed.Add(1)
		metrics.ObservePage(task.Site, StatusParseError, len(resp.Body))
		logger.Warn("parse failed", zap.Error(err))
		return
	}
	w.tally.Pages.Add(1)
	metrics.ObservePage(task.Site, StatusOK, len(resp.Body))
	if w.hasher != nil {
		if digest, err := w.hasher.Hash(resp.Body); err == nil {
			logger.Debug("page fetched",
				zap.Int("status", resp.StatusCode),
				zap.Duration("duration", resp.Duration),
				zap.String("sha256", digest),
			)
		}
	}

	pageURL := resp.URL
	if pageURL == "" {
		pageURL = task.URL
	}
	result, err := w.processor.Process(doc, pageURL, task.Site)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnroutable) {
			w.tally.RoutingFaults.Add(1)
			metrics.ObserveRoutingFault(task.Site)
		}
		logger.Error("page not processed", zap.Error(err))
		return
	}

	if result.Record != nil {
		w.storeRecord(ctx, logger, result)
	}
	if result.Links != nil {
		w.pushLinks(logger, task, result)
	}
}

func (w *Worker) storeRecord(ctx context.Context, logger *zap.Logger, result pipeline.Result) {
	rec := result.Record
	kind := string(rec.Kind())
	logger = logger.With(zap.String("item_id", rec.NaturalKey()))
	if err := w.store.Upsert(ctx, rec); err != nil {
		w.tally.RecordsFailed.Add(1)
		metrics.ObserveRecord(kind, metrics.OutcomeFailed)
		logger.Error("record not stored", zap.String("kind", kind), zap.Error(err))
		return
	}
	w.tally.Records.Add(1)
	metrics.ObserveRecord(kind, metrics.OutcomeStored)
	logger.Info("record stored", zap.String("kind", kind))
}

func (w *Worker) pushLinks(logger *zap.Logger, task crawler.Task, result pipeline.Result) {
	found, queued := 0, 0
	for link := range result.Links {
		found++
		if w.frontier.Push(crawler.Task{URL: link, Site: task.Site, Depth: task.Depth + 1}) {
			queued++
		}
	}
	logger.Debug("links discovered", zap.Int("found", found), zap.Int("queued", queued))
}

func (w *Worker) fetchWithRetry(ctx context.Context, task crawler.Task) (crawler.FetchResponse, error) {
	for attempt := 1; ; attempt++ {
		resp, err := w.fetchOnce(ctx, task)
		if err == nil {
			return resp, nil
		}
		if w.retry == nil || !w.retry.ShouldRetry(err, attempt) {
			return crawler.FetchResponse{}, err
		}
		delay := w.retry.Backoff(attempt - 1)
		w.logger.Debug("retrying fetch",
			zap.String("url", task.URL),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
			zap.Error(err),
		)
		if err := sleep(ctx, delay); err != nil {
			return crawler.FetchResponse{}, err
		}
	}
}

func (w *Worker) fetchOnce(ctx context.Context, task crawler.Task) (crawler.FetchResponse, error) {
	if w.limiter != nil {
		release, err := w.limiter.Acquire(ctx, task.URL)
		if err != nil {
			return crawler.FetchResponse{}, err
		}
		defer release()
	}
	resp, err := w.fetcher.Fetch(ctx, crawler.FetchRequest{URL: task.URL, Site: task.Site})
	if err != nil {
		return crawler.FetchResponse{}, fmt.Errorf("fetch %s: %w", task.URL, err)
	}
	return resp, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("retry backoff: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
