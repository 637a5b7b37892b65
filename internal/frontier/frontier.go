// Package frontier provides the in-memory work queue shared by the crawl
// workers: a seen set keyed by normalized URL, a FIFO of pending pages and a
// count of pages that are still being processed.
package frontier

import (
	"context"
	"sync"

	"github.com/JakeFAU/govbills-crawler/internal/crawler"
)

// Options bounds what the frontier admits. Zero values mean no limit.
type Options struct {
	MaxDepth int
	MaxPages int
}

// Frontier is safe for concurrent use.
type Frontier struct {
	opts Options

	mu       sync.Mutex
	pending  []crawler.Task
	seen     map[string]struct{}
	inFlight int
	// wake is closed and replaced whenever pending or inFlight changes.
	wake chan struct{}
}

var _ crawler.Frontier = (*Frontier)(nil)

// New constructs an empty frontier.
func New(opts Options) *Frontier {
	return &Frontier{
		opts: opts,
		seen: make(map[string]struct{}),
		wake: make(chan struct{}),
	}
}

// Push admits task unless its URL is invalid or already seen, it is deeper
// than MaxDepth, or MaxPages URLs have been admitted. The stored task carries
// the normalized URL.
func (f *Frontier) Push(task crawler.Task) bool {
	key, err := crawler.NormalizeURL(task.URL)
	if err != nil {
		return false
	}
	if f.opts.MaxDepth > 0 && task.Depth > f.opts.MaxDepth {
		return false
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.seen[key]; ok {
		return false
	}
	if f.opts.MaxPages > 0 && len(f.seen) >= f.opts.MaxPages {
		return false
	}
	f.seen[key] = struct{}{}
	task.URL = key
	f.pending = append(f.pending, task)
	f.signal()
	return true
}

// Pop blocks until a task is available. It returns false once nothing is
// pending and nothing is in flight, or when ctx ends; pending tasks are left
// queued after cancellation. Every task returned must be released with Done.
func (f *Frontier) Pop(ctx context.Context) (crawler.Task, bool) {
	for {
		if ctx.Err() != nil {
			return crawler.Task{}, false
		}
		f.mu.Lock()
		if len(f.pending) > 0 {
			task := f.pending[0]
			f.pending[0] = crawler.Task{}
			f.pending = f.pending[1:]
			f.inFlight++
			f.mu.Unlock()
			return task, true
		}
		if f.inFlight == 0 {
			f.mu.Unlock()
			return crawler.Task{}, false
		}
		wake := f.wake
		f.mu.Unlock()

		select {
		case <-ctx.Done():
			return crawler.Task{}, false
		case <-wake:
		}
	}
}

// Done marks one popped task finished.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inFlight > 0 {
		f.inFlight--
	}
	f.signal()
}

// Seen reports how many distinct URLs have been admitted.
func (f *Frontier) Seen() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

// Pending reports how many admitted tasks have not been popped yet.
func (f *Frontier) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

func (f *Frontier) signal() {
	close(f.wake)
	f.wake = make(chan struct{})
}
