package miner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/unlimitedworld/uwstats/internal/config"
)

// Miner orchestrates fetching a thread's pages into snapshot files.
// It supports a strictly sequential mode and a bounded-parallel mode;
// in both, each page is fetched exactly once and persisted verbatim.
type Miner struct {
	// fetcher performs the HTTP requests.
	fetcher *Fetcher

	// threadURL is the normalized base address of the thread.
	threadURL string

	// parallel selects the bounded worker pool over the sequential loop.
	parallel bool

	// concurrency is the worker limit in parallel mode.
	concurrency int

	// logger receives per-page progress. Passed in explicitly; the miner
	// keeps no global verbosity state.
	logger *slog.Logger
}

// Option configures a Miner.
type Option func(*Miner)

// WithParallel enables the bounded-parallel fetch mode.
func WithParallel(parallel bool) Option {
	return func(m *Miner) {
		m.parallel = parallel
	}
}

// WithConcurrency sets the parallel worker limit.
func WithConcurrency(n int) Option {
	return func(m *Miner) {
		if n > 0 {
			m.concurrency = n
		}
	}
}

// WithLogger sets the progress logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Miner) {
		m.logger = logger
	}
}

// New creates a Miner for the given thread. The thread address must
// already be normalized to end with a path separator.
func New(fetcher *Fetcher, threadURL string, opts ...Option) *Miner {
	m := &Miner{
		fetcher:     fetcher,
		threadURL:   threadURL,
		concurrency: config.DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}

	return m
}

// FetchAll resolves the thread's last page and fetches pages 1 through
// it into dir. It returns the resolved last page number.
func (m *Miner) FetchAll(ctx context.Context, dir string) (int, error) {
	last, err := m.fetcher.LastPage(ctx, m.threadURL)
	if err != nil {
		return 0, err
	}

	pages := make([]int, 0, last)
	for page := 1; page <= last; page++ {
		pages = append(pages, page)
	}

	if err := m.FetchRange(ctx, dir, pages); err != nil {
		return last, err
	}
	return last, nil
}

// FetchMissing resumes a previous fetch: it finds the highest page
// number already in dir, resolves the thread's current last page, and
// fetches the inclusive range between them. The highest locally-known
// page is deliberately re-fetched because it may have grown since the
// last run; pages below it are never revalidated, which is a known
// limitation of the resume scheme.
//
// A directory without page files is a configuration error: the caller
// must use FetchAll for an empty destination.
func (m *Miner) FetchMissing(ctx context.Context, dir string) (int, error) {
	highest, err := HighestPage(dir)
	if err != nil {
		return 0, err
	}
	if highest == 0 {
		return 0, fmt.Errorf("%w: %s", config.ErrEmptySnapshotDir, dir)
	}

	last, err := m.fetcher.LastPage(ctx, m.threadURL)
	if err != nil {
		return 0, err
	}

	pages := make([]int, 0)
	for page := highest; page <= last; page++ {
		pages = append(pages, page)
	}

	if err := m.FetchRange(ctx, dir, pages); err != nil {
		return last, err
	}
	return last, nil
}

// FetchRange fetches an explicit set of pages into dir. In sequential
// mode pages are requested strictly in the given order, one at a time.
// In parallel mode a bounded pool of workers fetches them with no
// ordering guarantee; all workers are awaited before FetchRange returns,
// and one page's failure does not cancel its siblings. All failures are
// joined into the returned error after the barrier.
//
// An external interrupt via ctx is honored between pages, never
// mid-page.
func (m *Miner) FetchRange(ctx context.Context, dir string, pages []int) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("snapshot directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("snapshot path %s is not a directory", dir)
	}

	if m.parallel {
		return m.fetchParallel(ctx, dir, pages)
	}
	return m.fetchLinear(ctx, dir, pages)
}

// fetchLinear fetches pages one at a time in the given order.
func (m *Miner) fetchLinear(ctx context.Context, dir string, pages []int) error {
	for _, page := range pages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := m.fetchAndSave(ctx, dir, page); err != nil {
			return err
		}
	}
	return nil
}

// fetchParallel fetches pages with a bounded worker pool and a join
// barrier.
//
// Design decision: We use errgroup.Group without WithContext because a
// failed page must not cancel in-flight siblings; errors are collected
// under a mutex and joined after Wait so none is lost.
func (m *Miner) fetchParallel(ctx context.Context, dir string, pages []int) error {
	var g errgroup.Group
	g.SetLimit(m.concurrency)

	var mu sync.Mutex
	var errs []error

	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}

		page := page
		g.Go(func() error {
			if err := m.fetchAndSave(ctx, dir, page); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}

// fetchAndSave retrieves one page and persists its body verbatim.
func (m *Miner) fetchAndSave(ctx context.Context, dir string, page int) error {
	res, err := m.fetcher.Fetch(ctx, AddressForPage(m.threadURL, page))
	if err != nil {
		return fmt.Errorf("page %d: %w", page, err)
	}

	path := filepath.Join(dir, PageFileName(page))
	if err := os.WriteFile(path, res.Body, 0600); err != nil {
		return fmt.Errorf("save page %d: %w", page, err)
	}

	m.logger.Info("saved page", "page", page, "bytes", len(res.Body))
	return nil
}
