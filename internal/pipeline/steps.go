package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/unlimitedworld/uwstats/internal/database"
	"github.com/unlimitedworld/uwstats/internal/extract"
	"github.com/unlimitedworld/uwstats/internal/miner"
	"github.com/unlimitedworld/uwstats/internal/model"
	"github.com/unlimitedworld/uwstats/internal/stats"
)

// FetchStep downloads page snapshots for the thread into the report's
// snapshot directory. In resume mode only pages at or above the highest
// locally-known page are fetched; otherwise the whole thread is.
type FetchStep struct {
	// miner performs the page fetches.
	miner *miner.Miner

	// onlyNew enables resume mode.
	onlyNew bool

	// logger for structured logging.
	logger *slog.Logger
}

// FetchStepOption configures a FetchStep.
type FetchStepOption func(*FetchStep)

// WithOnlyNewPages makes the step resume from the highest page already
// on disk instead of fetching from page one.
func WithOnlyNewPages(onlyNew bool) FetchStepOption {
	return func(s *FetchStep) {
		s.onlyNew = onlyNew
	}
}

// WithFetchLogger sets a custom logger for the fetch step.
func WithFetchLogger(logger *slog.Logger) FetchStepOption {
	return func(s *FetchStep) {
		s.logger = logger
	}
}

// NewFetchStep creates a new page fetching step.
func NewFetchStep(m *miner.Miner, opts ...FetchStepOption) *FetchStep {
	s := &FetchStep{
		miner:  m,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch_pages"
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, report *model.ThreadReport) error {
	if err := os.MkdirAll(report.Dir, 0750); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	if s.onlyNew {
		highest, err := miner.HighestPage(report.Dir)
		if err != nil {
			return err
		}

		last, err := s.miner.FetchMissing(ctx, report.Dir)
		if err != nil {
			return err
		}
		report.LastPage = last
		report.PagesFetched = last - highest + 1
	} else {
		last, err := s.miner.FetchAll(ctx, report.Dir)
		if err != nil {
			return err
		}
		report.LastPage = last
		report.PagesFetched = last
	}

	s.logger.Info("fetch complete",
		"thread", report.ThreadURL,
		"last_page", report.LastPage,
		"pages_fetched", report.PagesFetched,
	)
	return nil
}

// ExtractStep parses every page snapshot in the report's directory into
// message records. Pages are read in ascending page order so the record
// stream preserves thread order.
type ExtractStep struct {
	// extractor turns page markup into records.
	extractor *extract.Extractor

	// logger for structured logging.
	logger *slog.Logger
}

// ExtractStepOption configures an ExtractStep.
type ExtractStepOption func(*ExtractStep)

// WithExtractLogger sets a custom logger for the extract step.
func WithExtractLogger(logger *slog.Logger) ExtractStepOption {
	return func(s *ExtractStep) {
		s.logger = logger
	}
}

// NewExtractStep creates a new record extraction step.
func NewExtractStep(e *extract.Extractor, opts ...ExtractStepOption) *ExtractStep {
	s := &ExtractStep{
		extractor: e,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract_records"
}

// Do executes the extract step.
func (s *ExtractStep) Do(ctx context.Context, report *model.ThreadReport) error {
	files, err := miner.ListPageFiles(report.Dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		content, err := os.ReadFile(filepath.Join(report.Dir, file.Name))
		if err != nil {
			return fmt.Errorf("read page snapshot %s: %w", file.Name, err)
		}

		records, err := s.extractor.ExtractPage(file.Num, content)
		if err != nil {
			return err
		}

		report.Records = append(report.Records, records...)
		report.PagesRead++

		s.logger.Debug("extracted page",
			"page", file.Num,
			"records", len(records),
		)
	}

	s.logger.Info("extraction complete",
		"pages_read", report.PagesRead,
		"records", len(report.Records),
	)
	return nil
}

// StoreStep persists the extracted record stream to the statistics
// database so later report runs can skip re-parsing snapshots.
type StoreStep struct {
	// db is the destination database.
	db *database.StatsDB

	// logger for structured logging.
	logger *slog.Logger
}

// StoreStepOption configures a StoreStep.
type StoreStepOption func(*StoreStep)

// WithStoreLogger sets a custom logger for the store step.
func WithStoreLogger(logger *slog.Logger) StoreStepOption {
	return func(s *StoreStep) {
		s.logger = logger
	}
}

// NewStoreStep creates a new record persistence step.
func NewStoreStep(db *database.StatsDB, opts ...StoreStepOption) *StoreStep {
	s := &StoreStep{
		db:     db,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *StoreStep) Name() string {
	return "store_records"
}

// Do executes the store step.
func (s *StoreStep) Do(ctx context.Context, report *model.ThreadReport) error {
	if err := s.db.SaveRecords(ctx, report.ThreadURL, report.Records); err != nil {
		return fmt.Errorf("persist records: %w", err)
	}

	s.logger.Info("records stored",
		"records", len(report.Records),
		"database", s.db.Path(),
	)
	return nil
}

// SummarizeStep aggregates the record stream into the per-author
// compliance table, optionally restricted to a page or post range.
type SummarizeStep struct {
	// selection restricts which records are counted.
	selection model.Selection
}

// NewSummarizeStep creates a new summarize step.
func NewSummarizeStep(sel model.Selection) *SummarizeStep {
	return &SummarizeStep{selection: sel}
}

// Name returns the step name.
func (s *SummarizeStep) Name() string {
	return "summarize"
}

// Do executes the summarize step.
func (s *SummarizeStep) Do(_ context.Context, report *model.ThreadReport) error {
	summary, err := stats.Summarize(report.Records, s.selection)
	if err != nil {
		return err
	}
	report.Summary = summary
	return nil
}
