package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These mirror the behavior of the original uwmc.de thread miner where
// applicable, with limits added for safety on very long threads.
const (
	// DefaultTimeout is the per-request timeout. The forum is a clearnet
	// site, so 30 seconds is generous; slow responses usually indicate a
	// server problem rather than a slow link.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency bounds the parallel fetch worker pool. One worker
	// per page would exhaust sockets on threads with thousands of pages;
	// eight workers saturate a typical forum without tripping rate limits.
	DefaultConcurrency = 8

	// DefaultSnapshotDir is where page snapshots land when no directory is
	// given. Relative to the working directory, matching the expectation
	// that mining and analysis run from the same place.
	DefaultSnapshotDir = ".html_content"

	// DefaultUserAgent identifies uwstats in HTTP requests so forum
	// operators can recognize the traffic in their logs.
	DefaultUserAgent = "uwstats/1.0 (+https://github.com/unlimitedworld/uwstats)"

	// DefaultMaxBodySize limits the response body size per page. Forum
	// pages are rarely above a few hundred kilobytes; 10MB leaves room for
	// inlined assets while preventing memory exhaustion.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultUpperBoundPage is the implausibly large page number requested
	// to discover a thread's true last page from the server redirect.
	DefaultUpperBoundPage = 1_000_000

	// AppName is the application name used for XDG directory paths.
	AppName = "uwstats"
)

// Config holds all options for the mine and stats commands.
// It is populated from CLI flags and passed through the application via
// dependency injection rather than global state.
type Config struct {
	// ThreadURL is the thread's base address. It is normalized to end
	// with a path separator before page segments are appended.
	ThreadURL string

	// SnapshotDir is the directory holding page snapshot files.
	SnapshotDir string

	// Parallel selects the bounded-worker fetch mode instead of the
	// strictly sequential one.
	Parallel bool

	// Concurrency is the worker limit in parallel mode.
	Concurrency int

	// OnlyNewPages resumes fetching from the highest page already on
	// disk instead of starting over at page 1.
	OnlyNewPages bool

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with page requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Zero means DefaultMaxBodySize.
	MaxBodySize int64

	// Verbose enables debug-level log output.
	Verbose bool

	// Format is the report output format for the stats command.
	Format string

	// PageRange and PostRange are the optional "n1,n2" selection strings
	// (end exclusive). At most one may be set.
	PageRange string
	PostRange string

	// ReportFile is the output file for the report. Empty means stdout.
	ReportFile string

	// DBDir is the directory for the SQLite message store. Records are
	// only persisted when SaveToDB is set.
	DBDir string

	// SaveToDB persists extracted records for later re-reporting.
	SaveToDB bool

	// RulesFilePath is an explicit extraction rules file. If empty, the
	// tool searches for .uwstats in the working directory and then in the
	// user's home directory, falling back to built-in defaults.
	RulesFilePath string

	// Rules holds the extraction rule tables, populated from the rules
	// file or DefaultRules.
	Rules *Rules
}

// NewConfig creates a Config with default values. Fields the commands
// always set (ThreadURL, Format) stay empty.
func NewConfig() *Config {
	return &Config{
		SnapshotDir: DefaultSnapshotDir,
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		DBDir:       XDGDataDir(),
		Rules:       DefaultRules(),
	}
}

// XDGDataDir returns the XDG data directory for uwstats.
// On Linux: ~/.local/share/uwstats
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// NormalizeThreadURL validates the thread address and ensures the
// trailing path separator the page locator relies on.
func NormalizeThreadURL(raw string) (string, error) {
	if raw == "" {
		return "", ErrNoThreadURL
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidThreadURL
	}

	normalized := u.String()
	if normalized[len(normalized)-1] != '/' {
		normalized += "/"
	}
	return normalized, nil
}

// Validate checks the configuration before any fetching or extraction
// begins. It returns the first problem found; fixing one error often
// makes later ones irrelevant.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
