package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoThreadURL is returned when no thread base address is given.
	ErrNoThreadURL = errors.New("no thread URL specified: provide one with --url")

	// ErrInvalidThreadURL is returned when the thread address cannot be
	// normalized into a base address that page segments append to.
	ErrInvalidThreadURL = errors.New("invalid thread URL: must be an absolute http(s) address")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate request failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the parallel fetch limit is
	// not positive. A limit of zero would mean no fetch workers at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to fall back to the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrEmptySnapshotDir is returned when a resume fetch is requested on
	// a directory without any page files. The caller must run a full fetch
	// into an empty destination instead.
	ErrEmptySnapshotDir = errors.New("no page files in snapshot directory: run a full fetch first")
)
