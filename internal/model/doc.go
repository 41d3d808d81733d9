// Package model defines the core data structures shared across the
// uwstats packages: per-message records extracted from thread pages,
// compliance results, and the report accumulator passed through the
// pipeline.
package model
