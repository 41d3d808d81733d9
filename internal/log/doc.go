// Package log provides logging utilities for uwstats.
// It implements a slog.Handler wrapper that truncates oversized string
// attributes, so raw page markup attached to log records never floods the
// output.
package log
