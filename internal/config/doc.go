// Package config provides configuration structures and utilities for
// uwstats. It defines the options for mining thread pages, the extraction
// rule tables, and report generation preferences.
package config
