// Package main provides the entry point for the uwstats CLI.
//
// uwstats mines uwmc.de forum threads into local page snapshots and
// aggregates per-author statistics about rule compliance.
//
// Usage:
//
//	uwstats mine --url <thread-url>
//	uwstats stats <format>
//
// See --help for all available options.
package main

// main is the entry point for uwstats.
func main() {
	Execute()
}
