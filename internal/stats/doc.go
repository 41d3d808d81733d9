// Package stats aggregates extracted message records into the
// author-keyed summary table consumed by the report renderers. It is a
// pure consumer of the extraction engine's record stream.
package stats
