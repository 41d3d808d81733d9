// Package report renders thread summaries in a closed set of output
// formats. Each format implements the same Renderer contract, selected
// by an enumerated Format value rather than any runtime name dispatch.
package report
