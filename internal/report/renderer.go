package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/unlimitedworld/uwstats/internal/model"
)

// ErrUnknownFormat is returned when the requested format is not one of
// the supported values.
var ErrUnknownFormat = errors.New("unknown report format: expected simple, markdown, bbcode, or json")

// Format identifies a report output format.
//
// Design decision: A closed, tagged set selected by value replaces the
// original approach of dispatching on a method name chosen at runtime.
// Adding a format means adding a constant and a Renderer here, and the
// compiler knows every call site.
type Format string

// Supported report formats.
const (
	// FormatSimple is a human-readable text table for terminals.
	FormatSimple Format = "simple"
	// FormatMarkdown is a GitHub-flavored Markdown table.
	FormatMarkdown Format = "markdown"
	// FormatBBCode is the forum's own [TABLE] syntax, suitable for
	// posting the summary back into the thread.
	FormatBBCode Format = "bbcode"
	// FormatJSON is machine-readable output of the full summary.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name from the CLI.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatSimple, FormatMarkdown, FormatBBCode, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrUnknownFormat, s)
	}
}

// Renderer writes a thread summary in one output format.
// Implementations return the number of bytes written and any error
// encountered, so callers can log output sizes uniformly.
type Renderer interface {
	// Render outputs the summary to the configured destination.
	Render(summary *model.ThreadSummary) (int, error)
}

// NewRenderer creates the Renderer for a format, writing to output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatSimple:
		return NewSimpleRenderer(output), nil
	case FormatMarkdown:
		return NewMarkdownRenderer(output), nil
	case FormatBBCode:
		return NewBBCodeRenderer(output), nil
	case FormatJSON:
		return NewJSONRenderer(output), nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnknownFormat, string(format))
	}
}

// baseRenderer provides the shared output destination.
type baseRenderer struct {
	output io.Writer
}

// newBaseRenderer creates a baseRenderer with the given destination.
func newBaseRenderer(output io.Writer) baseRenderer {
	return baseRenderer{output: output}
}

// formatPercent renders a violation rate for display.
func formatPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}
