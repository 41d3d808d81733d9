package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Range errors.
var (
	// ErrInvalidRange is returned when a range string cannot be parsed.
	ErrInvalidRange = errors.New("invalid range, expected \"start,end\" with end exclusive")
	// ErrConflictingRanges is returned when both a page range and a post
	// range are selected.
	ErrConflictingRanges = errors.New("page range and post range are mutually exclusive")
)

// Range is a half-open [Start, End) interval over page numbers or post
// ordinals.
type Range struct {
	Start int
	End   int
}

// ParseRange parses the "n1,n2" range string format, with n2 exclusive.
func ParseRange(s string) (Range, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}
	if end < start {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidRange, s)
	}

	return Range{Start: start, End: end}, nil
}

// Contains reports whether n lies in the half-open interval.
func (r Range) Contains(n int) bool {
	return n >= r.Start && n < r.End
}

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool {
	return r.Start == 0 && r.End == 0
}

// Selection restricts which records an aggregation sees. At most one of
// Pages and Posts may be set: Pages filters by the record's page number,
// Posts by the record's ordinal position in the full stream.
type Selection struct {
	Pages Range
	Posts Range
}

// Validate checks the mutual-exclusion constraint.
func (s Selection) Validate() error {
	if !s.Pages.IsZero() && !s.Posts.IsZero() {
		return ErrConflictingRanges
	}
	return nil
}

// AuthorSummary is one row of the ranked compliance table.
type AuthorSummary struct {
	// Author is the row's author identifier.
	Author string `json:"author"`

	// Messages is the number of messages the author wrote.
	Messages int `json:"messages"`

	// Violations is the number of non-compliant messages.
	Violations int `json:"violations"`

	// ViolationRate is Violations/Messages in [0, 1].
	ViolationRate float64 `json:"violation_rate"`
}

// ThreadSummary is the author-keyed summary table handed to the report
// renderers. Authors are sorted by descending message count.
//
// Design decision: Total.ViolationRate is the mean of the per-author
// rates, not a count-weighted average. One prolific author should not
// dominate the headline rate.
type ThreadSummary struct {
	// Authors holds one row per author, most active first.
	Authors []AuthorSummary `json:"authors"`

	// Total is the synthetic aggregate row.
	Total AuthorSummary `json:"total"`
}

// ThreadReport accumulates state as pipeline steps execute. Each step
// reads what earlier steps produced and fills in its own outputs.
type ThreadReport struct {
	// ThreadURL is the normalized base address of the thread.
	ThreadURL string `json:"thread_url"`

	// Dir is the page snapshot directory.
	Dir string `json:"dir"`

	// LastPage is the resolved final page number, when known.
	LastPage int `json:"last_page,omitempty"`

	// PagesFetched counts pages persisted by the fetch step.
	PagesFetched int `json:"pages_fetched,omitempty"`

	// PagesRead counts page files consumed by the extract step.
	PagesRead int `json:"pages_read,omitempty"`

	// Records is the full message record stream, grouped by page in page
	// order with document order preserved within a page.
	Records []MessageRecord `json:"records,omitempty"`

	// Summary is the aggregated table, once the summarize step ran.
	Summary *ThreadSummary `json:"summary,omitempty"`

	// PerformedSteps names the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewThreadReport creates a report for the given thread and directory.
func NewThreadReport(threadURL, dir string) *ThreadReport {
	return &ThreadReport{
		ThreadURL: threadURL,
		Dir:       dir,
	}
}
