package stats

import (
	"sort"

	"github.com/unlimitedworld/uwstats/internal/model"
)

// TotalAuthor is the author label of the synthetic aggregate row.
const TotalAuthor = "TOTAL"

// Select returns the records admitted by the selection filter, in their
// original order. The page range filters by originating page number;
// the post range filters by ordinal position in the full stream.
func Select(records []model.MessageRecord, sel model.Selection) ([]model.MessageRecord, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	switch {
	case !sel.Pages.IsZero():
		out := make([]model.MessageRecord, 0, len(records))
		for _, r := range records {
			if sel.Pages.Contains(r.PageNum) {
				out = append(out, r)
			}
		}
		return out, nil
	case !sel.Posts.IsZero():
		out := make([]model.MessageRecord, 0, len(records))
		for i, r := range records {
			if sel.Posts.Contains(i) {
				out = append(out, r)
			}
		}
		return out, nil
	default:
		return records, nil
	}
}

// Summarize builds the ranked compliance table from a record stream.
// Rows are sorted by descending message count, ties broken by author
// name so output is deterministic.
//
// Design decision: the total row's violation rate is the mean of the
// per-author rates rather than violations/messages over the whole
// stream. A count-weighted average would let one prolific author
// dominate the headline rate.
func Summarize(records []model.MessageRecord, sel model.Selection) (*model.ThreadSummary, error) {
	selected, err := Select(records, sel)
	if err != nil {
		return nil, err
	}

	type tally struct {
		messages   int
		violations int
	}
	byAuthor := make(map[string]*tally)
	for _, r := range selected {
		t := byAuthor[r.Author]
		if t == nil {
			t = &tally{}
			byAuthor[r.Author] = t
		}
		t.messages++
		if !r.IsRulesCompliant {
			t.violations++
		}
	}

	summary := &model.ThreadSummary{
		Authors: make([]model.AuthorSummary, 0, len(byAuthor)),
	}
	for author, t := range byAuthor {
		summary.Authors = append(summary.Authors, model.AuthorSummary{
			Author:        author,
			Messages:      t.messages,
			Violations:    t.violations,
			ViolationRate: float64(t.violations) / float64(t.messages),
		})
	}

	sort.Slice(summary.Authors, func(i, j int) bool {
		a, b := summary.Authors[i], summary.Authors[j]
		if a.Messages != b.Messages {
			return a.Messages > b.Messages
		}
		return a.Author < b.Author
	})

	total := model.AuthorSummary{Author: TotalAuthor}
	var rateSum float64
	for _, row := range summary.Authors {
		total.Messages += row.Messages
		total.Violations += row.Violations
		rateSum += row.ViolationRate
	}
	if len(summary.Authors) > 0 {
		total.ViolationRate = rateSum / float64(len(summary.Authors))
	}
	summary.Total = total

	return summary, nil
}
