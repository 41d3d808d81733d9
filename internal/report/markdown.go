package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/unlimitedworld/uwstats/internal/model"
)

// MarkdownRenderer outputs the summary as a GitHub-flavored Markdown
// table, suitable for pasting into issues or documentation.
type MarkdownRenderer struct {
	baseRenderer
}

// NewMarkdownRenderer creates a MarkdownRenderer writing to output.
func NewMarkdownRenderer(output io.Writer) *MarkdownRenderer {
	return &MarkdownRenderer{baseRenderer: newBaseRenderer(output)}
}

// Render outputs the summary in Markdown format.
func (r *MarkdownRenderer) Render(summary *model.ThreadSummary) (int, error) {
	md := markdown.NewMarkdown(r.output)

	md.H1("Thread Compliance Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(summary.Authors)+1)
	for _, row := range summary.Authors {
		rows = append(rows, []string{
			row.Author,
			strconv.Itoa(row.Messages),
			strconv.Itoa(row.Violations),
			formatPercent(row.ViolationRate),
		})
	}
	rows = append(rows, []string{
		"**" + summary.Total.Author + "**",
		strconv.Itoa(summary.Total.Messages),
		strconv.Itoa(summary.Total.Violations),
		formatPercent(summary.Total.ViolationRate),
	})

	md.Table(markdown.TableSet{
		Header: []string{"Author", "Messages", "Violations", "Violation Rate"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}
