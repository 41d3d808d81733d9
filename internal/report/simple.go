package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/unlimitedworld/uwstats/internal/model"
)

// SimpleRenderer outputs a human-readable text table.
//
// Design decision: Plain ASCII formatting rather than ANSI colors
// because it works in every terminal and pipes cleanly into files and
// other tools.
type SimpleRenderer struct {
	baseRenderer
}

// NewSimpleRenderer creates a SimpleRenderer writing to output.
func NewSimpleRenderer(output io.Writer) *SimpleRenderer {
	return &SimpleRenderer{baseRenderer: newBaseRenderer(output)}
}

// Render outputs the summary as an aligned text table with the total
// row separated from the per-author rows.
func (r *SimpleRenderer) Render(summary *model.ThreadSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString("THREAD COMPLIANCE SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%-30s %10s %12s %12s\n", "Author", "Messages", "Violations", "Rate")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")

	for _, row := range summary.Authors {
		fmt.Fprintf(&sb, "%-30s %10d %12d %12s\n",
			row.Author, row.Messages, row.Violations, formatPercent(row.ViolationRate))
	}

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%-30s %10d %12d %12s\n",
		summary.Total.Author, summary.Total.Messages, summary.Total.Violations,
		formatPercent(summary.Total.ViolationRate))

	return io.WriteString(r.output, sb.String())
}
