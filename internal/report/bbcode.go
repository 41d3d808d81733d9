package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/unlimitedworld/uwstats/internal/model"
)

// BBCodeRenderer outputs the summary in the forum's own [TABLE] syntax,
// with German column labels, so the table can be posted straight back
// into the uwmc.de thread it was mined from.
type BBCodeRenderer struct {
	baseRenderer
}

// NewBBCodeRenderer creates a BBCodeRenderer writing to output.
func NewBBCodeRenderer(output io.Writer) *BBCodeRenderer {
	return &BBCodeRenderer{baseRenderer: newBaseRenderer(output)}
}

// Render outputs the summary as a BBCode table.
func (r *BBCodeRenderer) Render(summary *model.ThreadSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString("[TABLE=full]")
	writeBBCodeRow(&sb,
		"Spieler",
		"Anzahl Beiträge",
		"Anzahl nicht regelkonformer Beiträge",
		"Prozentanzahl nicht regelkonformer Beiträge",
	)

	for _, row := range summary.Authors {
		writeBBCodeRow(&sb,
			row.Author,
			fmt.Sprintf("%d", row.Messages),
			fmt.Sprintf("%d", row.Violations),
			formatPercent(row.ViolationRate),
		)
	}
	writeBBCodeRow(&sb,
		summary.Total.Author,
		fmt.Sprintf("%d", summary.Total.Messages),
		fmt.Sprintf("%d", summary.Total.Violations),
		formatPercent(summary.Total.ViolationRate),
	)

	sb.WriteString("[/TABLE]\n")
	return io.WriteString(r.output, sb.String())
}

// writeBBCodeRow appends one [TR] with a [TD] per cell.
func writeBBCodeRow(sb *strings.Builder, cells ...string) {
	sb.WriteString("[TR]")
	for _, cell := range cells {
		sb.WriteString("[TD]")
		sb.WriteString(cell)
		sb.WriteString("[/TD]")
	}
	sb.WriteString("[/TR]")
}
