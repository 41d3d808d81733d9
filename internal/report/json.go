package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/unlimitedworld/uwstats/internal/model"
)

// JSONRenderer outputs the full summary as indented JSON for
// machine-readable pipelines.
type JSONRenderer struct {
	baseRenderer
}

// NewJSONRenderer creates a JSONRenderer writing to output.
func NewJSONRenderer(output io.Writer) *JSONRenderer {
	return &JSONRenderer{baseRenderer: newBaseRenderer(output)}
}

// Render outputs the summary as JSON followed by a trailing newline.
func (r *JSONRenderer) Render(summary *model.ThreadSummary) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(summary); err != nil {
		return 0, err
	}
	return r.output.Write(buf.Bytes())
}
