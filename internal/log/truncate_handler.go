package log

import (
	"context"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxAttrLen is the attribute length limit used by NewLogger.
// Long enough for any URL or selector, short enough that a logged page
// snapshot stays a one-liner.
const DefaultMaxAttrLen = 256

// Ellipsis marks truncated attribute values.
const Ellipsis = "…(truncated)"

// TruncateHandler wraps an slog.Handler and shortens string attributes
// that exceed a length limit before passing records on. Extraction and
// mining code logs raw markup and message content for debugging; without
// a limit a single Debug line can emit an entire page.
//
// Design decision: We use a handler wrapper rather than trimming at each
// call site because:
//  1. It integrates with standard slog APIs and any underlying handler
//  2. Call sites stay readable ("raw", record.Raw) without ceremony
//  3. The limit is enforced uniformly, including attrs added via With
type TruncateHandler struct {
	// handler is the underlying slog handler that receives trimmed records.
	handler slog.Handler

	// maxLen is the maximum string attribute length in bytes.
	maxLen int
}

// NewTruncateHandler creates a TruncateHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. A non-positive
// maxLen falls back to DefaultMaxAttrLen.
func NewTruncateHandler(handler slog.Handler, maxLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxAttrLen
	}
	return &TruncateHandler{handler: handler, maxLen: maxLen}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle trims the record's attributes and passes it to the underlying
// handler.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	trimmed := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		trimmed.AddAttrs(h.trimAttr(a))
		return true
	})

	return h.handler.Handle(ctx, trimmed)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are trimmed before being added.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	trimmedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		trimmedAttrs[i] = h.trimAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(trimmedAttrs), maxLen: h.maxLen}
}

// WithGroup returns a new handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// trimAttr shortens a single attribute, recursively handling groups.
func (h *TruncateHandler) trimAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		trimmedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			trimmedAttrs[i] = h.trimAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(trimmedAttrs...)}
	}

	if a.Value.Kind() == slog.KindString {
		if s := a.Value.String(); len(s) > h.maxLen {
			return slog.String(a.Key, truncate(s, h.maxLen)+Ellipsis)
		}
	}

	return a
}

// truncate cuts s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// NewLogger creates a *slog.Logger writing to w with attribute
// truncation applied.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewTruncateHandler(textHandler, DefaultMaxAttrLen))
}
