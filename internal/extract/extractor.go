package extract

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/unlimitedworld/uwstats/internal/config"
	"github.com/unlimitedworld/uwstats/internal/model"
	"github.com/unlimitedworld/uwstats/internal/rules"
)

// ErrMissingAuthor is returned when a message block lacks the mandatory
// author attribute. Downstream aggregation cannot substitute a default
// author, so this is surfaced rather than swallowed.
var ErrMissingAuthor = errors.New("message block missing author attribute")

// timeLayouts are the datetime attribute formats seen in the forum
// markup. XenForo emits an ISO 8601 variant without the zone colon.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
}

// overflowPattern finds the numeric overflow counter in the reactions
// widget's trailing text once the user elements are stripped.
var overflowPattern = regexp.MustCompile(`\d+`)

// Extractor derives MessageRecords from raw page markup. It is pure and
// synchronous: the only inputs are the page bytes and the rule tables,
// so page extractions are trivially parallelizable.
type Extractor struct {
	// rules holds the selector and tag tables.
	rules *config.Rules

	// classifier judges rules compliance per message.
	classifier *rules.Classifier

	// logger receives per-message debug output.
	logger *slog.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithLogger sets the extractor's logger.
func WithLogger(logger *slog.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// NewExtractor creates an Extractor for the given rule tables. Nil rules
// fall back to the built-in defaults.
func NewExtractor(r *config.Rules, opts ...ExtractorOption) *Extractor {
	if r == nil {
		r = config.DefaultRules()
	}

	e := &Extractor{
		rules:      r,
		classifier: rules.NewClassifier(r.MinWordCount, r.EndingAllowList),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// ExtractPage parses one page's markup and returns its message records
// in document order. A page without recognizable message blocks yields
// zero records: pages can legitimately be administrative or empty. A
// message block missing the author attribute fails the whole page's
// extraction.
//
// The persisted page bytes are never mutated; cleanup operates on an
// in-memory clone of each message body.
func (e *Extractor) ExtractPage(pageNum int, content []byte) ([]model.MessageRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse page %d: %w", pageNum, err)
	}

	blocks := doc.Find(e.rules.MessageSelector)
	records := make([]model.MessageRecord, 0, blocks.Length())

	var extractErr error
	blocks.EachWithBreak(func(i int, block *goquery.Selection) bool {
		record, err := e.extractMessage(pageNum, block)
		if err != nil {
			extractErr = fmt.Errorf("page %d, message %d: %w", pageNum, i+1, err)
			return false
		}
		records = append(records, record)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	e.logger.Debug("extracted page", "page", pageNum, "messages", len(records))
	return records, nil
}

// extractMessage derives one record from a message block. Snapshot
// fields come first, then cleanup, then the text metrics.
func (e *Extractor) extractMessage(pageNum int, block *goquery.Selection) (model.MessageRecord, error) {
	author, ok := block.Attr(e.rules.AuthorAttr)
	if !ok || author == "" {
		return model.MessageRecord{}, ErrMissingAuthor
	}

	raw, err := goquery.OuterHtml(block)
	if err != nil {
		return model.MessageRecord{}, fmt.Errorf("snapshot message markup: %w", err)
	}

	record := model.MessageRecord{
		Raw:       raw,
		Author:    author,
		CreatedAt: e.creationTime(block),
		Edited:    block.Find(e.rules.LastEditSelector).Length() > 0,
		PageNum:   pageNum,
	}

	record.Likes = e.likeCount(block)
	record.Quoted = e.quotedAuthors(block)
	record.Quotes = len(record.Quoted)
	record.Spoilers = block.Find(e.rules.SpoilerSelector).Length()
	record.Mentioned = e.mentionedUsers(block)
	record.Mentions = len(record.Mentioned)
	record.EmojiFrequency = e.emojiFrequency(block)
	for _, n := range record.EmojiFrequency {
		record.Emojis += n
	}

	body := block.Find(e.rules.BodySelector).First().Clone()
	e.cleanup(body)

	record.Content = collapseWhitespace(body.Text())
	record.Words = countWords(record.Content)

	compliance := e.classifier.Classify(record.Content, record.Words)
	record.IsRulesCompliant = compliance.IsCompliant
	record.Violations = compliance.ReasonStrings()

	return record, nil
}

// creationTime parses the post's datetime attribute. An unparseable or
// absent timestamp yields the zero time; the field is informational.
func (e *Extractor) creationTime(block *goquery.Selection) time.Time {
	value := block.Find(e.rules.TimeSelector).First().AttrOr(e.rules.TimeAttr, "")
	if value == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// likeCount derives the reaction count from the reactions widget.
//
// The widget compresses large counts into "first N users + remaining
// total": below the threshold the inline user elements are the exact
// count; at or above it, a numeric overflow counter hides in the text
// that remains once the user elements are stripped, and the real count
// is overflow plus threshold. The remaining total is only rendered when
// it would be nonzero, so an unparseable overflow falls back to the
// element count.
func (e *Extractor) likeCount(block *goquery.Selection) int {
	widget := block.Find(e.rules.ReactionsSelector).First()
	if widget.Length() == 0 {
		return 0
	}

	count := widget.Find(e.rules.ReactionUserSelector).Length()
	if count < e.rules.LikeOverflowThreshold {
		return count
	}

	stripped := widget.Clone()
	stripped.Find(e.rules.ReactionUserSelector).Remove()
	match := overflowPattern.FindString(stripped.Text())
	if match == "" {
		return count
	}

	overflow, err := strconv.Atoi(match)
	if err != nil {
		return count
	}
	return overflow + e.rules.LikeOverflowThreshold
}

// quotedAuthors collects each quote block's quoted-author attribute, in
// document order.
func (e *Extractor) quotedAuthors(block *goquery.Selection) []string {
	var quoted []string
	block.Find(e.rules.QuoteSelector).Each(func(_ int, q *goquery.Selection) {
		quoted = append(quoted, q.AttrOr(e.rules.QuoteAuthorAttr, ""))
	})
	return quoted
}

// mentionedUsers collects username links whose displayed text begins
// with the mention sigil, stripped of the sigil.
func (e *Extractor) mentionedUsers(block *goquery.Selection) []string {
	var mentioned []string
	block.Find(e.rules.MentionSelector).Each(func(_ int, link *goquery.Selection) {
		text := strings.TrimSpace(link.Text())
		if strings.HasPrefix(text, e.rules.MentionSigil) {
			mentioned = append(mentioned, strings.TrimPrefix(text, e.rules.MentionSigil))
		}
	})
	return mentioned
}

// emojiFrequency counts emoji occurrences keyed by the image element's
// textual alternate. This runs before cleanup because cleanup converts
// emoji elements into inline text and discards the attribute.
func (e *Extractor) emojiFrequency(block *goquery.Selection) map[string]int {
	freq := make(map[string]int)
	block.Find(e.rules.EmojiSelector).Each(func(_ int, img *goquery.Selection) {
		if id := img.AttrOr(e.rules.EmojiAttr, ""); id != "" {
			freq[id]++
		}
	})
	if len(freq) == 0 {
		return nil
	}
	return freq
}
