package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// collapseWhitespace reduces any whitespace run in the visible text to a
// single space and strips leading/trailing whitespace.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// countWords splits cleaned text on whitespace and punctuation and
// counts the non-empty tokens. Punctuation is a hard word boundary, not
// just whitespace; this is why cleanup appends a period to emoji. Text
// is NFC-normalized first so decomposed and precomposed forms of the
// same word count identically.
func countWords(s string) int {
	normalized := norm.NFC.String(s)
	fields := strings.FieldsFunc(normalized, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return len(fields)
}
