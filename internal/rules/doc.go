// Package rules implements the forum-rules compliance classifier: a pure
// judgment over a message's cleaned text and word count. The checks
// mirror the uwmc.de posting rules (minimum length, capitalization,
// terminal punctuation).
package rules
