package model

import "time"

// MessageRecord is one structured row per forum post. The extractor owns
// the record while deriving fields; once emitted it is immutable and owned
// by the consumer.
//
// Design decision: We keep both the raw markup snapshot and the cleaned
// text because:
//  1. Raw markup allows re-deriving fields after rule changes without
//     re-fetching the thread
//  2. Cleaned content is what the compliance checks and word counts see
//  3. Debugging extraction heuristics needs the original subtree
type MessageRecord struct {
	// Raw is the unmodified outer markup of the message block, captured
	// before any cleanup pass runs.
	Raw string `json:"raw"`

	// Author is the posting user's identifier. Mandatory; a block without
	// it is a schema violation.
	Author string `json:"author"`

	// CreatedAt is the post's creation timestamp. Zero if the markup
	// carried no parseable datetime attribute.
	CreatedAt time.Time `json:"created_at"`

	// Content is the visible text of the message after cleanup, with
	// redundant whitespace collapsed.
	Content string `json:"content"`

	// Likes is the reaction count derived from the reactions widget.
	Likes int `json:"likes"`

	// Quotes is the number of quote blocks in the message.
	// Always equals len(Quoted).
	Quotes int `json:"quotes"`

	// Quoted lists the quoted authors in document order.
	Quoted []string `json:"quoted,omitempty"`

	// Spoilers is the number of spoiler containers in the message.
	Spoilers int `json:"spoilers"`

	// Mentions is the number of @-mentions. Always equals len(Mentioned).
	Mentions int `json:"mentions"`

	// Mentioned lists mentioned usernames without the leading @ sigil.
	Mentioned []string `json:"mentioned,omitempty"`

	// Words is the number of tokens in Content, split on whitespace and
	// punctuation.
	Words int `json:"words"`

	// Emojis is the total emoji occurrence count.
	// Always equals the sum of EmojiFrequency values.
	Emojis int `json:"emojis"`

	// EmojiFrequency maps an emoji identifier (the image element's textual
	// alternate) to its occurrence count within the message.
	EmojiFrequency map[string]int `json:"emoji_frequency,omitempty"`

	// Edited reports whether the post carries a last-edited marker.
	Edited bool `json:"edited"`

	// IsRulesCompliant is the outcome of the compliance classification.
	IsRulesCompliant bool `json:"is_rules_compliant"`

	// Violations names the failed compliance checks, in classifier order.
	Violations []string `json:"violations,omitempty"`

	// PageNum is the page the message was extracted from. It always
	// matches the page file the record originated in.
	PageNum int `json:"page_num"`
}
