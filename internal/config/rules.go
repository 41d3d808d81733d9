package config

// Rules holds the extraction rule tables: CSS selectors, attribute names,
// noisy-tag lists, and the compliance allow-list. Keeping these as data
// rather than hard-coded branches lets the extraction engine run against
// synthetic fixtures and survive forum theme changes without code edits.
//
// Design decision: One flat struct for all rule tables because the rules
// file is hand-edited; a shallow structure keeps the YAML readable and the
// zero-value-means-default merge simple.
type Rules struct {
	// MessageSelector matches one container per forum post.
	MessageSelector string `yaml:"messageSelector,omitempty"`

	// BodySelector matches the post's content subtree inside a message
	// block. Cleanup operates on a copy of this subtree.
	BodySelector string `yaml:"bodySelector,omitempty"`

	// AuthorAttr is the mandatory author attribute on the message block.
	AuthorAttr string `yaml:"authorAttr,omitempty"`

	// TimeSelector matches the creation-time element; TimeAttr is the
	// machine-readable datetime attribute on it.
	TimeSelector string `yaml:"timeSelector,omitempty"`
	TimeAttr     string `yaml:"timeAttr,omitempty"`

	// LastEditSelector matches the "last edited" marker element.
	LastEditSelector string `yaml:"lastEditSelector,omitempty"`

	// ReactionsSelector matches the reactions ("likes") widget.
	// ReactionUserSelector matches the inline user-identifier elements
	// inside it.
	ReactionsSelector    string `yaml:"reactionsSelector,omitempty"`
	ReactionUserSelector string `yaml:"reactionUserSelector,omitempty"`

	// LikeOverflowThreshold is the user-element count at which the widget
	// compresses the remainder into a trailing overflow number.
	LikeOverflowThreshold int `yaml:"likeOverflowThreshold,omitempty"`

	// QuoteSelector matches quote blocks; QuoteAuthorAttr carries the
	// quoted author's name.
	QuoteSelector   string `yaml:"quoteSelector,omitempty"`
	QuoteAuthorAttr string `yaml:"quoteAuthorAttr,omitempty"`

	// SpoilerSelector matches spoiler containers.
	SpoilerSelector string `yaml:"spoilerSelector,omitempty"`

	// MentionSelector matches username-linking elements; only those whose
	// displayed text begins with MentionSigil count as mentions.
	MentionSelector string `yaml:"mentionSelector,omitempty"`
	MentionSigil    string `yaml:"mentionSigil,omitempty"`

	// EmojiSelector matches inline emoji-image elements; EmojiAttr is the
	// textual alternate attribute they are keyed by.
	EmojiSelector string `yaml:"emojiSelector,omitempty"`
	EmojiAttr     string `yaml:"emojiAttr,omitempty"`

	// MediaCaptions are the exact, locale-specific caption labels attached
	// to embedded media that must be stripped before text analysis.
	MediaCaptions []string `yaml:"mediaCaptions,omitempty"`

	// NoisySelectors are structural/administrative elements removed during
	// cleanup, in order, after emoji replacement and caption removal.
	NoisySelectors []string `yaml:"noisySelectors,omitempty"`

	// MinWordCount is the compliance minimum message length.
	MinWordCount int `yaml:"minWordCount,omitempty"`

	// EndingAllowList are sentence-final tokens (emoticons and similar)
	// accepted in place of terminal punctuation.
	EndingAllowList []string `yaml:"endingAllowList,omitempty"`
}

// DefaultRules returns the rule tables matching the uwmc.de XenForo
// markup the tool was originally tuned against.
func DefaultRules() *Rules {
	return &Rules{
		MessageSelector:       "article.message",
		BodySelector:          "article.message-body",
		AuthorAttr:            "data-author",
		TimeSelector:          "time.u-dt",
		TimeAttr:              "datetime",
		LastEditSelector:      "div.message-lastEdit",
		ReactionsSelector:     "a.reactionsBar-link",
		ReactionUserSelector:  "bdi",
		LikeOverflowThreshold: 3,
		QuoteSelector:         "blockquote.bbCodeBlock--quote",
		QuoteAuthorAttr:       "data-quote",
		SpoilerSelector:       "div.bbCodeSpoiler",
		MentionSelector:       "a.username",
		MentionSigil:          "@",
		EmojiSelector:         "img.smilie",
		EmojiAttr:             "alt",
		MediaCaptions: []string{
			"Auf YouTube ansehen",
		},
		NoisySelectors: []string{
			"script",
			"table",
			"blockquote",
			"div.message-lastEdit",
		},
		MinWordCount: 5,
		EndingAllowList: []string{
			"-",
			":)",
			":(",
			":D",
			":P",
			";)",
			"xD",
			"XD",
			"o7",
			"^^",
		},
	}
}

// merge overlays non-zero fields of other onto r.
func (r *Rules) merge(other *Rules) {
	if other == nil {
		return
	}
	if other.MessageSelector != "" {
		r.MessageSelector = other.MessageSelector
	}
	if other.BodySelector != "" {
		r.BodySelector = other.BodySelector
	}
	if other.AuthorAttr != "" {
		r.AuthorAttr = other.AuthorAttr
	}
	if other.TimeSelector != "" {
		r.TimeSelector = other.TimeSelector
	}
	if other.TimeAttr != "" {
		r.TimeAttr = other.TimeAttr
	}
	if other.LastEditSelector != "" {
		r.LastEditSelector = other.LastEditSelector
	}
	if other.ReactionsSelector != "" {
		r.ReactionsSelector = other.ReactionsSelector
	}
	if other.ReactionUserSelector != "" {
		r.ReactionUserSelector = other.ReactionUserSelector
	}
	if other.LikeOverflowThreshold != 0 {
		r.LikeOverflowThreshold = other.LikeOverflowThreshold
	}
	if other.QuoteSelector != "" {
		r.QuoteSelector = other.QuoteSelector
	}
	if other.QuoteAuthorAttr != "" {
		r.QuoteAuthorAttr = other.QuoteAuthorAttr
	}
	if other.SpoilerSelector != "" {
		r.SpoilerSelector = other.SpoilerSelector
	}
	if other.MentionSelector != "" {
		r.MentionSelector = other.MentionSelector
	}
	if other.MentionSigil != "" {
		r.MentionSigil = other.MentionSigil
	}
	if other.EmojiSelector != "" {
		r.EmojiSelector = other.EmojiSelector
	}
	if other.EmojiAttr != "" {
		r.EmojiAttr = other.EmojiAttr
	}
	if len(other.MediaCaptions) > 0 {
		r.MediaCaptions = other.MediaCaptions
	}
	if len(other.NoisySelectors) > 0 {
		r.NoisySelectors = other.NoisySelectors
	}
	if other.MinWordCount != 0 {
		r.MinWordCount = other.MinWordCount
	}
	if len(other.EndingAllowList) > 0 {
		r.EndingAllowList = other.EndingAllowList
	}
}
