package rules

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/unlimitedworld/uwstats/internal/model"
)

// Classifier labels messages compliant or non-compliant with the forum
// posting rules. It is a pure function over (content, word count); it
// holds only the tunable tables.
//
// Design decision: The three checks are independent and all reported,
// not short-circuited, because the reports show per-author violation
// counts and a message failing two rules should still count once but
// name both reasons.
type Classifier struct {
	// minWords is the minimum word count; shorter messages violate the
	// word_count rule.
	minWords int

	// endingAllowList are sentence-final tokens accepted in place of
	// terminal punctuation, such as emoticons or a bare hyphen.
	endingAllowList []string
}

// NewClassifier creates a Classifier. A non-positive minWords falls back
// to 5, the forum's posted minimum.
func NewClassifier(minWords int, endingAllowList []string) *Classifier {
	if minWords <= 0 {
		minWords = 5
	}
	return &Classifier{
		minWords:        minWords,
		endingAllowList: endingAllowList,
	}
}

// Classify runs all checks and returns the named violations in fixed
// order: word_count, first_letter, punctuation. A message is compliant
// iff no check failed.
func (c *Classifier) Classify(content string, wordCount int) model.ComplianceResult {
	reasons := make([]model.Violation, 0, 3)

	if wordCount < c.minWords {
		reasons = append(reasons, model.ViolationWordCount)
	}
	if !c.startsUpper(content) {
		reasons = append(reasons, model.ViolationFirstLetter)
	}
	if !c.endsSentence(content) {
		reasons = append(reasons, model.ViolationPunctuation)
	}

	if len(reasons) == 0 {
		return model.ComplianceResult{IsCompliant: true}
	}
	return model.ComplianceResult{Reasons: reasons}
}

// startsUpper checks the capitalization rule: the first character may be
// anything except a lowercase letter. Empty content fails outright.
func (c *Classifier) startsUpper(content string) bool {
	if content == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(content)
	if !unicode.IsLetter(first) {
		return true
	}
	return unicode.IsUpper(first)
}

// endsSentence checks the terminal punctuation rule: the last character
// must be punctuation, or the content must end with an allow-listed
// token. Empty content fails outright.
func (c *Classifier) endsSentence(content string) bool {
	if content == "" {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(content)
	if unicode.IsPunct(last) {
		return true
	}
	for _, token := range c.endingAllowList {
		if token != "" && strings.HasSuffix(content, token) {
			return true
		}
	}
	return false
}
