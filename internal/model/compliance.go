package model

// Violation identifies a single failed compliance check.
type Violation string

// The closed set of compliance checks. The classifier reports failed
// checks in exactly this order, so reports stay deterministic.
const (
	// ViolationWordCount flags messages below the minimum word count.
	ViolationWordCount Violation = "word_count"

	// ViolationFirstLetter flags messages whose first character is a
	// lowercase letter, or empty messages.
	ViolationFirstLetter Violation = "first_letter"

	// ViolationPunctuation flags messages that do not end in punctuation
	// or an allow-listed emoticon, or empty messages.
	ViolationPunctuation Violation = "punctuation"
)

// String returns the violation's wire name.
func (v Violation) String() string {
	return string(v)
}

// ComplianceResult is the outcome of classifying one message.
// A message is compliant iff Reasons is empty.
type ComplianceResult struct {
	// IsCompliant is true when every check passed.
	IsCompliant bool `json:"is_compliant"`

	// Reasons lists the failed checks in fixed classifier order.
	Reasons []Violation `json:"reasons,omitempty"`
}

// ReasonStrings returns the reasons as plain strings for storage in a
// MessageRecord.
func (c ComplianceResult) ReasonStrings() []string {
	if len(c.Reasons) == 0 {
		return nil
	}
	out := make([]string, len(c.Reasons))
	for i, r := range c.Reasons {
		out[i] = r.String()
	}
	return out
}
