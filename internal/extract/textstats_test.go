package extract

import "testing"

// TestCollapseWhitespace verifies whitespace normalization.
func TestCollapseWhitespace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "runs collapse to single spaces", in: "a  b\t\tc\n\nd", want: "a b c d"},
		{name: "leading and trailing whitespace stripped", in: "  hello world  ", want: "hello world"},
		{name: "empty stays empty", in: "", want: ""},
		{name: "only whitespace becomes empty", in: " \n\t ", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := collapseWhitespace(tt.in); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestCountWords verifies word counting with punctuation boundaries.
func TestCountWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "plain sentence", in: "Hello fellow players of the server.", want: 6},
		{name: "punctuation splits words", in: "well-known plan", want: 3},
		{name: "empty is zero", in: "", want: 0},
		{name: "only punctuation is zero", in: "...!?", want: 0},
		{name: "german umlauts count as letters", in: "Schöne Grüße an alle", want: 4},
		{name: "decomposed accents normalize before counting", in: "Café offen", want: 2},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := countWords(tt.in); got != tt.want {
				t.Errorf("expected %d words, got %d", tt.want, got)
			}
		})
	}
}
