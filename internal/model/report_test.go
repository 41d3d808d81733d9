package model

import (
	"errors"
	"testing"
)

// TestParseRange covers the "n1,n2" range format.
func TestParseRange(t *testing.T) {
	t.Parallel()

	t.Run("valid range parses", func(t *testing.T) {
		t.Parallel()
		r, err := ParseRange("3,10")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if r.Start != 3 || r.End != 10 {
			t.Errorf("expected [3,10), got [%d,%d)", r.Start, r.End)
		}
	})

	t.Run("surrounding spaces are tolerated", func(t *testing.T) {
		t.Parallel()
		r, err := ParseRange(" 1 , 5 ")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if r.Start != 1 || r.End != 5 {
			t.Errorf("expected [1,5), got [%d,%d)", r.Start, r.End)
		}
	})

	t.Run("malformed strings return ErrInvalidRange", func(t *testing.T) {
		t.Parallel()
		for _, s := range []string{"", "5", "1,2,3", "a,b", "1;5", "5,1"} {
			if _, err := ParseRange(s); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("%q: expected ErrInvalidRange, got %v", s, err)
			}
		}
	})
}

// TestRangeContains verifies the half-open interval semantics.
func TestRangeContains(t *testing.T) {
	t.Parallel()

	r := Range{Start: 2, End: 5}

	tests := []struct {
		n    int
		want bool
	}{
		{1, false},
		{2, true},
		{4, true},
		{5, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.n); got != tt.want {
			t.Errorf("Contains(%d): expected %v, got %v", tt.n, tt.want, got)
		}
	}
}

// TestSelectionValidate verifies the mutual-exclusion rule.
func TestSelectionValidate(t *testing.T) {
	t.Parallel()

	t.Run("empty selection is valid", func(t *testing.T) {
		t.Parallel()
		if err := (Selection{}).Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("single range is valid", func(t *testing.T) {
		t.Parallel()
		sel := Selection{Pages: Range{Start: 1, End: 2}}
		if err := sel.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("both ranges is an error", func(t *testing.T) {
		t.Parallel()
		sel := Selection{
			Pages: Range{Start: 1, End: 2},
			Posts: Range{Start: 1, End: 2},
		}
		if err := sel.Validate(); !errors.Is(err, ErrConflictingRanges) {
			t.Errorf("expected ErrConflictingRanges, got %v", err)
		}
	})
}

// TestNewThreadReport verifies report initialization.
func TestNewThreadReport(t *testing.T) {
	t.Parallel()

	r := NewThreadReport("https://uwmc.de/threads/example.123/", ".html_content")
	if r.ThreadURL != "https://uwmc.de/threads/example.123/" {
		t.Errorf("unexpected thread URL %q", r.ThreadURL)
	}
	if r.Dir != ".html_content" {
		t.Errorf("unexpected dir %q", r.Dir)
	}
	if len(r.Records) != 0 || r.Summary != nil {
		t.Error("expected empty report")
	}
}
