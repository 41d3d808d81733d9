package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestLoadRulesFile verifies the overlay-over-defaults loading scheme.
func TestLoadRulesFile(t *testing.T) {
	t.Parallel()

	t.Run("overrides merge over defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".uwstats")
		content := `messageSelector: "div.post"
minWordCount: 3
endingAllowList:
  - "!"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}

		rules, err := LoadRulesFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if rules.MessageSelector != "div.post" {
			t.Errorf("expected overridden selector, got %q", rules.MessageSelector)
		}
		if rules.MinWordCount != 3 {
			t.Errorf("expected overridden min word count, got %d", rules.MinWordCount)
		}
		if len(rules.EndingAllowList) != 1 || rules.EndingAllowList[0] != "!" {
			t.Errorf("expected overridden allow list, got %v", rules.EndingAllowList)
		}
		// Untouched fields keep their defaults.
		if rules.AuthorAttr != "data-author" {
			t.Errorf("expected default author attribute, got %q", rules.AuthorAttr)
		}
		if rules.LikeOverflowThreshold != 3 {
			t.Errorf("expected default overflow threshold, got %d", rules.LikeOverflowThreshold)
		}
	})

	t.Run("empty file yields pure defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".uwstats")
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatal(err)
		}

		rules, err := LoadRulesFile(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := DefaultRules()
		if rules.MessageSelector != want.MessageSelector || rules.MinWordCount != want.MinWordCount {
			t.Errorf("expected defaults, got %+v", rules)
		}
	})

	t.Run("missing file returns ErrRulesNotFound", func(t *testing.T) {
		t.Parallel()
		if _, err := LoadRulesFile(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrRulesNotFound) {
			t.Errorf("expected ErrRulesNotFound, got %v", err)
		}
	})

	t.Run("malformed YAML is an error", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), ".uwstats")
		if err := os.WriteFile(path, []byte(":\tnot yaml"), 0600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRulesFile(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

// TestFindRulesFile verifies the explicit-path branch of the search.
// The cwd/home fallbacks depend on ambient state and stay untested here.
func TestFindRulesFile(t *testing.T) {
	t.Parallel()

	t.Run("existing explicit path is returned", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, []byte(""), 0600); err != nil {
			t.Fatal(err)
		}
		if got := FindRulesFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("missing explicit path returns empty", func(t *testing.T) {
		t.Parallel()
		if got := FindRulesFile(filepath.Join(t.TempDir(), "missing")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}
