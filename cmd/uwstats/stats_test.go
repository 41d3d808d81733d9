package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/unlimitedworld/uwstats/internal/config"
	"github.com/unlimitedworld/uwstats/internal/model"
	"github.com/unlimitedworld/uwstats/internal/report"
)

// TestBuildStatsConfig verifies flag-to-config translation for stats.
func TestBuildStatsConfig(t *testing.T) {
	t.Parallel()

	t.Run("format defaults to simple", func(t *testing.T) {
		t.Parallel()
		cmd := NewStatsCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildStatsConfig(cmd, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Format != string(report.FormatSimple) {
			t.Errorf("expected simple format, got %q", cfg.Format)
		}
	})

	t.Run("positional format argument wins", func(t *testing.T) {
		t.Parallel()
		cmd := NewStatsCmd()
		if err := cmd.ParseFlags(nil); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildStatsConfig(cmd, []string{"bbcode"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Format != "bbcode" {
			t.Errorf("expected bbcode, got %q", cfg.Format)
		}
	})

	t.Run("save-db without url is rejected", func(t *testing.T) {
		t.Parallel()
		cmd := NewStatsCmd()
		if err := cmd.ParseFlags([]string{"--save-db"}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildStatsConfig(cmd, nil); !errors.Is(err, config.ErrNoThreadURL) {
			t.Errorf("expected ErrNoThreadURL, got %v", err)
		}
	})

	t.Run("explicit missing rules file is an error", func(t *testing.T) {
		t.Parallel()
		cmd := NewStatsCmd()
		missing := filepath.Join(t.TempDir(), "missing-rules")
		if err := cmd.ParseFlags([]string{"--rules", missing}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildStatsConfig(cmd, nil); !errors.Is(err, config.ErrRulesNotFound) {
			t.Errorf("expected ErrRulesNotFound, got %v", err)
		}
	})

	t.Run("explicit rules file overrides defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "rules.yaml")
		if err := os.WriteFile(path, []byte("minWordCount: 2\n"), 0600); err != nil {
			t.Fatal(err)
		}

		cmd := NewStatsCmd()
		if err := cmd.ParseFlags([]string{"--rules", path}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildStatsConfig(cmd, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.Rules.MinWordCount != 2 {
			t.Errorf("expected overridden min word count, got %d", cfg.Rules.MinWordCount)
		}
	})
}

// TestBuildSelection verifies range flag parsing.
func TestBuildSelection(t *testing.T) {
	t.Parallel()

	t.Run("page range parses", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.PageRange = "2,5"

		sel, err := buildSelection(cfg)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if sel.Pages.Start != 2 || sel.Pages.End != 5 {
			t.Errorf("unexpected page range %+v", sel.Pages)
		}
	})

	t.Run("both ranges conflict", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.PageRange = "1,2"
		cfg.PostRange = "1,2"

		if _, err := buildSelection(cfg); !errors.Is(err, model.ErrConflictingRanges) {
			t.Errorf("expected ErrConflictingRanges, got %v", err)
		}
	})

	t.Run("malformed range is rejected", func(t *testing.T) {
		t.Parallel()
		cfg := config.NewConfig()
		cfg.PostRange = "five"

		if _, err := buildSelection(cfg); !errors.Is(err, model.ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})
}
