package main

import (
	"errors"
	"testing"
	"time"

	"github.com/unlimitedworld/uwstats/internal/config"
)

// TestBuildMineConfig verifies flag-to-config translation for mine.
func TestBuildMineConfig(t *testing.T) {
	t.Parallel()

	t.Run("all flags are applied", func(t *testing.T) {
		t.Parallel()
		cmd := NewMineCmd()
		if err := cmd.ParseFlags([]string{
			"--url", "https://uwmc.de/threads/example.123",
			"--path", "snapshots",
			"--threaded",
			"--concurrency", "4",
			"--only-new-pages",
			"--timeout", "10s",
		}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildMineConfig(cmd)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if cfg.ThreadURL != "https://uwmc.de/threads/example.123/" {
			t.Errorf("expected normalized URL, got %q", cfg.ThreadURL)
		}
		if cfg.SnapshotDir != "snapshots" {
			t.Errorf("unexpected snapshot dir %q", cfg.SnapshotDir)
		}
		if !cfg.Parallel || cfg.Concurrency != 4 {
			t.Errorf("unexpected parallel settings %v %d", cfg.Parallel, cfg.Concurrency)
		}
		if !cfg.OnlyNewPages {
			t.Error("expected OnlyNewPages")
		}
		if cfg.Timeout != 10*time.Second {
			t.Errorf("unexpected timeout %v", cfg.Timeout)
		}
	})

	t.Run("invalid thread URL is rejected", func(t *testing.T) {
		t.Parallel()
		cmd := NewMineCmd()
		if err := cmd.ParseFlags([]string{"--url", "not a url"}); err != nil {
			t.Fatal(err)
		}

		if _, err := buildMineConfig(cmd); !errors.Is(err, config.ErrInvalidThreadURL) {
			t.Errorf("expected ErrInvalidThreadURL, got %v", err)
		}
	})

	t.Run("defaults survive when flags are absent", func(t *testing.T) {
		t.Parallel()
		cmd := NewMineCmd()
		if err := cmd.ParseFlags([]string{"--url", "https://uwmc.de/threads/example.123/"}); err != nil {
			t.Fatal(err)
		}

		cfg, err := buildMineConfig(cmd)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if cfg.SnapshotDir != config.DefaultSnapshotDir {
			t.Errorf("expected default snapshot dir, got %q", cfg.SnapshotDir)
		}
		if cfg.Concurrency != config.DefaultConcurrency {
			t.Errorf("expected default concurrency, got %d", cfg.Concurrency)
		}
		if cfg.Parallel || cfg.OnlyNewPages {
			t.Error("expected sequential full fetch by default")
		}
	})
}
