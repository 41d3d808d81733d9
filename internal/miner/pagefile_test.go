package miner

import (
	"os"
	"path/filepath"
	"testing"
)

// TestPageFileName verifies the zero-padded snapshot naming scheme.
func TestPageFileName(t *testing.T) {
	t.Parallel()

	t.Run("small numbers are padded to four digits", func(t *testing.T) {
		t.Parallel()
		if got := PageFileName(3); got != "page_0003.html" {
			t.Errorf("expected page_0003.html, got %s", got)
		}
	})

	t.Run("large numbers keep all digits", func(t *testing.T) {
		t.Parallel()
		if got := PageFileName(12345); got != "page_12345.html" {
			t.Errorf("expected page_12345.html, got %s", got)
		}
	})
}

// TestParsePageFileName verifies snapshot filename recognition.
func TestParsePageFileName(t *testing.T) {
	t.Parallel()

	t.Run("padded filename parses", func(t *testing.T) {
		t.Parallel()
		page, ok := ParsePageFileName("page_0042.html")
		if !ok {
			t.Fatal("expected filename to parse")
		}
		if page != 42 {
			t.Errorf("expected page 42, got %d", page)
		}
	})

	t.Run("round trip with PageFileName", func(t *testing.T) {
		t.Parallel()
		for _, want := range []int{1, 99, 10000} {
			page, ok := ParsePageFileName(PageFileName(want))
			if !ok || page != want {
				t.Errorf("expected page %d, got %d (ok=%v)", want, page, ok)
			}
		}
	})

	t.Run("unrelated files are rejected", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"page_.html", "page_1.txt", "notes.html", "page_0001.html.bak", "page_0000.html"} {
			if _, ok := ParsePageFileName(name); ok {
				t.Errorf("expected %q to be rejected", name)
			}
		}
	})
}

// TestListPageFiles verifies directory scanning and ordering.
func TestListPageFiles(t *testing.T) {
	t.Parallel()

	t.Run("returns snapshots in ascending page order", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		for _, name := range []string{"page_0010.html", "page_0002.html", "page_0001.html", "README.md"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600); err != nil {
				t.Fatal(err)
			}
		}

		files, err := ListPageFiles(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(files) != 3 {
			t.Fatalf("expected 3 snapshot files, got %d", len(files))
		}
		for i, want := range []int{1, 2, 10} {
			if files[i].Num != want {
				t.Errorf("position %d: expected page %d, got %d", i, want, files[i].Num)
			}
		}
	})

	t.Run("missing directory returns error", func(t *testing.T) {
		t.Parallel()
		if _, err := ListPageFiles(filepath.Join(t.TempDir(), "missing")); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

// TestHighestPage verifies resume-point discovery.
func TestHighestPage(t *testing.T) {
	t.Parallel()

	t.Run("empty directory returns zero", func(t *testing.T) {
		t.Parallel()
		highest, err := HighestPage(t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if highest != 0 {
			t.Errorf("expected 0, got %d", highest)
		}
	})

	t.Run("returns the largest page number", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		for _, page := range []int{3, 1, 7} {
			if err := os.WriteFile(filepath.Join(dir, PageFileName(page)), []byte("x"), 0600); err != nil {
				t.Fatal(err)
			}
		}

		highest, err := HighestPage(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if highest != 7 {
			t.Errorf("expected 7, got %d", highest)
		}
	})
}
