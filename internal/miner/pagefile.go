package miner

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
)

// PageFile is one persisted page snapshot inside the destination
// directory. Immutable once written; read-only input to extraction.
type PageFile struct {
	// Num is the page number encoded in the filename.
	Num int

	// Name is the bare filename inside the snapshot directory.
	Name string
}

// pageFilePattern matches snapshot filenames and captures the page digits.
var pageFilePattern = regexp.MustCompile(`^page_(\d+)\.html$`)

// PageFileName returns the snapshot filename for a page. Numbers are
// zero-padded to at least four digits so lexicographic and numeric
// filename order agree; downstream processing iterates the directory and
// relies on that order matching page order.
func PageFileName(page int) string {
	return fmt.Sprintf("page_%04d.html", page)
}

// ParsePageFileName extracts the page number from a snapshot filename.
// The second return value is false for files that are not snapshots.
func ParsePageFileName(name string) (int, bool) {
	m := pageFilePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	page, err := strconv.Atoi(m[1])
	if err != nil || page < 1 {
		return 0, false
	}
	return page, true
}

// ListPageFiles returns the snapshot files in dir in ascending page
// order. Non-snapshot files and subdirectories are ignored.
func ListPageFiles(dir string) ([]PageFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot directory %s: %w", dir, err)
	}

	files := make([]PageFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if page, ok := ParsePageFileName(entry.Name()); ok {
			files = append(files, PageFile{Num: page, Name: entry.Name()})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Num < files[j].Num })
	return files, nil
}

// HighestPage returns the largest page number present in dir, or zero
// when the directory holds no snapshot files.
func HighestPage(dir string) (int, error) {
	files, err := ListPageFiles(dir)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}
	return files[len(files)-1].Num, nil
}
