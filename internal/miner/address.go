package miner

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Address errors.
var (
	// ErrNoPageNumber is returned when an address carries no trailing
	// page digits and no terminating separator.
	ErrNoPageNumber = errors.New("address has no page number")
	// ErrPageNumberTooLong is returned when the trailing digit run
	// exceeds the sane bound and is treated as malformed input.
	ErrPageNumberTooLong = errors.New("trailing page digits exceed sane bound")
)

// maxPageDigits bounds the trailing digit scan. Seven digits covers the
// 1,000,000 upper-bound probe; anything longer is malformed input, not a
// page number.
const maxPageDigits = 7

// pageSegmentPrefix is the path segment marker preceding the page digits.
const pageSegmentPrefix = "page-"

// AddressForPage appends the page segment to the normalized thread
// address. Page 1 is also reachable as the bare thread address; both
// forms resolve to the same content on the server.
func AddressForPage(threadURL string, page int) string {
	return fmt.Sprintf("%s%s%d/", threadURL, pageSegmentPrefix, page)
}

// PageFromAddress extracts the page number from a thread address. Both
// suffix forms the forum produces are recognized: a "page-<n>/" segment
// (as built by AddressForPage) and a bare trailing "page-<n>" (as seen
// in redirect targets). An address ending in the path separator without
// a page segment is the thread's base address and is page 1.
func PageFromAddress(address string) (int, error) {
	if address == "" {
		return 0, ErrNoPageNumber
	}

	trimmed, hadSeparator := strings.CutSuffix(address, "/")

	end := len(trimmed)
	start := end
	for start > 0 && trimmed[start-1] >= '0' && trimmed[start-1] <= '9' {
		start--
	}

	// With a separator, only an explicit page segment carries a page
	// number; anything else is the base address, including thread slugs
	// that happen to end in digits.
	if hadSeparator && (start == end || !strings.HasSuffix(trimmed[:start], pageSegmentPrefix)) {
		return 1, nil
	}
	if start == end {
		return 0, fmt.Errorf("%w: %q", ErrNoPageNumber, address)
	}
	if end-start > maxPageDigits {
		return 0, fmt.Errorf("%w: %q", ErrPageNumberTooLong, address)
	}

	page, err := strconv.Atoi(trimmed[start:end])
	if err != nil {
		return 0, fmt.Errorf("parse page number from %q: %w", address, err)
	}
	return page, nil
}
