package miner

import (
	"context"
	"fmt"
)

// upperBoundPage is the implausibly large page number used to discover a
// thread's true last page. The forum redirects requests beyond the end
// of a thread to its final page.
const upperBoundPage = 1_000_000

// LastPage discovers the final page number of a thread by requesting the
// upper-bound page and reading the page number out of the address the
// server redirected to.
//
// Design decision: We lean on the redirect instead of parsing the
// pagination widget because:
//  1. It needs exactly one round trip and no markup knowledge
//  2. The pagination UI truncates long page lists, the redirect never lies
//  3. It works identically on single-page threads (no widget at all)
//
// A network error propagates as a fetch failure. A final address that
// does not parse to a page number means the thread address itself is
// wrong and is surfaced as a fatal configuration error.
func (f *Fetcher) LastPage(ctx context.Context, threadURL string) (int, error) {
	res, err := f.Fetch(ctx, AddressForPage(threadURL, upperBoundPage))
	if err != nil {
		return 0, err
	}

	page, err := PageFromAddress(res.FinalURL)
	if err != nil {
		return 0, fmt.Errorf("resolve last page of %s: %w", threadURL, err)
	}
	return page, nil
}
