package miner

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// Fetcher performs the HTTP side of mining: one GET per page address,
// following redirects, with the response body read under a size limit.
//
// Design decision: We use resty rather than a bare http.Client because
// it bundles the timeout, header, and redirect-policy plumbing the miner
// needs, while still exposing the final resolved URL of a redirected
// request, which the last-page discovery depends on.
type Fetcher struct {
	// client is the configured resty HTTP client.
	client *resty.Client

	// maxBodySize limits how many response bytes are read per page.
	maxBodySize int64
}

// FetchResult is one fetched page: the verbatim body bytes and the final
// address after any redirects.
type FetchResult struct {
	// Body is the raw response body, read up to the size limit.
	Body []byte

	// FinalURL is the address the request resolved to after redirects.
	FinalURL string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.SetTimeout(d)
	}
}

// WithUserAgent sets the User-Agent header for all requests.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.client.SetHeader("User-Agent", ua)
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// NewFetcher creates a Fetcher with sensible defaults: a 30 second
// timeout, a 10MB body limit, and up to 20 followed redirects.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(20)).
		SetDoNotParseResponse(true)

	f := &Fetcher{
		client:      client,
		maxBodySize: 10 * 1024 * 1024,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch retrieves one page and returns its body and final address.
// A non-success status code is a fetch failure; the miner has no retry
// logic, so the error surfaces to the orchestrator as-is.
func (f *Fetcher) Fetch(ctx context.Context, address string) (*FetchResult, error) {
	resp, err := f.client.R().SetContext(ctx).Get(address)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", address, err)
	}

	raw := resp.RawBody()
	defer raw.Close() //nolint:errcheck // Read errors surface below

	body, err := io.ReadAll(io.LimitReader(raw, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", address, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", address, resp.StatusCode())
	}

	return &FetchResult{
		Body:     body,
		FinalURL: resp.RawResponse.Request.URL.String(),
	}, nil
}
