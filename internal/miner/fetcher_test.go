package miner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// TestFetcherFetch verifies body retrieval, redirect resolution, and
// error handling against a local HTTP server.
func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body and final URL", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := w.Write([]byte("<html>page</html>")); err != nil {
				t.Error(err)
			}
		}))
		defer srv.Close()

		f := NewFetcher()
		res, err := f.Fetch(context.Background(), srv.URL+"/threads/example.123/")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if string(res.Body) != "<html>page</html>" {
			t.Errorf("unexpected body %q", res.Body)
		}
		if res.FinalURL != srv.URL+"/threads/example.123/" {
			t.Errorf("unexpected final URL %q", res.FinalURL)
		}
	})

	t.Run("follows redirects and reports the final URL", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		mux.HandleFunc("/threads/example.123/page-99/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/threads/example.123/page-5", http.StatusSeeOther)
		})
		mux.HandleFunc("/threads/example.123/page-5", func(w http.ResponseWriter, r *http.Request) {
			if _, err := w.Write([]byte("last page")); err != nil {
				t.Error(err)
			}
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := NewFetcher()
		res, err := f.Fetch(context.Background(), srv.URL+"/threads/example.123/page-99/")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.HasSuffix(res.FinalURL, "/page-5") {
			t.Errorf("expected final URL ending in /page-5, got %q", res.FinalURL)
		}
		if string(res.Body) != "last page" {
			t.Errorf("unexpected body %q", res.Body)
		}
	})

	t.Run("non-success status is an error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		f := NewFetcher()
		if _, err := f.Fetch(context.Background(), srv.URL+"/missing"); err == nil {
			t.Error("expected error for 404 response")
		}
	})

	t.Run("body is truncated at the size limit", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := w.Write([]byte(strings.Repeat("a", 100))); err != nil {
				t.Error(err)
			}
		}))
		defer srv.Close()

		f := NewFetcher(WithMaxBodySize(10))
		res, err := f.Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(res.Body) != 10 {
			t.Errorf("expected 10 bytes, got %d", len(res.Body))
		}
	})

	t.Run("cancelled context aborts the request", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(5 * time.Second)
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		f := NewFetcher()
		if _, err := f.Fetch(ctx, srv.URL); err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

// TestFetcherLastPage verifies last-page discovery via the server's
// redirect behavior.
func TestFetcherLastPage(t *testing.T) {
	t.Parallel()

	t.Run("redirect to final page resolves its number", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		mux.HandleFunc("/threads/example.123/page-1000000/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/threads/example.123/page-14", http.StatusSeeOther)
		})
		mux.HandleFunc("/threads/example.123/page-14", func(w http.ResponseWriter, r *http.Request) {
			if _, err := w.Write([]byte("ok")); err != nil {
				t.Error(err)
			}
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := NewFetcher()
		last, err := f.LastPage(context.Background(), srv.URL+"/threads/example.123/")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if last != 14 {
			t.Errorf("expected last page 14, got %d", last)
		}
	})

	t.Run("redirect to bare thread address means one page", func(t *testing.T) {
		t.Parallel()
		mux := http.NewServeMux()
		mux.HandleFunc("/threads/short.9/page-1000000/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/threads/short.9/", http.StatusSeeOther)
		})
		mux.HandleFunc("/threads/short.9/", func(w http.ResponseWriter, r *http.Request) {
			if _, err := w.Write([]byte("only page")); err != nil {
				t.Error(err)
			}
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := NewFetcher()
		last, err := f.LastPage(context.Background(), srv.URL+"/threads/short.9/")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if last != 1 {
			t.Errorf("expected last page 1, got %d", last)
		}
	})

	t.Run("network failure propagates", func(t *testing.T) {
		t.Parallel()
		f := NewFetcher(WithTimeout(100 * time.Millisecond))
		if _, err := f.LastPage(context.Background(), "http://127.0.0.1:1/threads/x.1/"); err == nil {
			t.Error("expected error for unreachable server")
		}
	})
}
