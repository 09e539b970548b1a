// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/synosearch/internal/httputil"
	"github.com/pdiddy/synosearch/pkg/types"
)

func fastRetries(t *testing.T) {
	t.Helper()
	old := httputil.RetryBaseDelay
	httputil.RetryBaseDelay = time.Millisecond
	t.Cleanup(func() { httputil.RetryBaseDelay = old })
}

func withGoogleBase(t *testing.T, url string) {
	t.Helper()
	old := googleAPIBase
	googleAPIBase = url
	t.Cleanup(func() { googleAPIBase = old })
}

// --- NewProvider ---

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.SearchConfig
		want    string
		wantErr string
	}{
		{"google default", types.SearchConfig{GoogleAPIKey: "k", GoogleCSEID: "cx"}, "google", ""},
		{"google explicit", types.SearchConfig{Provider: types.ProviderGoogle, GoogleAPIKey: "k", GoogleCSEID: "cx"}, "google", ""},
		{"google missing key", types.SearchConfig{GoogleCSEID: "cx"}, "", "API key"},
		{"google missing cse", types.SearchConfig{GoogleAPIKey: "k"}, "", "search engine ID"},
		{"searxng", types.SearchConfig{Provider: types.ProviderSearxNG, SearxNGURL: "http://localhost:8888"}, "searxng", ""},
		{"searxng missing url", types.SearchConfig{Provider: types.ProviderSearxNG}, "", "base URL"},
		{"unknown", types.SearchConfig{Provider: "bing"}, "", "unknown search provider"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg, http.DefaultClient)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.want)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit, max, want int
	}{
		{0, 0, DefaultLimit},
		{-3, 10, DefaultLimit},
		{5, 0, 5},
		{5, 10, 5},
		{25, 10, 10},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.limit, tt.max); got != tt.want {
			t.Errorf("clampLimit(%d, %d) = %d, want %d", tt.limit, tt.max, got, tt.want)
		}
	}
}

// --- Google ---

func TestGoogleSearchRequestParams(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer ts.Close()
	withGoogleBase(t, ts.URL)

	b := &GoogleBackend{Client: ts.Client(), APIKey: "key123", CSEID: "cx456", HTTP: types.HTTPConfig{UserAgent: "synosearch-test"}}
	if _, err := b.Search(context.Background(), "hello world", 25); err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := captured.URL.Query()
	checks := map[string]string{"key": "key123", "cx": "cx456", "q": "hello world", "num": "10"}
	for k, want := range checks {
		if got := q.Get(k); got != want {
			t.Errorf("param %s = %q, want %q", k, got, want)
		}
	}
	if got := captured.Header.Get("User-Agent"); got != "synosearch-test" {
		t.Errorf("User-Agent = %q", got)
	}
}

func TestGoogleSearchParsesItemsInOrder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"items":[
			{"title":"First","link":"https://one.example","snippet":"a"},
			{"title":"Second","link":"https://two.example","snippet":"b"}
		]}`)
	}))
	defer ts.Close()
	withGoogleBase(t, ts.URL)

	b := &GoogleBackend{Client: ts.Client(), APIKey: "k", CSEID: "cx"}
	results, err := b.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].URL != "https://one.example" || results[1].URL != "https://two.example" {
		t.Errorf("urls = %q, %q", results[0].URL, results[1].URL)
	}
	if results[0].Title != "First" || results[0].Snippet != "a" {
		t.Errorf("first result = %+v", results[0])
	}
}

func TestGoogleSearchNoItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"searchInformation":{"totalResults":"0"}}`)
	}))
	defer ts.Close()
	withGoogleBase(t, ts.URL)

	b := &GoogleBackend{Client: ts.Client(), APIKey: "k", CSEID: "cx"}
	results, err := b.Search(context.Background(), "nothing here", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
}

func TestGoogleSearchHTTPErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"forbidden with message", http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid"}}`, "API key not valid"},
		{"server error plain", http.StatusInternalServerError, "oops", "HTTP 500"},
		{"bad request no message", http.StatusBadRequest, `{}`, "HTTP 400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()
			withGoogleBase(t, ts.URL)

			b := &GoogleBackend{Client: ts.Client(), APIKey: "k", CSEID: "cx"}
			_, err := b.Search(context.Background(), "q", 1)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGoogleSearchRateLimited(t *testing.T) {
	fastRetries(t)
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()
	withGoogleBase(t, ts.URL)

	b := &GoogleBackend{Client: ts.Client(), APIKey: "k", CSEID: "cx", HTTP: types.HTTPConfig{MaxRetries: 2}}
	_, err := b.Search(context.Background(), "q", 1)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestGoogleSearchRecoversAfterThrottle(t *testing.T) {
	fastRetries(t)
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"items":[{"link":"https://ok.example"}]}`)
	}))
	defer ts.Close()
	withGoogleBase(t, ts.URL)

	b := &GoogleBackend{Client: ts.Client(), APIKey: "k", CSEID: "cx"}
	results, err := b.Search(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].URL != "https://ok.example" {
		t.Errorf("results = %+v", results)
	}
}

func TestGoogleSearchMalformedJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"items":[`)
	}))
	defer ts.Close()
	withGoogleBase(t, ts.URL)

	b := &GoogleBackend{Client: ts.Client(), APIKey: "k", CSEID: "cx"}
	_, err := b.Search(context.Background(), "q", 1)
	if err == nil || !strings.Contains(err.Error(), "parsing Google response") {
		t.Errorf("err = %v", err)
	}
}

func TestGoogleSearchEmptyQuery(t *testing.T) {
	b := &GoogleBackend{Client: http.DefaultClient}
	if _, err := b.Search(context.Background(), "", 1); err == nil {
		t.Error("expected error for empty query")
	}
}

// --- SearxNG ---

func TestSearxNGSearch(t *testing.T) {
	var captured *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		fmt.Fprint(w, `{"query":"hello","results":[
			{"url":"https://a.example","title":"A","content":"first","engine":"duckduckgo"},
			{"url":"https://b.example","title":"B","content":"second","engine":"bing"},
			{"url":"https://c.example","title":"C","content":"third","engine":"bing"}
		]}`)
	}))
	defer ts.Close()

	b := &SearxNGBackend{Client: ts.Client(), BaseURL: ts.URL + "/"}
	results, err := b.Search(context.Background(), "hello there", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if captured.URL.Path != "/search" {
		t.Errorf("path = %q, want /search", captured.URL.Path)
	}
	if got := captured.URL.Query().Get("format"); got != "json" {
		t.Errorf("format = %q", got)
	}
	if got := captured.URL.Query().Get("q"); got != "hello there" {
		t.Errorf("q = %q", got)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (limit)", len(results))
	}
	if results[0].URL != "https://a.example" || results[1].Snippet != "second" {
		t.Errorf("results = %+v", results)
	}
}

func TestSearxNGSearchDefaultLimit(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"results":[{"url":"https://a.example"},{"url":"https://b.example"}]}`)
	}))
	defer ts.Close()

	b := &SearxNGBackend{Client: ts.Client(), BaseURL: ts.URL}
	results, err := b.Search(context.Background(), "q", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != DefaultLimit {
		t.Errorf("got %d results, want %d", len(results), DefaultLimit)
	}
}

func TestSearxNGSearchErrors(t *testing.T) {
	fastRetries(t)
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   string
		rateLimit bool
	}{
		{"forbidden", http.StatusForbidden, "json format disabled", "HTTP 403", false},
		{"throttled", http.StatusTooManyRequests, "", "rate limit", true},
		{"malformed", http.StatusOK, "<html>", "parsing SearxNG response", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			b := &SearxNGBackend{Client: ts.Client(), BaseURL: ts.URL, HTTP: types.HTTPConfig{MaxRetries: 1}}
			_, err := b.Search(context.Background(), "q", 1)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
			if errors.Is(err, ErrRateLimited) != tt.rateLimit {
				t.Errorf("errors.Is(ErrRateLimited) = %v, want %v", !tt.rateLimit, tt.rateLimit)
			}
		})
	}
}

func TestSearxNGUnreachable(t *testing.T) {
	fastRetries(t)
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	b := &SearxNGBackend{Client: http.DefaultClient, BaseURL: url, HTTP: types.HTTPConfig{MaxRetries: 1}}
	if _, err := b.Search(context.Background(), "q", 1); err == nil {
		t.Error("expected error for closed server")
	}
}
