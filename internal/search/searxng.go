// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/synosearch/internal/httputil"
	"github.com/pdiddy/synosearch/pkg/types"
)

// SearxNGBackend queries a SearxNG instance through its JSON output format.
// The instance must list "json" under search.formats in its settings.
type SearxNGBackend struct {
	Client  *http.Client
	BaseURL string
	HTTP    types.HTTPConfig
}

// Name returns the backend identifier.
func (b *SearxNGBackend) Name() string { return string(types.ProviderSearxNG) }

// Search returns the first limit results SearxNG reports for query.
func (b *SearxNGBackend) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("empty SearxNG query")
	}

	params := url.Values{
		"q":      {query},
		"format": {"json"},
	}
	reqURL := strings.TrimRight(b.BaseURL, "/") + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if b.HTTP.UserAgent != "" {
		req.Header.Set("User-Agent", b.HTTP.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, b.HTTP.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("SearxNG request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("SearxNG: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SearxNG returned HTTP %d", resp.StatusCode)
	}

	var sr searxResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing SearxNG response: %w", err)
	}

	limit = clampLimit(limit, 0)
	results := make([]types.SearchResult, 0, limit)
	for _, r := range sr.Results {
		if len(results) == limit {
			break
		}
		results = append(results, types.SearchResult{
			URL:     r.URL,
			Title:   r.Title,
			Snippet: r.Content,
		})
	}
	return results, nil
}

// SearxNG JSON structures.
type searxResponse struct {
	Query   string        `json:"query"`
	Results []searxResult `json:"results"`
}

type searxResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Engine  string `json:"engine"`
}
