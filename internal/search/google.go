// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/synosearch/internal/httputil"
	"github.com/pdiddy/synosearch/pkg/types"
)

// googleAPIBase is the Custom Search JSON API endpoint. Declared as a var
// so tests can substitute an httptest server.
var googleAPIBase = "https://www.googleapis.com/customsearch/v1"

// googleMaxNum is the largest page size the API accepts.
const googleMaxNum = 10

// GoogleBackend queries the Google Custom Search JSON API.
type GoogleBackend struct {
	Client *http.Client
	APIKey string
	CSEID  string
	HTTP   types.HTTPConfig
}

// Name returns the backend identifier.
func (b *GoogleBackend) Name() string { return string(types.ProviderGoogle) }

// Search requests up to limit results (at most 10) for query.
func (b *GoogleBackend) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("empty Google query")
	}

	params := url.Values{
		"key": {b.APIKey},
		"cx":  {b.CSEID},
		"q":   {query},
		"num": {strconv.Itoa(clampLimit(limit, googleMaxNum))},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if b.HTTP.UserAgent != "" {
		req.Header.Set("User-Agent", b.HTTP.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, b.HTTP.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("Google API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("Google API: %w", ErrRateLimited)
	}

	var gr googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("Google API returned HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("parsing Google response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if gr.Error != nil && gr.Error.Message != "" {
			return nil, fmt.Errorf("Google API returned HTTP %d: %s", resp.StatusCode, gr.Error.Message)
		}
		return nil, fmt.Errorf("Google API returned HTTP %d", resp.StatusCode)
	}

	results := make([]types.SearchResult, 0, len(gr.Items))
	for _, item := range gr.Items {
		results = append(results, types.SearchResult{
			URL:     item.Link,
			Title:   item.Title,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}

// Custom Search JSON API structures.
type googleResponse struct {
	Items []googleItem    `json:"items"`
	Error *googleAPIError `json:"error,omitempty"`
}

type googleItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type googleAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
