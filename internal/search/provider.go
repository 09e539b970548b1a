// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search issues expanded queries against a web search provider,
// one at a time under a randomized politeness delay, and reports the
// links each query returned.
package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pdiddy/synosearch/pkg/types"
)

// DefaultLimit is the number of results requested per query.
const DefaultLimit = 1

// ErrRateLimited is returned when the provider still throttles after retries.
var ErrRateLimited = errors.New("search provider rate limit exceeded")

// Provider searches the web for a single query. Each backend (Google
// Custom Search, SearxNG) implements this interface. Results keep the
// provider's order.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error)
}

// NewProvider builds the backend selected by cfg.Provider.
func NewProvider(cfg types.SearchConfig, client *http.Client) (Provider, error) {
	switch cfg.Provider {
	case types.ProviderGoogle, "":
		if cfg.GoogleAPIKey == "" || cfg.GoogleCSEID == "" {
			return nil, fmt.Errorf("google provider needs an API key and a search engine ID: set --google-api-key/--google-cse-id or .secrets/google-api-key and .secrets/google-cse-id")
		}
		return &GoogleBackend{Client: client, APIKey: cfg.GoogleAPIKey, CSEID: cfg.GoogleCSEID, HTTP: cfg.HTTPConfig}, nil
	case types.ProviderSearxNG:
		if cfg.SearxNGURL == "" {
			return nil, fmt.Errorf("searxng provider needs a base URL: set --searxng-url or search.searxng_url")
		}
		return &SearxNGBackend{Client: client, BaseURL: cfg.SearxNGURL, HTTP: cfg.HTTPConfig}, nil
	default:
		return nil, fmt.Errorf("unknown search provider %q: use google or searxng", cfg.Provider)
	}
}

func clampLimit(limit, max int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if max > 0 && limit > max {
		return max
	}
	return limit
}

func urlsOf(results []types.SearchResult) []string {
	urls := make([]string, 0, len(results))
	for _, r := range results {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	return urls
}
