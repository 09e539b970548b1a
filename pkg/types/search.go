// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the synosearch pipeline:
// run configuration, provider results and per-query dispatch outcomes.
package types

// SearchResult is one link returned by a web search provider.
type SearchResult struct {
	// URL is the result link.
	URL string `json:"url" yaml:"url"`

	// Title is the page title as returned by the provider, if any.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Snippet is the provider's description text, if any.
	Snippet string `json:"snippet,omitempty" yaml:"snippet,omitempty"`
}

// Outcome records the result of dispatching a single query. URLs keep the
// provider's order. A failed search has no URLs and a non-empty Err.
type Outcome struct {
	Query string   `json:"query" yaml:"query"`
	URLs  []string `json:"urls" yaml:"urls"`
	Err   string   `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the search for this query failed.
func (o Outcome) Failed() bool {
	return o.Err != ""
}
