// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by search providers.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "synosearch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429/503 and transport errors (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ProviderName identifies the web search provider.
type ProviderName string

const (
	ProviderGoogle  ProviderName = "google"
	ProviderSearxNG ProviderName = "searxng"
)

// SearchConfig holds settings for the dispatch stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Provider selects the search backend: google or searxng.
	Provider ProviderName `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Limit is the number of results requested per query (default 1).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`

	// MinDelay and MaxDelay bound the randomized politeness delay between
	// consecutive searches (defaults 3s and 10s).
	MinDelay time.Duration `json:"min_delay" yaml:"min_delay" mapstructure:"min_delay"`
	MaxDelay time.Duration `json:"max_delay" yaml:"max_delay" mapstructure:"max_delay"`

	// GoogleAPIKey and GoogleCSEID authenticate against the Custom Search JSON API.
	GoogleAPIKey string `json:"google_api_key,omitempty" yaml:"google_api_key,omitempty" mapstructure:"google_api_key"`
	GoogleCSEID  string `json:"google_cse_id,omitempty" yaml:"google_cse_id,omitempty" mapstructure:"google_cse_id"`

	// SearxNGURL is the base URL of a SearxNG instance with JSON output enabled.
	SearxNGURL string `json:"searxng_url" yaml:"searxng_url" mapstructure:"searxng_url"`
}

// ExpansionConfig holds settings for candidate resolution and query expansion.
type ExpansionConfig struct {
	// MaxQueries is the ceiling on the Cartesian product size (default 1000).
	// Zero disables the check.
	MaxQueries int `json:"max_queries" yaml:"max_queries" mapstructure:"max_queries"`

	// FoldCase collapses queries that differ only by letter case.
	FoldCase bool `json:"fold_case" yaml:"fold_case" mapstructure:"fold_case"`

	// KeepOriginal adds the misspelled input's candidates to the position
	// of its correction (default true).
	KeepOriginal bool `json:"keep_original" yaml:"keep_original" mapstructure:"keep_original"`
}

// LexiconConfig locates the synonym database.
type LexiconConfig struct {
	// Path is the SQLite lexicon file (default "lexicon.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// SpellConfig holds settings for the spelling oracle.
type SpellConfig struct {
	// Dictionary is a word frequency file ("word count" per line). When
	// empty, the lexicon headwords are used.
	Dictionary string `json:"dictionary" yaml:"dictionary" mapstructure:"dictionary"`

	// MaxDistance is the largest edit distance a correction may have (default 2).
	MaxDistance int `json:"max_distance" yaml:"max_distance" mapstructure:"max_distance"`
}

// Config groups all settings for a run.
type Config struct {
	Search    SearchConfig    `json:"search" yaml:"search" mapstructure:"search"`
	Expansion ExpansionConfig `json:"expansion" yaml:"expansion" mapstructure:"expansion"`
	Lexicon   LexiconConfig   `json:"lexicon" yaml:"lexicon" mapstructure:"lexicon"`
	Spell     SpellConfig     `json:"spell" yaml:"spell" mapstructure:"spell"`
}
