// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/synosearch/internal/expand"
	"github.com/pdiddy/synosearch/internal/search"
	"github.com/pdiddy/synosearch/internal/secrets"
	"github.com/pdiddy/synosearch/internal/spell"
	"github.com/pdiddy/synosearch/pkg/types"
)

const (
	defaultLexiconPath = "lexicon.db"
	defaultSearxNGURL  = "http://localhost:8888"
	defaultMaxQueries  = 1000
	defaultTimeout     = 20 * time.Second
	defaultMaxRetries  = 3
)

func setDefaults() {
	viper.SetDefault("search.provider", string(types.ProviderGoogle))
	viper.SetDefault("search.limit", search.DefaultLimit)
	viper.SetDefault("search.min_delay", search.DefaultMinDelay)
	viper.SetDefault("search.max_delay", search.DefaultMaxDelay)
	viper.SetDefault("search.max_retries", defaultMaxRetries)
	viper.SetDefault("search.timeout", defaultTimeout)
	viper.SetDefault("search.user_agent", "synosearch/"+version)

	viper.SetDefault("expansion.max_queries", defaultMaxQueries)
	viper.SetDefault("expansion.fold_case", false)
	viper.SetDefault("expansion.keep_original", true)

	viper.SetDefault("lexicon.path", defaultLexiconPath)

	viper.SetDefault("spell.dictionary", "")
	viper.SetDefault("spell.max_distance", spell.DefaultMaxDistance)
}

// flagKeys maps command flag names to viper keys. Commands share flag
// names, so bindings are made for the running command only.
var flagKeys = map[string]string{
	"provider":       "search.provider",
	"limit":          "search.limit",
	"min-delay":      "search.min_delay",
	"max-delay":      "search.max_delay",
	"max-retries":    "search.max_retries",
	"timeout":        "search.timeout",
	"google-api-key": "search.google_api_key",
	"google-cse-id":  "search.google_cse_id",
	"searxng-url":    "search.searxng_url",
	"max-queries":    "expansion.max_queries",
	"fold-case":      "expansion.fold_case",
	"keep-original":  "expansion.keep_original",
	"dictionary":     "spell.dictionary",
	"max-distance":   "spell.max_distance",
}

// loadConfig binds the running command's flags and decodes the merged
// flag, environment, file and default values. Provider credentials fall
// back to .secrets/ when no flag, variable or config value sets them.
func loadConfig(cmd *cobra.Command) (types.Config, error) {
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := viper.BindPFlag(key, f); err != nil {
				return types.Config{}, fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}

	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg.Search.GoogleAPIKey = loadedSecrets.Or(secrets.GoogleAPIKey, cfg.Search.GoogleAPIKey)
	cfg.Search.GoogleCSEID = loadedSecrets.Or(secrets.GoogleCSEID, cfg.Search.GoogleCSEID)
	cfg.Search.SearxNGURL = loadedSecrets.Or(secrets.SearxNGURL, cfg.Search.SearxNGURL)
	if cfg.Search.SearxNGURL == "" {
		cfg.Search.SearxNGURL = defaultSearxNGURL
	}
	return cfg, nil
}

func addSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("provider", string(types.ProviderGoogle), "search provider: google or searxng")
	f.Int("limit", search.DefaultLimit, "results requested per query")
	f.Duration("min-delay", search.DefaultMinDelay, "shortest pause between searches")
	f.Duration("max-delay", search.DefaultMaxDelay, "longest pause between searches")
	f.Int("max-retries", defaultMaxRetries, "retries on HTTP 429/503 and transport errors")
	f.Duration("timeout", defaultTimeout, "HTTP request timeout")
	f.String("google-api-key", "", "Google Custom Search API key (default: .secrets/google-api-key)")
	f.String("google-cse-id", "", "Google programmable search engine ID (default: .secrets/google-cse-id)")
	f.String("searxng-url", "", "SearxNG base URL (default: "+defaultSearxNGURL+")")
}

func addExpansionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("max-queries", defaultMaxQueries, "refuse expansions producing more queries than this (0 = no limit)")
	f.Bool("fold-case", false, "treat queries that differ only in letter case as one")
	f.Bool("keep-original", true, "keep the synonyms of a misspelled word alongside its correction")
	f.String("dictionary", "", "word frequency file for spelling correction (unset disables correction)")
	f.Int("max-distance", spell.DefaultMaxDistance, "largest edit distance a spelling correction may have")
}

// explosionHint rewrites an oversized expansion into advice for the user.
func explosionHint(err error) error {
	var e *expand.ExplosionError
	if errors.As(err, &e) {
		return fmt.Errorf("%w (or raise --max-queries)", e)
	}
	return err
}
