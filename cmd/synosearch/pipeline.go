// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/synosearch/internal/expand"
	"github.com/pdiddy/synosearch/internal/input"
	"github.com/pdiddy/synosearch/internal/lexicon"
	"github.com/pdiddy/synosearch/internal/search"
	"github.com/pdiddy/synosearch/internal/spell"
	"github.com/pdiddy/synosearch/pkg/types"
)

// pipeline turns raw text into expanded queries: tokenize, correct,
// resolve candidates, expand.
type pipeline struct {
	store    *lexicon.Store
	resolver *expand.Resolver
	expander expand.Expander
	logger   *log.Logger
}

// newPipeline opens the lexicon and spelling oracle. Correction notices
// go to notices; nil sends them to the logger.
func newPipeline(ctx context.Context, cfg types.Config, notices io.Writer, logger *log.Logger) (*pipeline, error) {
	store, err := lexicon.NewStore(cfg.Lexicon)
	if err != nil {
		return nil, err
	}

	speller, err := newSpeller(ctx, cfg.Spell, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}

	resolver := expand.NewResolver(speller, store, cfg.Expansion, logger)
	if notices != nil {
		resolver.SetNotices(notices)
	}

	return &pipeline{
		store:    store,
		resolver: resolver,
		expander: expand.NewExpander(cfg.Expansion),
		logger:   logger,
	}, nil
}

func (p *pipeline) Close() error { return p.store.Close() }

// queries returns the expanded, deduplicated query list for text.
func (p *pipeline) queries(ctx context.Context, text string) ([]string, error) {
	words, err := input.Words(text)
	if err != nil {
		return nil, err
	}
	corrections := p.resolver.Correct(words)

	mapping, resolved, err := p.resolver.BuildMapping(ctx, corrections)
	if err != nil {
		return nil, err
	}

	queries, err := p.expander.Expand(resolved, mapping)
	if err != nil {
		return nil, explosionHint(err)
	}
	p.logger.Debug("expanded", "words", len(resolved), "queries", len(queries))
	return queries, nil
}

// newSpeller builds the spelling oracle from a frequency file. Lexicon
// headwords are added so every word with synonyms counts as known. Without
// a configured dictionary it returns a nil Oracle, which disables
// correction: the lexicon alone is too small to judge common words.
func newSpeller(ctx context.Context, cfg types.SpellConfig, store *lexicon.Store, logger *log.Logger) (spell.Oracle, error) {
	if cfg.Dictionary == "" {
		logger.Warn("no spelling dictionary configured, corrections disabled (set --dictionary or spell.dictionary)")
		return nil, nil
	}

	freq, err := spell.LoadFrequencyFile(cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	words, err := store.Headwords(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading lexicon headwords: %w", err)
	}
	for _, w := range words {
		if _, ok := freq[w]; !ok {
			freq[w] = 1
		}
	}

	if len(freq) == 0 {
		logger.Warn("spelling dictionary is empty, corrections disabled", "dictionary", cfg.Dictionary)
		return nil, nil
	}
	checker := spell.New(freq, cfg.MaxDistance)
	logger.Debug("spelling dictionary loaded", "words", checker.Len())
	return checker, nil
}

// newProvider and dispatchSleep are replaced in tests.
var (
	newProvider                    = search.NewProvider
	dispatchSleep search.SleepFunc = search.Sleep
)

func newDispatcher(cfg types.SearchConfig, logger *log.Logger) (*search.Dispatcher, error) {
	provider, err := newProvider(cfg, &http.Client{Timeout: cfg.Timeout})
	if err != nil {
		return nil, err
	}
	d := search.NewDispatcher(provider, cfg, logger)
	d.Sleep = dispatchSleep
	return d, nil
}

// noticeWriter places correction notices on stdout next to the printed
// results, or on stderr when stdout carries JSON.
func noticeWriter(cmd *cobra.Command, jsonOutput bool) io.Writer {
	if jsonOutput {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// runLogger tags every line of one batch with a short run id.
func runLogger() *log.Logger {
	return logger.With("run", uuid.NewString()[:8])
}

// readWords returns the raw text for a batch: the --file contents, the
// command arguments, or the interactive prompt answers, in that order.
func readWords(cmd *cobra.Command, args []string) (string, error) {
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		return input.LoadFile(file)
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	return input.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).Collect()
}
