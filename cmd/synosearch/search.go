// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/synosearch/internal/search"
	"github.com/pdiddy/synosearch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [words...]",
	Short: "Expand words into synonym queries and search each one",
	Long: `Search reads words from the arguments, from --file, or interactively,
corrects misspellings, and searches the web for every combination of the
words' synonyms. Queries run one at a time with a random pause between
them. Links are printed as each query completes.

A failed query is reported without links and the batch continues. Press
Ctrl-C to stop early; results collected so far are kept.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	text, err := readWords(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runLog := runLogger()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	p, err := newPipeline(ctx, cfg, noticeWriter(cmd, jsonOutput), runLog)
	if err != nil {
		return err
	}
	defer p.Close()

	queries, err := p.queries(ctx, text)
	if err != nil {
		return err
	}

	d, err := newDispatcher(cfg.Search, runLog)
	if err != nil {
		return err
	}
	runLog.Info("dispatching", "queries", len(queries), "provider", d.Provider.Name())

	var onOutcome func(types.Outcome)
	if !jsonOutput {
		onOutcome = func(o types.Outcome) { search.ReportOutcome(out, o) }
	}

	outcomes, err := d.Dispatch(ctx, queries, onOutcome)
	if jsonOutput {
		if jerr := search.ReportJSON(out, outcomes); jerr != nil {
			return jerr
		}
	}

	s := search.Summarize(outcomes)
	runLog.Info("done", "queries", s.Queries, "links", s.Links, "failed", s.Failed)
	if errors.Is(err, context.Canceled) {
		runLog.Warn("interrupted", "remaining", len(queries)-s.Queries)
		return nil
	}
	return err
}

func init() {
	addSearchFlags(searchCmd)
	addExpansionFlags(searchCmd)
	searchCmd.Flags().StringP("file", "f", "", "read words from a comma-delimited file")
	searchCmd.Flags().Bool("json", false, "print outcomes as JSON once the batch ends")

	rootCmd.AddCommand(searchCmd)
}
