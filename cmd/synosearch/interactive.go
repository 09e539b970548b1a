// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/synosearch/internal/input"
	"github.com/pdiddy/synosearch/internal/search"
	"github.com/pdiddy/synosearch/pkg/types"
)

// exitSentinel ends an interactive session.
const exitSentinel = "exit()"

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Search line by line until exit() or end of input",
	Long: `Interactive prompts for a search, prints its links, and prompts again.
Each line is searched as typed unless --expand is given, in which case it
goes through correction and synonym expansion first. The same random
pause separates consecutive searches across lines.

Type exit() or send end-of-file to quit.`,
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	runLog := runLogger()

	d, err := newDispatcher(cfg.Search, runLog)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var p *pipeline
	if expandLines, _ := cmd.Flags().GetBool("expand"); expandLines {
		if p, err = newPipeline(ctx, cfg, out, runLog); err != nil {
			return err
		}
		defer p.Close()
	}

	prompter := input.NewPrompter(cmd.InOrStdin(), out)
	report := func(o types.Outcome) { search.ReportOutcome(out, o) }

	fmt.Fprintf(out, "Exit loop by typing '%s' or wait for End of File\n", exitSentinel)
	for ctx.Err() == nil {
		line, err := prompter.Line("Enter your search: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			break
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == exitSentinel {
			break
		}
		if line == "" {
			continue
		}

		queries := []string{line}
		if p != nil {
			if queries, err = p.queries(ctx, line); err != nil {
				runLog.Error("expansion failed", "input", line, "err", err)
				continue
			}
		}
		if _, err := d.Dispatch(ctx, queries, report); err != nil {
			break
		}
	}

	fmt.Fprintln(out, "Program terminating...")
	return nil
}

func init() {
	addSearchFlags(interactiveCmd)
	addExpansionFlags(interactiveCmd)
	interactiveCmd.Flags().Bool("expand", false, "expand each line into synonym queries before searching")

	rootCmd.AddCommand(interactiveCmd)
}
