// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand [words...]",
	Short: "Print the queries a search would run, without searching",
	Long: `Expand runs the same correction and synonym expansion as search and
prints the resulting queries in dispatch order, followed by their count.
No search provider is contacted.`,
	RunE: runExpand,
}

func runExpand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	text, err := readWords(cmd, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	p, err := newPipeline(ctx, cfg, noticeWriter(cmd, jsonOutput), runLogger())
	if err != nil {
		return err
	}
	defer p.Close()

	queries, err := p.queries(ctx, text)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(queries)
	}

	for _, q := range queries {
		fmt.Fprintln(out, q)
	}
	fmt.Fprintf(out, "\n%d queries\n", len(queries))
	return nil
}

func init() {
	addExpansionFlags(expandCmd)
	expandCmd.Flags().StringP("file", "f", "", "read words from a comma-delimited file")
	expandCmd.Flags().Bool("json", false, "print queries as a JSON array")

	rootCmd.AddCommand(expandCmd)
}
