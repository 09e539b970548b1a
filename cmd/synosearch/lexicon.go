// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/synosearch/internal/lexicon"
	"github.com/pdiddy/synosearch/pkg/types"
)

var lexiconCmd = &cobra.Command{
	Use:   "lexicon",
	Short: "Manage the synonym lexicon (import, lookup)",
	Long: `Lexicon manages the local SQLite database that supplies synonyms and
verb-class alternatives during expansion. The database path comes from
--lexicon or lexicon.path in the config file.`,
}

// --- import subcommand ---

var lexiconImportCmd = &cobra.Command{
	Use:   "import <thesaurus.yaml>...",
	Short: "Load synsets and verb classes from YAML thesaurus files",
	Long: `Import reads thesaurus files with top-level "synsets" and
"verb_classes" lists and stores them in the lexicon. Re-importing an id
replaces its members.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLexiconImport,
}

func runLexiconImport(cmd *cobra.Command, args []string) error {
	store, err := openLexicon()
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	for _, path := range args {
		summary, err := store.ImportFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d synsets (%d lemmas), %d verb classes (%d members)\n",
			path, summary.Synsets, summary.Lemmas, summary.VerbClasses, summary.Members)
	}
	logger.Info("lexicon updated", "path", store.Path())
	return nil
}

// --- lookup subcommand ---

var lexiconLookupCmd = &cobra.Command{
	Use:   "lookup <word>",
	Short: "Show the synsets and verb classes containing a word",
	Args:  cobra.ExactArgs(1),
	RunE:  runLexiconLookup,
}

func runLexiconLookup(cmd *cobra.Command, args []string) error {
	store, err := openLexicon()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Lookup(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entry)
	}

	if len(entry.Synsets) == 0 && len(entry.VerbClasses) == 0 {
		fmt.Fprintf(out, "%q is not in the lexicon.\n", entry.Word)
		return nil
	}
	for _, s := range entry.Synsets {
		fmt.Fprintf(out, "synset %-20s %-4s %s\n", s.ID, s.POS, strings.Join(s.Lemmas, ", "))
	}
	for _, vc := range entry.VerbClasses {
		fmt.Fprintf(out, "class  %-20s      %s\n", vc.ID, strings.Join(vc.Members, ", "))
	}
	return nil
}

func openLexicon() (*lexicon.Store, error) {
	return lexicon.NewStore(types.LexiconConfig{Path: viper.GetString("lexicon.path")})
}

func init() {
	lexiconLookupCmd.Flags().Bool("json", false, "output the entry as JSON")

	lexiconCmd.AddCommand(lexiconImportCmd)
	lexiconCmd.AddCommand(lexiconLookupCmd)

	rootCmd.AddCommand(lexiconCmd)
}
