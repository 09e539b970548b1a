// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the synosearch CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/synosearch/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// logger is built in PersistentPreRunE once flags are parsed.
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "synosearch"})

	// loadedSecrets holds provider credentials loaded from .secrets/ at startup.
	loadedSecrets secrets.Store
)

// rootCmd is the base command for the synosearch CLI.
var rootCmd = &cobra.Command{
	Use:   "synosearch",
	Short: "Search the web for every synonym combination of a phrase",
	Long: `synosearch corrects the spelling of each input word, looks up its
synonyms and verb-class relatives in a local lexicon, builds every
combination of those candidates as a search query, and runs each query
against a web search provider with a randomized pause between requests.

Use "expand" to preview the generated queries without searching, and
"lexicon import" to load a thesaurus into the lexicon database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogger(cmd)

		s, err := secrets.Load(".secrets/", logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./synosearch.yaml or ~/.config/synosearch/synosearch.yaml)")
	pf.BoolP("verbose", "v", false, "log debug detail such as politeness delays")
	pf.BoolP("quiet", "q", false, "log only warnings and errors")
	pf.String("lexicon", defaultLexiconPath, "SQLite lexicon database")

	_ = viper.BindPFlag("lexicon.path", pf.Lookup("lexicon"))
	setDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("synosearch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "synosearch"))
		}
	}

	viper.SetEnvPrefix("SYNOSEARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

func configureLogger(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	switch {
	case verbose:
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
	case quiet:
		logger.SetLevel(log.WarnLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
