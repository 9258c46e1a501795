// Package cmd wires the jishoserve subcommands: search, cards, the IPC
// server, the interactive prompt, and dataset verification.
package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bastiangx/jishoserve/internal/logger"
	"github.com/bastiangx/jishoserve/pkg/card"
	"github.com/bastiangx/jishoserve/pkg/config"
	"github.com/bastiangx/jishoserve/pkg/dataset"
	"github.com/bastiangx/jishoserve/pkg/search"
)

var (
	flagRepoRoot string
	flagConfig   string
	flagDebug    bool
)

var rootCmd = &cobra.Command{
	Use:           "jishoserve",
	Short:         "Search-as-you-type lookup over the dictionary dataset",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.SetDefault(logger.New("jishoserve"))
		if flagDebug {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRepoRoot, "repo-root", ".", "dataset repository root")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config.toml")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "d", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.Errorf("%v", err)
		return err
	}
	return nil
}

// app bundles everything a subcommand needs against one open dataset.
type app struct {
	cfg       *config.Config
	session   *dataset.Session
	engine    *search.Engine
	assembler *card.Assembler
}

func openApp() (*app, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	session, err := dataset.Open(flagRepoRoot, dataset.CacheConfig{
		Shards:     cfg.Cache.Shards,
		WordChunks: cfg.Cache.WordChunks,
		LangChunks: cfg.Cache.LangChunks,
		NameChunks: cfg.Cache.NameChunks,
		Lookups:    cfg.Cache.Lookups,
	})
	if err != nil {
		return nil, err
	}
	return &app{
		cfg:       cfg,
		session:   session,
		engine:    search.New(session),
		assembler: card.New(session),
	}, nil
}
