package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bastiangx/jishoserve/internal/cli"
	"github.com/bastiangx/jishoserve/pkg/search"
)

var (
	interactiveDomain string
	interactiveMode   string
	interactiveLang   string
	interactiveLimit  int
)

var interactiveCmd = &cobra.Command{
	Use:   "cli",
	Short: "Interactive search prompt for testing and debugging",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		opts := search.Options{
			Limit:       interactiveLimit,
			MaxKeys:     a.cfg.Search.MaxKeys,
			CommonFirst: a.cfg.Search.CommonFirst,
		}
		if opts.Limit < 1 {
			opts.Limit = a.cfg.Search.DefaultLimit
		}
		handler := cli.NewInputHandler(a.engine, a.assembler, interactiveDomain, interactiveMode, interactiveLang, opts)
		return handler.Start()
	},
}

func init() {
	interactiveCmd.Flags().StringVar(&interactiveDomain, "domain", "all", "domain: words, names or all")
	interactiveCmd.Flags().StringVar(&interactiveMode, "mode", "auto", "indexed field: surface, reading or auto")
	interactiveCmd.Flags().StringVar(&interactiveLang, "lang", "it", "preferred gloss language")
	interactiveCmd.Flags().IntVar(&interactiveLimit, "limit", 0, "max results (0 = config default)")
	rootCmd.AddCommand(interactiveCmd)
}
