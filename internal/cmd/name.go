package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bastiangx/jishoserve/pkg/card"
	"github.com/bastiangx/jishoserve/pkg/search"
)

var (
	nameID      int64
	nameQuery   string
	nameLimit   int
	nameMaxKeys int
)

var nameCmd = &cobra.Command{
	Use:   "name",
	Short: "Name card (by id) or search by surface prefix",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("id") {
			c, err := a.assembler.Name(nameID)
			if err != nil {
				return err
			}
			return printJSON(c)
		}

		opts := search.Options{Limit: nameLimit, MaxKeys: nameMaxKeys}
		hits, err := a.engine.Search(search.DomainNames, search.ModeSurface, nameQuery, opts)
		if err != nil {
			return err
		}
		cards := make([]card.NameCard, 0, len(hits))
		for _, hit := range hits {
			c, err := a.assembler.Name(hit.ID)
			if err != nil {
				return err
			}
			cards = append(cards, c)
		}
		return printJSON(cards)
	},
}

func init() {
	nameCmd.Flags().Int64Var(&nameID, "id", 0, "name id")
	nameCmd.Flags().StringVar(&nameQuery, "query", "", "surface prefix query")
	nameCmd.Flags().IntVar(&nameLimit, "limit", 10, "max results")
	nameCmd.Flags().IntVar(&nameMaxKeys, "max-keys", 250, "max matched keys to scan")
	nameCmd.MarkFlagsOneRequired("id", "query")
	nameCmd.MarkFlagsMutuallyExclusive("id", "query")
	rootCmd.AddCommand(nameCmd)
}
