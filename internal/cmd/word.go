package cmd

import (
	"github.com/spf13/cobra"
)

var (
	wordID    int64
	wordQuery string
	wordLimit int
	wordLang  string
)

var wordCmd = &cobra.Command{
	Use:   "word",
	Short: "Word card (by id) or exact lookup (by query)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("id") {
			c, err := a.assembler.Word(wordID, wordLang)
			if err != nil {
				return err
			}
			return printJSON(c)
		}
		cards, err := a.assembler.LookupWord(wordQuery, wordLimit, wordLang)
		if err != nil {
			return err
		}
		return printJSON(cards)
	},
}

func init() {
	wordCmd.Flags().Int64Var(&wordID, "id", 0, "word id")
	wordCmd.Flags().StringVar(&wordQuery, "query", "", "exact lookup query")
	wordCmd.Flags().IntVar(&wordLimit, "limit", 10, "max lookup results")
	wordCmd.Flags().StringVar(&wordLang, "lang", "it", "preferred gloss language")
	wordCmd.MarkFlagsOneRequired("id", "query")
	wordCmd.MarkFlagsMutuallyExclusive("id", "query")
	rootCmd.AddCommand(wordCmd)
}
