package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	kanjiList  bool
	kanjiStart int
	kanjiLimit int
)

var kanjiCmd = &cobra.Command{
	Use:   "kanji [character]",
	Short: "Kanji card or list by school order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		if kanjiList {
			rows, err := a.assembler.KanjiByOrder(kanjiStart, kanjiLimit)
			if err != nil {
				return err
			}
			return printJSON(rows)
		}

		literal := "亜"
		if len(args) == 1 {
			literal = args[0]
		}
		runes := []rune(literal)
		if len(runes) != 1 {
			return fmt.Errorf("expected a single character, got %q", literal)
		}
		c, err := a.assembler.Kanji(runes[0])
		if err != nil {
			return err
		}
		return printJSON(c)
	},
}

func init() {
	kanjiCmd.Flags().BoolVar(&kanjiList, "list", false, "list kanji by overall school order")
	kanjiCmd.Flags().IntVar(&kanjiStart, "start", 1, "start position for --list (1-based)")
	kanjiCmd.Flags().IntVar(&kanjiLimit, "limit", 20, "max rows for --list")
	rootCmd.AddCommand(kanjiCmd)
}
