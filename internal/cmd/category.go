package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bastiangx/jishoserve/pkg/card"
)

var (
	categoryLang      string
	categoryID        string
	categoryLimit     int
	categoryWithWords bool
)

// categoryDetail is a shown category with its word cards attached.
type categoryDetail struct {
	card.CategoryWords
	Words []card.WordCard `json:"words,omitempty"`
}

var categoryCmd = &cobra.Command{
	Use:   "category <list|show>",
	Short: "Topical categories over the top common words",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		switch args[0] {
		case "list":
			rows, err := a.assembler.CategoryList(categoryLang)
			if err != nil {
				return err
			}
			return printJSON(rows)
		case "show":
			if categoryID == "" {
				return fmt.Errorf("category show requires --category-id")
			}
			words, err := a.assembler.CategoryShow(categoryID, categoryLimit)
			if err != nil {
				return err
			}
			out := categoryDetail{CategoryWords: words}
			if categoryWithWords {
				for _, wid := range words.WordIDs {
					c, err := a.assembler.Word(wid, categoryLang)
					if err != nil {
						return err
					}
					out.Words = append(out.Words, c)
				}
			}
			return printJSON(out)
		default:
			return fmt.Errorf("unknown category action %q", args[0])
		}
	},
}

func init() {
	categoryCmd.Flags().StringVar(&categoryLang, "lang", "en", "language for category titles and word cards")
	categoryCmd.Flags().StringVar(&categoryID, "category-id", "", "category to show")
	categoryCmd.Flags().IntVar(&categoryLimit, "limit", 50, "max word ids to show")
	categoryCmd.Flags().BoolVar(&categoryWithWords, "with-words", false, "include word cards when showing a category")
	rootCmd.AddCommand(categoryCmd)
}
