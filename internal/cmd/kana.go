package cmd

import (
	"github.com/spf13/cobra"
)

var kanaCmd = &cobra.Command{
	Use:   "kana <symbol>",
	Short: "Kana card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		c, err := a.assembler.Kana(args[0])
		if err != nil {
			return err
		}
		return printJSON(c)
	},
}

func init() {
	rootCmd.AddCommand(kanaCmd)
}
