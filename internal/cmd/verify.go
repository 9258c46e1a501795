package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// verifyReport is the JSON shape of the verification output.
type verifyReport struct {
	OK           bool   `json:"ok"`
	ProblemCount int    `json:"problem_count"`
	Problems     any    `json:"problems"`
	RepoRoot     string `json:"repo_root"`
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Structural validation of the dataset tree",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		problems := a.session.Verify()
		report := verifyReport{
			OK:           len(problems) == 0,
			ProblemCount: len(problems),
			Problems:     problems,
			RepoRoot:     flagRepoRoot,
		}
		if err := printJSON(report); err != nil {
			return err
		}
		if len(problems) > 0 {
			return fmt.Errorf("%d problems found", len(problems))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
