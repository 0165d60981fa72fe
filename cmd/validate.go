package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a portfolio content file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		p, err := loadPortfolio(path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ok: %d sections, %d projects\n", len(p.Sections), len(p.Projects))
		for _, pr := range p.Projects {
			if !pr.HasDemo() {
				fmt.Fprintf(out, "  project %d %q has no live demo\n", pr.ID, pr.Title)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
