package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Zachkp/devfolio/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the portfolio in the terminal",
	Long: `Opens a full-screen terminal rendition of the page. Number keys jump to
sections, m opens the menu, tab and enter open project details, r opens the
resume and esc closes overlays.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPortfolio("")
		if err != nil {
			return err
		}
		return preview.Run(cmd.Context(), p)
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
