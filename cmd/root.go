package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zachkp/devfolio/internal/content"
)

var contentPath string

var rootCmd = &cobra.Command{
	Use:   "devfolio",
	Short: "Single-page developer portfolio",
	Long: `devfolio serves a single-page portfolio. The page is rendered from a
YAML content table; section tracking, smooth navigation and the detail
overlays run in a Go WebAssembly module in the browser, and the same page
logic drives a terminal preview.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentPath, "content", "", "portfolio YAML file (default: compiled-in content, or CONTENT_PATH)")
}

// loadPortfolio reads path, or else the --content file, or else
// CONTENT_PATH, or else the compiled-in table.
func loadPortfolio(path string) (*content.Portfolio, error) {
	if path == "" {
		path = contentPath
	}
	if path == "" {
		path = os.Getenv("CONTENT_PATH")
	}
	p, err := content.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	return p, nil
}
