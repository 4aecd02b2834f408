package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/dashkit/internal/layoutfile"
	"github.com/manav03panchal/dashkit/internal/output"
)

// validateCmd checks a layout file.
var validateCmd = &cobra.Command{
	Use:   "validate [FILE]",
	Short: "Check a layout file",
	Long: `Check that a layout file parses and that every dashboard in it is
well formed. Without FILE the loaded layout file is checked.

Examples:
  dashkit validate
  dashkit validate ops.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ctx.LayoutsPath
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = layoutfile.DefaultPath()
	}

	configs, err := layoutfile.Load(path)
	if err != nil {
		return err
	}

	widgets := 0
	for _, c := range configs {
		widgets += c.WidgetCount()
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(&output.ValidateResponse{
			Status:     "ok",
			Path:       path,
			Dashboards: len(configs),
			Widgets:    widgets,
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("%s: %d dashboards, %d widgets", path, len(configs), widgets))
	return nil
}
