package cmd

import (
	"github.com/spf13/cobra"
)

// showCmd prints one dashboard's widget tree.
var showCmd = &cobra.Command{
	Use:   "show [ID]",
	Short: "Show a dashboard's widgets",
	Long: `Show the widget tree of a dashboard. Without an id the current
dashboard is shown.

Examples:
  dashkit show
  dashkit show ops -f json`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeDashboards,
	RunE:              runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := ctx.Editor.Current()
	if len(args) == 1 {
		var err error
		cfg, err = ctx.Editor.Select(args[0])
		if err != nil {
			return err
		}
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDashboard(cfg)
	}

	cli := ctx.CLIFormatter()
	cli.PrintDashboard(cfg)
	cli.PrintUndoStatus(ctx.Editor.Status())
	return nil
}
