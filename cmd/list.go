package cmd

import (
	"github.com/spf13/cobra"
)

// listCmd lists the loaded dashboards.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List dashboards",
	Long: `List the dashboards in the layout file. The current dashboard is
marked with *.

Examples:
  dashkit list
  dashkit list --layouts ops.yaml -f json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	configs := ctx.Editor.Dashboards()
	currentID := ctx.Editor.Current().DashboardID

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintDashboards(configs, currentID)
	}

	ctx.CLIFormatter().PrintDashboardList(configs, currentID)
	return nil
}
