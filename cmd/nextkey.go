package cmd

import (
	"github.com/spf13/cobra"

	"github.com/manav03panchal/dashkit/internal/model"
	"github.com/manav03panchal/dashkit/internal/output"
	"github.com/manav03panchal/dashkit/internal/validate"
)

var nextKeyDashboard string

// nextKeyCmd prints the key a new container would get.
var nextKeyCmd = &cobra.Command{
	Use:   "next-key [PARENT]",
	Short: "Print the next container key",
	Long: `Print the key the next container generated under PARENT would get on
a dashboard. PARENT defaults to WidgetContainer.

Examples:
  dashkit next-key
  dashkit next-key WidgetContainerRow --dashboard ops`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNextKey,
}

func init() {
	nextKeyCmd.Flags().StringVar(&nextKeyDashboard, "dashboard", "",
		"Dashboard to inspect (default: current)")
	_ = nextKeyCmd.RegisterFlagCompletionFunc("dashboard", completeDashboards)

	rootCmd.AddCommand(nextKeyCmd)
}

func runNextKey(cmd *cobra.Command, args []string) error {
	parent := model.WidgetKey(model.WidgetContainerMarker)
	if len(args) == 1 {
		parent = model.WidgetKey(args[0])
		if err := validate.WidgetKey(parent); err != nil {
			return err
		}
	}

	if nextKeyDashboard != "" {
		if _, err := ctx.Editor.Select(nextKeyDashboard); err != nil {
			return err
		}
	}

	dashboardID := ctx.Editor.Current().DashboardID
	key := ctx.Editor.NextContainerKey(parent)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(&output.NextKeyResponse{
			DashboardID: dashboardID,
			Parent:      parent.String(),
			NextKey:     key.String(),
		})
	}

	ctx.Formatter.Println(key.String())
	return nil
}
