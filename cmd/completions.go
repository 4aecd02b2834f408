package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// completeDashboards returns a completion function for dashboard ids.
func completeDashboards(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 || ctx == nil || ctx.Editor == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var completions []string
	for _, c := range ctx.Editor.Dashboards() {
		if strings.HasPrefix(c.DashboardID, toComplete) {
			completions = append(completions, c.DashboardID+"\t"+describeDashboard(c.WidgetCount()))
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// completeScripts suggests script files, plus - for stdin.
func completeScripts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if toComplete == "" || toComplete == "-" {
		return []string{"-\tread from stdin"}, cobra.ShellCompDirectiveDefault
	}
	return nil, cobra.ShellCompDirectiveDefault
}

func describeDashboard(widgets int) string {
	if widgets == 1 {
		return "1 widget"
	}
	return fmt.Sprintf("%d widgets", widgets)
}
