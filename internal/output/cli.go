package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/dashkit/internal/model"
	"github.com/manav03panchal/dashkit/internal/parser"
	"github.com/manav03panchal/dashkit/internal/session"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow
	colorError     = lipgloss.Color("#EF4444") // Red
	colorSuccess   = lipgloss.Color("#10B981") // Green

	// Styles
	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleDashboard = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleContainer = lipgloss.NewStyle().
			Foreground(colorSecondary)
)

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(style lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return style.Render(text)
	}
	return text
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// DashboardName formats a dashboard id.
func (c *CLIFormatter) DashboardName(id string) string {
	return c.render(styleDashboard, id)
}

// WidgetName formats a widget key, highlighting containers.
func (c *CLIFormatter) WidgetName(key string, container bool) string {
	if container {
		return c.render(styleContainer, key)
	}
	return key
}

// PrintDashboard prints a dashboard as a widget tree.
func (c *CLIFormatter) PrintDashboard(cfg model.DashboardConfig) {
	header := c.DashboardName(cfg.DashboardID)
	if cfg.ResponsiveGrid {
		header += c.render(styleMuted, " (responsive)")
	}
	c.Println(header)

	roots, unplaced := BuildTree(cfg)
	if len(roots) == 0 {
		c.Muted("  (no widgets)")
	}
	c.printNodes(roots, "  ")

	if len(unplaced) > 0 {
		c.Warning(fmt.Sprintf("%d unplaced child entries", len(unplaced)))
		for _, e := range unplaced {
			c.Printf("  %s → %s\n", e.ParentWidgetKey, e.WidgetKey)
		}
	}
}

func (c *CLIFormatter) printNodes(nodes []WidgetNode, indent string) {
	for i, n := range nodes {
		branch, next := "├── ", "│   "
		if i == len(nodes)-1 {
			branch, next = "└── ", "    "
		}
		c.Printf("%s%s%s\n", indent, branch, c.WidgetName(n.Key, n.Container))
		c.printNodes(n.Children, indent+next)
	}
}

// PrintDashboardList prints one row per dashboard, marking the current one.
func (c *CLIFormatter) PrintDashboardList(configs []model.DashboardConfig, currentID string) {
	if len(configs) == 0 {
		c.Muted("No dashboards.")
		return
	}

	rows := make([]TableRow, len(configs))
	for i, cfg := range configs {
		marker := " "
		if cfg.DashboardID == currentID {
			marker = "*"
		}
		rows[i] = TableRow{Columns: []string{
			marker,
			cfg.DashboardID,
			fmt.Sprintf("%d", len(cfg.Widgets)),
			fmt.Sprintf("%d", len(cfg.ChildWidgetsConfig)),
		}}
	}
	c.PrintTable([]string{"", "DASHBOARD", "WIDGETS", "NESTED"}, rows)
}

// PrintUndoStatus prints undo/redo availability.
func (c *CLIFormatter) PrintUndoStatus(status model.UndoStatus) {
	c.Printf("Undo: %s  Redo: %s  Position: %d/%d\n",
		c.availability(status.CanUndo()),
		c.availability(status.CanRedo()),
		status.CurrentIndex+1,
		status.HistoryLength,
	)
}

func (c *CLIFormatter) availability(ok bool) string {
	if ok {
		return c.render(styleSuccess, "available")
	}
	return c.render(styleMuted, "unavailable")
}

// PrintResult prints the outcome of one script command. Query commands print
// their payload below the result line.
func (c *CLIFormatter) PrintResult(res session.Result) {
	line := fmt.Sprintf("%3d  %s: %s", res.Command.Line, res.Command.Op, res.Message)
	if res.Success {
		c.Success(line)
	} else {
		c.Error(line)
	}

	switch {
	case res.Dashboards != nil:
		c.PrintDashboardList(res.Dashboards, res.DashboardID)
	case res.Command.Op == parser.OpShow && res.Config != nil:
		c.PrintDashboard(*res.Config)
	case res.Command.Op == parser.OpStatus && res.Status != nil:
		c.PrintUndoStatus(*res.Status)
	}
}

// PrintReport prints every result followed by a summary.
func (c *CLIFormatter) PrintReport(report *session.Report) {
	for _, res := range report.Results {
		c.PrintResult(res)
	}
	summary := fmt.Sprintf("%d applied, %d rejected", report.Applied, report.Rejected)
	if report.Stopped {
		summary += ", stopped"
	}
	c.Muted(summary)
}

// TableRow is one row of a CLI table.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	// Print headers
	var headerLine strings.Builder
	for i, h := range headers {
		fmt.Fprintf(&headerLine, "%-*s  ", widths[i], h)
	}
	c.Println(c.render(styleBold, strings.TrimRight(headerLine.String(), " ")))

	// Print separator
	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	// Print rows
	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				fmt.Fprintf(&rowLine, "%-*s  ", widths[i], col)
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}
