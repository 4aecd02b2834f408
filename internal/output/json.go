package output

import (
	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/model"
	"github.com/manav03panchal/dashkit/internal/session"
)

// JSONFormatter provides JSON-specific formatting.
type JSONFormatter struct {
	*Formatter
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(f *Formatter) *JSONFormatter {
	return &JSONFormatter{Formatter: f}
}

// DashboardOutput represents a dashboard in JSON output.
type DashboardOutput struct {
	DashboardID        string                   `json:"dashboardId"`
	Widgets            []model.WidgetKey        `json:"widgets"`
	ChildWidgetsConfig []model.ChildWidgetEntry `json:"childWidgetsConfig"`
	ResponsiveGrid     bool                     `json:"responsiveGrid,omitempty"`
	Tree               []WidgetNode             `json:"tree"`
	Unplaced           []model.ChildWidgetEntry `json:"unplaced,omitempty"`
}

// NewDashboardOutput creates a DashboardOutput from a configuration.
func NewDashboardOutput(cfg model.DashboardConfig) *DashboardOutput {
	clone := cfg.Clone()
	tree, unplaced := BuildTree(clone)
	return &DashboardOutput{
		DashboardID:        clone.DashboardID,
		Widgets:            clone.Widgets,
		ChildWidgetsConfig: clone.ChildWidgetsConfig,
		ResponsiveGrid:     clone.ResponsiveGrid,
		Tree:               tree,
		Unplaced:           unplaced,
	}
}

// DashboardsResponse represents the dashboard list in JSON.
type DashboardsResponse struct {
	Current    string             `json:"current"`
	Dashboards []*DashboardOutput `json:"dashboards"`
	TotalCount int                `json:"total_count"`
}

// NewDashboardsResponse creates a DashboardsResponse.
func NewDashboardsResponse(configs []model.DashboardConfig, currentID string) *DashboardsResponse {
	outputs := make([]*DashboardOutput, len(configs))
	for i, c := range configs {
		outputs[i] = NewDashboardOutput(c)
	}
	return &DashboardsResponse{
		Current:    currentID,
		Dashboards: outputs,
		TotalCount: len(configs),
	}
}

// StatusOutput represents undo/redo availability in JSON.
type StatusOutput struct {
	IsUndoDisabled bool `json:"isUndoDisabled"`
	IsRedoDisabled bool `json:"isRedoDisabled"`
	CurrentIndex   int  `json:"currentIndex"`
	HistoryLength  int  `json:"historyLength"`
}

// NewStatusOutput creates a StatusOutput.
func NewStatusOutput(s model.UndoStatus) *StatusOutput {
	return &StatusOutput{
		IsUndoDisabled: s.IsUndoDisabled,
		IsRedoDisabled: s.IsRedoDisabled,
		CurrentIndex:   s.CurrentIndex,
		HistoryLength:  s.HistoryLength,
	}
}

// ResultOutput represents one script command result in JSON.
type ResultOutput struct {
	Line        int                `json:"line"`
	Command     string             `json:"command"`
	Op          string             `json:"op"`
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	DashboardID string             `json:"dashboard_id"`
	Dashboard   *DashboardOutput   `json:"dashboard,omitempty"`
	Dashboards  []*DashboardOutput `json:"dashboards,omitempty"`
	Status      *StatusOutput      `json:"status,omitempty"`
	NextKey     string             `json:"next_key,omitempty"`
}

// NewResultOutput creates a ResultOutput from a session result.
func NewResultOutput(res session.Result) *ResultOutput {
	out := &ResultOutput{
		Line:        res.Command.Line,
		Command:     res.Command.Raw,
		Op:          string(res.Command.Op),
		Success:     res.Success,
		Message:     res.Message,
		DashboardID: res.DashboardID,
		NextKey:     res.NextKey.String(),
	}
	if res.Config != nil {
		out.Dashboard = NewDashboardOutput(*res.Config)
	}
	if res.Dashboards != nil {
		out.Dashboards = NewDashboardsResponse(res.Dashboards, res.DashboardID).Dashboards
	}
	if res.Status != nil {
		out.Status = NewStatusOutput(*res.Status)
	}
	return out
}

// RunResponse represents the run command output in JSON.
type RunResponse struct {
	Status   string           `json:"status"`
	Results  []*ResultOutput  `json:"results"`
	Applied  int              `json:"applied"`
	Rejected int              `json:"rejected"`
	Stopped  bool             `json:"stopped"`
	Current  *DashboardOutput `json:"current"`
	Undo     *StatusOutput    `json:"undo"`
	Exported string           `json:"exported,omitempty"`
}

// NewRunResponse creates a RunResponse from a session report.
func NewRunResponse(report *session.Report, current model.DashboardConfig, status model.UndoStatus) *RunResponse {
	results := make([]*ResultOutput, len(report.Results))
	for i, r := range report.Results {
		results[i] = NewResultOutput(r)
	}
	st := "ok"
	if report.Stopped {
		st = "stopped"
	}
	return &RunResponse{
		Status:   st,
		Results:  results,
		Applied:  report.Applied,
		Rejected: report.Rejected,
		Stopped:  report.Stopped,
		Current:  NewDashboardOutput(current),
		Undo:     NewStatusOutput(status),
	}
}

// NextKeyResponse represents the next-key command output in JSON.
type NextKeyResponse struct {
	DashboardID string `json:"dashboard_id"`
	Parent      string `json:"parent"`
	NextKey     string `json:"next_key"`
}

// ValidateResponse represents the validate command output in JSON.
type ValidateResponse struct {
	Status     string `json:"status"`
	Path       string `json:"path"`
	Dashboards int    `json:"dashboards"`
	Widgets    int    `json:"widgets"`
}

// ErrorResponse represents an error in JSON.
type ErrorResponse struct {
	Status     string `json:"status"`
	Error      string `json:"error"`
	Category   string `json:"category"`
	Suggestion string `json:"suggestion,omitempty"`
}

// NewErrorResponse creates an ErrorResponse from an error.
func NewErrorResponse(err error) *ErrorResponse {
	return &ErrorResponse{
		Status:     "error",
		Error:      err.Error(),
		Category:   errors.Classify(err).String(),
		Suggestion: errors.GetSuggestion(err),
	}
}

// PrintDashboard prints a dashboard in JSON.
func (j *JSONFormatter) PrintDashboard(cfg model.DashboardConfig) error {
	return j.JSON(NewDashboardOutput(cfg))
}

// PrintDashboards prints the dashboard list in JSON.
func (j *JSONFormatter) PrintDashboards(configs []model.DashboardConfig, currentID string) error {
	return j.JSON(NewDashboardsResponse(configs, currentID))
}

// PrintRun prints a script run in JSON.
func (j *JSONFormatter) PrintRun(resp *RunResponse) error {
	return j.JSON(resp)
}

// PrintError prints an error in JSON.
func (j *JSONFormatter) PrintError(err error) error {
	return j.JSON(NewErrorResponse(err))
}
