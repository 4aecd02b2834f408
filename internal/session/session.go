// Package session runs parsed scripts against an editor. Each command runs
// inside a tracing span and yields a Result; rejected commands are results,
// not errors.
package session

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/manav03panchal/dashkit/internal/editor"
	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/logging"
	"github.com/manav03panchal/dashkit/internal/model"
	"github.com/manav03panchal/dashkit/internal/parser"
	"github.com/manav03panchal/dashkit/internal/store"
	"github.com/manav03panchal/dashkit/internal/telemetry"
)

// Result is the outcome of one command.
type Result struct {
	Command     parser.Command
	Success     bool
	Message     string
	DashboardID string // current dashboard after the command
	Err         error  // set when a dashboard command failed with a user error

	// Command-specific payloads.
	Config     *model.DashboardConfig  // show and widget mutations
	Dashboards []model.DashboardConfig // list
	Status     *model.UndoStatus       // status, undo, redo
	NextKey    model.WidgetKey         // next-key
}

// Report collects the results of a script run.
type Report struct {
	Results  []Result
	Applied  int
	Rejected int
	Stopped  bool // the run stopped at a rejected command
}

// Options configures a runner.
type Options struct {
	// StopOnReject stops the run at the first unsuccessful command.
	StopOnReject bool
	// Unique makes every add reject keys already placed.
	Unique bool
}

// Runner executes commands against an editor.
type Runner struct {
	editor *editor.Editor
	opts   Options
}

// NewRunner creates a runner over ed.
func NewRunner(ed *editor.Editor, opts Options) *Runner {
	return &Runner{editor: ed, opts: opts}
}

// Run executes cmds in order. It returns an error when ctx is cancelled, or
// when StopOnReject is set and a command is rejected; the report holds every
// result produced so far in both cases.
func (r *Runner) Run(ctx context.Context, cmds []parser.Command) (*Report, error) {
	start := time.Now()
	ctx, span := telemetry.StartSpan(ctx, "script.run", trace.WithAttributes(telemetry.IntAttr("dashkit.commands", len(cmds))))
	defer span.End()

	report := &Report{}
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			telemetry.RecordError(span, err)
			return report, err
		}

		res := r.Execute(ctx, cmd)
		report.Results = append(report.Results, res)
		if res.Success {
			report.Applied++
			continue
		}

		report.Rejected++
		if r.opts.StopOnReject {
			report.Stopped = true
			err := errors.NewUserErrorWithField("script", cmd.Raw,
				fmt.Sprintf("line %d: %s", cmd.Line, res.Message), "").
				WithCause(errors.ErrMutationRejected)
			telemetry.SetRejected(span, err.Error())
			return report, err
		}
	}

	logging.LoggerFromContext(ctx).Debug("script finished",
		logging.KeyCount, len(report.Results),
		logging.KeyDuration, time.Since(start).Milliseconds(),
	)
	telemetry.SetOK(span)
	return report, nil
}

// Execute runs a single command.
func (r *Runner) Execute(ctx context.Context, cmd parser.Command) Result {
	_, span := telemetry.StartSpan(ctx, "script."+string(cmd.Op),
		trace.WithAttributes(
			telemetry.IntAttr("dashkit.line", cmd.Line),
			telemetry.StringAttr("dashkit.dashboard", r.editor.Current().DashboardID),
		),
	)
	defer span.End()

	if cmd.WidgetKey != "" {
		span.SetAttributes(telemetry.StringAttr("dashkit.widget", cmd.WidgetKey.String()))
	}

	res := r.execute(cmd)
	res.Command = cmd
	res.DashboardID = r.editor.Current().DashboardID

	log := logging.LoggerFromContext(ctx)
	if res.Success {
		telemetry.SetOK(span)
		log.Debug("command applied", logging.KeyLine, cmd.Line, logging.KeyOperation, string(cmd.Op))
	} else {
		telemetry.SetRejected(span, res.Message)
		log.Debug("command rejected",
			logging.KeyLine, cmd.Line,
			logging.KeyOperation, string(cmd.Op),
			logging.KeyReason, res.Message,
		)
	}
	return res
}

func (r *Runner) execute(cmd parser.Command) Result {
	ed := r.editor

	switch cmd.Op {
	case parser.OpNew:
		cfg, err := ed.NewDashboard(cmd.DashboardID)
		if err != nil {
			return failed(err)
		}
		return Result{Success: true, Message: "created " + cfg.DashboardID, Config: &cfg}

	case parser.OpSelect:
		cfg, err := ed.Select(cmd.DashboardID)
		if err != nil {
			return failed(err)
		}
		return Result{Success: true, Message: "selected " + cfg.DashboardID, Config: &cfg}

	case parser.OpDelete:
		if err := ed.Delete(cmd.DashboardID); err != nil {
			return failed(err)
		}
		return Result{Success: true, Message: "deleted " + cmd.DashboardID}

	case parser.OpAdd:
		return mutation(ed.AddWidget(cmd.WidgetKey, cmd.ParentWidgetKey, cmd.Unique || r.opts.Unique),
			"added "+placement(cmd.WidgetKey, cmd.ParentWidgetKey))

	case parser.OpRemove:
		return mutation(ed.RemoveWidget(cmd.WidgetKey, cmd.ParentWidgetKey),
			"removed "+placement(cmd.WidgetKey, cmd.ParentWidgetKey))

	case parser.OpMove:
		return mutation(ed.MoveWidget(cmd.Direction, cmd.WidgetKey, cmd.ParentWidgetKey),
			"moved "+cmd.WidgetKey.String()+" "+cmd.Direction.String())

	case parser.OpUndo:
		cfg, ok := ed.Undo()
		return historyStep(ed, cfg, ok, "undone", "nothing to undo")

	case parser.OpRedo:
		cfg, ok := ed.Redo()
		return historyStep(ed, cfg, ok, "redone", "nothing to redo")

	case parser.OpEdit:
		ed.SetEditing(cmd.On)
		if cmd.On {
			return Result{Success: true, Message: "editing on"}
		}
		return Result{Success: true, Message: "editing off"}

	case parser.OpTarget:
		ed.SetTarget(cmd.WidgetKey)
		if cmd.WidgetKey == "" {
			return Result{Success: true, Message: "target cleared"}
		}
		return Result{Success: true, Message: "target " + cmd.WidgetKey.String()}

	case parser.OpNextKey:
		key := ed.NextContainerKey(cmd.WidgetKey)
		return Result{Success: true, Message: key.String(), NextKey: key}

	case parser.OpList:
		all := ed.Dashboards()
		return Result{Success: true, Message: fmt.Sprintf("%d dashboards", len(all)), Dashboards: all}

	case parser.OpShow:
		cfg := ed.Current()
		if cmd.DashboardID != "" {
			found, ok := ed.Dashboard(cmd.DashboardID)
			if !ok {
				return failed(errors.NewUserErrorWithField("dashboardId", cmd.DashboardID,
					"Dashboard not found", "").WithCause(errors.ErrDashboardNotFound))
			}
			cfg = found
		}
		return Result{Success: true, Message: cfg.DashboardID, Config: &cfg}

	case parser.OpStatus:
		status := ed.Status()
		return Result{Success: true, Message: statusMessage(status), Status: &status}
	}

	return failed(errors.NewUserErrorWithField("command", string(cmd.Op), "Unknown command", "").
		WithCause(errors.ErrUnknownCommand))
}

func failed(err error) Result {
	return Result{Success: false, Message: err.Error(), Err: err}
}

func mutation(res store.MutationResult, applied string) Result {
	cfg := res.UpdatedDashboardConfig
	out := Result{Success: res.Success, Message: res.Message, Config: &cfg}
	if res.Success {
		out.Message = applied
	}
	return out
}

func historyStep(ed *editor.Editor, cfg model.DashboardConfig, ok bool, applied, none string) Result {
	status := ed.Status()
	out := Result{Success: ok, Message: none, Config: &cfg, Status: &status}
	if ok {
		out.Message = applied
	}
	return out
}

func placement(key, parent model.WidgetKey) string {
	if parent == "" {
		return key.String()
	}
	return key.String() + " to " + parent.String()
}

func statusMessage(s model.UndoStatus) string {
	return fmt.Sprintf("undo %s, redo %s (%d/%d)",
		availability(s.CanUndo()), availability(s.CanRedo()), s.CurrentIndex+1, s.HistoryLength)
}

func availability(ok bool) string {
	if ok {
		return "available"
	}
	return "unavailable"
}
