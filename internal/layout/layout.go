// Package layout implements the pure dashboard layout operations: adding,
// removing and moving widgets, container key generation and container
// renumbering. Every function takes a configuration by value and returns a
// new one; inputs are never modified.
package layout

import (
	"fmt"

	"github.com/manav03panchal/dashkit/internal/model"
)

// Response is the outcome of a layout operation.
type Response struct {
	Success bool
	Message string
	Config  model.DashboardConfig

	// RemovedContainer is set when a container was removed from a parent.
	RemovedContainer bool
}

// AddWidgetParams describes a widget placement request.
type AddWidgetParams struct {
	WidgetKey           model.WidgetKey
	ParentWidgetKey     model.WidgetKey // empty for root level
	NoDuplicatedWidgets bool
}

func rejected(cfg model.DashboardConfig, format string, args ...any) Response {
	return Response{
		Success: false,
		Message: fmt.Sprintf(format, args...),
		Config:  cfg.Clone(),
	}
}

// AddWidget appends a widget to the root list or to a container.
func AddWidget(cfg model.DashboardConfig, params AddWidgetParams) Response {
	if params.ParentWidgetKey != "" {
		if params.NoDuplicatedWidgets && cfg.HasChild(params.ParentWidgetKey, params.WidgetKey) {
			return rejected(cfg, "widget %s is already in container %s",
				params.WidgetKey, params.ParentWidgetKey)
		}
		out := cfg.Clone()
		out.ChildWidgetsConfig = append(out.ChildWidgetsConfig, model.ChildWidgetEntry{
			ParentWidgetKey: params.ParentWidgetKey,
			WidgetKey:       params.WidgetKey,
		})
		return Response{Success: true, Config: out}
	}

	if params.NoDuplicatedWidgets && cfg.HasWidget(params.WidgetKey) {
		return rejected(cfg, "widget %s is already on the dashboard", params.WidgetKey)
	}
	out := cfg.Clone()
	out.Widgets = append(out.Widgets, params.WidgetKey)
	return Response{Success: true, Config: out}
}

// RemoveWidget drops a widget from a container or from the root list.
// Removing a root widget also drops every child entry it hosts. Callers
// renumber containers when RemovedContainer is set.
func RemoveWidget(cfg model.DashboardConfig, widgetKey, parentWidgetKey model.WidgetKey) Response {
	out := cfg.Clone()

	if parentWidgetKey != "" {
		children := out.ChildWidgetsConfig[:0]
		for _, e := range out.ChildWidgetsConfig {
			if e.ParentWidgetKey == parentWidgetKey && e.WidgetKey == widgetKey {
				continue
			}
			children = append(children, e)
		}
		out.ChildWidgetsConfig = children
		return Response{
			Success:          true,
			Config:           out,
			RemovedContainer: widgetKey.IsContainer(),
		}
	}

	widgets := out.Widgets[:0]
	for _, w := range out.Widgets {
		if w != widgetKey {
			widgets = append(widgets, w)
		}
	}
	out.Widgets = widgets

	children := out.ChildWidgetsConfig[:0]
	for _, e := range out.ChildWidgetsConfig {
		if e.ParentWidgetKey != widgetKey {
			children = append(children, e)
		}
	}
	out.ChildWidgetsConfig = children

	return Response{Success: true, Config: out}
}

// MoveWidget shifts a widget one step within the sequence it belongs to: the
// root list, or its siblings inside parentWidgetKey.
func MoveWidget(cfg model.DashboardConfig, direction model.Direction, widgetKey, parentWidgetKey model.WidgetKey) Response {
	if !direction.Valid() {
		return rejected(cfg, "invalid move direction %d", int(direction))
	}

	if parentWidgetKey == "" {
		moved, msg, ok := moveInSequence(cfg.Widgets, direction, widgetKey)
		if !ok {
			return rejected(cfg, "%s", msg)
		}
		out := cfg.Clone()
		out.Widgets = moved
		return Response{Success: true, Config: out}
	}

	// Positions of the siblings inside the full child list.
	var positions []int
	var siblings []model.WidgetKey
	for i, e := range cfg.ChildWidgetsConfig {
		if e.ParentWidgetKey == parentWidgetKey {
			positions = append(positions, i)
			siblings = append(siblings, e.WidgetKey)
		}
	}

	moved, msg, ok := moveInSequence(siblings, direction, widgetKey)
	if !ok {
		return rejected(cfg, "%s", msg)
	}

	out := cfg.Clone()
	for i, pos := range positions {
		out.ChildWidgetsConfig[pos] = model.ChildWidgetEntry{
			ParentWidgetKey: parentWidgetKey,
			WidgetKey:       moved[i],
		}
	}
	return Response{Success: true, Config: out}
}

// moveInSequence returns a copy of seq with key moved one step, or a reason
// why the move is a no-op.
func moveInSequence(seq []model.WidgetKey, direction model.Direction, key model.WidgetKey) ([]model.WidgetKey, string, bool) {
	current := -1
	for i, k := range seq {
		if k == key {
			current = i
			break
		}
	}
	if current < 0 {
		return nil, fmt.Sprintf("widget %s not found", key), false
	}

	next := clamp(current+int(direction), 0, len(seq)-1)
	if next == current {
		return nil, fmt.Sprintf("cannot move widget %s %s: already at the boundary", key, direction), false
	}

	out := make([]model.WidgetKey, 0, len(seq))
	out = append(out, seq[:current]...)
	out = append(out, seq[current+1:]...)
	out = append(out[:next], append([]model.WidgetKey{key}, out[next:]...)...)
	return out, "", true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
