// Package editor composes the layout store, the undo history and the event
// bus into the editing workflow: every successful widget mutation is pushed
// to the history of the current dashboard, and undo/redo write snapshots back
// into the store.
package editor

import (
	"github.com/google/uuid"

	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/events"
	"github.com/manav03panchal/dashkit/internal/history"
	"github.com/manav03panchal/dashkit/internal/logging"
	"github.com/manav03panchal/dashkit/internal/model"
	"github.com/manav03panchal/dashkit/internal/store"
	"github.com/manav03panchal/dashkit/internal/validate"
)

// Options configures an editor.
type Options struct {
	// DefaultDashboardID is selected on Load when present. Default: "default".
	DefaultDashboardID string
	// NoDuplicatedWidgets rejects every add of a key already placed.
	NoDuplicatedWidgets bool
	// Bus carries store notifications and widget intents. Created when nil.
	Bus *events.Bus
}

// Editor is one editing session over a collection of dashboards. An Editor
// is driven from one goroutine; its store and history are individually safe
// for concurrent readers.
type Editor struct {
	store   *store.Store
	history *history.Tracker
	bus     *events.Bus
	emitter *events.WidgetEmitter
	opts    Options

	unsubscribe func()
	lastIntent  store.MutationResult
}

// New creates an editor holding only the blank dashboard.
func New(opts Options) *Editor {
	if opts.DefaultDashboardID == "" {
		opts.DefaultDashboardID = model.DefaultDashboardID
	}
	if opts.Bus == nil {
		opts.Bus = events.NewBus()
	}

	defaultID := opts.DefaultDashboardID
	e := &Editor{
		store: store.New(store.Options{
			Blank: func() model.DashboardConfig {
				return model.NewDashboardConfig(defaultID)
			},
			DefaultDashboardID: defaultID,
			Bus:                opts.Bus,
		}),
		history: history.New(),
		bus:     opts.Bus,
		emitter: events.NewWidgetEmitter(opts.Bus),
		opts:    opts,
	}
	e.unsubscribe = opts.Bus.Subscribe(e.handleIntent,
		events.KindRemoveClick, events.KindMoveClick, events.KindSelectContainer)
	e.history.InitializeHistoryForDashboard(e.store.CurrentDashboardConfig())
	return e
}

// Close stops the editor from handling widget intents.
func (e *Editor) Close() {
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
}

// =============================================================================
// Dashboards
// =============================================================================

// Load replaces the collection with configs and selects the default dashboard,
// or the first one in display order. All undo history is discarded.
func (e *Editor) Load(configs []model.DashboardConfig) model.DashboardConfig {
	e.store.SetIsLoading(true)
	defer e.store.SetIsLoading(false)

	e.history.ResetAllHistory()
	e.store.SetAllDashboardConfigs(configs)

	all := e.store.AllDashboardConfigs()
	current := model.NewDashboardConfig(e.opts.DefaultDashboardID)
	if len(all) > 0 {
		current = all[0]
	}
	e.store.SetCurrentDashboardConfig(current)
	e.history.InitializeHistoryForDashboard(current)

	logging.LogOperation("load", logging.KeyCount, len(configs), logging.KeyDashboard, current.DashboardID)
	return current
}

// NewDashboard adds an empty dashboard and selects it. An empty id is
// replaced by a generated one.
func (e *Editor) NewDashboard(id string) (model.DashboardConfig, error) {
	id = validate.SanitizeID(id)
	if id == "" {
		id = uuid.NewString()
	}
	if err := validate.DashboardID(id); err != nil {
		return model.DashboardConfig{}, err
	}
	if e.exists(id) {
		return model.DashboardConfig{}, errors.NewUserErrorWithField("dashboardId", id,
			"Dashboard already exists", "Use 'select "+id+"' to switch to it").
			WithCause(errors.ErrDuplicateDashboard)
	}

	cfg := model.NewDashboardConfig(id)
	e.store.AddDashboardConfig(cfg)
	e.history.InitializeHistoryForDashboard(cfg)
	return cfg, nil
}

// Select makes the dashboard with the given id current.
func (e *Editor) Select(id string) (model.DashboardConfig, error) {
	cfg, ok := e.store.SelectDashboardByID(id)
	if !ok {
		return model.DashboardConfig{}, notFound(id)
	}
	e.history.InitializeHistoryForDashboard(cfg)
	return cfg, nil
}

// Delete removes the dashboard with the given id and its history. When the
// last dashboard is deleted the blank dashboard takes its place.
func (e *Editor) Delete(id string) error {
	if !e.exists(id) {
		return notFound(id)
	}

	wasCurrent := e.store.CurrentDashboardID() == id
	remaining := e.store.DeleteDashboardConfigByID(id)
	e.history.RemoveUndoHistoryForDashboard(id)
	if len(remaining) == 0 {
		e.store.SetCurrentDashboardConfig(e.store.CurrentDashboardConfig())
	}
	// The current dashboard keeps its history unless it changed.
	if wasCurrent {
		e.history.InitializeHistoryForDashboard(e.store.CurrentDashboardConfig())
	}
	return nil
}

func (e *Editor) exists(id string) bool {
	for _, c := range e.store.AllDashboardConfigs() {
		if c.DashboardID == id {
			return true
		}
	}
	return false
}

func notFound(id string) error {
	return errors.NewUserErrorWithField("dashboardId", id, "Dashboard not found", "").
		WithCause(errors.ErrDashboardNotFound)
}

// =============================================================================
// Widgets
// =============================================================================

// AddWidget places widgetKey in parentWidgetKey, or at the root when parent is
// empty. While editing with a target container set, a parentless add goes to
// the target.
func (e *Editor) AddWidget(widgetKey, parentWidgetKey model.WidgetKey, unique bool) store.MutationResult {
	if err := validate.WidgetKey(widgetKey); err != nil {
		return e.rejected(err.Error())
	}
	if parentWidgetKey == "" && e.store.IsEditing() {
		parentWidgetKey = e.store.TargetContainerKey()
	}

	res := e.store.AddWidget(store.AddWidgetParams{
		WidgetKey:           widgetKey,
		ParentWidgetKey:     parentWidgetKey,
		NoDuplicatedWidgets: unique || e.opts.NoDuplicatedWidgets,
	})
	return e.record(res)
}

// RemoveWidget removes widgetKey from parentWidgetKey, or from the root.
func (e *Editor) RemoveWidget(widgetKey, parentWidgetKey model.WidgetKey) store.MutationResult {
	res := e.store.RemoveWidget(widgetKey, parentWidgetKey)
	if res.Success && widgetKey == e.store.TargetContainerKey() {
		e.store.SetTargetContainerKey("")
	}
	return e.record(res)
}

// MoveWidget moves widgetKey one step in direction within its sequence.
func (e *Editor) MoveWidget(direction model.Direction, widgetKey, parentWidgetKey model.WidgetKey) store.MutationResult {
	return e.record(e.store.MoveWidget(direction, widgetKey, parentWidgetKey))
}

func (e *Editor) record(res store.MutationResult) store.MutationResult {
	if res.Success {
		e.history.AddUndoEntry(res.UpdatedDashboardConfig)
	}
	return res
}

func (e *Editor) rejected(message string) store.MutationResult {
	return store.MutationResult{
		Success:                    false,
		Message:                    message,
		UpdatedDashboardConfig:     e.store.CurrentDashboardConfig(),
		AllUpdatedDashboardConfigs: e.store.Snapshot().AllDashboardConfigs,
	}
}

// =============================================================================
// History
// =============================================================================

// Undo restores the previous snapshot of the current dashboard. It reports
// false when there is nothing to undo.
func (e *Editor) Undo() (model.DashboardConfig, bool) {
	cfg, ok := e.history.GetPreviousChanges(e.store.CurrentDashboardID())
	if !ok {
		return e.store.CurrentDashboardConfig(), false
	}
	e.store.SetCurrentDashboardConfig(cfg)
	return cfg, true
}

// Redo restores the next snapshot of the current dashboard. It reports false
// when there is nothing to redo.
func (e *Editor) Redo() (model.DashboardConfig, bool) {
	cfg, ok := e.history.GetNextChanges(e.store.CurrentDashboardID())
	if !ok {
		return e.store.CurrentDashboardConfig(), false
	}
	e.store.SetCurrentDashboardConfig(cfg)
	return cfg, true
}

// Status reports undo/redo availability for the current dashboard.
func (e *Editor) Status() model.UndoStatus {
	return e.history.GetUndoStatus()
}

// =============================================================================
// Editing state
// =============================================================================

// SetEditing turns edit mode on or off.
func (e *Editor) SetEditing(on bool) {
	e.store.SetIsEditing(on)
}

// SetTarget sets the container parentless adds go to. An empty key clears it.
func (e *Editor) SetTarget(containerKey model.WidgetKey) {
	e.store.SetTargetContainerKey(containerKey)
}

// NextContainerKey returns the key for a new container under containerWidgetKey.
func (e *Editor) NextContainerKey(containerWidgetKey model.WidgetKey) model.WidgetKey {
	return e.store.NextContainerKey(containerWidgetKey)
}

// Dashboards returns every dashboard in display order.
func (e *Editor) Dashboards() []model.DashboardConfig {
	return e.store.AllDashboardConfigs()
}

// Current returns the current dashboard.
func (e *Editor) Current() model.DashboardConfig {
	return e.store.CurrentDashboardConfig()
}

// Dashboard returns the dashboard with the given id.
func (e *Editor) Dashboard(id string) (model.DashboardConfig, bool) {
	for _, c := range e.store.AllDashboardConfigs() {
		if c.DashboardID == id {
			return c, true
		}
	}
	return model.DashboardConfig{}, false
}

// State returns a snapshot of the underlying store.
func (e *Editor) State() store.State {
	return e.store.Snapshot()
}

// Bus returns the bus the editor publishes on.
func (e *Editor) Bus() *events.Bus {
	return e.bus
}

// =============================================================================
// Widget intents
// =============================================================================

// Emitter returns an emitter whose intents this editor handles.
func (e *Editor) Emitter() *events.WidgetEmitter {
	return e.emitter
}

// LastIntentResult returns the result of the last remove or move intent.
func (e *Editor) LastIntentResult() store.MutationResult {
	return e.lastIntent
}

func (e *Editor) handleIntent(ev events.Event) {
	switch ev.Kind {
	case events.KindRemoveClick:
		e.lastIntent = e.RemoveWidget(ev.WidgetKey, ev.ParentWidgetKey)
	case events.KindMoveClick:
		e.lastIntent = e.MoveWidget(ev.Direction, ev.WidgetKey, ev.ParentWidgetKey)
	case events.KindSelectContainer:
		e.SetTarget(ev.WidgetKey)
	}
}
