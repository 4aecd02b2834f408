// Package store holds the dashboard layout state: the known dashboard
// configurations, the current one and the editing flags. Widget mutations are
// delegated to the layout package; the store decides what to keep.
package store

import (
	"sync"

	"github.com/manav03panchal/dashkit/internal/events"
	"github.com/manav03panchal/dashkit/internal/layout"
	"github.com/manav03panchal/dashkit/internal/logging"
	"github.com/manav03panchal/dashkit/internal/model"
)

// State is a snapshot of the store.
type State struct {
	IsLoading              bool
	IsEditing              bool
	AllDashboardConfigs    []model.DashboardConfig
	CurrentDashboardConfig model.DashboardConfig
	TargetContainerKey     model.WidgetKey // empty when no container is targeted
}

// MutationResult is returned by every widget mutation. AllUpdatedDashboardConfigs
// always holds the full collection with UpdatedDashboardConfig reinserted by
// id, even when Success is false.
type MutationResult struct {
	Success                    bool
	Message                    string
	UpdatedDashboardConfig     model.DashboardConfig
	AllUpdatedDashboardConfigs []model.DashboardConfig
}

// Options configures a store.
type Options struct {
	// Blank produces the placeholder configuration. Default: model.Blank.
	Blank func() model.DashboardConfig
	// EnsureContainersSequence renumbers containers after a container removal.
	// Default: layout.EnsureContainersSequence.
	EnsureContainersSequence func(model.DashboardConfig) model.DashboardConfig
	// DefaultDashboardID sorts first in AllDashboardConfigs. Default: "default".
	DefaultDashboardID string
	// Bus receives change notifications. Optional.
	Bus *events.Bus
}

// Store is the layout state container. A Store is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	state State
	opts  Options
}

// New creates a store seeded with the blank placeholder configuration.
func New(opts Options) *Store {
	if opts.Blank == nil {
		opts.Blank = model.Blank
	}
	if opts.EnsureContainersSequence == nil {
		opts.EnsureContainersSequence = layout.EnsureContainersSequence
	}
	if opts.DefaultDashboardID == "" {
		opts.DefaultDashboardID = model.DefaultDashboardID
	}

	blank := opts.Blank()
	return &Store{
		opts: opts,
		state: State{
			AllDashboardConfigs:    []model.DashboardConfig{blank.Clone()},
			CurrentDashboardConfig: blank.Clone(),
		},
	}
}

// replaceByID returns configs without any entry for cfg's id, with cfg appended.
func replaceByID(configs []model.DashboardConfig, cfg model.DashboardConfig) []model.DashboardConfig {
	out := make([]model.DashboardConfig, 0, len(configs)+1)
	for _, c := range configs {
		if c.DashboardID != cfg.DashboardID {
			out = append(out, c.Clone())
		}
	}
	return append(out, cfg.Clone())
}

func (s *Store) publish(kinds ...events.Kind) {
	id := s.CurrentDashboardID()
	for _, k := range kinds {
		s.opts.Bus.Publish(events.Event{Kind: k, DashboardID: id})
	}
}

// =============================================================================
// Flags
// =============================================================================

// SetIsLoading sets the loading flag.
func (s *Store) SetIsLoading(value bool) bool {
	s.mu.Lock()
	s.state.IsLoading = value
	s.mu.Unlock()
	s.publish(events.KindLoadingChanged)
	return value
}

// SetIsEditing sets the editing flag. Leaving edit mode clears the target container.
func (s *Store) SetIsEditing(value bool) bool {
	s.mu.Lock()
	if !value {
		s.state.TargetContainerKey = ""
	}
	s.state.IsEditing = value
	s.mu.Unlock()
	s.publish(events.KindEditingChanged)
	return value
}

// SetTargetContainerKey sets the container new widgets are added to.
func (s *Store) SetTargetContainerKey(key model.WidgetKey) model.WidgetKey {
	s.mu.Lock()
	s.state.TargetContainerKey = key
	s.mu.Unlock()
	s.publish(events.KindTargetChanged)
	return key
}

// =============================================================================
// Collection
// =============================================================================

// SetAllDashboardConfigs replaces the collection. Entries sharing an id are
// collapsed, the last one wins. The current configuration is left untouched.
func (s *Store) SetAllDashboardConfigs(configs []model.DashboardConfig) []model.DashboardConfig {
	var list []model.DashboardConfig
	for _, c := range configs {
		list = replaceByID(list, c)
	}
	if list == nil {
		list = []model.DashboardConfig{}
	}

	s.mu.Lock()
	s.state.AllDashboardConfigs = list
	s.mu.Unlock()
	s.publish(events.KindConfigsChanged)
	return model.CloneAll(list)
}

// SetCurrentDashboardConfig inserts or replaces cfg by id and makes it current.
func (s *Store) SetCurrentDashboardConfig(cfg model.DashboardConfig) []model.DashboardConfig {
	s.mu.Lock()
	list := replaceByID(s.state.AllDashboardConfigs, cfg)
	s.state.AllDashboardConfigs = list
	s.state.CurrentDashboardConfig = cfg.Clone()
	s.mu.Unlock()

	logging.DebugLog("current dashboard set", logging.KeyDashboard, cfg.DashboardID)
	s.publish(events.KindConfigsChanged, events.KindCurrentChanged)
	return model.CloneAll(list)
}

// AddDashboardConfig inserts or replaces cfg by id and makes it current.
func (s *Store) AddDashboardConfig(cfg model.DashboardConfig) []model.DashboardConfig {
	return s.SetCurrentDashboardConfig(cfg)
}

// DeleteDashboardConfigByID removes the dashboard with the given id. When it
// was the current one, the current configuration becomes the first remaining
// entry, or the blank placeholder when none remain.
func (s *Store) DeleteDashboardConfigByID(dashboardID string) []model.DashboardConfig {
	s.mu.Lock()
	list := make([]model.DashboardConfig, 0, len(s.state.AllDashboardConfigs))
	for _, c := range s.state.AllDashboardConfigs {
		if c.DashboardID != dashboardID {
			list = append(list, c)
		}
	}
	s.state.AllDashboardConfigs = list
	wasCurrent := s.state.CurrentDashboardConfig.DashboardID == dashboardID
	if wasCurrent {
		if len(list) > 0 {
			s.state.CurrentDashboardConfig = list[0].Clone()
		} else {
			s.state.CurrentDashboardConfig = s.opts.Blank()
		}
	}
	s.mu.Unlock()

	logging.DebugLog("dashboard deleted", logging.KeyDashboard, dashboardID, logging.KeyCount, len(list))
	if wasCurrent {
		s.publish(events.KindConfigsChanged, events.KindCurrentChanged)
	} else {
		s.publish(events.KindConfigsChanged)
	}
	return model.CloneAll(list)
}

// SelectDashboardByID makes the matching dashboard current. It reports false
// and changes nothing when no dashboard has that id.
func (s *Store) SelectDashboardByID(dashboardID string) (model.DashboardConfig, bool) {
	s.mu.Lock()
	var found *model.DashboardConfig
	for i := range s.state.AllDashboardConfigs {
		if s.state.AllDashboardConfigs[i].DashboardID == dashboardID {
			found = &s.state.AllDashboardConfigs[i]
			break
		}
	}
	if found == nil {
		s.mu.Unlock()
		return model.DashboardConfig{}, false
	}
	s.state.CurrentDashboardConfig = found.Clone()
	out := found.Clone()
	s.mu.Unlock()

	s.publish(events.KindCurrentChanged)
	return out, true
}

// =============================================================================
// Widget mutations
// =============================================================================

// AddWidgetParams describes a widget placement on the current dashboard.
type AddWidgetParams = layout.AddWidgetParams

// AddWidget places a widget on the current dashboard.
func (s *Store) AddWidget(params AddWidgetParams) MutationResult {
	return s.mutate("add_widget", func(cfg model.DashboardConfig) layout.Response {
		return layout.AddWidget(cfg, params)
	})
}

// RemoveWidget removes a widget from the current dashboard. Removing a
// container from a parent renumbers the remaining containers.
func (s *Store) RemoveWidget(widgetKey, parentWidgetKey model.WidgetKey) MutationResult {
	return s.mutate("remove_widget", func(cfg model.DashboardConfig) layout.Response {
		resp := layout.RemoveWidget(cfg, widgetKey, parentWidgetKey)
		if resp.Success && resp.RemovedContainer {
			resp.Config = s.opts.EnsureContainersSequence(resp.Config)
		}
		return resp
	})
}

// MoveWidget moves a widget one step within its sequence on the current dashboard.
func (s *Store) MoveWidget(direction model.Direction, widgetKey, parentWidgetKey model.WidgetKey) MutationResult {
	return s.mutate("move_widget", func(cfg model.DashboardConfig) layout.Response {
		return layout.MoveWidget(cfg, direction, widgetKey, parentWidgetKey)
	})
}

// mutate applies op to the current configuration and commits it on success.
func (s *Store) mutate(op string, apply func(model.DashboardConfig) layout.Response) MutationResult {
	s.mu.Lock()
	resp := apply(s.state.CurrentDashboardConfig.Clone())
	all := replaceByID(s.state.AllDashboardConfigs, resp.Config)
	if resp.Success {
		s.state.AllDashboardConfigs = all
		s.state.CurrentDashboardConfig = resp.Config.Clone()
	}
	s.mu.Unlock()

	if resp.Success {
		logging.LogOperation(op, logging.KeyDashboard, resp.Config.DashboardID)
		s.publish(events.KindConfigsChanged, events.KindCurrentChanged)
	} else {
		logging.DebugLog("mutation rejected", logging.KeyOperation, op, logging.KeyReason, resp.Message)
	}

	return MutationResult{
		Success:                    resp.Success,
		Message:                    resp.Message,
		UpdatedDashboardConfig:     resp.Config,
		AllUpdatedDashboardConfigs: model.CloneAll(all),
	}
}

// =============================================================================
// Getters
// =============================================================================

// NextContainerKey returns the key for a new container generated under
// containerWidgetKey on the current dashboard.
func (s *Store) NextContainerKey(containerWidgetKey model.WidgetKey) model.WidgetKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return layout.NextContainerKey(s.state.CurrentDashboardConfig, containerWidgetKey)
}

// CurrentDashboardConfig returns a copy of the current configuration.
func (s *Store) CurrentDashboardConfig() model.DashboardConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentDashboardConfig.Clone()
}

// CurrentDashboardID returns the id of the current configuration.
func (s *Store) CurrentDashboardID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentDashboardConfig.DashboardID
}

// IsResponsive reports whether the current dashboard uses a responsive grid.
func (s *Store) IsResponsive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentDashboardConfig.ResponsiveGrid
}

// TargetContainerKey returns the targeted container, or "" when none.
func (s *Store) TargetContainerKey() model.WidgetKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.TargetContainerKey
}

// IsLoading returns the loading flag.
func (s *Store) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsLoading
}

// IsEditing returns the editing flag.
func (s *Store) IsEditing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsEditing
}

// AllDashboardConfigs returns the collection sorted for display: the default
// dashboard first, the rest by id.
func (s *Store) AllDashboardConfigs() []model.DashboardConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return layout.SortForDisplay(s.state.AllDashboardConfigs, s.opts.DefaultDashboardID)
}

// Snapshot returns a deep copy of the whole state. The collection keeps its
// insertion order.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	out.AllDashboardConfigs = model.CloneAll(s.state.AllDashboardConfigs)
	out.CurrentDashboardConfig = s.state.CurrentDashboardConfig.Clone()
	return out
}
