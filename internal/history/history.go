// Package history tracks undo/redo snapshots per dashboard.
//
// Each dashboard id owns a sequence of configuration snapshots and a cursor
// into it. Adding a snapshot after stepping back discards the snapshots ahead
// of the cursor. Only one dashboard is active at a time for status reporting,
// but the history of inactive dashboards is kept until it is removed.
package history

import (
	"sync"

	"github.com/manav03panchal/dashkit/internal/logging"
	"github.com/manav03panchal/dashkit/internal/model"
)

// Tracker holds the undo history of every dashboard. A Tracker is safe for
// concurrent use; stored and returned configurations are copies.
type Tracker struct {
	mu       sync.RWMutex
	activeID string
	history  map[string][]model.UndoHistoryEntry
	cursor   map[string]int
}

// New creates an empty tracker.
func New() *Tracker {
	return &Tracker{
		history: make(map[string][]model.UndoHistoryEntry),
		cursor:  make(map[string]int),
	}
}

// cursorOf returns the cursor for id, or -1 when history is uninitialized.
// Callers hold the lock.
func (t *Tracker) cursorOf(id string) int {
	if c, ok := t.cursor[id]; ok {
		return c
	}
	return -1
}

// InitializeHistoryForDashboard makes cfg's dashboard the active one and seeds
// its history with cfg. It does nothing while that dashboard is already
// active, so repeated calls keep the history built so far.
func (t *Tracker) InitializeHistoryForDashboard(cfg model.DashboardConfig) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := cfg.DashboardID
	if t.activeID == id {
		return
	}
	t.activeID = id
	t.history[id] = []model.UndoHistoryEntry{{UndoIndex: 0, Config: cfg.Clone()}}
	t.cursor[id] = 0

	logging.DebugLog("undo history initialized", logging.KeyDashboard, id)
}

// AddUndoEntry records cfg as the newest snapshot of its dashboard. Snapshots
// after the cursor are discarded first.
func (t *Tracker) AddUndoEntry(cfg model.DashboardConfig) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := cfg.DashboardID
	current := t.history[id]
	keep := t.cursorOf(id) + 1
	if keep > len(current) {
		keep = len(current)
	}

	entries := make([]model.UndoHistoryEntry, keep, keep+1)
	copy(entries, current[:keep])
	entries = append(entries, model.UndoHistoryEntry{
		UndoIndex: keep,
		Config:    cfg.Clone(),
	})

	t.history[id] = entries
	t.cursor[id] = len(entries) - 1

	if dropped := len(current) - keep; dropped > 0 {
		logging.DebugLog("redo history discarded", logging.KeyDashboard, id, logging.KeyCount, dropped)
	}
}

// GetPreviousChanges steps the cursor of id back and returns the snapshot it
// lands on. It reports false when the cursor is already at the oldest entry
// or the history is uninitialized.
func (t *Tracker) GetPreviousChanges(id string) (model.DashboardConfig, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.cursorOf(id)
	if current <= 0 {
		return model.DashboardConfig{}, false
	}
	return t.moveTo(id, current-1)
}

// GetNextChanges steps the cursor of id forward and returns the snapshot it
// lands on. It reports false when the cursor is already at the newest entry.
func (t *Tracker) GetNextChanges(id string) (model.DashboardConfig, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.cursorOf(id)
	next := current + 1
	if last := len(t.history[id]) - 1; next > last {
		return model.DashboardConfig{}, false
	}
	return t.moveTo(id, next)
}

func (t *Tracker) moveTo(id string, index int) (model.DashboardConfig, bool) {
	entries := t.history[id]
	if index < 0 || index >= len(entries) {
		return model.DashboardConfig{}, false
	}
	t.cursor[id] = index
	return entries[index].Config.Clone(), true
}

// RemoveUndoHistoryForDashboard forgets the history and cursor of id.
func (t *Tracker) RemoveUndoHistoryForDashboard(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.history, id)
	delete(t.cursor, id)
}

// ResetAllHistory forgets every dashboard's history and the active dashboard
// id. Clearing the active id is what lets the next initialization seed
// history again even for the dashboard that was active, which Load in the
// editor relies on.
func (t *Tracker) ResetAllHistory() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = make(map[string][]model.UndoHistoryEntry)
	t.cursor = make(map[string]int)
	t.activeID = ""
}

// GetUndoStatus reports undo/redo availability for the active dashboard.
func (t *Tracker) GetUndoStatus() model.UndoStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()

	current := t.cursorOf(t.activeID)
	length := len(t.history[t.activeID])
	return model.UndoStatus{
		IsUndoDisabled: current <= 0,
		IsRedoDisabled: current >= length-1,
		CurrentIndex:   current,
		HistoryLength:  length,
	}
}

// ActiveDashboardID returns the id status is reported for.
func (t *Tracker) ActiveDashboardID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeID
}

// Len returns the number of snapshots held for id.
func (t *Tracker) Len(id string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.history[id])
}

// Cursor returns the cursor of id, or -1 when uninitialized.
func (t *Tracker) Cursor(id string) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursorOf(id)
}

// Entries returns a copy of the snapshots held for id, oldest first.
func (t *Tracker) Entries(id string) []model.UndoHistoryEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	entries := t.history[id]
	out := make([]model.UndoHistoryEntry, len(entries))
	for i, e := range entries {
		out[i] = model.UndoHistoryEntry{UndoIndex: e.UndoIndex, Config: e.Config.Clone()}
	}
	return out
}
