package model

// UndoHistoryEntry is one snapshot in a dashboard's undo history.
type UndoHistoryEntry struct {
	UndoIndex int             `json:"undoIndex"`
	Config    DashboardConfig `json:"config"`
}

// UndoStatus reports whether undo and redo are available for the active dashboard.
type UndoStatus struct {
	IsUndoDisabled bool `json:"isUndoDisabled"`
	IsRedoDisabled bool `json:"isRedoDisabled"`

	// Diagnostics
	CurrentIndex  int `json:"currentIndex"`
	HistoryLength int `json:"historyLength"`
}

// CanUndo is the negation of IsUndoDisabled.
func (s UndoStatus) CanUndo() bool {
	return !s.IsUndoDisabled
}

// CanRedo is the negation of IsRedoDisabled.
func (s UndoStatus) CanRedo() bool {
	return !s.IsRedoDisabled
}
