// Package events provides the change notifications published by the layout
// store and the widget intents emitted by presentation layers.
package events

import "github.com/manav03panchal/dashkit/internal/model"

// Kind identifies an event.
type Kind string

// Store change notifications.
const (
	KindConfigsChanged Kind = "configs_changed"
	KindCurrentChanged Kind = "current_changed"
	KindEditingChanged Kind = "editing_changed"
	KindLoadingChanged Kind = "loading_changed"
	KindTargetChanged  Kind = "target_changed"
)

// Widget intents.
const (
	KindRemoveClick     Kind = "remove_click"
	KindMoveClick       Kind = "move_click"
	KindSelectContainer Kind = "select_container"
)

// Event is a single notification delivered to subscribers.
type Event struct {
	Kind            Kind
	DashboardID     string
	WidgetKey       model.WidgetKey
	ParentWidgetKey model.WidgetKey
	Direction       model.Direction
}

// Handler receives events.
type Handler func(Event)
