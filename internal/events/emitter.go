package events

import "github.com/manav03panchal/dashkit/internal/model"

// WidgetEmitter publishes the user intents a widget can raise.
type WidgetEmitter struct {
	bus *Bus
}

// NewWidgetEmitter creates an emitter publishing on bus.
func NewWidgetEmitter(bus *Bus) *WidgetEmitter {
	return &WidgetEmitter{bus: bus}
}

// RemoveClick asks for widgetKey to be removed from parentWidgetKey (or the root).
func (e *WidgetEmitter) RemoveClick(widgetKey, parentWidgetKey model.WidgetKey) {
	e.bus.Publish(Event{
		Kind:            KindRemoveClick,
		WidgetKey:       widgetKey,
		ParentWidgetKey: parentWidgetKey,
	})
}

// MoveClick asks for widgetKey to move one step in direction.
func (e *WidgetEmitter) MoveClick(direction model.Direction, widgetKey, parentWidgetKey model.WidgetKey) {
	e.bus.Publish(Event{
		Kind:            KindMoveClick,
		WidgetKey:       widgetKey,
		ParentWidgetKey: parentWidgetKey,
		Direction:       direction,
	})
}

// SelectContainer asks for containerKey to become the target of new widgets.
// An empty key clears the target.
func (e *WidgetEmitter) SelectContainer(containerKey model.WidgetKey) {
	e.bus.Publish(Event{
		Kind:      KindSelectContainer,
		WidgetKey: containerKey,
	})
}
