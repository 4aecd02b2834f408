package model

import (
	"regexp"
	"strconv"
	"strings"
)

// WidgetKey identifies a widget placed on a dashboard.
type WidgetKey string

// Container naming conventions.
const (
	// ContainerMarker is present in the key of every container widget.
	ContainerMarker = "Container"
	// WidgetContainerMarker is present in keys produced for container widgets.
	WidgetContainerMarker = "WidgetContainer"
	// ContainerSuffix precedes the ordinal of a generated container key.
	ContainerSuffix = "_container"
)

// containerOrdinalRegex matches the trailing ordinal of a generated container key.
var containerOrdinalRegex = regexp.MustCompile(`_container(\d+)$`)

// String returns the key as a plain string.
func (k WidgetKey) String() string {
	return string(k)
}

// IsContainer reports whether the key denotes a container widget.
func (k WidgetKey) IsContainer() bool {
	return strings.Contains(string(k), ContainerMarker)
}

// IsWidgetContainer reports whether the key follows the WidgetContainer naming convention.
func (k WidgetKey) IsWidgetContainer() bool {
	return strings.Contains(string(k), WidgetContainerMarker)
}

// ContainerOrdinal returns the trailing _containerN ordinal of the key.
func (k WidgetKey) ContainerOrdinal() (int, bool) {
	match := containerOrdinalRegex.FindStringSubmatch(string(k))
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ContainerBase returns the key with its trailing _containerN removed: the
// parent key a generated container key was built from.
func (k WidgetKey) ContainerBase() WidgetKey {
	return WidgetKey(containerOrdinalRegex.ReplaceAllString(string(k), ""))
}

// WithContainerOrdinal replaces the trailing ordinal of the key with n.
// Keys without an ordinal get one appended.
func (k WidgetKey) WithContainerOrdinal(n int) WidgetKey {
	return ContainerKey(k.ContainerBase(), n)
}

// ContainerKey builds the key of the n-th container generated under parent.
func ContainerKey(parent WidgetKey, n int) WidgetKey {
	return WidgetKey(string(parent) + ContainerSuffix + strconv.Itoa(n))
}

// ChildWidgetEntry places a widget inside a container.
type ChildWidgetEntry struct {
	ParentWidgetKey WidgetKey `json:"parentWidgetKey" yaml:"parentWidgetKey"`
	WidgetKey       WidgetKey `json:"widgetKey" yaml:"widgetKey"`
}

// Direction is the step applied when moving a widget within its sequence.
type Direction int

const (
	// DirectionUp moves a widget one position towards the start.
	DirectionUp Direction = -1
	// DirectionDown moves a widget one position towards the end.
	DirectionDown Direction = 1
)

// Valid reports whether the direction is a single step.
func (d Direction) Valid() bool {
	return d == DirectionUp || d == DirectionDown
}

// String returns "up" or "down".
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "invalid"
	}
}

// ParseDirection converts "up"/"down" (or "-1"/"1") to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "-1", "left", "prev":
		return DirectionUp, true
	case "down", "1", "+1", "right", "next":
		return DirectionDown, true
	default:
		return 0, false
	}
}
