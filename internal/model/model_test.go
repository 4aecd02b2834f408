package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// WidgetKey Tests
// =============================================================================

func TestWidgetKeyContainers(t *testing.T) {
	tests := []struct {
		key             WidgetKey
		container       bool
		widgetContainer bool
	}{
		{"ChartPanel", false, false},
		{"WidgetContainer_container1", true, true},
		{"WidgetContainerRow_container2", true, true},
		{"TabContainer", true, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			assert.Equal(t, tt.container, tt.key.IsContainer())
			assert.Equal(t, tt.widgetContainer, tt.key.IsWidgetContainer())
		})
	}
}

func TestContainerOrdinal(t *testing.T) {
	n, ok := WidgetKey("WidgetContainer_container12").ContainerOrdinal()
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = WidgetKey("WidgetContainer").ContainerOrdinal()
	assert.False(t, ok)

	_, ok = WidgetKey("WidgetContainer_container").ContainerOrdinal()
	assert.False(t, ok)
}

func TestContainerBase(t *testing.T) {
	assert.Equal(t, WidgetKey("WidgetContainer"), WidgetKey("WidgetContainer_container3").ContainerBase())
	assert.Equal(t, WidgetKey("WidgetContainer_container1"), WidgetKey("WidgetContainer_container1_container2").ContainerBase())
	assert.Equal(t, WidgetKey("Chart"), WidgetKey("Chart").ContainerBase())
}

func TestWithContainerOrdinal(t *testing.T) {
	assert.Equal(t, WidgetKey("WidgetContainer_container2"), WidgetKey("WidgetContainer_container7").WithContainerOrdinal(2))
	assert.Equal(t, WidgetKey("WidgetContainer_container1"), WidgetKey("WidgetContainer").WithContainerOrdinal(1))
	assert.Equal(t, WidgetKey("root_container3"), ContainerKey("root", 3))
}

// =============================================================================
// Direction Tests
// =============================================================================

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input string
		want  Direction
		ok    bool
	}{
		{"up", DirectionUp, true},
		{"UP", DirectionUp, true},
		{"-1", DirectionUp, true},
		{"down", DirectionDown, true},
		{" 1 ", DirectionDown, true},
		{"sideways", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseDirection(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectionValid(t *testing.T) {
	assert.True(t, DirectionUp.Valid())
	assert.True(t, DirectionDown.Valid())
	assert.False(t, Direction(0).Valid())
	assert.False(t, Direction(2).Valid())
	assert.Equal(t, "invalid", Direction(2).String())
}

// =============================================================================
// DashboardConfig Tests
// =============================================================================

func TestBlank(t *testing.T) {
	b := Blank()
	assert.Equal(t, DefaultDashboardID, b.DashboardID)
	assert.NotNil(t, b.Widgets)
	assert.NotNil(t, b.ChildWidgetsConfig)
	assert.Equal(t, 0, b.WidgetCount())
}

func TestDashboardConfigClone(t *testing.T) {
	cfg := NewDashboardConfig("main")
	cfg.Widgets = append(cfg.Widgets, "A", "WidgetContainer_container1")
	cfg.ChildWidgetsConfig = append(cfg.ChildWidgetsConfig, ChildWidgetEntry{ParentWidgetKey: "WidgetContainer_container1", WidgetKey: "B"})

	clone := cfg.Clone()
	clone.Widgets[0] = "Z"
	clone.ChildWidgetsConfig[0].WidgetKey = "Z"

	assert.Equal(t, WidgetKey("A"), cfg.Widgets[0])
	assert.Equal(t, WidgetKey("B"), cfg.ChildWidgetsConfig[0].WidgetKey)
}

func TestDashboardConfigLookups(t *testing.T) {
	cfg := NewDashboardConfig("main")
	cfg.Widgets = []WidgetKey{"A", "WidgetContainer_container1"}
	cfg.ChildWidgetsConfig = []ChildWidgetEntry{
		{ParentWidgetKey: "WidgetContainer_container1", WidgetKey: "B"},
		{ParentWidgetKey: "WidgetContainer_container1", WidgetKey: "C"},
	}

	assert.True(t, cfg.HasWidget("A"))
	assert.False(t, cfg.HasWidget("B"))
	assert.True(t, cfg.HasChild("WidgetContainer_container1", "C"))
	assert.False(t, cfg.HasChild("A", "C"))
	assert.Equal(t, []WidgetKey{"B", "C"}, cfg.Children("WidgetContainer_container1"))
	assert.Empty(t, cfg.Children("A"))
	assert.Equal(t, 4, cfg.WidgetCount())
}

func TestUndoStatus(t *testing.T) {
	s := UndoStatus{IsUndoDisabled: true}
	assert.False(t, s.CanUndo())
	assert.True(t, s.CanRedo())
}
