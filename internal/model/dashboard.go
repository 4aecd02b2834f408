package model

// DashboardConfig is a named layout: which widgets exist, their root order and
// their containment structure.
type DashboardConfig struct {
	DashboardID        string             `json:"dashboardId" yaml:"dashboardId"`
	Widgets            []WidgetKey        `json:"widgets" yaml:"widgets"`
	ChildWidgetsConfig []ChildWidgetEntry `json:"childWidgetsConfig" yaml:"childWidgetsConfig"`
	ResponsiveGrid     bool               `json:"responsiveGrid,omitempty" yaml:"responsiveGrid,omitempty"`
}

// NewDashboardConfig creates an empty configuration with the given id.
func NewDashboardConfig(dashboardID string) DashboardConfig {
	cfg := Blank()
	cfg.DashboardID = dashboardID
	return cfg
}

// Clone returns a deep copy of the configuration.
func (c DashboardConfig) Clone() DashboardConfig {
	out := c
	out.Widgets = make([]WidgetKey, len(c.Widgets))
	copy(out.Widgets, c.Widgets)
	out.ChildWidgetsConfig = make([]ChildWidgetEntry, len(c.ChildWidgetsConfig))
	copy(out.ChildWidgetsConfig, c.ChildWidgetsConfig)
	return out
}

// HasWidget reports whether key is present at the root level.
func (c DashboardConfig) HasWidget(key WidgetKey) bool {
	for _, w := range c.Widgets {
		if w == key {
			return true
		}
	}
	return false
}

// HasChild reports whether the (parent, key) pair is present.
func (c DashboardConfig) HasChild(parent, key WidgetKey) bool {
	for _, e := range c.ChildWidgetsConfig {
		if e.ParentWidgetKey == parent && e.WidgetKey == key {
			return true
		}
	}
	return false
}

// Children returns the widget keys placed inside parent, in order.
func (c DashboardConfig) Children(parent WidgetKey) []WidgetKey {
	var keys []WidgetKey
	for _, e := range c.ChildWidgetsConfig {
		if e.ParentWidgetKey == parent {
			keys = append(keys, e.WidgetKey)
		}
	}
	return keys
}

// WidgetCount returns the number of root and child placements.
func (c DashboardConfig) WidgetCount() int {
	return len(c.Widgets) + len(c.ChildWidgetsConfig)
}

// CloneAll deep-copies a list of configurations.
func CloneAll(configs []DashboardConfig) []DashboardConfig {
	out := make([]DashboardConfig, len(configs))
	for i, c := range configs {
		out[i] = c.Clone()
	}
	return out
}
