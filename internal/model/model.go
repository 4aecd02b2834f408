// Package model defines the domain models for dashkit.
package model

// Well-known dashboard identifiers.
const (
	// DefaultDashboardID is the id that sorts ahead of every other dashboard.
	DefaultDashboardID = "default"
	// BlankDashboardID is the id carried by the placeholder configuration.
	BlankDashboardID = DefaultDashboardID
)

// Blank returns the placeholder configuration used when no dashboard is known.
func Blank() DashboardConfig {
	return DashboardConfig{
		DashboardID:        BlankDashboardID,
		Widgets:            []WidgetKey{},
		ChildWidgetsConfig: []ChildWidgetEntry{},
	}
}
