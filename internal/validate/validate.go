// Package validate provides input validation helpers for dashkit.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/model"
)

const (
	// MaxDashboardIDLength is the maximum length for a dashboard id.
	MaxDashboardIDLength = 128
	// MaxWidgetKeyLength is the maximum length for a widget key.
	MaxWidgetKeyLength = 256
)

// DashboardID validates a dashboard id.
func DashboardID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.NewUserError("Dashboard id cannot be empty", "Provide a dashboard id").
			WithCause(errors.ErrEmptyDashboardID)
	}
	if utf8.RuneCountInString(id) > MaxDashboardIDLength {
		return errors.NewUserErrorWithField("dashboardId", TruncateString(id, 32),
			"Dashboard id too long",
			fmt.Sprintf("Dashboard ids must be %d characters or fewer", MaxDashboardIDLength))
	}
	if hasControlChars(id) {
		return errors.NewUserErrorWithField("dashboardId", StripControlChars(id),
			"Dashboard id contains control characters",
			"Use printable characters only")
	}
	return nil
}

// WidgetKey validates a widget key.
func WidgetKey(key model.WidgetKey) error {
	s := string(key)
	if strings.TrimSpace(s) == "" {
		return errors.NewUserError("Widget key cannot be empty", "Provide a widget key").
			WithCause(errors.ErrInvalidWidgetKey)
	}
	if utf8.RuneCountInString(s) > MaxWidgetKeyLength {
		return errors.NewUserErrorWithField("widgetKey", TruncateString(s, 32),
			"Widget key too long",
			fmt.Sprintf("Widget keys must be %d characters or fewer", MaxWidgetKeyLength)).
			WithCause(errors.ErrInvalidWidgetKey)
	}
	if hasControlChars(s) {
		return errors.NewUserErrorWithField("widgetKey", StripControlChars(s),
			"Widget key contains control characters", "").
			WithCause(errors.ErrInvalidWidgetKey)
	}
	return nil
}

// DashboardConfig validates the id and every widget key of cfg.
func DashboardConfig(cfg model.DashboardConfig) error {
	if err := DashboardID(cfg.DashboardID); err != nil {
		return err
	}
	for _, key := range cfg.Widgets {
		if err := WidgetKey(key); err != nil {
			return errors.Wrapf(err, "dashboard '%s'", cfg.DashboardID)
		}
	}
	for _, entry := range cfg.ChildWidgetsConfig {
		if err := WidgetKey(entry.ParentWidgetKey); err != nil {
			return errors.Wrapf(err, "dashboard '%s' parent", cfg.DashboardID)
		}
		if err := WidgetKey(entry.WidgetKey); err != nil {
			return errors.Wrapf(err, "dashboard '%s' child of '%s'", cfg.DashboardID, entry.ParentWidgetKey)
		}
	}
	return nil
}

// Configs validates every configuration and checks that ids are unique.
func Configs(configs []model.DashboardConfig) error {
	seen := make(map[string]bool, len(configs))
	for i, cfg := range configs {
		if err := DashboardConfig(cfg); err != nil {
			return errors.Wrapf(err, "dashboards[%d]", i)
		}
		if seen[cfg.DashboardID] {
			return errors.NewUserErrorWithField("dashboardId", cfg.DashboardID,
				"Duplicate dashboard id", "").
				WithCause(errors.ErrDuplicateDashboard)
		}
		seen[cfg.DashboardID] = true
	}
	return nil
}

func hasControlChars(s string) bool {
	for _, r := range s {
		if unicode.IsControl(r) {
			return true
		}
	}
	return false
}
