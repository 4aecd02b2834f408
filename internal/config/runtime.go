// Package config provides centralized configuration for dashkit runtime values.
package config

import (
	"os"
	"strconv"
	"strings"
)

// RuntimeConfig holds the runtime configuration shared by the CLI and the
// editing session.
type RuntimeConfig struct {
	// Layout editing configuration
	Layout LayoutConfig

	// Script session configuration
	Session SessionConfig

	// Tracing configuration
	Trace TraceConfig

	// Layout file configuration
	Files FilesConfig
}

// LayoutConfig holds layout-editing configuration.
type LayoutConfig struct {
	// DefaultDashboardID is the id of the placeholder dashboard and the one
	// listed first.
	// Default: "default"
	DefaultDashboardID string

	// NoDuplicatedWidgets rejects adding a widget key that is already placed.
	// Default: false
	NoDuplicatedWidgets bool
}

// SessionConfig holds script-session configuration.
type SessionConfig struct {
	// StopOnReject stops a script at the first rejected mutation.
	// Default: false
	StopOnReject bool
}

// TraceConfig holds tracing configuration.
type TraceConfig struct {
	// Enabled turns on span export for script commands.
	// Default: false
	Enabled bool

	// Exporter selects the span exporter: "stdout" or "noop".
	// Default: "stdout"
	Exporter string
}

// FilesConfig holds layout-file configuration.
type FilesConfig struct {
	// LayoutsPath is the layout file loaded when --layouts is not given.
	// Default: "" (start from the blank dashboard)
	LayoutsPath string
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Layout: LayoutConfig{
			DefaultDashboardID: "default",
		},
		Trace: TraceConfig{
			Exporter: "stdout",
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

// initGlobal initializes the global config with defaults and environment overrides.
func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// loadFromEnv loads configuration overrides from environment variables.
// Malformed values are ignored and the current value is kept.
func (c *RuntimeConfig) loadFromEnv() {
	// Layout configuration
	if v := strings.TrimSpace(os.Getenv("DASHKIT_DEFAULT_DASHBOARD")); v != "" {
		c.Layout.DefaultDashboardID = v
	}
	if v := os.Getenv("DASHKIT_NO_DUPLICATES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Layout.NoDuplicatedWidgets = b
		}
	}

	// Session configuration
	if v := os.Getenv("DASHKIT_STOP_ON_REJECT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Session.StopOnReject = b
		}
	}

	// Trace configuration
	if v := os.Getenv("DASHKIT_TRACE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Trace.Enabled = b
		}
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("DASHKIT_TRACE_EXPORTER"))); v == "stdout" || v == "noop" {
		c.Trace.Exporter = v
	}

	// File configuration
	if v := strings.TrimSpace(os.Getenv("DASHKIT_LAYOUTS")); v != "" {
		c.Files.LayoutsPath = v
	}
}

// ReloadFromEnv reloads configuration from environment variables.
// This is useful for testing or when environment variables change.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
