// Package cmd provides the CLI commands for dashkit.
//
// Copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/dashkit/internal/logging"
	"github.com/manav03panchal/dashkit/internal/output"
	"github.com/manav03panchal/dashkit/internal/runtime"
)

// Version information (set at build time via ldflags).
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Global flags.
var (
	flagFormat  string
	flagColor   string
	flagDebug   bool
	flagLayouts string
	flagTrace   bool
)

// ctx is the shared runtime context.
var ctx *runtime.Context

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dashkit",
	Short: "Script and inspect dashboard widget layouts",
	Long: `dashkit edits dashboard layouts: named dashboards holding widgets,
containers and the widgets placed inside them, with per-dashboard undo.

Layouts are read from a YAML or JSON file and edited by scripts, one
command per line.

Examples:
  dashkit list
  dashkit show ops
  dashkit run layout.dk --export dashboards.yaml
  echo "add ChartPanel" | dashkit run -
  dashkit next-key WidgetContainer --dashboard ops`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for completion and help commands (but allow __complete for dynamic completions)
		if cmd.Name() == "completion" || cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		format, ok := output.ParseFormat(flagFormat)
		if !ok {
			return fmt.Errorf("unknown format %q: use cli, json or plain", flagFormat)
		}
		colorMode, ok := output.ParseColorMode(flagColor)
		if !ok {
			return fmt.Errorf("unknown color mode %q: use auto, always or never", flagColor)
		}

		if flagDebug {
			logging.InitDebug()
		}

		// Create runtime context
		opts := runtime.DefaultOptions()
		opts.Format = format
		opts.ColorMode = colorMode
		opts.Debug = flagDebug
		opts.LayoutsPath = flagLayouts
		opts.Trace = flagTrace

		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return err
		}

		ctx.Debugf("layouts loaded from %q", ctx.LayoutsPath)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ctx != nil {
			return ctx.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: list dashboards
		return runList(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
		// PersistentPostRunE does not run after a failed command.
		if ctx != nil {
			if cerr := ctx.Close(); cerr != nil {
				logging.Error("shutdown failed", logging.KeyError, cerr)
			}
		}
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "cli",
		"Output format: cli, json, plain")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "auto",
		"Color output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&flagLayouts, "layouts", "",
		"Layout file to load (default: $XDG_CONFIG_HOME/dashkit/dashboards.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false,
		"Export a span per command to stderr")

	// Add commands
	rootCmd.AddCommand(versionCmd)
}

// versionCmd shows version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("dashkit %s\n", Version)
		cmd.Printf("  commit: %s\n", Commit)
		cmd.Printf("  built: %s\n", BuildTime)
		cmd.Println("")
		cmd.Println("Licensed under SEGV License v1.0")
	},
}

// printError reports err on stderr, or as a JSON document on stdout when
// JSON output was requested.
func printError(err error) {
	var r reportedError
	if errors.As(err, &r) {
		return
	}
	switch {
	case ctx != nil && ctx.IsJSON():
		_ = ctx.JSONFormatter().PrintError(err)
	case ctx != nil && ctx.IsCLI() && !flagDebug:
		ctx.ErrorFormatter().Error(runtime.FormatError(err, false))
	default:
		os.Stderr.WriteString("Error: " + runtime.FormatError(err, flagDebug) + "\n")
	}
}

// reportedError marks an error whose details were already written as part of
// the command output. It still makes the process exit non-zero.
type reportedError struct {
	error
}

func (r reportedError) Unwrap() error {
	return r.error
}
