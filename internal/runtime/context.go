// Package runtime provides application runtime context for dashkit.
package runtime

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/manav03panchal/dashkit/internal/config"
	"github.com/manav03panchal/dashkit/internal/editor"
	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/layoutfile"
	"github.com/manav03panchal/dashkit/internal/logging"
	"github.com/manav03panchal/dashkit/internal/output"
	"github.com/manav03panchal/dashkit/internal/telemetry"
)

// Context holds the application runtime context.
type Context struct {
	Editor    *editor.Editor
	Formatter *output.Formatter
	Config    *config.RuntimeConfig

	// LayoutsPath is the layout file the editor was loaded from, if any.
	LayoutsPath string

	// Debug mode
	Debug bool

	shutdownTracing telemetry.Shutdown
}

// Options configures the runtime context.
type Options struct {
	// LayoutsPath overrides the configured layout file. When both are empty
	// the default path is loaded if it exists.
	LayoutsPath string
	Format      output.Format
	ColorMode   output.ColorMode
	Debug       bool
	// Trace enables span export regardless of configuration.
	Trace bool
	// TraceWriter receives exported spans. Default: stderr.
	TraceWriter io.Writer
	// Config defaults to config.Global.
	Config *config.RuntimeConfig
}

// DefaultOptions returns default runtime options.
func DefaultOptions() Options {
	return Options{
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
		Debug:     false,
	}
}

// New creates a new runtime context.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global
	}

	traceCfg := cfg.Trace
	if opts.Trace {
		traceCfg.Enabled = true
	}
	shutdown, err := telemetry.Setup(context.Background(), traceCfg, opts.TraceWriter)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("startup", "failed to set up tracing", err)
	}

	ed := editor.New(editor.Options{
		DefaultDashboardID:  cfg.Layout.DefaultDashboardID,
		NoDuplicatedWidgets: cfg.Layout.NoDuplicatedWidgets,
	})

	path, explicit := resolveLayoutsPath(opts.LayoutsPath, cfg.Files.LayoutsPath)
	if path != "" {
		configs, err := layoutfile.Load(path)
		switch {
		case err == nil:
			ed.Load(configs)
		case !explicit && errors.Is(err, errors.ErrLayoutFileNotFound):
			path = ""
		default:
			ed.Close()
			_ = shutdown(context.Background())
			return nil, err
		}
	}

	// Create formatter
	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode

	logging.DebugLog("runtime ready", logging.KeyPath, path, logging.KeyDashboard, ed.Current().DashboardID)

	return &Context{
		Editor:          ed,
		Formatter:       formatter,
		Config:          cfg,
		LayoutsPath:     path,
		Debug:           opts.Debug,
		shutdownTracing: shutdown,
	}, nil
}

// resolveLayoutsPath picks the flag, then the configured path, then the
// default path. It reports whether the path was asked for explicitly.
func resolveLayoutsPath(flag, configured string) (string, bool) {
	if flag != "" {
		return flag, true
	}
	if configured != "" {
		return configured, true
	}
	return layoutfile.DefaultPath(), false
}

// Close releases the editor and flushes pending spans.
func (c *Context) Close() error {
	if c.Editor != nil {
		c.Editor.Close()
	}
	if c.shutdownTracing != nil {
		return c.shutdownTracing(context.Background())
	}
	return nil
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// ErrorFormatter returns a CLI formatter that writes to stderr.
func (c *Context) ErrorFormatter() *output.CLIFormatter {
	f := *c.Formatter
	f.Writer = os.Stderr
	return output.NewCLIFormatter(&f)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf prints debug output to stderr if debug mode is enabled.
func (c *Context) Debugf(format string, args ...any) {
	if c.Debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] "+format+"\n", args...)
	}
}
