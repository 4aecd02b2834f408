package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/dashkit/internal/config"
	"github.com/manav03panchal/dashkit/internal/errors"
	"github.com/manav03panchal/dashkit/internal/layoutfile"
	"github.com/manav03panchal/dashkit/internal/logging"
	"github.com/manav03panchal/dashkit/internal/output"
	"github.com/manav03panchal/dashkit/internal/parser"
	"github.com/manav03panchal/dashkit/internal/session"
)

var (
	runExport       string
	runSave         bool
	runUnique       bool
	runStopOnReject bool
)

// runCmd runs a layout script.
var runCmd = &cobra.Command{
	Use:   "run SCRIPT",
	Short: "Run a layout script",
	Long: `Run a layout script against the loaded dashboards. Use - to read the
script from stdin.

Each line holds one command; # starts a comment:
  new [ID]                    create a dashboard and select it
  select ID                   make a dashboard current
  delete ID                   delete a dashboard
  add KEY [to PARENT] [unique]
  remove KEY [from PARENT]
  move up|down KEY [in PARENT]
  undo / redo
  edit on|off                 toggle edit mode
  target KEY|none             set or clear the target container
  next-key KEY                print the next container key under KEY
  list / show [ID] / status

Rejected commands are reported and the script continues unless
--stop-on-reject is given.

Examples:
  dashkit run layout.dk
  dashkit run layout.dk --export ops.yaml
  printf 'new ops\nadd ChartPanel\n' | dashkit run - --save`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeScripts,
	RunE:              runScript,
}

func init() {
	runCmd.Flags().StringVar(&runExport, "export", "",
		"Write the resulting dashboards to a layout file")
	runCmd.Flags().BoolVar(&runSave, "save", false,
		"Write the resulting dashboards back to the loaded layout file")
	runCmd.Flags().BoolVar(&runUnique, "unique", false,
		"Reject adding widgets that are already placed")
	runCmd.Flags().BoolVar(&runStopOnReject, "stop-on-reject", config.Global.Session.StopOnReject,
		"Stop at the first rejected command")

	rootCmd.AddCommand(runCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	cmds, err := readScript(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	runCtx := logging.NewSessionContext(cmd.Context())
	ctx.Debugf("session %s: %d commands", logging.SessionIDFromContext(runCtx), len(cmds))

	runner := session.NewRunner(ctx.Editor, session.Options{
		StopOnReject: runStopOnReject,
		Unique:       runUnique || ctx.Config.Layout.NoDuplicatedWidgets,
	})
	report, runErr := runner.Run(runCtx, cmds)

	var exported string
	if runErr == nil {
		exported, err = exportLayouts()
		if err != nil {
			return err
		}
	}

	if ctx.IsJSON() {
		resp := output.NewRunResponse(report, ctx.Editor.Current(), ctx.Editor.Status())
		resp.Exported = exported
		if err := ctx.JSONFormatter().PrintRun(resp); err != nil {
			return err
		}
		if runErr != nil {
			return reportedError{runErr}
		}
		return nil
	}

	cli := ctx.CLIFormatter()
	cli.PrintReport(report)
	if exported != "" {
		cli.Muted("Saved to " + exported)
	}
	return runErr
}

// readScript parses the script at path, or stdin when path is "-".
func readScript(path string, stdin io.Reader) ([]parser.Command, error) {
	if path == "-" {
		return parser.Parse(stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewUserErrorWithField("script", path,
				"Script not found: "+path, "").WithCause(errors.ErrScriptNotFound)
		}
		return nil, errors.WithStack(errors.NewSystemErrorWithOp("read", "failed to open script", err))
	}
	defer f.Close()

	return parser.Parse(f)
}

// exportLayouts writes the dashboards where --export or --save asked for and
// returns the path written, if any.
func exportLayouts() (string, error) {
	path := runExport
	if path == "" && runSave {
		path = ctx.LayoutsPath
		if path == "" {
			path = layoutfile.DefaultPath()
		}
	}
	if path == "" {
		return "", nil
	}

	if err := layoutfile.Save(path, ctx.Editor.Dashboards()); err != nil {
		return "", err
	}
	return path, nil
}
