// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/app"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/config"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/tui"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	errDeclined = errors.New("operation declined")
)

type (
	// App wires CLI handlers to the session they operate on. The session is
	// opened on first use, after flags are parsed.
	App struct {
		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer
		open   func(context.Context, app.Options) (*app.Session, error)

		verbose   bool
		cfgFile   string
		assumeYes bool

		session *app.Session
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		Open   func(context.Context, app.Options) (*app.Session, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Open == nil {
		deps.Open = app.Open
	}
	return &App{stdin: deps.Stdin, stdout: deps.Stdout, stderr: deps.Stderr, open: deps.Open}
}

// Session returns the session for this invocation, opening it on first use.
func (a *App) Session(ctx context.Context) (*app.Session, error) {
	if a.session != nil {
		return a.session, nil
	}
	s, err := a.open(ctx, app.Options{
		Config:    config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.cfgFile)},
		Verbose:   a.verbose,
		LogOutput: a.stderr,
	})
	if err != nil {
		return nil, err
	}
	a.session = s
	return s, nil
}

// confirm asks title as a yes/no question unless --yes or ui.assume_yes is
// set. Declining returns an ExitError with ExitCanceled.
func (a *App) confirm(s *app.Session, title, description string) error {
	if a.assumeYes || s.Config.UI.AssumeYes {
		return nil
	}
	cfg := tui.DefaultConfig()
	cfg.Output = a.stderr
	if a.stdin != os.Stdin {
		cfg.Input = a.stdin
		cfg.Accessible = true
	}
	ok, err := tui.Confirm(tui.ConfirmOptions{Title: title, Description: description, Config: cfg})
	if err != nil {
		return &ExitError{Code: types.ExitCanceled, Err: err}
	}
	if !ok {
		return &ExitError{Code: types.ExitCanceled, Err: errDeclined}
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.stdout, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.stdout, args...)
}

// NewRootCommand builds the command tree around a.
func NewRootCommand(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "beamskin",
		Short: "Build BeamNG.drive skin mods from texture files",
		Long: TitleStyle.Render("beamskin") + SubtitleStyle.Render(" - Build BeamNG.drive skin mods from texture files") + `

beamskin keeps a registry of vehicles with their skin templates and turns a
project (a list of vehicles and the textures chosen for them) into a mod
archive the simulator can load.

Textures must be named <vehicleId>_skin_<name>.<ext>, for example
etk800_skin_RacingStripes.dds.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a project:        beamskin project new --mod-name stripes
  2. Add a vehicle:           beamskin project add-vehicle etk800
  3. Add a texture:           beamskin project add-skin etk800 ./etk800_skin_RacingStripes.dds
  4. Build the mod:           beamskin build

` + SubtitleStyle.Render("Examples:") + `
  beamskin vehicle search etk   Find vehicles by id or name
  beamskin vehicle add mycar --materials mycar.materials.json --jbeam mycar.jbeam
  beamskin inspect mycar.jbeam --query '$..globalSkin'
  beamskin config show          Show current configuration`,
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/beamskin/config.cue)")
	root.PersistentFlags().BoolVarP(&a.assumeYes, "yes", "y", false, "answer yes to confirmation prompts")

	root.AddCommand(
		newVehicleCommand(a),
		newProjectCommand(a),
		newBuildCommand(a),
		newInspectCommand(a),
		newConfigCommand(a),
	)
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Run executes the CLI with os.Args and returns the process exit code.
func Run() int {
	a := NewApp(Dependencies{})
	err := fang.Execute(
		context.Background(),
		NewRootCommand(a),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, _ fang.Styles, err error) {
			renderError(w, err, a.verbose)
		}),
	)
	return int(exitCodeFor(err))
}

// Execute runs the CLI and exits the process with its exit code.
// This is called by main.main().
func Execute() {
	os.Exit(Run())
}
