// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/app"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/packaging"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// newBuildCommand creates the `beamskin build` command.
func newBuildCommand(a *App) *cobra.Command {
	var (
		projectPath string
		outputDir   string
		watchMode   bool
		debounce    time.Duration
	)
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Package the project into a mod archive",
		Long: `Package the project into <output>/<mod name>.zip.

The project is checked first and every problem is reported at once; nothing
is written unless the whole project is valid. An existing archive is never
replaced. The default output directory is output_dir from the config, which
is the simulator's mods folder unless changed.

With --watch the project is rebuilt whenever the project file or one of its
textures changes, until interrupted. Each round replaces the archive written
by the previous round; an invalid edit keeps the last good archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Session(cmd.Context())
			if err != nil {
				return err
			}
			req := app.BuildRequest{
				OutputDir: types.FilesystemPath(outputDir),
				Progress:  a.buildProgress,
			}
			if watchMode {
				return s.WatchBuild(cmd.Context(), app.ProjectPath(projectPath), app.WatchRequest{
					BuildRequest: req,
					Debounce:     debounce,
					OnRound:      a.printRound,
				})
			}

			m, warnings, err := s.OpenProject(app.ProjectPath(projectPath))
			if err != nil {
				return err
			}
			for _, w := range warnings {
				_, _ = fmt.Fprintf(a.stderr, "%s %s\n", WarningStyle.Render("Warning:"), w)
			}

			res, err := s.Build(cmd.Context(), m, req)
			if err != nil {
				return err
			}
			a.printBuilt(res)
			return nil
		},
	}
	buildCmd.Flags().StringVarP(&projectPath, "project", "p", defaultProjectFile, "project file")
	buildCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default is output_dir from the config)")
	buildCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "rebuild when the project or its textures change")
	buildCmd.Flags().DurationVar(&debounce, "debounce", 0, "quiet period before a rebuild in watch mode (default 500ms)")
	return buildCmd
}

// buildProgress reports build steps on stderr in verbose mode.
func (a *App) buildProgress(ev packaging.ProgressEvent) {
	if !a.verbose {
		return
	}
	var msg string
	switch ev.Kind {
	case packaging.EventValidated:
		msg = fmt.Sprintf("project is valid (%d vehicle(s))", ev.Total)
	case packaging.EventVehicleStaged:
		msg = fmt.Sprintf("[%d/%d] staged %s", ev.Index, ev.Total, ev.Vehicle)
	case packaging.EventArchiveStarted:
		msg = fmt.Sprintf("writing %s", ev.Path)
	case packaging.EventArchiveFinished:
		msg = "archive complete"
	default:
		return
	}
	_, _ = fmt.Fprintln(a.stderr, VerboseStyle.Render(msg))
}

func (a *App) printBuilt(res *packaging.ArchiveResult) {
	a.printf("%s %s (%d vehicle(s), %d skin(s))\n",
		SuccessStyle.Render("Built"), res.Path, res.VehicleCount, res.AssetCount)
}

// printRound reports one watch round. Failures are shown but do not stop
// the watch.
func (a *App) printRound(r app.BuildRound) {
	if r.Number > 1 {
		a.printf("%s %d file(s) changed\n", SubtitleStyle.Render(fmt.Sprintf("Round %d:", r.Number)), len(r.Changed))
	}
	for _, w := range r.Warnings {
		_, _ = fmt.Fprintf(a.stderr, "%s %s\n", WarningStyle.Render("Warning:"), w)
	}
	if r.Err != nil {
		renderError(a.stderr, r.Err, a.verbose)
		return
	}
	a.printBuilt(r.Result)
}
