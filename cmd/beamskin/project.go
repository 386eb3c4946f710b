// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/app"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

const defaultProjectFile = "project" + project.FileExtension

type (
	// projectFlags holds the flags shared by the project commands.
	projectFlags struct {
		path string
	}

	// infoFlags are the project metadata flags of `project new` and
	// `project info`.
	infoFlags struct {
		modName     string
		author      string
		description string
		version     string
	}

	// projectEdit changes m and reports whether it must be saved.
	projectEdit func(s *app.Session, m *project.Model) (changed bool, err error)
)

func (f *infoFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.modName, "mod-name", "", "mod name, also the archive file name")
	fs.StringVar(&f.author, "author", "", "author written into every skin")
	fs.StringVar(&f.description, "description", "", "mod description")
	fs.StringVar(&f.version, "version", "", "mod version")
}

// apply copies the flags that were set on the command line into info.
func (f *infoFlags) apply(fs *pflag.FlagSet, info project.Info) (project.Info, bool) {
	changed := false
	if fs.Changed("mod-name") {
		info.ModName, changed = types.ModName(f.modName), true
	}
	if fs.Changed("author") {
		info.AuthorName, changed = f.author, true
	}
	if fs.Changed("description") {
		info.Description, changed = f.description, true
	}
	if fs.Changed("version") {
		info.Version, changed = f.version, true
	}
	return info, changed
}

// newProjectCommand creates the `beamskin project` command tree.
func newProjectCommand(a *App) *cobra.Command {
	pf := &projectFlags{}
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Create and edit skin projects",
		Long: `Create and edit skin projects.

A project is a .bsproject file listing the mod's metadata, the vehicles it
covers, and the texture chosen for each skin. Commands operate on
./` + defaultProjectFile + ` unless --project names another file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	projectCmd.PersistentFlags().StringVarP(&pf.path, "project", "p", defaultProjectFile, "project file")

	newInfo := &infoFlags{}
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Create an empty project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Session(cmd.Context())
			if err != nil {
				return err
			}
			info, _ := newInfo.apply(cmd.Flags(), project.Info{})
			path := app.ProjectPath(pf.path)
			m, err := s.CreateProject(path, info)
			if err != nil {
				return err
			}
			a.printf("%s %s (%s)\n", SuccessStyle.Render("Created"), path, m.Info().ModName)
			return nil
		},
	}
	newInfo.register(newCmd.Flags())

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the project's vehicles and skins",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(cmd, pf, func(_ *app.Session, m *project.Model) (bool, error) {
				a.printProject(m)
				return false, nil
			})
		},
	}

	setInfo := &infoFlags{}
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show or change the project metadata",
		Long: `Show or change the project metadata.

Without flags the current metadata is printed. The mod name is checked when
the project is built.`,
		Example: `  beamskin project info --mod-name stripes --author Jo --version 1.1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(cmd, pf, func(_ *app.Session, m *project.Model) (bool, error) {
				info, changed := setInfo.apply(cmd.Flags(), m.Info())
				if changed {
					m.SetInfo(info)
				}
				a.printInfo(m.Info())
				return changed, nil
			})
		},
	}
	setInfo.register(infoCmd.Flags())

	addVehicleCmd := &cobra.Command{
		Use:   "add-vehicle <id>...",
		Short: "Add vehicles to the project",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(cmd, pf, func(s *app.Session, m *project.Model) (bool, error) {
				for _, arg := range args {
					if err := s.AddVehicle(m, types.VehicleID(arg)); err != nil {
						return false, err
					}
					a.printf("%s %s\n", SuccessStyle.Render("Added"), KeyStyle.Render(arg))
				}
				return true, nil
			})
		},
	}

	removeVehicleCmd := &cobra.Command{
		Use:   "remove-vehicle <id>",
		Short: "Remove a vehicle and its skins from the project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(cmd, pf, func(_ *app.Session, m *project.Model) (bool, error) {
				if err := m.RemoveVehicle(types.VehicleID(args[0])); err != nil {
					return false, err
				}
				a.printf("%s %s\n", SuccessStyle.Render("Removed"), KeyStyle.Render(args[0]))
				return true, nil
			})
		},
	}

	var skinName string
	addSkinCmd := &cobra.Command{
		Use:   "add-skin <vehicle> <texture>",
		Short: "Add a texture as a skin for a vehicle",
		Long: `Add a texture as a skin for a vehicle in the project.

The texture file must be named <vehicle>_skin_<name>.<ext>. The skin's
display name defaults to <name>.`,
		Example: `  beamskin project add-skin etk800 ./etk800_skin_RacingStripes.dds --name "Racing Stripes"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(cmd, pf, func(_ *app.Session, m *project.Model) (bool, error) {
				src, err := fspath.Abs(types.FilesystemPath(args[1]))
				if err != nil {
					return false, err
				}
				asset, err := m.AddAsset(types.VehicleID(args[0]), skinName, src)
				if err != nil {
					return false, err
				}
				if ok, _ := fspath.Exists(src); !ok {
					a.printf("%s texture %s does not exist yet\n", WarningStyle.Render("Warning:"), src)
				}
				a.printf("%s %q to %s\n", SuccessStyle.Render("Added skin"), asset.DisplayName, KeyStyle.Render(args[0]))
				return true, nil
			})
		},
	}
	addSkinCmd.Flags().StringVar(&skinName, "name", "", "display name of the skin")

	removeSkinCmd := &cobra.Command{
		Use:   "remove-skin <vehicle> <name>",
		Short: "Remove a skin from a vehicle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(cmd, pf, func(_ *app.Session, m *project.Model) (bool, error) {
				if err := m.RemoveAsset(types.VehicleID(args[0]), args[1]); err != nil {
					return false, err
				}
				a.printf("%s %q from %s\n", SuccessStyle.Render("Removed skin"), args[1], KeyStyle.Render(args[0]))
				return true, nil
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every vehicle from the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editProject(cmd, pf, func(s *app.Session, m *project.Model) (bool, error) {
				if m.VehicleCount() == 0 {
					a.println(SubtitleStyle.Render("The project has no vehicles."))
					return false, nil
				}
				title := fmt.Sprintf("Remove %d vehicle(s) and %d skin(s)?", m.VehicleCount(), m.AssetCount())
				if err := a.confirm(s, title, "Project info is kept."); err != nil {
					return false, err
				}
				m.Clear()
				a.println(SuccessStyle.Render("Project cleared."))
				return true, nil
			})
		},
	}

	projectCmd.AddCommand(newCmd, showCmd, infoCmd, addVehicleCmd, removeVehicleCmd, addSkinCmd, removeSkinCmd, clearCmd)
	return projectCmd
}

// editProject opens the project named by the flags, runs edit, and saves
// the project when edit reports a change. Nothing is saved on error.
func (a *App) editProject(cmd *cobra.Command, pf *projectFlags, edit projectEdit) error {
	s, err := a.Session(cmd.Context())
	if err != nil {
		return err
	}
	path := app.ProjectPath(pf.path)
	m, warnings, err := s.OpenProject(path)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		_, _ = fmt.Fprintf(a.stderr, "%s %s\n", WarningStyle.Render("Warning:"), w)
	}
	changed, err := edit(s, m)
	if err != nil || !changed {
		return err
	}
	return s.SaveProject(m, path)
}

func (a *App) printInfo(info project.Info) {
	a.printf("%s: %s\n", KeyStyle.Render("mod_name"), info.ModName)
	a.printf("%s: %s\n", KeyStyle.Render("author"), info.AuthorName)
	a.printf("%s: %s\n", KeyStyle.Render("description"), info.Description)
	a.printf("%s: %s\n", KeyStyle.Render("version"), info.Version)
}

func (a *App) printProject(m *project.Model) {
	snap := m.Snapshot()
	a.println(TitleStyle.Render(string(snap.ModName)))
	a.printInfo(snap.Info)
	a.println()
	if len(snap.Vehicles) == 0 {
		a.println(SubtitleStyle.Render("No vehicles. Add one with 'beamskin project add-vehicle <id>'."))
		return
	}
	for _, v := range snap.Vehicles {
		a.printf("%s (%d skin(s))\n", KeyStyle.Render(string(v.VehicleID)), len(v.Assets))
		for _, asset := range v.Assets {
			line := fmt.Sprintf("  - %s: %s", asset.DisplayName, asset.SourcePath)
			if asset.Missing {
				line += " " + WarningStyle.Render("(missing)")
			}
			a.println(line)
		}
	}
}
