// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/registry"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// newVehicleCommand creates the `beamskin vehicle` command tree.
func newVehicleCommand(a *App) *cobra.Command {
	vehicleCmd := &cobra.Command{
		Use:     "vehicle",
		Aliases: []string{"vehicles"},
		Short:   "Manage the vehicles skins can be built for",
		Long: `Manage the vehicle registry.

Built-in vehicles come with the application. Custom vehicles are registered
from a vehicle's materials and jbeam files and stored in the data directory.
A custom vehicle with the id of a built-in vehicle replaces it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var customOnly bool
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List registered vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Session(cmd.Context())
			if err != nil {
				return err
			}
			recs := s.Registry.All()
			if customOnly {
				recs = s.Registry.Custom()
			}
			a.printVehicles(recs)
			return nil
		},
	}
	listCmd.Flags().BoolVar(&customOnly, "custom", false, "only list custom vehicles")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find vehicles whose id or name contains query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Session(cmd.Context())
			if err != nil {
				return err
			}
			recs := slices.Collect(s.Registry.Search(args[0]))
			if len(recs) == 0 {
				a.println(SubtitleStyle.Render(fmt.Sprintf("No vehicles match %q.", args[0])))
				return nil
			}
			a.printVehicles(recs)
			return nil
		},
	}

	var showTemplate bool
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a vehicle and its skin template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Session(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := s.Registry.Resolve(types.VehicleID(args[0]))
			if err != nil {
				return err
			}
			return a.showVehicle(rec, showTemplate)
		},
	}
	showCmd.Flags().BoolVar(&showTemplate, "template", false, "print the normalized material and part templates")

	var req registry.RegisterRequest
	var materials, jbeam, preview string
	addCmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Register a custom vehicle",
		Long: `Register a custom vehicle from its materials and jbeam files.

The first skin-capable material and the first paint design part are used as
the vehicle's skin template. Run with --verbose to see which entries were
skipped.`,
		Example: `  beamskin vehicle add mycar --materials skin.materials.json --jbeam mycar_skin.jbeam --name "My Car"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Session(cmd.Context())
			if err != nil {
				return err
			}
			req.ID = types.VehicleID(args[0])
			req.MaterialPath = types.FilesystemPath(materials)
			req.PartPath = types.FilesystemPath(jbeam)
			req.PreviewImagePath = types.FilesystemPath(preview)
			rec, err := s.Registry.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.printf("%s %s (%s)\n", SuccessStyle.Render("Registered"), KeyStyle.Render(string(rec.ID)), rec.DisplayName)
			return nil
		},
	}
	addCmd.Flags().StringVar(&req.DisplayName, "name", "", "display name (default is the id)")
	addCmd.Flags().StringVar(&materials, "materials", "", "the vehicle's *.materials.json file")
	addCmd.Flags().StringVar(&jbeam, "jbeam", "", "the vehicle's skin *.jbeam file")
	addCmd.Flags().StringVar(&preview, "preview", "", "optional preview image to store with the vehicle")
	_ = addCmd.MarkFlagRequired("materials")
	_ = addCmd.MarkFlagRequired("jbeam")

	removeCmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a custom vehicle",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Session(cmd.Context())
			if err != nil {
				return err
			}
			id := types.VehicleID(args[0])
			rec, err := s.Registry.Resolve(id)
			if err != nil {
				return err
			}
			if !rec.Builtin {
				if err := a.confirm(s, fmt.Sprintf("Remove vehicle %s?", id), "Its stored template files are deleted."); err != nil {
					return err
				}
			}
			if err := s.Registry.Unregister(id); err != nil {
				return err
			}
			a.printf("%s %s\n", SuccessStyle.Render("Removed"), KeyStyle.Render(string(id)))
			return nil
		},
	}

	vehicleCmd.AddCommand(listCmd, searchCmd, showCmd, addCmd, removeCmd)
	return vehicleCmd
}

func (a *App) printVehicles(recs []*registry.VehicleRecord) {
	for _, rec := range recs {
		line := KeyStyle.Render(fmt.Sprintf("%-16s", rec.ID)) + " " + rec.DisplayName
		if !rec.Builtin {
			line += " " + badgeStyle.Render("(custom)")
		}
		a.println(line)
	}
}

func (a *App) showVehicle(rec *registry.VehicleRecord, withTemplate bool) error {
	source := "built-in"
	if !rec.Builtin {
		source = "custom"
	}
	preview := SubtitleStyle.Render("(none)")
	if rec.PreviewImagePath != "" {
		preview = string(rec.PreviewImagePath)
	}

	a.println(TitleStyle.Render(rec.DisplayName))
	a.printf("%s: %s\n", KeyStyle.Render("id"), rec.ID)
	a.printf("%s: %s\n", KeyStyle.Render("source"), source)
	a.printf("%s: %s\n", KeyStyle.Render("preview"), preview)
	a.printf("%s: %s\n", KeyStyle.Render("material"), rec.Template.MaterialKey())
	a.printf("%s: %s\n", KeyStyle.Render("part"), rec.Template.PartKey())
	if !withTemplate {
		return nil
	}

	material, err := rec.Template.MaterialJSON()
	if err != nil {
		return err
	}
	part, err := rec.Template.PartJSON()
	if err != nil {
		return err
	}
	a.println()
	a.println(SubtitleStyle.Render("materials.json template:"))
	a.printf("%s", material)
	a.println(SubtitleStyle.Render("jbeam template:"))
	a.printf("%s", part)
	return nil
}
