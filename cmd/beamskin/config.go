// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/app"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/config"
)

// newConfigCommand creates the `beamskin config` command tree.
func newConfigCommand(a *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage beamskin configuration",
		Long: `Manage beamskin configuration.

Configuration is stored in:
  - Linux: ~/.config/beamskin/config.cue
  - macOS: ~/Library/Application Support/beamskin/config.cue
  - Windows: %APPDATA%\beamskin\config.cue

Every key can be overridden with a BEAMSKIN_ environment variable, for
example BEAMSKIN_OUTPUT_DIR or BEAMSKIN_UI_VERBOSE.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Session(cmd.Context())
			if err != nil {
				return err
			}
			a.showConfig(s)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfgFile != "" {
				a.println(a.cfgFile)
				return nil
			}
			p, err := config.ConfigFilePath()
			if err != nil {
				return err
			}
			a.println(p)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.CreateDefaultConfig()
			if err != nil {
				return err
			}
			a.printf("%s %s\n", SuccessStyle.Render("Configuration file:"), p)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.Session(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("%s", config.GenerateCUE(s.Config))
			return nil
		},
	})

	return cfgCmd
}

func (a *App) showConfig(s *app.Session) {
	cfg := s.Config

	a.println(TitleStyle.Render("Current Configuration"))
	a.println()
	if s.ConfigPath != "" {
		a.printf("%s: %s\n", KeyStyle.Render("Config file"), s.ConfigPath)
	} else {
		a.printf("%s: %s\n", KeyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	a.println()

	a.printf("%s: %s\n", KeyStyle.Render("data_dir"), SuccessStyle.Render(string(cfg.DataDir)))
	a.printf("%s: %s\n", KeyStyle.Render("output_dir"), SuccessStyle.Render(string(cfg.OutputDir)))
	a.printf("%s: %s\n", KeyStyle.Render("author_name"), SuccessStyle.Render(cfg.AuthorName))
	a.printf("%s: %s\n", KeyStyle.Render("parse_cache_size"), SuccessStyle.Render(fmt.Sprint(cfg.ParseCacheSize)))

	a.println()
	a.printf("%s:\n", KeyStyle.Render("ui"))
	a.printf("  verbose: %s\n", SuccessStyle.Render(fmt.Sprint(cfg.UI.Verbose)))
	a.printf("  debug: %s\n", SuccessStyle.Render(fmt.Sprint(cfg.UI.Debug)))
	a.printf("  assume_yes: %s\n", SuccessStyle.Render(fmt.Sprint(cfg.UI.AssumeYes)))
}
