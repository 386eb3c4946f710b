// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/issue"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/cueutil"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/platform"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

const (
	// AppName is the application name.
	AppName = "beamskin"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// EnvPrefix prefixes environment overrides, e.g. BEAMSKIN_OUTPUT_DIR or
	// BEAMSKIN_UI_VERBOSE.
	EnvPrefix = "BEAMSKIN"

	// simulatorDir is the simulator's user folder name; mods live in
	// <simulatorDir>/current/mods.
	simulatorDir = "BeamNG.drive"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the beamskin configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DataDir returns the default registry directory: %LOCALAPPDATA%\beamskin on
// Windows, ~/Library/Application Support/beamskin on macOS, and
// $XDG_DATA_HOME/beamskin (defaulting to ~/.local/share) elsewhere.
func DataDir() (string, error) {
	switch runtime.GOOS {
	case platform.Windows:
		return filepath.Join(localAppData(), AppName), nil
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", AppName), nil
	default:
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		return filepath.Join(base, AppName), nil
	}
}

// DefaultModsDir returns the simulator's mods folder for the current user.
// On Linux the folder lives outside any Flatpak or Snap sandbox beamskin may
// run in.
func DefaultModsDir() (string, error) {
	var base string
	switch runtime.GOOS {
	case platform.Windows:
		base = localAppData()
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		base = filepath.Join(home, "Library", "Application Support")
	default:
		base = platform.HostDataHome(platform.DetectSandbox(), os.Getenv)
		if base == "" {
			return "", fmt.Errorf("failed to get home directory: HOME is not set")
		}
	}
	return filepath.Join(base, simulatorDir, "current", "mods"), nil
}

func localAppData() string {
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return dir
	}
	return filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
}

// ConfigFilePath returns the path of the config file in the config directory.
func ConfigFilePath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state. It returns the config and the file it was read from,
// which is empty when only defaults and the environment apply.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults. AutomaticEnv only consults keys Viper knows about, so
	// every key needs one.
	defaults := DefaultConfig()
	v.SetDefault("data_dir", string(defaults.DataDir))
	v.SetDefault("output_dir", string(defaults.OutputDir))
	v.SetDefault("author_name", defaults.AuthorName)
	v.SetDefault("parse_cache_size", defaults.ParseCacheSize)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.debug", defaults.UI.Debug)
	v.SetDefault("ui.assume_yes", defaults.UI.AssumeYes)

	resolvedPath := ""

	// If a custom config file path is set via --config, use it exclusively.
	if opts.ConfigFilePath != "" {
		path := string(opts.ConfigFilePath)
		if !fileExists(path) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'beamskin config show' to see the default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, "", configFileError(path, err)
		}
		resolvedPath = path
	} else {
		cfgDir, err := configDirWithOverride(string(opts.ConfigDirPath))
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", configFileError(cuePath, err)
			}
			resolvedPath = cuePath
		}
		// If no config file found, use defaults (no error)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Set data_dir and output_dir in the config file or with BEAMSKIN_DATA_DIR and BEAMSKIN_OUTPUT_DIR").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	return &cfg, resolvedPath, nil
}

func configFileError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		WithSuggestion("See 'beamskin config --help' for configuration options").
		WithIssue(issue.ConfigLoadFailedId).
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
//
// Uses Concrete(false) because every config field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return cueutil.FormatError(userValue.Err(), path)
	}

	// Unify with schema to validate against #Config definition
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return cueutil.FormatError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a config file holding the defaults unless one
// exists. It returns the file's path.
func CreateDefaultConfig() (string, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", err
	}

	if fileExists(cfgPath) {
		return cfgPath, nil
	}

	p := types.FilesystemPath(cfgPath)
	if err := fspath.WriteFileAtomic(p, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return cfgPath, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// BeamSkin Studio configuration file\n")
	sb.WriteString("// Environment variables (BEAMSKIN_OUTPUT_DIR, BEAMSKIN_UI_VERBOSE, ...) take precedence.\n\n")

	fmt.Fprintf(&sb, "data_dir:         %q\n", cfg.DataDir)
	fmt.Fprintf(&sb, "output_dir:       %q\n", cfg.OutputDir)
	fmt.Fprintf(&sb, "author_name:      %q\n", cfg.AuthorName)
	fmt.Fprintf(&sb, "parse_cache_size: %d\n", cfg.ParseCacheSize)

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose:    %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tdebug:      %v\n", cfg.UI.Debug)
	fmt.Fprintf(&sb, "\tassume_yes: %v\n", cfg.UI.AssumeYes)
	sb.WriteString("}\n")

	return sb.String()
}
