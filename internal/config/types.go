// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// maxParseCacheSize bounds parse_cache_size; the schema enforces the same limit.
const maxParseCacheSize = 4096

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidLoadOptions is the sentinel error wrapped by InvalidLoadOptionsError.
	ErrInvalidLoadOptions = errors.New("invalid load options")
)

type (
	// Config holds the application configuration.
	Config struct {
		// DataDir holds the vehicle registry store (added_vehicles.json and vehicles/).
		DataDir types.FilesystemPath `json:"data_dir" mapstructure:"data_dir"`
		// OutputDir is where built mod archives are written. It defaults to
		// the simulator's mods folder.
		OutputDir types.FilesystemPath `json:"output_dir" mapstructure:"output_dir"`
		// AuthorName is the default author for new projects.
		AuthorName string `json:"author_name" mapstructure:"author_name"`
		// ParseCacheSize is the number of parsed vehicle files kept in memory.
		// Zero disables the cache.
		ParseCacheSize int `json:"parse_cache_size" mapstructure:"parse_cache_size"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Debug logs normalization details such as discarded template candidates.
		Debug bool `json:"debug" mapstructure:"debug"`
		// AssumeYes answers confirmation prompts with yes.
		AssumeYes bool `json:"assume_yes" mapstructure:"assume_yes"`
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// InvalidLoadOptionsError is returned when LoadOptions has invalid fields.
	InvalidLoadOptionsError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration. Directory defaults are
// resolved for the current platform; they are empty when no home directory
// is known.
func DefaultConfig() *Config {
	dataDir, _ := DataDir()
	outputDir, _ := DefaultModsDir()
	return &Config{
		DataDir:        types.FilesystemPath(dataDir),
		OutputDir:      types.FilesystemPath(outputDir),
		ParseCacheSize: 64,
	}
}

// Validate checks the fields CUE cannot: both directories must be set after
// defaults and overrides are applied.
func (c *Config) Validate() error {
	var errs []error
	if err := c.DataDir.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("data_dir: %w", err))
	}
	if err := c.OutputDir.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("output_dir: %w", err))
	}
	if c.ParseCacheSize < 0 || c.ParseCacheSize > maxParseCacheSize {
		errs = append(errs, fmt.Errorf("parse_cache_size: must be between 0 and %d, got %d", maxParseCacheSize, c.ParseCacheSize))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s): %s", len(e.FieldErrors), joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Error implements the error interface for InvalidLoadOptionsError.
func (e *InvalidLoadOptionsError) Error() string {
	return fmt.Sprintf("invalid load options: %d field error(s): %s", len(e.FieldErrors), joinErrors(e.FieldErrors))
}

// Unwrap returns ErrInvalidLoadOptions for errors.Is() compatibility.
func (e *InvalidLoadOptionsError) Unwrap() error { return ErrInvalidLoadOptions }

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}
