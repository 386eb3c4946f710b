// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"fmt"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath types.FilesystemPath
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath types.FilesystemPath
}

// Provider loads configuration from explicit options.
type Provider interface {
	Load(ctx context.Context, opts LoadOptions) (*Config, error)
}

// Result is a loaded configuration and the file it came from. Path is empty
// when no config file was found.
type Result struct {
	Config *Config
	Path   string
}

type fileProvider struct{}

// NewProvider creates a configuration provider.
func NewProvider() Provider {
	return &fileProvider{}
}

// Load reads configuration from the requested source.
func (p *fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	cfg, _, err := loadWithOptions(ctx, opts)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithPath is Load that also reports which file was read.
func LoadWithPath(ctx context.Context, opts LoadOptions) (Result, error) {
	cfg, path, err := loadWithOptions(ctx, opts)
	if err != nil {
		return Result{}, err
	}
	return Result{Config: cfg, Path: path}, nil
}

// Validate rejects set-but-blank paths. Zero values mean "use the default".
func (o LoadOptions) Validate() error {
	var errs []error
	if o.ConfigFilePath != "" {
		if err := o.ConfigFilePath.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("config file: %w", err))
		}
	}
	if o.ConfigDirPath != "" {
		if err := o.ConfigDirPath.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("config dir: %w", err))
		}
	}
	if len(errs) > 0 {
		return &InvalidLoadOptionsError{FieldErrors: errs}
	}
	return nil
}
