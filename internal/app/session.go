// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/config"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/issue"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/packaging"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/registry"
)

type (
	// Options configures Open. The zero value loads the default config file
	// and logs warnings to stderr.
	Options struct {
		Config config.LoadOptions
		// Verbose raises the log level to debug regardless of the config.
		Verbose bool
		// LogOutput receives log records. Defaults to os.Stderr.
		LogOutput io.Writer
		// Clock stamps generated archive entries. Defaults to time.Now.
		Clock func() time.Time
		// Catalog replaces the built-in vehicle catalog when non-nil.
		Catalog []byte
	}

	// Session holds the services of one invocation.
	Session struct {
		Config *config.Config
		// ConfigPath is the config file that was read, or "" for defaults.
		ConfigPath string
		Logger     *log.Logger
		// Cache is nil when parse_cache_size is zero.
		Cache    *configdoc.Cache
		Registry *registry.Registry
		Engine   *packaging.Engine
	}
)

// Open loads the configuration and builds the session services. Stored
// vehicles that fail to load are logged and skipped, not fatal.
func Open(ctx context.Context, opts Options) (*Session, error) {
	res, err := config.LoadWithPath(ctx, opts.Config)
	if err != nil {
		return nil, err
	}
	return newSession(res, opts)
}

func newSession(res config.Result, opts Options) (*Session, error) {
	cfg := res.Config
	logger := newLogger(opts.LogOutput, opts.Verbose || cfg.UI.Verbose || cfg.UI.Debug)

	var cache *configdoc.Cache
	if cfg.ParseCacheSize > 0 {
		c, err := configdoc.NewCache(cfg.ParseCacheSize)
		if err != nil {
			return nil, err
		}
		cache = c
	}

	regOpts := []registry.Option{
		registry.WithStore(registry.NewStore(cfg.DataDir)),
		registry.WithLogger(logger.WithPrefix("registry")),
		registry.WithParseCache(cache),
	}
	if opts.Catalog != nil {
		regOpts = append(regOpts, registry.WithCatalog(opts.Catalog))
	}
	reg, err := registry.New(regOpts...)
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load vehicle registry").
			WithResource(string(cfg.DataDir)).
			WithSuggestion("Check that added_vehicles.json in the data directory is valid JSON").
			WithSuggestion("Move the data directory aside to start with only the built-in vehicles").
			Wrap(err).
			BuildError()
	}
	for _, s := range reg.Skipped() {
		logger.Warn("stored vehicle could not be loaded", "id", s.ID, "err", s.Err)
	}

	engineOpts := []packaging.Option{packaging.WithLogger(logger.WithPrefix("build"))}
	if opts.Clock != nil {
		engineOpts = append(engineOpts, packaging.WithClock(opts.Clock))
	}

	logger.Debug("session opened", "config", res.Path, "data_dir", cfg.DataDir, "output_dir", cfg.OutputDir, "vehicles", reg.Len())
	return &Session{
		Config:     cfg,
		ConfigPath: res.Path,
		Logger:     logger,
		Cache:      cache,
		Registry:   reg,
		Engine:     packaging.NewEngine(engineOpts...),
	}, nil
}

func newLogger(w io.Writer, debug bool) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := log.WarnLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{Level: level, Prefix: "beamskin"})
}
