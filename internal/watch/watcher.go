// SPDX-License-Identifier: MPL-2.0

// Package watch reports changes to a set of files with a debounced callback.
//
// The watcher observes the parent directory of every watched file, so files
// that editors replace by writing a temporary file and renaming it over the
// original are still seen. Events for other files in those directories are
// dropped. Events within the debounce window are coalesced so the callback
// fires once with every changed file.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
var ErrInvalidWatchConfig = errors.New("invalid watch config")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Files are the files to watch. They need not exist yet.
		Files []types.FilesystemPath

		// Debounce is the quiet period after the last event before OnChange
		// fires. Zero selects DefaultDebounce.
		Debounce time.Duration

		// OnChange receives the changed files, sorted. It never runs
		// concurrently with itself; events arriving while it runs are
		// delivered in the next call. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []types.FilesystemPath) error

		Logger *log.Logger
	}

	// InvalidWatchConfigError is returned when a Config has invalid fields.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// Watcher monitors a set of files. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		logger   *log.Logger
		debounce time.Duration
		started  atomic.Bool

		mu    sync.Mutex
		files map[string]struct{}
		dirs  map[string]struct{}
	}
)

// Validate checks every watched path and the debounce period.
func (c Config) Validate() error {
	var errs []error
	for i, f := range c.Files {
		if err := f.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("files[%d]: %w", i, err))
		}
	}
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce: must not be negative, got %s", c.Debounce))
	}
	if len(errs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: errs}
	}
	return nil
}

// Error implements the error interface.
func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("invalid watch config: %d field error(s): %v", len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// New creates a Watcher and starts observing the directories of cfg.Files.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		logger:   cfg.Logger,
		debounce: cfg.Debounce,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	if w.debounce == 0 {
		w.debounce = DefaultDebounce
	}
	if err := w.SetFiles(cfg.Files); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// SetFiles replaces the watched set. Directories no longer needed are
// released. A directory that cannot be watched (usually because it does not
// exist) is logged and skipped; the files in it are still matched if the
// directory is watched for another file.
func (w *Watcher) SetFiles(files []types.FilesystemPath) error {
	nextFiles := make(map[string]struct{}, len(files))
	nextDirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(string(f))
		if err != nil {
			return fmt.Errorf("watch: resolve %s: %w", f, err)
		}
		nextFiles[abs] = struct{}{}
		nextDirs[filepath.Dir(abs)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for dir := range w.dirs {
		if _, keep := nextDirs[dir]; keep {
			continue
		}
		_ = w.fsw.Remove(dir) // the directory may already be gone
		delete(w.dirs, dir)
	}
	for _, dir := range slices.Sorted(maps.Keys(nextDirs)) {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			w.logger.Warn("cannot watch directory", "dir", dir, "err", err)
			continue
		}
		w.dirs[dir] = struct{}{}
	}
	w.files = nextFiles
	return nil
}

// Files returns the watched files, sorted.
func (w *Watcher) Files() []types.FilesystemPath {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]types.FilesystemPath, 0, len(w.files))
	for _, f := range slices.Sorted(maps.Keys(w.files)) {
		out = append(out, types.FilesystemPath(f))
	}
	return out
}

func (w *Watcher) watching(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.files[filepath.Clean(path)]
	return ok
}

// Run blocks until ctx is canceled, dispatching debounced callbacks. It
// returns nil on cancellation and an error if the underlying watcher fails
// beyond recovery.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire runs on the timer goroutine. A round that finds the previous
	// callback still running reschedules itself so pending events survive.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Debug("previous round still running, retrying later")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := make([]types.FilesystemPath, 0, len(pending))
		for _, p := range slices.Sorted(maps.Keys(pending)) {
			changed = append(changed, types.FilesystemPath(p))
		}
		clear(pending)
		mu.Unlock()

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("change handler failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.logger.Warn("close fsnotify watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}
			if evt.Op == fsnotify.Chmod || !w.watching(evt.Name) {
				continue
			}
			w.logger.Debug("file event", "path", evt.Name, "op", evt.Op.String())

			mu.Lock()
			pending[filepath.Clean(evt.Name)] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}
