// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zip"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// ArchiveExt is the extension of built archives.
const ArchiveExt = ".zip"

type (
	// Engine builds mod archives. The zero value is not usable; call NewEngine.
	Engine struct {
		logger *log.Logger
		now    func() time.Time
	}

	// Option configures an Engine.
	Option func(*Engine)

	// BuildOptions controls one build.
	BuildOptions struct {
		OutputDir types.FilesystemPath
		Progress  ProgressFunc
	}

	// ArchiveResult describes a written archive.
	ArchiveResult struct {
		BuildID      uuid.UUID
		Path         types.FilesystemPath
		VehicleCount int
		AssetCount   int
		// Entries lists the archive paths in write order.
		Entries []string
	}

	// Task is a build running on its own goroutine.
	Task struct {
		done   chan struct{}
		result *ArchiveResult
		err    error
	}
)

// WithLogger sets the engine's logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithClock sets the time stamped on generated archive entries.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine returns a packaging engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: log.New(io.Discard), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ArchivePath returns where a build of p into outputDir writes its archive.
func ArchivePath(outputDir types.FilesystemPath, modName types.ModName) types.FilesystemPath {
	return fspath.JoinStr(outputDir, string(modName)+ArchiveExt)
}

// Build validates p and writes its archive. ctx is checked between staging
// steps; once the archive is being written, cancellation only takes effect
// at the final move, so no partial archive is ever left at the destination.
func (e *Engine) Build(ctx context.Context, p *project.Project, r Resolver, opts BuildOptions) (*ArchiveResult, error) {
	if err := opts.OutputDir.Validate(); err != nil {
		return nil, err
	}
	buildID, err := uuid.NewV7()
	if err != nil {
		buildID = uuid.New()
	}
	logger := e.logger.With("build_id", buildID)

	if err := Validate(p, r); err != nil {
		return nil, err
	}
	opts.Progress.emit(ProgressEvent{BuildID: buildID, Kind: EventValidated, Total: len(p.Vehicles)})

	dest := ArchivePath(opts.OutputDir, p.ModName)
	if exists, err := fspath.Exists(dest); err != nil {
		return nil, fspath.NewIOError("stat", dest, err)
	} else if exists {
		return nil, &ArchiveExistsError{Path: dest}
	}

	var files []stagedFile
	for i, v := range p.Vehicles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, ok := r.Lookup(v.VehicleID)
		if !ok {
			// Validate resolved it a moment ago; the registry changed under us.
			return nil, &ValidationError{Problems: []Problem{{Kind: ProblemUnknownVehicle, VehicleID: v.VehicleID, Message: "vehicle is not registered"}}}
		}
		staged, err := stageVehicle(v, rec, p.AuthorName)
		if err != nil {
			return nil, fmt.Errorf("staging %s: %w", v.VehicleID, err)
		}
		files = append(files, staged...)
		logger.Debug("vehicle staged", "id", v.VehicleID, "skins", len(v.Assets))
		opts.Progress.emit(ProgressEvent{BuildID: buildID, Kind: EventVehicleStaged, Vehicle: v.VehicleID, Index: i + 1, Total: len(p.Vehicles)})
	}
	info, err := stageModInfo(p.Info)
	if err != nil {
		return nil, err
	}
	files = append(files, info)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts.Progress.emit(ProgressEvent{BuildID: buildID, Kind: EventArchiveStarted, Path: dest})
	if err := e.writeArchive(ctx, dest, files); err != nil {
		return nil, err
	}
	opts.Progress.emit(ProgressEvent{BuildID: buildID, Kind: EventArchiveFinished, Path: dest})

	result := &ArchiveResult{
		BuildID:      buildID,
		Path:         dest,
		VehicleCount: len(p.Vehicles),
		AssetCount:   p.AssetCount(),
		Entries:      make([]string, len(files)),
	}
	for i, f := range files {
		result.Entries[i] = f.ArchivePath
	}
	logger.Info("archive written", "path", dest, "vehicles", result.VehicleCount, "skins", result.AssetCount)
	return result, nil
}

// Start runs Build on a new goroutine. p must not be modified until the task
// is done; a project.Snapshot satisfies this.
func (e *Engine) Start(ctx context.Context, p *project.Project, r Resolver, opts BuildOptions) *Task {
	t := &Task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.result, t.err = e.Build(ctx, p, r, opts)
	}()
	return t
}

// Done is closed when the build has finished.
func (t *Task) Done() <-chan struct{} { return t.done }

// Result waits for the build and returns its outcome.
func (t *Task) Result() (*ArchiveResult, error) {
	<-t.done
	return t.result, t.err
}

// writeArchive writes files to a temporary archive next to dest and then
// moves it into place without replacing an existing file.
func (e *Engine) writeArchive(ctx context.Context, dest types.FilesystemPath, files []stagedFile) (err error) {
	dir := fspath.Dir(dest)
	if err = os.MkdirAll(string(dir), 0o755); err != nil {
		return fspath.NewIOError("create directory", dir, err)
	}
	tmp, err := os.CreateTemp(string(dir), "."+dest.Base()+".tmp-*")
	if err != nil {
		return fspath.NewIOError("create", dir, err)
	}
	tmpPath := types.FilesystemPath(tmp.Name())
	defer func() { _ = os.Remove(string(tmpPath)) }()

	if err = e.writeZip(tmp, files); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fspath.NewIOError("close", tmpPath, err)
	}

	// Last point where a cancellation is honored.
	if err = ctx.Err(); err != nil {
		return err
	}
	return moveNoReplace(tmpPath, dest)
}

func (e *Engine) writeZip(w io.Writer, files []stagedFile) (err error) {
	zw := zip.NewWriter(w)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = fspath.NewIOError("finish", "archive", closeErr)
		}
	}()

	for _, f := range files {
		if err = e.writeEntry(zw, f); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) writeEntry(zw *zip.Writer, f stagedFile) error {
	header := &zip.FileHeader{Name: f.ArchivePath, Method: zip.Deflate, Modified: e.now()}
	header.SetMode(0o644)

	var src *os.File
	if f.Source != "" {
		var err error
		src, err = os.Open(string(f.Source))
		if err != nil {
			return fspath.NewIOError("open", f.Source, err)
		}
		defer func() { _ = src.Close() }() // read-only file
		if info, statErr := src.Stat(); statErr == nil {
			header.Modified = info.ModTime()
		}
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fspath.NewIOError("add entry", types.FilesystemPath(f.ArchivePath), err)
	}
	if src != nil {
		_, err = io.Copy(w, src)
	} else {
		_, err = w.Write(f.Data)
	}
	return fspath.NewIOError("write entry", types.FilesystemPath(f.ArchivePath), err)
}

// moveNoReplace moves src to dst, failing if dst exists. A hard link gives
// an atomic check-and-create; filesystems without hard links fall back to a
// stat followed by a rename.
func moveNoReplace(src, dst types.FilesystemPath) error {
	err := os.Link(string(src), string(dst))
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrExist) {
		return &ArchiveExistsError{Path: dst}
	}
	exists, statErr := fspath.Exists(dst)
	if statErr != nil {
		return fspath.NewIOError("stat", dst, statErr)
	}
	if exists {
		return &ArchiveExistsError{Path: dst}
	}
	if err := os.Rename(string(src), string(dst)); err != nil {
		return fspath.NewIOError("rename", dst, err)
	}
	return nil
}
