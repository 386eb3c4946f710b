// SPDX-License-Identifier: MPL-2.0

package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/watch"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/packaging"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

type (
	// WatchRequest configures Session.WatchBuild.
	WatchRequest struct {
		BuildRequest
		// Debounce is the quiet period before a rebuild. Zero selects
		// watch.DefaultDebounce.
		Debounce time.Duration
		// OnRound receives the outcome of every build round, including the
		// first one.
		OnRound func(BuildRound)
	}

	// BuildRound is one rebuild triggered by WatchBuild.
	BuildRound struct {
		Number   int
		Changed  []types.FilesystemPath
		Warnings []project.MissingAssetFile
		Result   *packaging.ArchiveResult
		Err      error
	}

	// ownedArchive is an archive written by an earlier round.
	ownedArchive struct {
		path types.FilesystemPath
		info fs.FileInfo
	}
)

// WatchBuild builds the project at path and rebuilds it whenever the project
// file or one of its textures changes, until ctx is canceled.
//
// The archive written by one round is replaced by the next round once the
// project is valid again and the build succeeds, so an invalid edit or a
// failed build leaves the last good archive in place. Archives this call did not write are never replaced. The first
// round fails the whole call only when the project file does not exist.
func (s *Session) WatchBuild(ctx context.Context, path types.FilesystemPath, req WatchRequest) error {
	var (
		owned  *ownedArchive
		number int
	)
	round := func(ctx context.Context, changed []types.FilesystemPath) (BuildRound, []types.FilesystemPath) {
		number++
		r := BuildRound{Number: number, Changed: changed}
		m, warnings, err := s.OpenProject(path)
		if err != nil {
			r.Err = err
			return r, []types.FilesystemPath{path}
		}
		r.Warnings = warnings
		files := watchedFiles(path, m)

		if err := packaging.Validate(m.Snapshot(), s.Registry); err != nil {
			r.Err = err
			return r, files
		}
		r.Result, owned, r.Err = s.rebuild(ctx, m, req.BuildRequest, owned)
		return r, files
	}
	report := func(r BuildRound) {
		if req.OnRound != nil {
			req.OnRound(r)
		}
	}

	if _, err := os.Stat(string(path)); errors.Is(err, fs.ErrNotExist) {
		_, _, err = s.OpenProject(path)
		return err
	}
	first, files := round(ctx, nil)
	report(first)

	var w *watch.Watcher
	w, err := watch.New(watch.Config{
		Files:    files,
		Debounce: req.Debounce,
		Logger:   s.Logger.WithPrefix("watch"),
		OnChange: func(ctx context.Context, changed []types.FilesystemPath) error {
			s.Logger.Debug("change detected", "files", changed)
			r, files := round(ctx, changed)
			report(r)
			return w.SetFiles(files)
		},
	})
	if err != nil {
		return err
	}
	s.Logger.Info("watching project", "path", path, "files", len(files))
	return w.Run(ctx)
}

// rebuild builds m over the archive prev written by an earlier round. prev is
// moved aside for the build and put back if the build fails, so the last good
// archive survives a failure after validation. It returns the archive the
// next round owns.
func (s *Session) rebuild(ctx context.Context, m *project.Model, req BuildRequest, prev *ownedArchive) (*packaging.ArchiveResult, *ownedArchive, error) {
	var stash types.FilesystemPath
	if prev != nil {
		stash = s.stashArchive(*prev)
	}

	res, err := s.Build(ctx, m, req)
	if err != nil {
		if stash == "" {
			return nil, nil, err
		}
		if rerr := os.Rename(string(stash), string(prev.path)); rerr != nil {
			s.Logger.Warn("cannot restore previous archive", "path", prev.path, "stash", stash, "err", rerr)
			return nil, nil, err
		}
		return nil, prev, err
	}

	if stash != "" {
		if err := os.Remove(string(stash)); err != nil {
			s.Logger.Warn("cannot remove previous archive", "path", stash, "err", err)
		}
	}
	var next *ownedArchive
	if info, err := os.Stat(string(res.Path)); err == nil {
		next = &ownedArchive{path: res.Path, info: info}
	}
	return res, next, nil
}

// stashArchive renames an archive written by an earlier round to a hidden
// sibling and returns the new path. It returns "" and leaves the file alone
// when the file at that path has been replaced since.
func (s *Session) stashArchive(a ownedArchive) types.FilesystemPath {
	info, err := os.Stat(string(a.path))
	if err != nil {
		return ""
	}
	if !os.SameFile(info, a.info) || !info.ModTime().Equal(a.info.ModTime()) {
		s.Logger.Warn("archive changed since it was built, leaving it in place", "path", a.path)
		return ""
	}
	stash := stashPath(a.path)
	if err := os.Rename(string(a.path), string(stash)); err != nil {
		s.Logger.Warn("cannot move previous archive aside", "path", a.path, "err", err)
		return ""
	}
	return stash
}

func stashPath(archive types.FilesystemPath) types.FilesystemPath {
	dir, name := filepath.Split(string(archive))
	return types.FilesystemPath(filepath.Join(dir, "."+name+".prev"))
}

// watchedFiles is the project file plus every texture it references.
func watchedFiles(path types.FilesystemPath, m *project.Model) []types.FilesystemPath {
	files := []types.FilesystemPath{path}
	for _, v := range m.Snapshot().Vehicles {
		for _, a := range v.Assets {
			files = append(files, a.SourcePath)
		}
	}
	return files
}
