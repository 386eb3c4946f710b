// SPDX-License-Identifier: MPL-2.0

package app

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/issue"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// ErrProjectExists is returned by CreateProject instead of overwriting.
var ErrProjectExists = errors.New("project file already exists")

// ProjectPath adds the project file extension to path when it has none.
func ProjectPath(path string) types.FilesystemPath {
	if filepath.Ext(path) == "" {
		path += project.FileExtension
	}
	return types.FilesystemPath(path)
}

// NewProject returns an empty project whose author defaults to the
// configured author_name.
func (s *Session) NewProject() *project.Model {
	m := project.New()
	info := m.Info()
	info.AuthorName = s.Config.AuthorName
	m.SetInfo(info)
	return m
}

// CreateProject writes a new empty project to path. An existing file is
// never replaced.
func (s *Session) CreateProject(path types.FilesystemPath, info project.Info) (*project.Model, error) {
	if exists, err := fspath.Exists(path); err != nil {
		return nil, fspath.NewIOError("stat", path, err)
	} else if exists {
		return nil, issue.NewErrorContext().
			WithOperation("create project").
			WithResource(string(path)).
			WithSuggestion("Choose another file name or remove the existing project first").
			Wrap(ErrProjectExists).
			BuildError()
	}

	m := s.NewProject()
	merged := m.Info()
	if strings.TrimSpace(string(info.ModName)) != "" {
		merged.ModName = info.ModName
	}
	if info.AuthorName != "" {
		merged.AuthorName = info.AuthorName
	}
	if info.Description != "" {
		merged.Description = info.Description
	}
	if info.Version != "" {
		merged.Version = info.Version
	}
	m.SetInfo(merged)

	if err := s.SaveProject(m, path); err != nil {
		return nil, err
	}
	s.Logger.Info("project created", "path", path, "mod", merged.ModName)
	return m, nil
}

// OpenProject loads the project at path. Missing texture files are logged
// and returned as warnings.
func (s *Session) OpenProject(path types.FilesystemPath) (*project.Model, []project.MissingAssetFile, error) {
	m, warnings, err := project.Load(path)
	if err != nil {
		ctx := issue.NewErrorContext().
			WithOperation("open project").
			WithResource(string(path))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			ctx = ctx.WithSuggestion(fmt.Sprintf("Create it with 'beamskin project new %s'", path))
		case errors.Is(err, project.ErrInvalidProjectFile):
			ctx = ctx.WithSuggestion("The file was not written by this tool or was edited by hand")
		}
		return nil, nil, ctx.Wrap(err).BuildError()
	}
	for _, w := range warnings {
		s.Logger.Warn("skin texture is missing", "vehicle", w.VehicleID, "skin", w.DisplayName, "path", w.Path)
	}
	s.Logger.Debug("project opened", "path", path, "vehicles", m.VehicleCount(), "skins", m.AssetCount())
	return m, warnings, nil
}

// SaveProject writes m to path atomically, creating missing directories.
func (s *Session) SaveProject(m *project.Model, path types.FilesystemPath) error {
	if err := m.Save(path); err != nil {
		return issue.NewErrorContext().
			WithOperation("save project").
			WithResource(string(path)).
			WithSuggestion("Check that the directory is writable").
			Wrap(err).
			BuildError()
	}
	s.Logger.Debug("project saved", "path", path)
	return nil
}

// AddVehicle adds id to m after checking that the registry knows it.
func (s *Session) AddVehicle(m *project.Model, id types.VehicleID) error {
	if _, err := s.Registry.Resolve(id); err != nil {
		return err
	}
	return m.AddVehicle(id)
}
