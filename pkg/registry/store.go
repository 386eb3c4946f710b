// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// Store layout below the data directory.
const (
	IndexFileName    = "added_vehicles.json"
	VehiclesDirName  = "vehicles"
	MaterialFileName = "skin.materials.json"
	PartFileName     = "skin.jbeam"
	previewBaseName  = "preview"
)

type (
	// Store persists custom vehicles below a data directory:
	//
	//	<dir>/added_vehicles.json           id -> display name
	//	<dir>/vehicles/<id>/skin.materials.json
	//	<dir>/vehicles/<id>/skin.jbeam
	//	<dir>/vehicles/<id>/preview.<ext>   optional
	//
	// The template files hold normalized templates, so reading them back runs
	// through the same select/normalize pipeline as a registration.
	Store struct {
		dir types.FilesystemPath
	}

	// IndexEntry is one vehicle of the store index.
	IndexEntry struct {
		ID          types.VehicleID
		DisplayName string
	}
)

// NewStore returns a store rooted at dir. Nothing is created until the first
// write.
func NewStore(dir types.FilesystemPath) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory.
func (s *Store) Dir() types.FilesystemPath { return s.dir }

// IndexPath returns the path of added_vehicles.json.
func (s *Store) IndexPath() types.FilesystemPath { return fspath.JoinStr(s.dir, IndexFileName) }

// VehicleDir returns the directory holding a vehicle's template files.
func (s *Store) VehicleDir(id types.VehicleID) types.FilesystemPath {
	return fspath.JoinStr(s.dir, VehiclesDirName, string(id))
}

// ReadIndex returns the index entries in file order. A missing index is an
// empty store.
func (s *Store) ReadIndex() ([]IndexEntry, error) {
	data, err := os.ReadFile(string(s.IndexPath()))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fspath.NewIOError("read", s.IndexPath(), err)
	}
	doc, err := configdoc.ParseJSON(string(s.IndexPath()), data)
	if err != nil {
		return nil, err
	}
	entries := make([]IndexEntry, 0, doc.Root.Len())
	for _, m := range doc.Root.Members() {
		name, ok := m.Value.(string)
		if !ok {
			return nil, &configdoc.MalformedConfigError{
				Path:   string(s.IndexPath()),
				Offset: m.Offset,
				Reason: fmt.Sprintf("display name of %q must be a string", m.Key),
			}
		}
		entries = append(entries, IndexEntry{ID: types.VehicleID(m.Key), DisplayName: name})
	}
	return entries, nil
}

// WriteIndex replaces the index with entries, sorted by ID.
func (s *Store) WriteIndex(entries []IndexEntry) error {
	sorted := slices.SortedFunc(slices.Values(entries), func(a, b IndexEntry) int {
		return strings.Compare(string(a.ID), string(b.ID))
	})
	obj := configdoc.NewObject(len(sorted))
	for _, e := range sorted {
		obj.Set(string(e.ID), e.DisplayName)
	}
	data, err := configdoc.MarshalIndent(obj)
	if err != nil {
		return err
	}
	return fspath.NewIOError("write", s.IndexPath(), fspath.WriteFileAtomic(s.IndexPath(), data, 0o644))
}

// WriteVehicle stores the template files of rec and, when previewSrc is set,
// a copy of the preview image. It returns the path of the stored preview.
func (s *Store) WriteVehicle(rec *VehicleRecord, previewSrc types.FilesystemPath) (types.FilesystemPath, error) {
	dir := s.VehicleDir(rec.ID)
	matJSON, err := rec.Template.MaterialJSON()
	if err != nil {
		return "", err
	}
	partJSON, err := rec.Template.PartJSON()
	if err != nil {
		return "", err
	}

	matPath := fspath.JoinStr(dir, MaterialFileName)
	if err := fspath.WriteFileAtomic(matPath, matJSON, 0o644); err != nil {
		return "", fspath.NewIOError("write", matPath, err)
	}
	partPath := fspath.JoinStr(dir, PartFileName)
	if err := fspath.WriteFileAtomic(partPath, partJSON, 0o644); err != nil {
		return "", fspath.NewIOError("write", partPath, err)
	}

	if previewSrc == "" {
		return "", nil
	}
	previewPath := fspath.JoinStr(dir, previewBaseName+strings.ToLower(previewSrc.Ext()))
	if err := fspath.CopyFileAtomic(previewPath, previewSrc, 0o644); err != nil {
		return "", fspath.NewIOError("copy", previewSrc, err)
	}
	return previewPath, nil
}

// ReadVehicle parses a vehicle's stored template files and locates its
// preview image.
func (s *Store) ReadVehicle(id types.VehicleID, cache *configdoc.Cache) (material, part *configdoc.Document, preview types.FilesystemPath, err error) {
	dir := s.VehicleDir(id)
	material, err = cache.ParseFile(string(fspath.JoinStr(dir, MaterialFileName)))
	if err != nil {
		return nil, nil, "", err
	}
	part, err = cache.ParseFile(string(fspath.JoinStr(dir, PartFileName)))
	if err != nil {
		return nil, nil, "", err
	}
	if matches, _ := filepath.Glob(filepath.Join(string(dir), previewBaseName+".*")); len(matches) > 0 {
		preview = types.FilesystemPath(matches[0])
	}
	return material, part, preview, nil
}

// RemoveVehicle deletes a vehicle's directory.
func (s *Store) RemoveVehicle(id types.VehicleID) error {
	dir := s.VehicleDir(id)
	return fspath.NewIOError("remove", dir, os.RemoveAll(string(dir)))
}
