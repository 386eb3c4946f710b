// SPDX-License-Identifier: MPL-2.0

package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

const (
	// FileExtension is the extension of project files.
	FileExtension = ".bsproject"

	// FormatVersion is the project file format written by Save.
	FormatVersion = 1
)

type (
	// MissingAssetFile is a non-fatal warning from Load: the asset was kept
	// and marked Missing, but its source file does not exist.
	MissingAssetFile struct {
		VehicleID   types.VehicleID
		DisplayName string
		Path        types.FilesystemPath
	}

	projectFile struct {
		FormatVersion  int          `json:"format_version"`
		ModName        string       `json:"mod_name"`
		AuthorName     string       `json:"author_name"`
		ModDescription string       `json:"mod_description"`
		ModVersion     string       `json:"mod_version"`
		AddedCars      []projectCar `json:"added_cars"`
	}

	projectCar struct {
		ID    string        `json:"id"`
		Skins []projectSkin `json:"skins"`
	}

	projectSkin struct {
		Name string `json:"name"`
		Path string `json:"path"`
	}
)

// String describes the warning for display.
func (w MissingAssetFile) String() string {
	return fmt.Sprintf("skin %q of %s: file not found: %s", w.DisplayName, w.VehicleID, w.Path)
}

// Marshal encodes the model as a project file.
func (m *Model) Marshal() ([]byte, error) {
	f := projectFile{
		FormatVersion:  FormatVersion,
		ModName:        string(m.info.ModName),
		AuthorName:     m.info.AuthorName,
		ModDescription: m.info.Description,
		ModVersion:     m.info.Version,
		AddedCars:      make([]projectCar, 0, len(m.vehicles)),
	}
	for _, v := range m.vehicles {
		car := projectCar{ID: string(v.VehicleID), Skins: make([]projectSkin, 0, len(v.Assets))}
		for _, a := range v.Assets {
			car.Skins = append(car.Skins, projectSkin{Name: a.DisplayName, Path: string(a.SourcePath)})
		}
		f.AddedCars = append(f.AddedCars, car)
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Save writes the project file to path atomically.
func (m *Model) Save(path types.FilesystemPath) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return fspath.NewIOError("save project", path, fspath.WriteFileAtomic(path, data, 0o644))
}

// Unmarshal decodes a project file. Every vehicle and asset goes through the
// same checks as AddVehicle and AddAsset. Assets whose source file is missing
// are kept, marked Missing, and reported as warnings.
func Unmarshal(data []byte) (*Model, []MissingAssetFile, error) {
	var f projectFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidProjectFile, err)
	}
	if f.FormatVersion > FormatVersion {
		return nil, nil, fmt.Errorf("%w: format version %d is newer than %d", ErrInvalidProjectFile, f.FormatVersion, FormatVersion)
	}

	m := New()
	m.SetInfo(Info{
		ModName:     types.ModName(f.ModName),
		AuthorName:  f.AuthorName,
		Description: f.ModDescription,
		Version:     f.ModVersion,
	})

	var warnings []MissingAssetFile
	for _, car := range f.AddedCars {
		id := types.VehicleID(car.ID)
		if err := m.AddVehicle(id); err != nil {
			return nil, nil, fmt.Errorf("%w: %w", ErrInvalidProjectFile, err)
		}
		for _, skin := range car.Skins {
			asset, err := m.AddAsset(id, skin.Name, types.FilesystemPath(skin.Path))
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %w", ErrInvalidProjectFile, err)
			}
			if ok, _ := fspath.Exists(asset.SourcePath); ok {
				continue
			}
			entry := m.vehicles[m.find(id)]
			entry.Assets[len(entry.Assets)-1].Missing = true
			warnings = append(warnings, MissingAssetFile{VehicleID: id, DisplayName: asset.DisplayName, Path: asset.SourcePath})
		}
	}
	return m, warnings, nil
}

// Load reads a project file written by Save.
func Load(path types.FilesystemPath) (*Model, []MissingAssetFile, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, err
		}
		return nil, nil, fspath.NewIOError("load project", path, err)
	}
	m, warnings, err := Unmarshal(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, warnings, nil
}
