// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"encoding/json"
	"path"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/registry"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/skintemplate"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// Generated file names inside vehicles/<id>/.
const (
	SkinsPartFile     = "skins.jbeam"
	SkinsMaterialFile = "skins.materials.json"
	ModInfoFile       = "info.json"
)

type (
	// stagedFile is one archive entry: either a copy of Source or Data.
	stagedFile struct {
		ArchivePath string
		Source      types.FilesystemPath
		Data        []byte
	}

	// ModInfo is the content of mod_info/<mod name>/info.json.
	ModInfo struct {
		Name        string `json:"name"`
		Author      string `json:"author"`
		Description string `json:"description"`
		Version     string `json:"version"`
	}
)

func vehicleArchivePath(id types.VehicleID, file string) string {
	return path.Join("vehicles", string(id), file)
}

// stageVehicle returns the archive entries of one vehicle: its textures in
// asset order followed by the generated part and material files.
func stageVehicle(entry project.VehicleEntry, rec *registry.VehicleRecord, author string) ([]stagedFile, error) {
	files := make([]stagedFile, 0, len(entry.Assets)+2)
	parts := configdoc.NewObject(len(entry.Assets))
	materials := configdoc.NewObject(len(entry.Assets))

	for _, a := range entry.Assets {
		inst := rec.Template.Instantiate(skintemplate.Instance{
			SkinName:    a.Token(),
			SkinFile:    a.FileName(),
			Author:      author,
			DisplayName: a.DisplayName,
		})
		parts.Set(inst.PartKey, inst.Part)
		materials.Set(inst.MaterialKey, inst.Material)
		files = append(files, stagedFile{ArchivePath: vehicleArchivePath(entry.VehicleID, a.FileName()), Source: a.SourcePath})
	}

	partJSON, err := configdoc.MarshalIndent(parts)
	if err != nil {
		return nil, err
	}
	matJSON, err := configdoc.MarshalIndent(materials)
	if err != nil {
		return nil, err
	}
	return append(files,
		stagedFile{ArchivePath: vehicleArchivePath(entry.VehicleID, SkinsPartFile), Data: partJSON},
		stagedFile{ArchivePath: vehicleArchivePath(entry.VehicleID, SkinsMaterialFile), Data: matJSON},
	), nil
}

func stageModInfo(info project.Info) (stagedFile, error) {
	data, err := json.MarshalIndent(ModInfo{
		Name:        string(info.ModName),
		Author:      info.AuthorName,
		Description: info.Description,
		Version:     info.Version,
	}, "", "  ")
	if err != nil {
		return stagedFile{}, err
	}
	return stagedFile{
		ArchivePath: path.Join("mod_info", string(info.ModName), ModInfoFile),
		Data:        append(data, '\n'),
	}, nil
}
