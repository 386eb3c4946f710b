// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/registry"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// Resolver looks vehicles up by ID. *registry.Registry implements it.
type Resolver interface {
	Lookup(id types.VehicleID) (*registry.VehicleRecord, bool)
}

// Validate checks that p can be packaged and returns a *ValidationError
// listing every problem, or nil. It only reads the filesystem.
func Validate(p *project.Project, r Resolver) error {
	var problems []Problem
	add := func(kind ProblemKind, id types.VehicleID, asset, format string, args ...any) {
		problems = append(problems, Problem{Kind: kind, VehicleID: id, Asset: asset, Message: fmt.Sprintf(format, args...)})
	}

	if err := p.ModName.Validate(); err != nil {
		add(ProblemInvalidModName, "", "", "%v", err)
	}
	if len(p.Vehicles) == 0 {
		add(ProblemNoVehicles, "", "", "the project has no vehicles")
	}

	seenVehicles := make(map[types.VehicleID]bool, len(p.Vehicles))
	archivePaths := make(map[string]string)
	for _, v := range p.Vehicles {
		if seenVehicles[v.VehicleID] {
			add(ProblemDuplicateVehicle, v.VehicleID, "", "vehicle is listed more than once")
			continue
		}
		seenVehicles[v.VehicleID] = true

		if _, ok := r.Lookup(v.VehicleID); !ok {
			add(ProblemUnknownVehicle, v.VehicleID, "", "vehicle is not registered")
		}
		if len(v.Assets) == 0 {
			add(ProblemNoAssets, v.VehicleID, "", "vehicle has no skins")
		}

		tokens := make(map[types.SkinToken]string, len(v.Assets))
		for _, a := range v.Assets {
			if a.VehicleID != v.VehicleID {
				add(ProblemAssetBinding, v.VehicleID, a.DisplayName, "skin is bound to vehicle %q", a.VehicleID)
				continue
			}
			name, err := project.ParseSkinFileName(v.VehicleID, a.SourcePath)
			if err != nil {
				add(ProblemNamingContract, v.VehicleID, a.DisplayName, "%v", err)
				continue
			}
			if other, dup := tokens[name.Token]; dup {
				add(ProblemDuplicateSkinName, v.VehicleID, a.DisplayName, "skin name %q is also used by %q", name.Token, other)
			}
			tokens[name.Token] = a.DisplayName

			archivePath := vehicleArchivePath(v.VehicleID, a.FileName())
			if other, dup := archivePaths[archivePath]; dup {
				add(ProblemArchivePathCollision, v.VehicleID, a.DisplayName, "%s is also staged by %q", archivePath, other)
			}
			archivePaths[archivePath] = a.DisplayName

			if kind, msg := checkSource(a.SourcePath); kind != "" {
				add(kind, v.VehicleID, a.DisplayName, "%s", msg)
			}
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkSource(path types.FilesystemPath) (ProblemKind, string) {
	info, err := os.Stat(string(path))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ProblemMissingSource, fmt.Sprintf("file not found: %s", path)
	case err != nil:
		return ProblemUnreadableSource, err.Error()
	case !info.Mode().IsRegular():
		return ProblemUnreadableSource, fmt.Sprintf("not a regular file: %s", path)
	}
	f, err := os.Open(string(path))
	if err != nil {
		return ProblemUnreadableSource, err.Error()
	}
	_ = f.Close() // opened only to check readability
	return "", ""
}
