// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"strings"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/skintemplate"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

type (
	// VehicleRecord is a registered vehicle and its skin template.
	VehicleRecord struct {
		ID          types.VehicleID
		DisplayName string
		Template    *skintemplate.NormalizedTemplate
		// PreviewImagePath is the stored copy of the preview image, if any.
		PreviewImagePath types.FilesystemPath
		// Builtin is true for records from the built-in catalog.
		Builtin bool
	}

	// RegisterRequest describes a custom vehicle to register.
	RegisterRequest struct {
		ID types.VehicleID
		// DisplayName defaults to the ID when empty.
		DisplayName      string
		MaterialPath     types.FilesystemPath
		PartPath         types.FilesystemPath
		PreviewImagePath types.FilesystemPath
	}
)

// Matches reports whether query is a case-insensitive substring of the ID or
// display name. The empty query matches every record.
func (r *VehicleRecord) Matches(query string) bool {
	if query == "" || r.ID.Contains(query) {
		return true
	}
	return strings.Contains(strings.ToLower(r.DisplayName), strings.ToLower(query))
}

func (r *VehicleRecord) clone() *VehicleRecord {
	c := *r
	return &c
}
