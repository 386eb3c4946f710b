// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"fmt"
	"path/filepath"
	"testing"
)

// VehicleFiles are the paths written by WriteVehicleFiles.
type VehicleFiles struct {
	Materials string
	Part      string
	Preview   string
}

// MaterialsJSON returns a materials file for id whose first skin candidate
// is "<id>_skin", preceded by a non-skin material.
func MaterialsJSON(id string) string {
	return fmt.Sprintf(`{
  "%[1]s_glass": {
    "name": "%[1]s_glass",
    "mapTo": "%[1]s_glass",
    "Stages": [{"opacityFactor": 0.4}]
  },
  "%[1]s_skin": {
    "name": "%[1]s_skin",
    "mapTo": "%[1]s_skin",
    "class": "Material",
    "Stages": [
      {"baseColorMap": "/vehicles/%[1]s/%[1]s_b.dds", "colorPaletteMap": "/vehicles/%[1]s/%[1]s_p.dds"},
      {}
    ],
    "dynamicCubemap": true
  }
}
`, id)
}

// PartJBeam returns a part file in the relaxed dialect (comments, trailing
// commas) whose only paint design is "<id>_skin_stock".
func PartJBeam(id string) string {
	return fmt.Sprintf(`{
  /* body */
  "%[1]s_body": {
    "information": {"authors": "Studio", "name": "Body"},
    "slotType": "%[1]s_body",
  },
  // default paint
  "%[1]s_skin_stock": {
    "information": {"authors": "Studio", "name": "Stock", "value": 100,},
    "slotType": "paint_design",
    "globalSkin": "stock",
  },
}
`, id)
}

// WriteVehicleFiles writes the materials, part and preview fixtures for id
// into dir.
func WriteVehicleFiles(t testing.TB, dir, id string) VehicleFiles {
	t.Helper()
	files := VehicleFiles{
		Materials: filepath.Join(dir, id+".materials.json"),
		Part:      filepath.Join(dir, id+".jbeam"),
		Preview:   filepath.Join(dir, id+"_preview.png"),
	}
	MustWriteFile(t, files.Materials, MaterialsJSON(id))
	MustWriteFile(t, files.Part, PartJBeam(id))
	MustWriteFile(t, files.Preview, "\x89PNG fixture")
	return files
}

// WriteTexture writes a placeholder texture named name into dir and returns
// its path. Its content is "texture:" followed by name.
func WriteTexture(t testing.TB, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	MustWriteFile(t, p, "texture:"+name)
	return p
}
