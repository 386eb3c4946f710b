// SPDX-License-Identifier: MPL-2.0

package skintemplate

import (
	"fmt"
	"slices"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// Placeholders left in a NormalizedTemplate and filled in by Instantiate.
const (
	PlaceholderSkinName = "SKINNAME"
	PlaceholderSkinFile = "SKINFILE"
	PlaceholderAuthor   = "AUTHOR"
)

// paletteFields are the per-vehicle palette constructs that would tint a
// custom texture. They are stripped from the material and every stage.
var paletteFields = []string{
	"colorPaletteMap",
	"colorPaletteMapUseUV",
	"paletteMap",
	"paletteIndexMap",
	"palette",
	"instanceDiffuse",
}

// MaterialKey returns the placeholder material key for a vehicle.
func MaterialKey(id types.VehicleID) string {
	return fmt.Sprintf("%s.skin.%s", id, PlaceholderSkinName)
}

// PartKey returns the placeholder part key for a vehicle.
func PartKey(id types.VehicleID) string {
	return fmt.Sprintf("%s_skin_%s", id, PlaceholderSkinName)
}

// TexturePath returns the in-game path of a staged texture for a vehicle.
func TexturePath(id types.VehicleID, file string) string {
	return fmt.Sprintf("/vehicles/%s/%s", id, file)
}

// Normalize rewrites a canonical selection into the skin template of the
// given vehicle. The selection is not modified.
func Normalize(id types.VehicleID, sel *Selection) (*NormalizedTemplate, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if sel == nil || sel.Material.Value == nil || sel.Part.Value == nil {
		return nil, fmt.Errorf("normalize %s: %w", id, ErrNoCanonicalSkinFound)
	}

	t := &NormalizedTemplate{
		vehicleID:   id,
		materialKey: MaterialKey(id),
		material:    normalizeMaterial(id, sel.Material.Value),
		partKey:     PartKey(id),
		part:        normalizePart(sel.Part.Value),
	}
	t.material.Set("name", t.materialKey)
	t.material.Set("mapTo", t.materialKey)
	return t, nil
}

func normalizeMaterial(id types.VehicleID, src *configdoc.Object) *configdoc.Object {
	m := src.Clone()
	stageObjs := stages(m)

	for _, f := range paletteFields {
		m.Delete(f)
		for _, s := range stageObjs {
			s.Delete(f)
		}
	}

	texture := TexturePath(id, PlaceholderSkinFile)
	if key, ok := firstTextureField(m); ok {
		m.Set(key, texture)
		return m
	}
	for _, s := range stageObjs {
		if key, ok := firstTextureField(s); ok {
			s.Set(key, texture)
			return m
		}
	}
	if len(stageObjs) > 0 {
		stageObjs[0].Set("baseColorMap", texture)
	} else {
		m.Set("baseColorMap", texture)
	}
	return m
}

// firstTextureField returns the first texture member of obj in declaration order.
func firstTextureField(obj *configdoc.Object) (string, bool) {
	for _, key := range obj.Keys() {
		if slices.Contains(textureFields, key) {
			return key, true
		}
	}
	return "", false
}

func normalizePart(src *configdoc.Object) *configdoc.Object {
	p := src.Clone()
	// skinName is the legacy spelling of globalSkin.
	p.Delete("skinName")
	p.Set("globalSkin", PlaceholderSkinName)

	info, ok := p.GetObject("information")
	if !ok {
		info = configdoc.NewObject(2)
		p.Set("information", info)
	}
	info.Set("name", PlaceholderSkinName)
	info.Set("authors", PlaceholderAuthor)

	p.Set("slotType", "paint_design")
	return p
}
