// SPDX-License-Identifier: MPL-2.0

package skintemplate

import (
	"strings"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

type (
	// NormalizedTemplate is the canonical, placeholder-bearing skin definition
	// of one vehicle. It is immutable: accessors return copies.
	NormalizedTemplate struct {
		vehicleID   types.VehicleID
		materialKey string
		material    *configdoc.Object
		partKey     string
		part        *configdoc.Object
	}

	// Instance holds the values substituted into a template for one texture.
	Instance struct {
		// SkinName replaces SKINNAME in keys and values.
		SkinName types.SkinToken
		// SkinFile replaces SKINFILE, normally the staged texture file name.
		SkinFile string
		// Author replaces AUTHOR.
		Author string
		// DisplayName becomes the part's information.name when non-empty.
		DisplayName string
	}

	// Instantiated is a template with its placeholders filled in.
	Instantiated struct {
		MaterialKey string
		Material    *configdoc.Object
		PartKey     string
		Part        *configdoc.Object
	}
)

// VehicleID returns the vehicle the template belongs to.
func (t *NormalizedTemplate) VehicleID() types.VehicleID { return t.vehicleID }

// MaterialKey returns the placeholder material key.
func (t *NormalizedTemplate) MaterialKey() string { return t.materialKey }

// PartKey returns the placeholder part key.
func (t *NormalizedTemplate) PartKey() string { return t.partKey }

// Material returns a copy of the material entry.
func (t *NormalizedTemplate) Material() *configdoc.Object { return t.material.Clone() }

// Part returns a copy of the part entry.
func (t *NormalizedTemplate) Part() *configdoc.Object { return t.part.Clone() }

// MaterialDocument returns the material file content: one member keyed by
// MaterialKey.
func (t *NormalizedTemplate) MaterialDocument() *configdoc.Object {
	o := configdoc.NewObject(1)
	o.Set(t.materialKey, t.material.Clone())
	return o
}

// PartDocument returns the part file content: one member keyed by PartKey.
func (t *NormalizedTemplate) PartDocument() *configdoc.Object {
	o := configdoc.NewObject(1)
	o.Set(t.partKey, t.part.Clone())
	return o
}

// MaterialJSON encodes MaterialDocument. The output is byte-stable.
func (t *NormalizedTemplate) MaterialJSON() ([]byte, error) {
	return configdoc.MarshalIndent(t.MaterialDocument())
}

// PartJSON encodes PartDocument. The output is byte-stable.
func (t *NormalizedTemplate) PartJSON() ([]byte, error) {
	return configdoc.MarshalIndent(t.PartDocument())
}

// Instantiate fills the placeholders in for one texture asset.
func (t *NormalizedTemplate) Instantiate(in Instance) *Instantiated {
	r := strings.NewReplacer(
		PlaceholderSkinName, string(in.SkinName),
		PlaceholderSkinFile, in.SkinFile,
		PlaceholderAuthor, in.Author,
	)
	out := &Instantiated{
		MaterialKey: r.Replace(t.materialKey),
		Material:    substitute(r, t.material).(*configdoc.Object),
		PartKey:     r.Replace(t.partKey),
		Part:        substitute(r, t.part).(*configdoc.Object),
	}
	if in.DisplayName != "" {
		if info, ok := out.Part.GetObject("information"); ok {
			info.Set("name", in.DisplayName)
		}
	}
	return out
}

// substitute returns a deep copy of v with r applied to every key and string.
func substitute(r *strings.Replacer, v any) any {
	switch x := v.(type) {
	case *configdoc.Object:
		out := configdoc.NewObject(x.Len())
		for key, val := range x.All() {
			out.Set(r.Replace(key), substitute(r, val))
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = substitute(r, e)
		}
		return out
	case string:
		return r.Replace(x)
	default:
		return v
	}
}
