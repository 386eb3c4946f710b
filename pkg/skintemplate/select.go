// SPDX-License-Identifier: MPL-2.0

package skintemplate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
)

// Document kinds reported by NoCanonicalSkinError.
const (
	DocumentMaterial DocumentKind = "material"
	DocumentPart     DocumentKind = "part"
)

var (
	// ErrNoCanonicalSkinFound is returned when a material or part document has
	// no skin-capable entry.
	ErrNoCanonicalSkinFound = errors.New("no skin-capable entry found")

	// textureFields are the material members that carry the color texture, in
	// the order they are preferred when a new one has to be added.
	textureFields = []string{"baseColorMap", "colorMap", "diffuseMap", "colorPaletteMap"}
)

type (
	// DocumentKind names which of the two input documents an error refers to.
	DocumentKind string

	// NoCanonicalSkinError is returned when SelectCanonical finds no
	// skin-capable entry in one of the documents.
	NoCanonicalSkinError struct {
		Document DocumentKind
		Path     string
	}

	// Entry is one top-level member of a document.
	Entry struct {
		Key    string
		Value  *configdoc.Object
		Offset int
	}

	// Selection is the result of SelectCanonical: the chosen material and part
	// entries plus the keys of the skin-capable entries that lost to them.
	Selection struct {
		Material           Entry
		Part               Entry
		DiscardedMaterials []string
		DiscardedParts     []string
	}
)

// Error implements the error interface.
func (e *NoCanonicalSkinError) Error() string {
	return fmt.Sprintf("%s document %s has no skin-capable entry", e.Document, e.Path)
}

// Unwrap returns ErrNoCanonicalSkinFound for errors.Is() compatibility.
func (e *NoCanonicalSkinError) Unwrap() error { return ErrNoCanonicalSkinFound }

// SelectCanonical returns the first skin-capable material entry and the first
// skin-capable part entry, in declaration order. Later skin-capable entries are
// listed in the Discarded fields. Entries are returned as deep copies.
func SelectCanonical(material, part *configdoc.Document) (*Selection, error) {
	mat, matRest, ok := first(material, IsSkinMaterial)
	if !ok {
		return nil, &NoCanonicalSkinError{Document: DocumentMaterial, Path: material.Path}
	}
	prt, prtRest, ok := first(part, IsSkinPart)
	if !ok {
		return nil, &NoCanonicalSkinError{Document: DocumentPart, Path: part.Path}
	}
	return &Selection{
		Material:           mat,
		Part:               prt,
		DiscardedMaterials: matRest,
		DiscardedParts:     prtRest,
	}, nil
}

func first(doc *configdoc.Document, match func(*configdoc.Object) bool) (chosen Entry, rest []string, found bool) {
	if doc == nil {
		return Entry{}, nil, false
	}
	for _, m := range doc.Root.Members() {
		obj, ok := m.Value.(*configdoc.Object)
		if !ok || !match(obj) {
			continue
		}
		if found {
			rest = append(rest, m.Key)
			continue
		}
		chosen = Entry{Key: m.Key, Value: obj.Clone(), Offset: m.Offset}
		found = true
	}
	return chosen, rest, found
}

// IsSkinMaterial reports whether a material entry can carry a skin: it maps
// onto a mesh material (string mapTo) and has a color texture either directly
// or in one of its stages.
func IsSkinMaterial(obj *configdoc.Object) bool {
	if _, ok := obj.GetString("mapTo"); !ok {
		return false
	}
	if hasTexture(obj) {
		return true
	}
	for _, stage := range stages(obj) {
		if hasTexture(stage) {
			return true
		}
	}
	return false
}

// IsSkinPart reports whether a part entry is a skin slot: it names a global
// skin or its slot type is paint_design.
func IsSkinPart(obj *configdoc.Object) bool {
	if obj.Has("globalSkin") || obj.Has("skinName") {
		return true
	}
	slot, _ := obj.GetString("slotType")
	return slot == "paint_design"
}

func hasTexture(obj *configdoc.Object) bool {
	return slices.ContainsFunc(textureFields, obj.Has)
}

// stages returns the object elements of the Stages array.
func stages(obj *configdoc.Object) []*configdoc.Object {
	list, _ := obj.GetArray("Stages")
	var out []*configdoc.Object
	for _, v := range list {
		if s, ok := v.(*configdoc.Object); ok {
			out = append(out, s)
		}
	}
	return out
}
