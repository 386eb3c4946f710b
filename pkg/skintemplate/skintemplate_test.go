// SPDX-License-Identifier: MPL-2.0

package skintemplate

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

const (
	stockMaterials = `{
  "etk800_glass": {"name": "etk800_glass", "mapTo": "etk800_glass", "Stages": [{"opacity": 0.5}]},
  "etk800_main": {
    "name": "etk800_main",
    "mapTo": "etk800_main",
    "class": "Material",
    "Stages": [
      {"normalMap": "/vehicles/etk800/etk800_n.dds", "colorPaletteMap": "/vehicles/etk800/etk800_p.dds", "diffuseMap": "/vehicles/etk800/etk800_d.dds", "instanceDiffuse": true},
      {}
    ],
    "paletteMap": "/vehicles/etk800/palette.dds"
  },
  "etk800_alt": {"name": "etk800_alt", "mapTo": "etk800_alt", "colorMap": "/vehicles/etk800/alt.dds"}
}`

	stockParts = `{
  // stock body
  "etk800_body": {"slotType": "main", "information": {"name": "Body"}},
  "etk800_paint_a": {
    "information": {"authors": "BeamNG", "name": "Factory Paint"},
    "slotType": "paint_design",
    "skinName": "factory",
  },
  "etk800_paint_b": {"globalSkin": "stripes"},
}`
)

func parse(t *testing.T) (*configdoc.Document, *configdoc.Document) {
	t.Helper()
	mat, err := configdoc.ParseJSON("skin.materials.json", []byte(stockMaterials))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v", err)
	}
	part, err := configdoc.ParseJBeam("main.jbeam", []byte(stockParts))
	if err != nil {
		t.Fatalf("ParseJBeam() error = %v", err)
	}
	return mat, part
}

func TestSelectCanonical_FirstDeclaredWins(t *testing.T) {
	t.Parallel()

	mat, part := parse(t)
	sel, err := SelectCanonical(mat, part)
	if err != nil {
		t.Fatalf("SelectCanonical() error = %v", err)
	}
	if sel.Material.Key != "etk800_main" {
		t.Errorf("Material.Key = %q, want etk800_main", sel.Material.Key)
	}
	if !slices.Equal(sel.DiscardedMaterials, []string{"etk800_alt"}) {
		t.Errorf("DiscardedMaterials = %v, want [etk800_alt]", sel.DiscardedMaterials)
	}
	if sel.Part.Key != "etk800_paint_a" {
		t.Errorf("Part.Key = %q, want etk800_paint_a", sel.Part.Key)
	}
	if !slices.Equal(sel.DiscardedParts, []string{"etk800_paint_b"}) {
		t.Errorf("DiscardedParts = %v, want [etk800_paint_b]", sel.DiscardedParts)
	}
}

func TestSelectCanonical_SmallestIndexAcrossOrders(t *testing.T) {
	t.Parallel()

	entries := []string{
		`"a": {"mapTo": "a", "colorMap": "a.dds"}`,
		`"b": {"mapTo": "b", "Stages": [{"baseColorMap": "b.dds"}]}`,
		`"c": {"mapTo": "c", "diffuseMap": "c.dds"}`,
	}
	part, err := configdoc.ParseJBeam("p.jbeam", []byte(`{"p": {"globalSkin": "x"}}`))
	if err != nil {
		t.Fatal(err)
	}
	for _, order := range [][]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}} {
		var parts []string
		for _, i := range order {
			parts = append(parts, entries[i])
		}
		mat, err := configdoc.ParseJSON("m.json", []byte("{"+strings.Join(parts, ",")+"}"))
		if err != nil {
			t.Fatal(err)
		}
		sel, err := SelectCanonical(mat, part)
		if err != nil {
			t.Fatal(err)
		}
		want := mat.Root.Keys()[0]
		if sel.Material.Key != want {
			t.Errorf("order %v: selected %q, want %q", order, sel.Material.Key, want)
		}
	}
}

func TestSelectCanonical_NoCandidates(t *testing.T) {
	t.Parallel()

	mat, part := parse(t)
	empty, err := configdoc.ParseJSON("empty.json", []byte(`{"x": {"mapTo": "x"}}`))
	if err != nil {
		t.Fatal(err)
	}

	_, err = SelectCanonical(empty, part)
	var nErr *NoCanonicalSkinError
	if !errors.As(err, &nErr) || nErr.Document != DocumentMaterial || nErr.Path != "empty.json" {
		t.Errorf("material: error = %v, want NoCanonicalSkinError for material", err)
	}

	_, err = SelectCanonical(mat, empty)
	if !errors.As(err, &nErr) || nErr.Document != DocumentPart {
		t.Errorf("part: error = %v, want NoCanonicalSkinError for part", err)
	}
	if !errors.Is(err, ErrNoCanonicalSkinFound) {
		t.Errorf("error should wrap ErrNoCanonicalSkinFound")
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	mat, part := parse(t)
	sel, err := SelectCanonical(mat, part)
	if err != nil {
		t.Fatal(err)
	}
	before, _ := configdoc.Marshal(mat.Root)

	tmpl, err := Normalize("etk800", sel)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if tmpl.MaterialKey() != "etk800.skin.SKINNAME" || tmpl.PartKey() != "etk800_skin_SKINNAME" {
		t.Errorf("keys = %q, %q", tmpl.MaterialKey(), tmpl.PartKey())
	}

	m := tmpl.Material()
	for _, f := range []string{"paletteMap", "colorPaletteMap", "instanceDiffuse"} {
		if m.Has(f) {
			t.Errorf("material still has %s", f)
		}
	}
	stage0 := mustStage(t, m, 0)
	if stage0.Has("colorPaletteMap") || stage0.Has("instanceDiffuse") {
		t.Errorf("stage 0 still has palette fields: %v", stage0.Keys())
	}
	if got, _ := stage0.GetString("diffuseMap"); got != "/vehicles/etk800/SKINFILE" {
		t.Errorf("stage 0 diffuseMap = %q", got)
	}
	if got, _ := stage0.GetString("normalMap"); got != "/vehicles/etk800/etk800_n.dds" {
		t.Errorf("normalMap changed: %q", got)
	}
	if got, _ := m.GetString("mapTo"); got != "etk800.skin.SKINNAME" {
		t.Errorf("mapTo = %q", got)
	}

	p := tmpl.Part()
	if p.Has("skinName") {
		t.Error("part still has skinName")
	}
	if got, _ := p.GetString("globalSkin"); got != "SKINNAME" {
		t.Errorf("globalSkin = %q", got)
	}
	info, _ := p.GetObject("information")
	if got, _ := info.GetString("authors"); got != "AUTHOR" {
		t.Errorf("information.authors = %q", got)
	}

	after, _ := configdoc.Marshal(mat.Root)
	if string(before) != string(after) {
		t.Error("Normalize modified its input")
	}
}

func TestNormalize_AddsTextureWhenNoneSurvives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		material string
		path     string
	}{
		{"palette only in stage", `{"m": {"mapTo": "m", "Stages": [{"colorPaletteMap": "p.dds"}, {}]}}`, "Stages[0].baseColorMap"},
		{"palette only at top", `{"m": {"mapTo": "m", "colorPaletteMap": "p.dds"}}`, "baseColorMap"},
	}
	part, err := configdoc.ParseJBeam("p.jbeam", []byte(`{"p": {"slotType": "paint_design"}}`))
	if err != nil {
		t.Fatal(err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mat, err := configdoc.ParseJSON("m.json", []byte(tt.material))
			if err != nil {
				t.Fatal(err)
			}
			sel, err := SelectCanonical(mat, part)
			if err != nil {
				t.Fatal(err)
			}
			tmpl, err := Normalize("pickup", sel)
			if err != nil {
				t.Fatal(err)
			}
			doc := &configdoc.Document{Root: tmpl.Material()}
			got, err := doc.Lookup(tt.path)
			if err != nil || got != "/vehicles/pickup/SKINFILE" {
				t.Errorf("Lookup(%s) = %v, %v", tt.path, got, err)
			}
		})
	}
}

func TestNormalize_DeterministicAndIdempotent(t *testing.T) {
	t.Parallel()

	mat, part := parse(t)
	sel, err := SelectCanonical(mat, part)
	if err != nil {
		t.Fatal(err)
	}
	a, err := Normalize("etk800", sel)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Normalize("etk800", sel)
	if err != nil {
		t.Fatal(err)
	}
	assertSameTemplate(t, a, b)

	// Normalizing a normalized template yields the same template, so the
	// stored files can be re-read through the same pipeline.
	matJSON, _ := a.MaterialJSON()
	partJSON, _ := a.PartJSON()
	mat2, err := configdoc.ParseJSON("skin.materials.json", matJSON)
	if err != nil {
		t.Fatal(err)
	}
	part2, err := configdoc.ParseJBeam("skin.jbeam", partJSON)
	if err != nil {
		t.Fatal(err)
	}
	sel2, err := SelectCanonical(mat2, part2)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Normalize("etk800", sel2)
	if err != nil {
		t.Fatal(err)
	}
	assertSameTemplate(t, a, c)
}

func TestNormalize_InvalidID(t *testing.T) {
	t.Parallel()

	mat, part := parse(t)
	sel, err := SelectCanonical(mat, part)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Normalize("ETK800", sel); !errors.Is(err, types.ErrInvalidVehicleID) {
		t.Errorf("Normalize(ETK800) error = %v, want ErrInvalidVehicleID", err)
	}
}

func TestInstantiate(t *testing.T) {
	t.Parallel()

	mat, part := parse(t)
	sel, err := SelectCanonical(mat, part)
	if err != nil {
		t.Fatal(err)
	}
	tmpl, err := Normalize("etk800", sel)
	if err != nil {
		t.Fatal(err)
	}

	inst := tmpl.Instantiate(Instance{
		SkinName:    "RacingStripes",
		SkinFile:    "etk800_skin_RacingStripes.dds",
		Author:      "Jo",
		DisplayName: "Racing Stripes",
	})
	if inst.MaterialKey != "etk800.skin.RacingStripes" || inst.PartKey != "etk800_skin_RacingStripes" {
		t.Errorf("keys = %q, %q", inst.MaterialKey, inst.PartKey)
	}
	if got, _ := mustStage(t, inst.Material, 0).GetString("diffuseMap"); got != "/vehicles/etk800/etk800_skin_RacingStripes.dds" {
		t.Errorf("diffuseMap = %q", got)
	}
	info, _ := inst.Part.GetObject("information")
	if got, _ := info.GetString("name"); got != "Racing Stripes" {
		t.Errorf("information.name = %q", got)
	}
	if got, _ := info.GetString("authors"); got != "Jo" {
		t.Errorf("information.authors = %q", got)
	}
	if got, _ := inst.Part.GetString("globalSkin"); got != "RacingStripes" {
		t.Errorf("globalSkin = %q", got)
	}
	// The template itself keeps its placeholders.
	if got, _ := tmpl.Part().GetString("globalSkin"); got != PlaceholderSkinName {
		t.Errorf("template modified by Instantiate: globalSkin = %q", got)
	}
}

func mustStage(t *testing.T, m *configdoc.Object, i int) *configdoc.Object {
	t.Helper()
	list, ok := m.GetArray("Stages")
	if !ok || len(list) <= i {
		t.Fatalf("material has no stage %d", i)
	}
	s, ok := list[i].(*configdoc.Object)
	if !ok {
		t.Fatalf("stage %d is %T", i, list[i])
	}
	return s
}

func assertSameTemplate(t *testing.T, a, b *NormalizedTemplate) {
	t.Helper()
	am, _ := a.MaterialJSON()
	bm, _ := b.MaterialJSON()
	if string(am) != string(bm) {
		t.Errorf("material JSON differs:\n%s\n%s", am, bm)
	}
	ap, _ := a.PartJSON()
	bp, _ := b.PartJSON()
	if string(ap) != string(bp) {
		t.Errorf("part JSON differs:\n%s\n%s", ap, bp)
	}
}
