// SPDX-License-Identifier: MPL-2.0

package registry

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/skintemplate"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

var (
	//go:embed catalog.toml
	builtinCatalog []byte

	//go:embed stock.materials.json
	stockMaterials []byte

	//go:embed stock.jbeam
	stockPart []byte
)

type (
	// CatalogEntry is one vehicle of a built-in catalog file.
	CatalogEntry struct {
		ID   types.VehicleID `toml:"id"`
		Name string          `toml:"name"`
	}

	catalogFile struct {
		Vehicles []CatalogEntry `toml:"vehicles"`
	}
)

// BuiltinCatalog returns the catalog compiled into the binary.
func BuiltinCatalog() []byte { return builtinCatalog }

// DecodeCatalog decodes a TOML catalog and validates every entry.
func DecodeCatalog(data []byte) ([]CatalogEntry, error) {
	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	seen := make(map[types.VehicleID]bool, len(f.Vehicles))
	for i, e := range f.Vehicles {
		if err := e.ID.Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidCatalog, i, err)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%w: entry %d: duplicate id %q", ErrInvalidCatalog, i, e.ID)
		}
		seen[e.ID] = true
	}
	return f.Vehicles, nil
}

// loadCatalog builds the base layer from a catalog file, giving every entry a
// template normalized from the stock definitions.
func loadCatalog(data []byte) (map[types.VehicleID]*VehicleRecord, error) {
	entries, err := DecodeCatalog(data)
	if err != nil {
		return nil, err
	}
	sel, err := stockSelection()
	if err != nil {
		return nil, err
	}

	base := make(map[types.VehicleID]*VehicleRecord, len(entries))
	for _, e := range entries {
		tmpl, err := skintemplate.Normalize(e.ID, sel)
		if err != nil {
			return nil, fmt.Errorf("built-in vehicle %s: %w", e.ID, err)
		}
		name := e.Name
		if name == "" {
			name = string(e.ID)
		}
		base[e.ID] = &VehicleRecord{ID: e.ID, DisplayName: name, Template: tmpl, Builtin: true}
	}
	return base, nil
}

func stockSelection() (*skintemplate.Selection, error) {
	mat, err := configdoc.ParseJSON("stock.materials.json", stockMaterials)
	if err != nil {
		return nil, err
	}
	part, err := configdoc.ParseJBeam("stock.jbeam", stockPart)
	if err != nil {
		return nil, err
	}
	return skintemplate.SelectCanonical(mat, part)
}
