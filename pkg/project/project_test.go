// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

func TestParseSkinFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      types.VehicleID
		path    types.FilesystemPath
		want    SkinFileName
		wantErr bool
	}{
		{"simple", "etk800", "/skins/etk800_skin_Red.dds", SkinFileName{"etk800", "Red", "dds"}, false},
		{"dotted token", "etk800", "etk800_skin_Red.v2.png", SkinFileName{"etk800", "Red.v2", "png"}, false},
		{"underscored id", "gavril_roamer", "gavril_roamer_skin_Blue_Stripes.DDS", SkinFileName{"gavril_roamer", "Blue_Stripes", "DDS"}, false},
		{"case mismatch", "etk800", "ETK800_skin_Red.dds", SkinFileName{}, true},
		{"other vehicle", "etk800", "pickup_skin_Red.dds", SkinFileName{}, true},
		{"no extension", "etk800", "etk800_skin_Red", SkinFileName{}, true},
		{"empty extension", "etk800", "etk800_skin_Red.", SkinFileName{}, true},
		{"empty token", "etk800", "etk800_skin_.dds", SkinFileName{}, true},
		{"space in token", "etk800", "etk800_skin_Red Stripes.dds", SkinFileName{}, true},
		{"non-alnum extension", "etk800", "etk800_skin_Red.dd-s", SkinFileName{}, true},
		{"missing skin marker", "etk800", "etk800_Red.dds", SkinFileName{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSkinFileName(tt.id, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSkinFileName(%q, %q) error = %v, wantErr %v", tt.id, tt.path, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrNamingContractViolation) {
					t.Errorf("error should wrap ErrNamingContractViolation, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseSkinFileName() = %+v, want %+v", got, tt.want)
			}
			if got.String() != filepath.Base(string(tt.path)) {
				t.Errorf("String() = %q", got.String())
			}
		})
	}
}

func TestModel_Defaults(t *testing.T) {
	t.Parallel()

	m := New()
	info := m.Info()
	if info.ModName != "MyMod" || info.Version != "1.0" || info.AuthorName != "" {
		t.Errorf("default info = %+v", info)
	}
	if err := info.ModName.Validate(); err != nil {
		t.Errorf("default mod name is invalid: %v", err)
	}
}

func TestModel_AddVehicle(t *testing.T) {
	t.Parallel()

	m := New()
	if err := m.AddVehicle("etk800"); err != nil {
		t.Fatal(err)
	}
	if err := m.AddVehicle("etk800"); err != nil {
		t.Errorf("second AddVehicle() error = %v, want nil", err)
	}
	if m.VehicleCount() != 1 {
		t.Errorf("VehicleCount() = %d, want 1", m.VehicleCount())
	}
	if err := m.AddVehicle("Bad ID"); !errors.Is(err, types.ErrInvalidVehicleID) {
		t.Errorf("AddVehicle(Bad ID) error = %v", err)
	}
	if err := m.RemoveVehicle("pickup"); !errors.Is(err, ErrVehicleNotInProject) {
		t.Errorf("RemoveVehicle(pickup) error = %v", err)
	}
	if err := m.RemoveVehicle("etk800"); err != nil || m.VehicleCount() != 0 {
		t.Errorf("RemoveVehicle(etk800) = %v, count %d", err, m.VehicleCount())
	}
}

func TestModel_AddAsset(t *testing.T) {
	t.Parallel()

	m := New()
	if err := m.AddVehicle("etk800"); err != nil {
		t.Fatal(err)
	}

	asset, err := m.AddAsset("etk800", "Racing Stripes", "/skins/etk800_skin_RacingStripes.dds")
	if err != nil {
		t.Fatalf("AddAsset() error = %v", err)
	}
	if asset.Token() != "RacingStripes" || asset.FileName() != "etk800_skin_RacingStripes.dds" {
		t.Errorf("asset = %+v", asset)
	}

	defaulted, err := m.AddAsset("etk800", "  ", "/skins/etk800_skin_Blue.png")
	if err != nil || defaulted.DisplayName != "Blue" {
		t.Errorf("AddAsset(empty name) = %+v, %v; want display name Blue", defaulted, err)
	}

	_, err = m.AddAsset("etk800", "Racing Stripes", "/skins/etk800_skin_Other.dds")
	var dupErr *DuplicateAssetNameError
	if !errors.As(err, &dupErr) || dupErr.DisplayName != "Racing Stripes" {
		t.Errorf("duplicate AddAsset() error = %v", err)
	}

	if _, err := m.AddAsset("pickup", "X", "/skins/pickup_skin_X.dds"); !errors.Is(err, ErrVehicleNotInProject) {
		t.Errorf("AddAsset(pickup) error = %v", err)
	}

	if m.AssetCount() != 2 {
		t.Errorf("AssetCount() = %d, want 2", m.AssetCount())
	}
}

func TestModel_AddAssetCaseMismatchLeavesProjectUnchanged(t *testing.T) {
	t.Parallel()

	m := New()
	if err := m.AddVehicle("etk800"); err != nil {
		t.Fatal(err)
	}
	before := m.Snapshot()

	_, err := m.AddAsset("etk800", "Red", "ETK800_skin_Red.dds")
	if !errors.Is(err, ErrNamingContractViolation) {
		t.Fatalf("AddAsset() error = %v, want ErrNamingContractViolation", err)
	}
	if !reflect.DeepEqual(before, m.Snapshot()) {
		t.Error("project changed after rejected AddAsset")
	}
}

func TestModel_RemoveAssetAndClear(t *testing.T) {
	t.Parallel()

	m := New()
	m.SetInfo(Info{ModName: "RacingPack", AuthorName: "Jo", Description: "d", Version: "2.0"})
	for _, id := range []types.VehicleID{"etk800", "pickup"} {
		if err := m.AddVehicle(id); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := m.AddAsset("pickup", "Red", "pickup_skin_Red.dds"); err != nil {
		t.Fatal(err)
	}

	if err := m.RemoveAsset("pickup", "Blue"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("RemoveAsset(Blue) error = %v", err)
	}
	if err := m.RemoveAsset("pickup", "Red"); err != nil {
		t.Errorf("RemoveAsset(Red) error = %v", err)
	}
	entry, ok := m.Vehicle("pickup")
	if !ok || len(entry.Assets) != 0 {
		t.Errorf("Vehicle(pickup) = %+v, %v", entry, ok)
	}

	m.Clear()
	if m.VehicleCount() != 0 {
		t.Errorf("VehicleCount() after Clear = %d", m.VehicleCount())
	}
	if info := m.Info(); info.ModName != "RacingPack" || info.AuthorName != "Jo" || info.Version != "2.0" {
		t.Errorf("Clear() lost metadata: %+v", info)
	}
}

func TestModel_SnapshotIsIndependent(t *testing.T) {
	t.Parallel()

	m := New()
	if err := m.AddVehicle("etk800"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddAsset("etk800", "Red", "etk800_skin_Red.dds"); err != nil {
		t.Fatal(err)
	}
	snap := m.Snapshot()
	if _, err := m.AddAsset("etk800", "Blue", "etk800_skin_Blue.dds"); err != nil {
		t.Fatal(err)
	}
	if len(snap.Vehicles[0].Assets) != 1 || snap.AssetCount() != 1 {
		t.Errorf("snapshot changed with the model: %+v", snap.Vehicles)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	red := filepath.Join(dir, "etk800_skin_Red.dds")
	blue := filepath.Join(dir, "pickup_skin_Blue.png")
	for _, p := range []string{red, blue} {
		if err := os.WriteFile(p, []byte("tex"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	m := New()
	m.SetInfo(Info{ModName: "RacingPack", AuthorName: "Jo", Description: "Two cars", Version: "1.2"})
	for _, id := range []types.VehicleID{"pickup", "etk800"} {
		if err := m.AddVehicle(id); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := m.AddAsset("etk800", "Red Paint", types.FilesystemPath(red)); err != nil {
		t.Fatal(err)
	}
	if _, err := m.AddAsset("pickup", "Blue", types.FilesystemPath(blue)); err != nil {
		t.Fatal(err)
	}

	path := types.FilesystemPath(filepath.Join(dir, "racing"+FileExtension))
	if err := m.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, warnings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Load() warnings = %v", warnings)
	}
	if !reflect.DeepEqual(m.Snapshot(), loaded.Snapshot()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded.Snapshot(), m.Snapshot())
	}
}

func TestLoad_MissingAssetFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := `{
  "format_version": 1,
  "mod_name": "Pack",
  "author_name": "",
  "mod_description": "",
  "mod_version": "1.0",
  "added_cars": [{"id": "etk800", "skins": [{"name": "Gone", "path": "` + filepath.ToSlash(filepath.Join(dir, "etk800_skin_Gone.dds")) + `"}]}]
}`
	path := filepath.Join(dir, "p.bsproject")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	m, warnings, err := Load(types.FilesystemPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(warnings) != 1 || warnings[0].DisplayName != "Gone" {
		t.Fatalf("warnings = %v", warnings)
	}
	entry, _ := m.Vehicle("etk800")
	if len(entry.Assets) != 1 || !entry.Assets[0].Missing {
		t.Errorf("asset not marked missing: %+v", entry.Assets)
	}
}

func TestLoad_Rejects(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not json":       `{"mod_name": `,
		"newer format":   `{"format_version": 99}`,
		"bad vehicle id": `{"added_cars": [{"id": "Bad Car", "skins": []}]}`,
		"bad skin name":  `{"added_cars": [{"id": "etk800", "skins": [{"name": "x", "path": "red.dds"}]}]}`,
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := Unmarshal([]byte(src)); !errors.Is(err, ErrInvalidProjectFile) {
				t.Errorf("Unmarshal() error = %v, want ErrInvalidProjectFile", err)
			}
		})
	}
}
