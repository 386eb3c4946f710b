// SPDX-License-Identifier: MPL-2.0

package project

import (
	"slices"
	"strings"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// Defaults for a new project.
const (
	DefaultModName types.ModName = "MyMod"
	DefaultVersion               = "1.0"
)

type (
	// SkinAsset is one texture the user chose for a vehicle.
	SkinAsset struct {
		DisplayName string
		SourcePath  types.FilesystemPath
		VehicleID   types.VehicleID
		// Missing is set by Load when SourcePath no longer exists. It is not
		// persisted.
		Missing bool
	}

	// VehicleEntry is a vehicle and its assets in insertion order.
	VehicleEntry struct {
		VehicleID types.VehicleID
		Assets    []SkinAsset
	}

	// Info is the project metadata written into the mod.
	Info struct {
		ModName     types.ModName
		AuthorName  string
		Description string
		Version     string
	}

	// Project is an immutable copy of a Model's state.
	Project struct {
		Info
		Vehicles []VehicleEntry
	}

	// Model is the mutable project being edited. It is not safe for
	// concurrent use; take a Snapshot to hand the state to another goroutine.
	Model struct {
		info     Info
		vehicles []*VehicleEntry
	}
)

// FileName returns the base name of the asset's source file.
func (a SkinAsset) FileName() string { return a.SourcePath.Base() }

// Token returns the skin name segment of the asset's file name, or "" when
// the name does not follow the naming contract.
func (a SkinAsset) Token() types.SkinToken {
	n, err := ParseSkinFileName(a.VehicleID, a.SourcePath)
	if err != nil {
		return ""
	}
	return n.Token
}

// New returns an empty project with default metadata.
func New() *Model {
	return &Model{info: Info{ModName: DefaultModName, Version: DefaultVersion}}
}

// Info returns the project metadata.
func (m *Model) Info() Info { return m.info }

// SetInfo replaces the project metadata. The mod name is checked when the
// project is built, not here, so a half-typed name can be stored.
func (m *Model) SetInfo(info Info) {
	info.ModName = types.ModName(strings.TrimSpace(string(info.ModName)))
	m.info = info
}

// AddVehicle adds an empty entry for id. Adding a vehicle that is already in
// the project does nothing.
func (m *Model) AddVehicle(id types.VehicleID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if m.find(id) >= 0 {
		return nil
	}
	m.vehicles = append(m.vehicles, &VehicleEntry{VehicleID: id})
	return nil
}

// RemoveVehicle removes the entry for id and all of its assets.
func (m *Model) RemoveVehicle(id types.VehicleID) error {
	i := m.find(id)
	if i < 0 {
		return &VehicleNotInProjectError{VehicleID: id}
	}
	m.vehicles = slices.Delete(m.vehicles, i, i+1)
	return nil
}

// AddAsset binds a texture file to a vehicle already in the project. The
// file name must follow the naming contract for that vehicle. An empty
// display name defaults to the file's skin token. On error the project is
// unchanged.
func (m *Model) AddAsset(id types.VehicleID, displayName string, sourcePath types.FilesystemPath) (SkinAsset, error) {
	i := m.find(id)
	if i < 0 {
		return SkinAsset{}, &VehicleNotInProjectError{VehicleID: id}
	}
	if err := sourcePath.Validate(); err != nil {
		return SkinAsset{}, err
	}
	name, err := ParseSkinFileName(id, sourcePath)
	if err != nil {
		return SkinAsset{}, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = string(name.Token)
	}

	entry := m.vehicles[i]
	if entry.assetIndex(displayName) >= 0 {
		return SkinAsset{}, &DuplicateAssetNameError{VehicleID: id, DisplayName: displayName}
	}
	asset := SkinAsset{DisplayName: displayName, SourcePath: sourcePath, VehicleID: id}
	entry.Assets = append(entry.Assets, asset)
	return asset, nil
}

// RemoveAsset removes the asset with the given display name.
func (m *Model) RemoveAsset(id types.VehicleID, displayName string) error {
	i := m.find(id)
	if i < 0 {
		return &VehicleNotInProjectError{VehicleID: id}
	}
	entry := m.vehicles[i]
	j := entry.assetIndex(displayName)
	if j < 0 {
		return &AssetNotFoundError{VehicleID: id, DisplayName: displayName}
	}
	entry.Assets = slices.Delete(entry.Assets, j, j+1)
	return nil
}

// Clear removes every vehicle. The metadata is kept.
func (m *Model) Clear() { m.vehicles = nil }

// Vehicle returns a copy of the entry for id.
func (m *Model) Vehicle(id types.VehicleID) (VehicleEntry, bool) {
	i := m.find(id)
	if i < 0 {
		return VehicleEntry{}, false
	}
	return m.vehicles[i].clone(), true
}

// VehicleCount returns the number of vehicles in the project.
func (m *Model) VehicleCount() int { return len(m.vehicles) }

// AssetCount returns the number of assets across all vehicles.
func (m *Model) AssetCount() int {
	n := 0
	for _, v := range m.vehicles {
		n += len(v.Assets)
	}
	return n
}

// Snapshot returns a deep copy of the project state.
func (m *Model) Snapshot() *Project {
	p := &Project{Info: m.info, Vehicles: make([]VehicleEntry, len(m.vehicles))}
	for i, v := range m.vehicles {
		p.Vehicles[i] = v.clone()
	}
	return p
}

// AssetCount returns the number of assets across all vehicles.
func (p *Project) AssetCount() int {
	n := 0
	for _, v := range p.Vehicles {
		n += len(v.Assets)
	}
	return n
}

func (m *Model) find(id types.VehicleID) int {
	return slices.IndexFunc(m.vehicles, func(v *VehicleEntry) bool { return v.VehicleID == id })
}

func (e *VehicleEntry) assetIndex(displayName string) int {
	return slices.IndexFunc(e.Assets, func(a SkinAsset) bool { return a.DisplayName == displayName })
}

func (e *VehicleEntry) clone() VehicleEntry {
	return VehicleEntry{VehicleID: e.VehicleID, Assets: slices.Clone(e.Assets)}
}
