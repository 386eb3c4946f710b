// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

var (
	// ErrNamingContractViolation is returned when a texture file name does not
	// follow <vehicleId>_skin_<token>.<ext> for its vehicle.
	ErrNamingContractViolation = errors.New("texture file name violates naming contract")

	// ErrDuplicateAssetName is returned when a display name is already used
	// under the same vehicle.
	ErrDuplicateAssetName = errors.New("duplicate skin name")

	// ErrVehicleNotInProject is returned when an operation names a vehicle the
	// project does not contain.
	ErrVehicleNotInProject = errors.New("vehicle not in project")

	// ErrAssetNotFound is returned when removing an unknown skin.
	ErrAssetNotFound = errors.New("skin not found")

	// ErrInvalidProjectFile is returned when a project file cannot be decoded
	// or violates the model's invariants.
	ErrInvalidProjectFile = errors.New("invalid project file")
)

type (
	// NamingContractError explains why a texture file name was rejected.
	NamingContractError struct {
		Path      types.FilesystemPath
		VehicleID types.VehicleID
		Reason    string
	}

	// DuplicateAssetNameError is returned by AddAsset.
	DuplicateAssetNameError struct {
		VehicleID   types.VehicleID
		DisplayName string
	}

	// VehicleNotInProjectError is returned when a vehicle is not in the project.
	VehicleNotInProjectError struct {
		VehicleID types.VehicleID
	}

	// AssetNotFoundError is returned by RemoveAsset.
	AssetNotFoundError struct {
		VehicleID   types.VehicleID
		DisplayName string
	}
)

func (e *NamingContractError) Error() string {
	return fmt.Sprintf("%s: expected %s_skin_<name>.<ext>: %s", e.Path.Base(), e.VehicleID, e.Reason)
}

func (e *NamingContractError) Unwrap() error { return ErrNamingContractViolation }

func (e *DuplicateAssetNameError) Error() string {
	return fmt.Sprintf("vehicle %s already has a skin named %q", e.VehicleID, e.DisplayName)
}

func (e *DuplicateAssetNameError) Unwrap() error { return ErrDuplicateAssetName }

func (e *VehicleNotInProjectError) Error() string {
	return fmt.Sprintf("vehicle %s is not in the project", e.VehicleID)
}

func (e *VehicleNotInProjectError) Unwrap() error { return ErrVehicleNotInProject }

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("vehicle %s has no skin named %q", e.VehicleID, e.DisplayName)
}

func (e *AssetNotFoundError) Unwrap() error { return ErrAssetNotFound }
