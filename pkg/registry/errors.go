// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"errors"
	"fmt"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

var (
	// ErrDuplicateVehicleID is returned when registering an ID that already
	// resolves in either layer.
	ErrDuplicateVehicleID = errors.New("vehicle id already registered")

	// ErrUnknownVehicleID is returned when an ID does not resolve.
	ErrUnknownVehicleID = errors.New("unknown vehicle id")

	// ErrBuiltinVehicle is returned when unregistering a built-in vehicle.
	ErrBuiltinVehicle = errors.New("built-in vehicles cannot be removed")

	// ErrInvalidCatalog is returned when the built-in catalog cannot be decoded.
	ErrInvalidCatalog = errors.New("invalid vehicle catalog")
)

type (
	// DuplicateVehicleIDError is returned by Register for an existing ID.
	DuplicateVehicleIDError struct {
		ID      types.VehicleID
		Builtin bool
	}

	// UnknownVehicleIDError is returned when an ID is not registered.
	UnknownVehicleIDError struct {
		ID types.VehicleID
	}

	// BuiltinVehicleError is returned by Unregister for a built-in vehicle.
	BuiltinVehicleError struct {
		ID types.VehicleID
	}
)

func (e *DuplicateVehicleIDError) Error() string {
	if e.Builtin {
		return fmt.Sprintf("vehicle %q is a built-in vehicle", e.ID)
	}
	return fmt.Sprintf("vehicle %q is already registered", e.ID)
}

func (e *DuplicateVehicleIDError) Unwrap() error { return ErrDuplicateVehicleID }

func (e *UnknownVehicleIDError) Error() string {
	return fmt.Sprintf("vehicle %q is not registered", e.ID)
}

func (e *UnknownVehicleIDError) Unwrap() error { return ErrUnknownVehicleID }

func (e *BuiltinVehicleError) Error() string {
	return fmt.Sprintf("vehicle %q is built in and cannot be removed", e.ID)
}

func (e *BuiltinVehicleError) Unwrap() error { return ErrBuiltinVehicle }
