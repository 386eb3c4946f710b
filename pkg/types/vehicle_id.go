// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidVehicleID is the sentinel error wrapped by InvalidVehicleIDError.
var ErrInvalidVehicleID = errors.New("invalid vehicle id")

type (
	// VehicleID is the simulator's internal identifier for a vehicle model
	// (e.g. "etk800", "gavril_roamer"). It is case-sensitive, and a valid ID
	// is a non-empty lowercase token with no whitespace or path separators.
	VehicleID string

	// InvalidVehicleIDError is returned when a VehicleID fails validation.
	// Reason names the first rule that was broken.
	InvalidVehicleIDError struct {
		Value  VehicleID
		Reason string
	}
)

// String returns the string representation of the VehicleID.
func (id VehicleID) String() string { return string(id) }

// Validate returns an error if the VehicleID is empty or contains whitespace,
// uppercase letters, or path separators. "." and ".." are rejected as well
// since IDs double as directory names in the registry store and archives.
func (id VehicleID) Validate() error {
	s := string(id)
	if s == "" {
		return &InvalidVehicleIDError{Value: id, Reason: "must not be empty"}
	}
	if s == "." || s == ".." {
		return &InvalidVehicleIDError{Value: id, Reason: "must not be a relative path element"}
	}
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			return &InvalidVehicleIDError{Value: id, Reason: "must not contain whitespace"}
		case unicode.IsUpper(r):
			return &InvalidVehicleIDError{Value: id, Reason: "must not contain uppercase letters"}
		case r == '/' || r == '\\':
			return &InvalidVehicleIDError{Value: id, Reason: "must not contain path separators"}
		case unicode.IsControl(r):
			return &InvalidVehicleIDError{Value: id, Reason: "must not contain control characters"}
		}
	}
	return nil
}

// Contains reports whether the ID contains query, ignoring case.
func (id VehicleID) Contains(query string) bool {
	return strings.Contains(strings.ToLower(string(id)), strings.ToLower(query))
}

// Error implements the error interface for InvalidVehicleIDError.
func (e *InvalidVehicleIDError) Error() string {
	return fmt.Sprintf("invalid vehicle id %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidVehicleID for errors.Is() compatibility.
func (e *InvalidVehicleIDError) Unwrap() error { return ErrInvalidVehicleID }
