// SPDX-License-Identifier: MPL-2.0

package packaging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// Problem kinds reported by ValidationError.
const (
	ProblemInvalidModName       ProblemKind = "invalid_mod_name"
	ProblemNoVehicles           ProblemKind = "no_vehicles"
	ProblemDuplicateVehicle     ProblemKind = "duplicate_vehicle"
	ProblemUnknownVehicle       ProblemKind = "unknown_vehicle"
	ProblemNoAssets             ProblemKind = "no_assets"
	ProblemAssetBinding         ProblemKind = "asset_binding"
	ProblemNamingContract       ProblemKind = "naming_contract"
	ProblemMissingSource        ProblemKind = "missing_source"
	ProblemUnreadableSource     ProblemKind = "unreadable_source"
	ProblemDuplicateSkinName    ProblemKind = "duplicate_skin_name"
	ProblemArchivePathCollision ProblemKind = "archive_path_collision"
)

var (
	// ErrValidationFailed is returned when a project cannot be packaged.
	// The ValidationError lists every problem found.
	ErrValidationFailed = errors.New("project validation failed")

	// ErrArchiveAlreadyExists is returned instead of overwriting an archive.
	ErrArchiveAlreadyExists = errors.New("archive already exists")
)

type (
	// ProblemKind classifies a validation problem.
	ProblemKind string

	// Problem is one reason a project cannot be packaged.
	Problem struct {
		Kind      ProblemKind
		VehicleID types.VehicleID
		// Asset is the display name of the asset concerned, if any.
		Asset   string
		Message string
	}

	// ValidationError aggregates every problem found in one validation pass.
	ValidationError struct {
		Problems []Problem
	}

	// ArchiveExistsError is returned when the destination archive exists.
	ArchiveExistsError struct {
		Path types.FilesystemPath
	}
)

// String formats the problem for display.
func (p Problem) String() string {
	switch {
	case p.VehicleID != "" && p.Asset != "":
		return fmt.Sprintf("%s / %s: %s", p.VehicleID, p.Asset, p.Message)
	case p.VehicleID != "":
		return fmt.Sprintf("%s: %s", p.VehicleID, p.Message)
	default:
		return p.Message
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	lines := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		lines[i] = p.String()
	}
	return fmt.Sprintf("project validation failed with %d problem(s): %s", len(e.Problems), strings.Join(lines, "; "))
}

// Unwrap returns ErrValidationFailed for errors.Is() compatibility.
func (e *ValidationError) Unwrap() error { return ErrValidationFailed }

// Has reports whether a problem of the given kind was found.
func (e *ValidationError) Has(kind ProblemKind) bool {
	for _, p := range e.Problems {
		if p.Kind == kind {
			return true
		}
	}
	return false
}

// Error implements the error interface.
func (e *ArchiveExistsError) Error() string {
	return fmt.Sprintf("archive %s already exists", e.Path)
}

// Unwrap returns ErrArchiveAlreadyExists for errors.Is() compatibility.
func (e *ArchiveExistsError) Unwrap() error { return ErrArchiveAlreadyExists }
