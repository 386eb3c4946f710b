// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/app"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/issue"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/tui"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/internal/watch"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/packaging"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/project"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/registry"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/skintemplate"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

var (
	// Errors caused by the user's input files or arguments.
	invalidInputErrors = []error{
		packaging.ErrValidationFailed,
		configdoc.ErrMalformedConfig,
		configdoc.ErrFileTooLarge,
		configdoc.ErrInvalidPath,
		configdoc.ErrInvalidQuery,
		skintemplate.ErrNoCanonicalSkinFound,
		types.ErrInvalidVehicleID,
		types.ErrInvalidModName,
		types.ErrInvalidFilesystemPath,
		registry.ErrUnknownVehicleID,
		project.ErrNamingContractViolation,
		project.ErrDuplicateAssetName,
		project.ErrVehicleNotInProject,
		project.ErrAssetNotFound,
		project.ErrInvalidProjectFile,
		watch.ErrInvalidWatchConfig,
	}

	// Errors returned instead of replacing or removing existing state.
	conflictErrors = []error{
		packaging.ErrArchiveAlreadyExists,
		registry.ErrDuplicateVehicleID,
		registry.ErrBuiltinVehicle,
		app.ErrProjectExists,
	}
)

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps an error returned by a command to the process exit code.
func exitCodeFor(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	if exitErr, ok := errors.AsType[*ExitError](err); ok {
		return exitErr.Code
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, tui.ErrCancelled) {
		return types.ExitCanceled
	}
	if ae, ok := errors.AsType[*issue.ActionableError](err); ok {
		if iss := ae.CatalogIssue(); iss != nil && iss.Id() == issue.ConfigLoadFailedId {
			return types.ExitUsage
		}
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return types.ExitConflict
		}
	}
	for _, target := range invalidInputErrors {
		if errors.Is(err, target) {
			return types.ExitInvalidInput
		}
	}
	return types.ExitFailure
}
