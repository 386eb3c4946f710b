// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/fspath"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/packaging"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/registry"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

func duplicateBuiltin() error {
	return NewErrorContext().
		WithOperation("register vehicle").
		WithResource("etk800").
		WithSuggestion("Pick an ID that is not in 'beamskin vehicle list'").
		Wrap(&registry.DuplicateVehicleIDError{ID: "etk800", Builtin: true}).
		BuildError()
}

func invalidProject() error {
	return NewErrorContext().
		WithOperation("build mod").
		WithResource("./stripes.bsproject").
		WithSuggestion("Fix the problems listed above and build again").
		Wrap(&packaging.ValidationError{Problems: []packaging.Problem{
			{Kind: packaging.ProblemNoAssets, VehicleID: "etk800", Message: "no skins added"},
			{Kind: packaging.ProblemInvalidModName, Message: "mod name is empty"},
		}}).
		BuildError()
}

func TestActionableError_DomainCauses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantMsg   string
		wantIs    error
		wantIssue Id
	}{
		{
			name:      "duplicate built-in vehicle",
			err:       duplicateBuiltin(),
			wantMsg:   `failed to register vehicle: etk800: vehicle "etk800" is a built-in vehicle`,
			wantIs:    registry.ErrDuplicateVehicleID,
			wantIssue: DuplicateVehicleId,
		},
		{
			name: "validation failure",
			err:  invalidProject(),
			wantMsg: "failed to build mod: ./stripes.bsproject: project validation failed with 2 problem(s): " +
				"etk800: no skins added; mod name is empty",
			wantIs:    packaging.ErrValidationFailed,
			wantIssue: ValidationFailedId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ae, ok := errors.AsType[*ActionableError](tt.err)
			if !ok {
				t.Fatalf("error is %T, want *ActionableError", tt.err)
			}
			if got := ae.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantIs) {
				t.Errorf("errors.Is(%v) = false", tt.wantIs)
			}
			if iss := ae.CatalogIssue(); iss == nil || iss.Id() != tt.wantIssue {
				t.Errorf("CatalogIssue() = %v, want %d", iss, tt.wantIssue)
			}
		})
	}
}

func TestActionableError_CauseStaysReachable(t *testing.T) {
	t.Parallel()

	dup, ok := errors.AsType[*registry.DuplicateVehicleIDError](duplicateBuiltin())
	if !ok || dup.ID != "etk800" || !dup.Builtin {
		t.Errorf("DuplicateVehicleIDError = %+v, %v", dup, ok)
	}

	verr, ok := errors.AsType[*packaging.ValidationError](invalidProject())
	if !ok {
		t.Fatal("ValidationError not reachable")
	}
	if !verr.Has(packaging.ProblemInvalidModName) || verr.Has(packaging.ProblemUnknownVehicle) {
		t.Errorf("Problems = %v", verr.Problems)
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestion bullets",
			err:  duplicateBuiltin(),
			contains: []string{
				`failed to register vehicle: etk800: vehicle "etk800" is a built-in vehicle`,
				"\n\n  • Pick an ID that is not in 'beamskin vehicle list'",
			},
			excludes: []string{"Error chain:"},
		},
		{
			name:    "verbose chain ends at the sentinel",
			err:     duplicateBuiltin(),
			verbose: true,
			contains: []string{
				"Error chain:",
				`1. vehicle "etk800" is a built-in vehicle`,
				"2. vehicle id already registered",
			},
			excludes: []string{"3. "},
		},
		{
			name:    "verbose validation chain",
			err:     invalidProject(),
			verbose: true,
			contains: []string{
				"  • Fix the problems listed above and build again",
				"1. project validation failed with 2 problem(s)",
				"2. project validation failed",
			},
		},
		{
			name: "no suggestions",
			err: NewErrorContext().
				WithOperation("unregister vehicle").
				Wrap(&registry.BuiltinVehicleError{ID: "pickup"}).
				BuildError(),
			verbose:  false,
			contains: []string{"failed to unregister vehicle: "},
			excludes: []string{"•", "\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ae, ok := errors.AsType[*ActionableError](tt.err)
			if !ok {
				t.Fatalf("error is %T, want *ActionableError", tt.err)
			}
			got := ae.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestActionableError_PinnedIssue(t *testing.T) {
	t.Parallel()

	ioErr := fspath.NewIOError("read", types.FilesystemPath("/cfg/config.cue"), fs.ErrPermission)
	pinned := NewErrorContext().
		WithOperation("load configuration").
		WithIssue(ConfigLoadFailedId).
		Wrap(ioErr).
		Build()
	if iss := pinned.CatalogIssue(); iss == nil || iss.Id() != ConfigLoadFailedId {
		t.Errorf("pinned CatalogIssue() = %v, want ConfigLoadFailedId", iss)
	}

	derived := NewErrorContext().WithOperation("load configuration").Wrap(ioErr).Build()
	if iss := derived.CatalogIssue(); iss == nil || iss.Id() != IOFailureId {
		t.Errorf("derived CatalogIssue() = %v, want IOFailureId", iss)
	}

	plain := NewErrorContext().WithOperation("open preview").Wrap(errors.New("decode failed")).Build()
	if iss := plain.CatalogIssue(); iss != nil {
		t.Errorf("CatalogIssue() = %d, want nil", iss.Id())
	}
}

func TestErrorContext_RequiresOperation(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithResource("etk800").Wrap(&registry.UnknownVehicleIDError{ID: "etk800"})
	if ae := ctx.Build(); ae != nil {
		t.Errorf("Build() = %v, want nil", ae)
	}
	if err := ctx.BuildError(); err != nil {
		t.Errorf("BuildError() = %#v, want untyped nil", err)
	}
}

func TestErrorContext_BuildDoesNotAlias(t *testing.T) {
	t.Parallel()

	ctx := NewErrorContext().WithOperation("add skin").WithSuggestion("Use a PNG or DDS file")
	first := ctx.Build()
	second := ctx.WithSuggestion("Check the file name").Build()

	if len(first.Suggestions) != 1 {
		t.Errorf("first.Suggestions = %v, want one entry", first.Suggestions)
	}
	if len(second.Suggestions) != 2 {
		t.Errorf("second.Suggestions = %v, want two entries", second.Suggestions)
	}
}
