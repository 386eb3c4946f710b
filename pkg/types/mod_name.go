// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/platform"
)

// ErrInvalidModName is the sentinel error wrapped by InvalidModNameError.
var ErrInvalidModName = errors.New("invalid mod name")

// modNamePattern is the filesystem-safe token accepted as a mod name. It is
// also the archive's base name, so it must be portable across platforms.
var modNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

type (
	// ModName is the name of a mod. It becomes the archive file name and the
	// simulator's on-disk identity for the mod, so it must be a single
	// filesystem-safe token (e.g. "RacingPack").
	ModName string

	// InvalidModNameError is returned when a ModName fails validation.
	InvalidModNameError struct {
		Value  ModName
		Reason string
	}
)

// String returns the string representation of the ModName.
func (n ModName) String() string { return string(n) }

// Validate returns an error if the ModName is not a single filesystem-safe token.
func (n ModName) Validate() error {
	s := string(n)
	switch {
	case s == "":
		return &InvalidModNameError{Value: n, Reason: "must not be empty"}
	case len(s) > 128:
		return &InvalidModNameError{Value: n, Reason: "must be at most 128 characters"}
	case !modNamePattern.MatchString(s):
		return &InvalidModNameError{Value: n, Reason: "must start with a letter or digit and contain only letters, digits, '.', '_' or '-'"}
	case strings.HasSuffix(s, "."):
		return &InvalidModNameError{Value: n, Reason: "must not end with '.'"}
	case platform.IsWindowsReservedName(s):
		return &InvalidModNameError{Value: n, Reason: "is a reserved device name on Windows"}
	}
	return nil
}

// Error implements the error interface for InvalidModNameError.
func (e *InvalidModNameError) Error() string {
	return fmt.Sprintf("invalid mod name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidModName for errors.Is() compatibility.
func (e *InvalidModNameError) Unwrap() error { return ErrInvalidModName }
