// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidSkinToken is the sentinel error wrapped by InvalidSkinTokenError.
var ErrInvalidSkinToken = errors.New("invalid skin token")

type (
	// SkinToken is the skin name segment of a texture file name: the "Red" in
	// "etk800_skin_Red.dds". It substitutes the SKINNAME placeholder of a
	// normalized template, so it ends up in material and part keys.
	SkinToken string

	// InvalidSkinTokenError is returned when a SkinToken fails validation.
	InvalidSkinTokenError struct {
		Value SkinToken
	}
)

// String returns the string representation of the SkinToken.
func (t SkinToken) String() string { return string(t) }

// Validate returns an error if the token is empty or contains whitespace,
// control characters, or path separators.
func (t SkinToken) Validate() error {
	s := string(t)
	if s == "" || strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r) || r == '/' || r == '\\'
	}) {
		return &InvalidSkinTokenError{Value: t}
	}
	return nil
}

// Error implements the error interface for InvalidSkinTokenError.
func (e *InvalidSkinTokenError) Error() string {
	return fmt.Sprintf("invalid skin token %q: must be non-empty without whitespace or path separators", e.Value)
}

// Unwrap returns ErrInvalidSkinToken for errors.Is() compatibility.
func (e *InvalidSkinTokenError) Unwrap() error { return ErrInvalidSkinToken }
