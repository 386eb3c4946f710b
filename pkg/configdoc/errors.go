// SPDX-License-Identifier: MPL-2.0

package configdoc

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedConfig is returned when a material or part file is not
	// syntactically valid in its dialect, or its top-level value is not an object.
	ErrMalformedConfig = errors.New("malformed config document")

	// ErrInvalidPath is returned when a structural path passed to Lookup
	// cannot be parsed.
	ErrInvalidPath = errors.New("invalid document path")

	// ErrInvalidQuery is returned when a JSONPath expression fails to evaluate.
	ErrInvalidQuery = errors.New("invalid document query")

	// ErrFileTooLarge is returned by ParseFile for files over MaxFileSize.
	ErrFileTooLarge = errors.New("config document too large")
)

// MalformedConfigError describes where and why a document failed to parse.
// Offset is the byte offset of the first problem, or -1 when unknown.
type MalformedConfigError struct {
	Path   string
	Offset int
	Reason string
}

// Error implements the error interface.
func (e *MalformedConfigError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: malformed config: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("%s: malformed config at offset %d: %s", e.Path, e.Offset, e.Reason)
}

// Unwrap returns ErrMalformedConfig for errors.Is() compatibility.
func (e *MalformedConfigError) Unwrap() error { return ErrMalformedConfig }
