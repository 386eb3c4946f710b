// SPDX-License-Identifier: MPL-2.0

package fspath

import (
	"errors"
	"fmt"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// ErrIOFailure is the sentinel wrapped by IOError. It marks failures of the
// filesystem itself (permissions, disk space, locks) as opposed to bad input.
var ErrIOFailure = errors.New("i/o failure")

// IOError records a failed filesystem operation. errors.Is matches both
// ErrIOFailure and the underlying cause (e.g. fs.ErrPermission).
type IOError struct {
	Op   string
	Path types.FilesystemPath
	Err  error
}

// NewIOError wraps err as an IOError. It returns nil when err is nil.
func NewIOError(op string, path types.FilesystemPath, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns ErrIOFailure and the underlying cause.
func (e *IOError) Unwrap() []error { return []error{ErrIOFailure, e.Err} }
