// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// Exit codes returned by the beamskin CLI.
const (
	ExitSuccess ExitCode = 0
	// ExitFailure covers I/O failures and any error without a more specific code.
	ExitFailure ExitCode = 1
	// ExitUsage is returned for invalid flags, arguments, or config files.
	ExitUsage ExitCode = 2
	// ExitInvalidInput is returned when user data (ids, skins, source files) is rejected.
	ExitInvalidInput ExitCode = 3
	// ExitConflict is returned when an operation would overwrite existing state.
	ExitConflict ExitCode = 4
	// ExitCanceled is returned when the user declines a prompt or interrupts a build.
	ExitCanceled ExitCode = 130
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
