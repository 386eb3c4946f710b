// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"syscall"
)

// Win32 error codes after which ReadDirectoryChangesW cannot continue.
const (
	errnoTooManyOpenFiles = syscall.Errno(4)
	errnoInvalidHandle    = syscall.Errno(6)
	errnoNotEnoughMemory  = syscall.Errno(8)
)

// isFatalFsnotifyError reports handle exhaustion, an invalidated directory
// handle, or a failed buffer allocation.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, errnoTooManyOpenFiles) ||
		errors.Is(err, errnoInvalidHandle) ||
		errors.Is(err, errnoNotEnoughMemory)
}
