// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"
)

// SetHomeDir points the platform's home variable at dir for the rest of the
// test and clears the XDG and sandbox variables that would take precedence
// over it, so default directories derive from dir alone.
//
// Platform handling:
//   - Windows: Sets USERPROFILE and clears APPDATA and LOCALAPPDATA
//   - Linux/macOS: Sets HOME and clears XDG_CONFIG_HOME, XDG_DATA_HOME and SNAP_NAME
func SetHomeDir(t *testing.T, dir string) {
	t.Helper()

	switch runtime.GOOS {
	case "windows":
		t.Setenv("USERPROFILE", dir)
		t.Setenv("APPDATA", "")
		t.Setenv("LOCALAPPDATA", "")
	default:
		t.Setenv("HOME", dir)
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_DATA_HOME", "")
		t.Setenv("SNAP_NAME", "")
	}
}
