// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"path/filepath"
	"sync"
)

// Sandbox type constants.
const (
	// SandboxNone indicates no sandbox environment detected.
	SandboxNone SandboxType = ""
	// SandboxFlatpak indicates a Flatpak sandbox environment.
	SandboxFlatpak SandboxType = "flatpak"
	// SandboxSnap indicates a Snap sandbox environment.
	SandboxSnap SandboxType = "snap"
)

// detectOnce caches the sandbox detection result for the lifetime of the process.
//
// INVARIANT: detectSandboxFrom MUST NOT panic. sync.OnceValue propagates a
// panic on every call.
var detectOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// SandboxType identifies the type of application sandbox, if any.
type SandboxType string

// DetectSandbox returns the type of application sandbox the current process is running in.
// The result is cached after the first call.
//
// Detection methods:
//   - Flatpak: Checks for existence of /.flatpak-info
//   - Snap: Checks for SNAP_NAME environment variable
func DetectSandbox() SandboxType {
	return detectOnce()
}

// HostDataHome returns the user's data directory as seen outside the
// sandbox, where the simulator keeps its user folder. Flatpak points
// XDG_DATA_HOME into the app's private area, and Snap moves HOME under
// ~/snap; both are undone here. Outside a sandbox it returns XDG_DATA_HOME or
// ~/.local/share. The result is empty when no home directory is known.
func HostDataHome(st SandboxType, lookupEnv func(string) string) string {
	home := lookupEnv("HOME")
	switch st {
	case SandboxFlatpak:
		if host := lookupEnv("HOST_XDG_DATA_HOME"); host != "" {
			return host
		}
		return joinHome(home, ".local", "share")
	case SandboxSnap:
		if real := lookupEnv("SNAP_REAL_HOME"); real != "" {
			home = real
		}
		return joinHome(home, ".local", "share")
	default:
		if xdg := lookupEnv("XDG_DATA_HOME"); xdg != "" {
			return xdg
		}
		return joinHome(home, ".local", "share")
	}
}

func joinHome(home string, elem ...string) string {
	if home == "" {
		return ""
	}
	return filepath.Join(append([]string{home}, elem...)...)
}

// detectSandboxFrom performs sandbox detection using the provided lookup functions.
// Accepting lookupEnv and statFile as parameters allows tests to inject custom
// behavior without mutating process-wide state.
func detectSandboxFrom(lookupEnv func(string) string, statFile func(string) error) SandboxType {
	// The /.flatpak-info file is always present inside Flatpak sandboxes.
	if err := statFile("/.flatpak-info"); err == nil {
		return SandboxFlatpak
	}

	// The SNAP_NAME environment variable is set for all snaps.
	if lookupEnv("SNAP_NAME") != "" {
		return SandboxSnap
	}

	return SandboxNone
}

// statFile wraps os.Stat to match the func(string) error signature.
func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
