// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// It covers Windows reserved file names, which a mod name must avoid because
// it becomes an archive file name, and the application sandboxes (Flatpak,
// Snap) that remap the home and data directories the default folders are
// derived from.
package platform
