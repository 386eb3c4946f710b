// SPDX-License-Identifier: EPL-2.0

package platform

import "strings"

// WindowsReservedNames are filenames that cannot be used on Windows.
// These names are reserved by the operating system regardless of file extension.
var WindowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName checks if a filename is a Windows reserved name.
// Windows ignores everything from the first dot, so "nul.tar.gz" is reserved.
func IsWindowsReservedName(name string) bool {
	stem, _, _ := strings.Cut(name, ".")
	return WindowsReservedNames[strings.ToUpper(stem)]
}
