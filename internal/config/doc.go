// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/beamskin/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/beamskin/config.cue on macOS, %APPDATA%\beamskin\config.cue
// on Windows). Values are layered: built-in defaults, then the file, then BEAMSKIN_*
// environment variables.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
