// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for beamskin.
//
// This package implements the Cobra command hierarchy: the root command and
// the vehicle, project, build, inspect, and config command groups. Handlers
// parse flags, delegate to an app.Session, and render results and
// errors with the shared lipgloss styles.
package cmd
