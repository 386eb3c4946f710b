// SPDX-License-Identifier: MPL-2.0

// Package types defines the value types shared by the registry, project, and
// packaging packages: vehicle identifiers, mod names, skin tokens, and
// filesystem paths. Each type carries its own validation and a typed error
// that wraps a package sentinel for errors.Is() checks.
//
// This package is a leaf dependency: it imports only the standard library.
package types
