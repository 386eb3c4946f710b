// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Besides the Must* file helpers it holds vehicle fixtures (a skin material
// file, a paint design part file, and textures named after the naming
// contract) and a FakeClock for deterministic archive timestamps.
package testutil
