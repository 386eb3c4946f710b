// SPDX-License-Identifier: MPL-2.0

// Package skintemplate turns a vehicle's stock material and part definitions
// into a skin template.
//
// SelectCanonical picks the first skin-capable entry of each document.
// Normalize rewrites the pair into a NormalizedTemplate whose keys and texture
// path are expressed with placeholders (SKINNAME, SKINFILE, AUTHOR). At build
// time Instantiate fills the placeholders in for one texture asset.
//
// Everything in this package is pure: no I/O, no randomness, and inputs are
// never modified.
package skintemplate
