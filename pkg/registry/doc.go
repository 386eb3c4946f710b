// SPDX-License-Identifier: MPL-2.0

// Package registry holds the vehicles skins can be made for.
//
// A Registry has two layers. The base layer is the built-in catalog shipped
// with the binary (catalog.toml). The override layer holds the vehicles the
// user registered from their own material and part files, persisted in a
// Store. Every query goes through one lookup function that consults the
// override layer first, so a custom vehicle shadows a built-in one with the
// same ID while the built-in record itself is never modified.
//
// Mutations persist synchronously before they become visible in memory: a
// failed write leaves both the store and the registry as they were.
package registry
