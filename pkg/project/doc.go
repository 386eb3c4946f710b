// SPDX-License-Identifier: MPL-2.0

// Package project models a skin mod under construction: its metadata and the
// texture assets chosen for each vehicle. A Model enforces the naming
// contract for texture files and is persisted as a .bsproject JSON file.
package project
