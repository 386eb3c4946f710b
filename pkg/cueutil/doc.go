// SPDX-License-Identifier: MPL-2.0

// Package cueutil holds the CUE error helpers shared by the config loader and
// the vehicle document parser.
//
// FormatError renders validation failures as "<file>: <path>: <message>" with
// paths in JSON notation (ui.verbose, Stages[0].baseColorMap). Location reduces
// a parser error to the byte offset and message of its first problem.
package cueutil
