// SPDX-License-Identifier: MPL-2.0

// Package configdoc parses the simulator's vehicle definition files into an
// order-preserving document model.
//
// Two dialects are supported. Material files (*.materials.json) are strict
// JSON. Part files (*.jbeam) use a JSON superset that allows line and block
// comments, trailing commas, and members separated by newlines only. Both are
// parsed with the CUE parser (cuelang.org/go) and converted into plain Go
// values:
//
//   - *Object for objects (members kept in declaration order)
//   - []any for arrays
//   - string, Number, bool, and nil for scalars
//
// Declaration order is part of the model because the canonical skin entry of a
// vehicle is the first skin-capable member of a document. Marshal writes
// members back in that order, so encoding a document is byte-stable.
//
// Malformed input is never repaired: parsing fails with a *MalformedConfigError
// that carries the byte offset of the first problem.
package configdoc
