// SPDX-License-Identifier: MPL-2.0

// Package issue turns errors into user-facing messages: an ActionableError
// with operation, resource and suggestions, followed by a Markdown catalog
// entry rendered with glamour.
package issue
