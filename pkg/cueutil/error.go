// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue/errors"
)

// DefaultMaxFileSize is the size limit for CUE config files (5MB).
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// FormatError formats a CUE error with JSON path prefixes.
//
// Error format: <file-path>: <json-path>: <message>
//
// Examples:
//   - config.cue: ui.verbose: conflicting values true and "yes"
//   - config.cue: parse_cache_size: invalid value -1 (out of bound >=0)
func FormatError(err error, filePath string) error {
	if err == nil {
		return nil
	}

	cueErrors := errors.Errors(err)
	if len(cueErrors) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(cueErrors))
	for _, e := range cueErrors {
		pathStr := formatPath(errors.Path(e))
		format, args := e.Msg()
		msg := fmt.Sprintf(format, args...)

		if pathStr != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", pathStr, msg))
		} else {
			lines = append(lines, msg)
		}
	}

	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// Location returns the byte offset and message of the first problem in err.
// The offset is -1 when CUE recorded no position.
func Location(err error) (offset int, reason string) {
	offset = -1
	if pos := errors.Positions(err); len(pos) > 0 && pos[0].IsValid() {
		offset = pos[0].Offset()
	}
	reason = err.Error()
	if errs := errors.Errors(err); len(errs) > 0 {
		format, args := errs[0].Msg()
		reason = fmt.Sprintf(format, args...)
	}
	return offset, reason
}

// formatPath converts a CUE error path (["Stages", "0", "baseColorMap"]) to
// JSON-path notation (Stages[0].baseColorMap).
func formatPath(path []string) string {
	var result strings.Builder
	for i, part := range path {
		isIndex := part != "" && strings.IndexFunc(part, func(r rune) bool { return r < '0' || r > '9' }) < 0
		switch {
		case isIndex && i > 0:
			result.WriteString("[" + part + "]")
		case i > 0:
			result.WriteString("." + part)
		default:
			result.WriteString(part)
		}
	}
	return result.String()
}

// CheckFileSize verifies that data does not exceed maxSize.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes",
			filename, len(data), maxSize)
	}
	return nil
}
