// SPDX-License-Identifier: EPL-2.0

package testutil

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

// MustWriteFile writes content to path, creating parent directories.
// The test fails immediately if the operation fails.
func MustWriteFile(t testing.TB, path, content string) {
	t.Helper()
	MustMkdirAll(t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// MustReadFile returns the content of path.
// The test fails immediately if the operation fails.
func MustReadFile(t testing.TB, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

// MustClose closes the given io.Closer.
// The test fails immediately if the close fails.
func MustClose(t testing.TB, c io.Closer) {
	t.Helper()
	if err := c.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}
}
