// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, plus the atomic write helpers used
// by every package that persists state (registry store, project files,
// archives).
package fspath

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/types"
)

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// JoinStr wraps filepath.Join, accepting a typed base path and raw string
// segments such as vehicle IDs or fixed file names.
func JoinStr(base types.FilesystemPath, elem ...string) types.FilesystemPath {
	parts := make([]string, 1, 1+len(elem))
	parts[0] = string(base)
	parts = append(parts, elem...)
	return types.FilesystemPath(filepath.Join(parts...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Abs wraps filepath.Abs for FilesystemPath.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// Exists reports whether p names an existing file or directory. Errors other
// than "not found" are returned.
func Exists(p types.FilesystemPath) (bool, error) {
	_, err := os.Stat(string(p))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// WriteFileAtomic writes data to a temporary file in the target directory and
// renames it over p, so readers see either the old content or the new
// content, never a partial write. Missing parent directories are created.
func WriteFileAtomic(p types.FilesystemPath, data []byte, perm fs.FileMode) error {
	return writeAtomic(p, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// CopyFileAtomic copies src to dst with the same guarantees as WriteFileAtomic.
func CopyFileAtomic(dst, src types.FilesystemPath, perm fs.FileMode) (err error) {
	in, err := os.Open(string(src))
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }() // read-only file

	return writeAtomic(dst, perm, func(w io.Writer) error {
		_, copyErr := io.Copy(w, in)
		return copyErr
	})
}

func writeAtomic(p types.FilesystemPath, perm fs.FileMode, write func(io.Writer) error) (err error) {
	dir := filepath.Dir(string(p))
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(string(p))+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	renamed := false
	defer func() {
		if !renamed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing %s: %w", p, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("syncing %s: %w", p, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", p, err)
	}
	if err = os.Chmod(tmp.Name(), perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", p, err)
	}
	if err = os.Rename(tmp.Name(), string(p)); err != nil {
		return fmt.Errorf("replacing %s: %w", p, err)
	}
	renamed = true
	return nil
}
