// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/parser"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()

		if err := FormatError(nil, "config.cue"); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})

	t.Run("non-CUE error is wrapped with filepath", func(t *testing.T) {
		t.Parallel()

		original := errors.New("some error")
		err := FormatError(original, "config.cue")
		if !errors.Is(err, original) {
			t.Errorf("error should wrap the original, got: %v", err)
		}
		if !strings.HasPrefix(err.Error(), "config.cue: ") {
			t.Errorf("error should start with the file path, got: %v", err)
		}
	})

	t.Run("validation error carries the field path", func(t *testing.T) {
		t.Parallel()

		ctx := cuecontext.New()
		v := ctx.CompileString(`ui: verbose: bool`).Unify(ctx.CompileString(`ui: verbose: "yes"`))
		err := FormatError(v.Validate(), "config.cue")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "config.cue: ui.verbose: ") {
			t.Errorf("error should name ui.verbose, got: %v", err)
		}
	})
}

func TestFormatPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     []string
		expected string
	}{
		{name: "empty path", path: nil, expected: ""},
		{name: "single element", path: []string{"author_name"}, expected: "author_name"},
		{name: "nested path", path: []string{"ui", "debug"}, expected: "ui.debug"},
		{name: "array index", path: []string{"Stages", "0", "baseColorMap"}, expected: "Stages[0].baseColorMap"},
		{name: "nested arrays", path: []string{"nodes", "0", "1"}, expected: "nodes[0][1]"},
		{name: "leading number is a key", path: []string{"0", "x"}, expected: "0.x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatPath(tt.path); got != tt.expected {
				t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestLocation(t *testing.T) {
	t.Parallel()

	_, err := parser.ParseExpr("bad.jbeam", []byte("{\n  \"a\": ,\n}"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	offset, reason := Location(err)
	if offset < 0 {
		t.Errorf("offset = %d, want a position", offset)
	}
	if reason == "" {
		t.Error("reason is empty")
	}

	offset, reason = Location(errors.New("plain"))
	if offset != -1 || reason != "plain" {
		t.Errorf("Location(plain) = %d, %q", offset, reason)
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize(make([]byte, 10), 10, "f"); err != nil {
		t.Errorf("at limit: %v", err)
	}
	if err := CheckFileSize(make([]byte, 11), 10, "f"); err == nil {
		t.Error("over limit: expected error")
	}
}
