// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestFilesystemPath_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    FilesystemPath
		wantErr bool
	}{
		{"absolute texture", FilesystemPath("/home/me/skins/etk800_skin_Red.dds"), false},
		{"relative texture", FilesystemPath("etk800_skin_Red.dds"), false},
		{"windows style", FilesystemPath("C:\\Skins\\etk800_skin_Red.dds"), false},
		{"path with spaces", FilesystemPath("/path/to/my skins/pickup_skin_Blue.png"), false},
		{"dot path", FilesystemPath("."), false},
		{"empty is invalid", FilesystemPath(""), true},
		{"whitespace only is invalid", FilesystemPath("   "), true},
		{"tab only is invalid", FilesystemPath("\t"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.path.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("FilesystemPath(%q).Validate() returned unexpected error: %v", tt.path, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("FilesystemPath(%q).Validate() returned nil, want error", tt.path)
			}
			if !errors.Is(err, ErrInvalidFilesystemPath) {
				t.Errorf("error should wrap ErrInvalidFilesystemPath, got: %v", err)
			}
			var fpErr *InvalidFilesystemPathError
			if !errors.As(err, &fpErr) {
				t.Errorf("error should be *InvalidFilesystemPathError, got: %T", err)
			}
		})
	}
}

func TestFilesystemPath_BaseExt(t *testing.T) {
	t.Parallel()
	p := FilesystemPath("/tmp/skins/etk800_skin_Red.dds")
	if got := p.Base(); got != "etk800_skin_Red.dds" {
		t.Errorf("Base() = %q, want %q", got, "etk800_skin_Red.dds")
	}
	if got := p.Ext(); got != ".dds" {
		t.Errorf("Ext() = %q, want %q", got, ".dds")
	}
	if p.String() != "/tmp/skins/etk800_skin_Red.dds" {
		t.Errorf("String() = %q", p.String())
	}
}
