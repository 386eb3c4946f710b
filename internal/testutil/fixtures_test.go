// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"testing"
	"time"

	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/configdoc"
	"github.com/BeamSkin-Studio/BeamSkin-Studio-Linux-Beta/pkg/skintemplate"
)

func TestVehicleFixturesSelectSkin(t *testing.T) {
	t.Parallel()

	files := WriteVehicleFiles(t, t.TempDir(), "roamer")
	mat, err := configdoc.ParseFile(files.Materials)
	if err != nil {
		t.Fatalf("materials fixture: %v", err)
	}
	part, err := configdoc.ParseFile(files.Part)
	if err != nil {
		t.Fatalf("part fixture: %v", err)
	}

	sel, err := skintemplate.SelectCanonical(mat, part)
	if err != nil {
		t.Fatalf("SelectCanonical() error = %v", err)
	}
	if sel.Material.Key != "roamer_skin" || sel.Part.Key != "roamer_skin_stock" {
		t.Errorf("selected %q / %q", sel.Material.Key, sel.Part.Key)
	}
}

func TestWriteTexture(t *testing.T) {
	t.Parallel()

	p := WriteTexture(t, t.TempDir(), "roamer_skin_Blue.dds")
	if got := MustReadFile(t, p); got != "texture:roamer_skin_Blue.dds" {
		t.Errorf("content = %q", got)
	}
}

func TestFakeClock(t *testing.T) {
	t.Parallel()

	c := NewFakeClock(time.Time{})
	start := c.Now()
	if !start.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("default time = %v", start)
	}
	c.Advance(time.Hour)
	if got := c.Now().Sub(start); got != time.Hour {
		t.Errorf("after Advance: %v", got)
	}
	want := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	c.Set(want)
	if !c.Now().Equal(want) {
		t.Errorf("after Set: %v", c.Now())
	}
}
