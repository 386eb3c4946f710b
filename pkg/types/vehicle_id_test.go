// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestVehicleID_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		id      VehicleID
		wantErr bool
	}{
		{"simple", "etk800", false},
		{"underscore", "gavril_roamer", false},
		{"digits and dash", "sbr-4", false},
		{"dotted", "van.v2", false},
		{"empty", "", true},
		{"space", "my car", true},
		{"tab", "my\tcar", true},
		{"uppercase", "ETK800", true},
		{"mixed case", "Etk800", true},
		{"slash", "cars/etk800", true},
		{"backslash", "cars\\etk800", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.id.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("VehicleID(%q).Validate() error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, ErrInvalidVehicleID) {
				t.Errorf("error should wrap ErrInvalidVehicleID, got: %v", err)
			}
			var idErr *InvalidVehicleIDError
			if !errors.As(err, &idErr) {
				t.Fatalf("error should be *InvalidVehicleIDError, got: %T", err)
			}
			if idErr.Reason == "" {
				t.Error("InvalidVehicleIDError.Reason is empty")
			}
		})
	}
}

func TestVehicleID_Contains(t *testing.T) {
	t.Parallel()
	id := VehicleID("gavril_roamer")
	if !id.Contains("ROAM") {
		t.Error(`Contains("ROAM") = false, want true`)
	}
	if id.Contains("etk") {
		t.Error(`Contains("etk") = true, want false`)
	}
}
