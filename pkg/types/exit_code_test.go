// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestExitCodeValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     ExitCode
		wantValid bool
	}{
		{name: "success", value: ExitSuccess, wantValid: true},
		{name: "failure", value: ExitFailure, wantValid: true},
		{name: "conflict", value: ExitConflict, wantValid: true},
		{name: "canceled", value: ExitCanceled, wantValid: true},
		{name: "255 is valid", value: 255, wantValid: true},
		{name: "negative is invalid", value: -1, wantValid: false},
		{name: "256 is invalid", value: 256, wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.value.Validate()
			if (err == nil) != tt.wantValid {
				t.Fatalf("ExitCode(%d).Validate() error = %v, wantValid %v", tt.value, err, tt.wantValid)
			}
			if tt.wantValid {
				return
			}
			if !errors.Is(err, ErrInvalidExitCode) {
				t.Errorf("error should wrap ErrInvalidExitCode, got: %v", err)
			}
			var ecErr *InvalidExitCodeError
			if !errors.As(err, &ecErr) {
				t.Fatalf("error should be *InvalidExitCodeError, got: %T", err)
			}
			if ecErr.Value != tt.value {
				t.Errorf("InvalidExitCodeError.Value = %d, want %d", ecErr.Value, tt.value)
			}
		})
	}
}

func TestExitCode_IsSuccessAndString(t *testing.T) {
	t.Parallel()
	if !ExitSuccess.IsSuccess() {
		t.Error("ExitSuccess.IsSuccess() = false")
	}
	if ExitConflict.IsSuccess() {
		t.Error("ExitConflict.IsSuccess() = true")
	}
	if got := ExitCanceled.String(); got != "130" {
		t.Errorf("ExitCanceled.String() = %q, want %q", got, "130")
	}
}
