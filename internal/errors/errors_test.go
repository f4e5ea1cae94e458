package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_WithError(t *testing.T) {
	baseErr := errors.New("original error")
	appErr := ErrCatalogRead.WithError(baseErr)

	if appErr.Err != baseErr {
		t.Errorf("Expected underlying error to be %v, got %v", baseErr, appErr.Err)
	}

	if appErr.Type != TypeConfiguration {
		t.Errorf("Expected type %s, got %s", TypeConfiguration, appErr.Type)
	}

	if !errors.Is(appErr, baseErr) {
		t.Error("Expected errors.Is to reach the underlying error")
	}
}

func TestAppError_WithContext(t *testing.T) {
	appErr := ErrRemoteRejection.WithContext("status", 422).WithContext("body", "Validation Failed")

	if appErr.Context["status"] != 422 {
		t.Errorf("Expected status context 422, got %v", appErr.Context["status"])
	}

	if ErrRemoteRejection.Context != nil {
		t.Error("WithContext must not mutate the original error")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name: "Simple error without underlying error",
			err:  ErrTokenMissing,
			contains: []string{
				"CONFIGURATION",
				"GITHUB_TOKEN environment variable not set",
			},
		},
		{
			name: "Error with underlying error",
			err:  ErrCatalogRead.WithError(errors.New("no such file")),
			contains: []string{
				"CONFIGURATION",
				"Failed to read issue catalog",
				"no such file",
			},
		},
		{
			name: "Error with body context",
			err: ErrRemoteRejection.
				WithContext("status", 422).
				WithContext("body", `{"message":"Validation Failed"}`),
			contains: []string{
				"VCS",
				"issue was not created",
				"Validation Failed",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Expected %q to contain %q", msg, want)
				}
			}
		})
	}
}

func TestIsType(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", ErrCatalogInvalid.WithError(errors.New("issue 1: title is empty")))

	if !IsType(wrapped, TypeConfiguration) {
		t.Error("Expected wrapped catalog error to be a configuration error")
	}

	if IsType(wrapped, TypeVCS) {
		t.Error("Did not expect a VCS error")
	}

	if IsType(errors.New("plain"), TypeConfiguration) {
		t.Error("Plain errors have no type")
	}
}
