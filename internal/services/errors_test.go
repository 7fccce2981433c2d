package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrValidation, "naming", "generate filename", "index must be positive", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	want := "validation error: naming: generate filename: index must be positive"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient marker fallback, got %v", err)
	}
}

func TestIsOperatorError(t *testing.T) {
	tests := []struct {
		marker error
		want   bool
	}{
		{ErrValidation, true},
		{ErrNotFound, true},
		{ErrConflict, true},
		{ErrConfiguration, false},
		{ErrTransient, false},
	}
	for _, tt := range tests {
		err := Wrap(tt.marker, "session", "commit", "detail", nil)
		if got := IsOperatorError(err); got != tt.want {
			t.Errorf("IsOperatorError(%v) = %v, want %v", tt.marker, got, tt.want)
		}
	}
}
