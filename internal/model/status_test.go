package model

import (
	"encoding/json"
	"testing"
)

// TestStatusValid tests status validation.
func TestStatusValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status Status
		want   bool
	}{
		{StatusAvailable, true},
		{StatusTaken, true},
		{StatusUnknown, true},
		{Status("registered"), false},
		{Status(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			if got := tt.status.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestStatusUnmarshalJSON tests that only tri-state values decode.
func TestStatusUnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("accepts known status", func(t *testing.T) {
		t.Parallel()
		var s Status
		if err := json.Unmarshal([]byte(`"taken"`), &s); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s != StatusTaken {
			t.Errorf("expected taken, got %q", s)
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()
		var s Status
		if err := json.Unmarshal([]byte(`"registered"`), &s); err == nil {
			t.Error("expected error for invalid status")
		}
	})

	t.Run("rejects non-string", func(t *testing.T) {
		t.Parallel()
		var s Status
		if err := json.Unmarshal([]byte(`1`), &s); err == nil {
			t.Error("expected error for numeric status")
		}
	})
}

// TestTargetLabel tests report labels for targets.
func TestTargetLabel(t *testing.T) {
	t.Parallel()

	if got := DomainTarget("com").Label(); got != ".com" {
		t.Errorf("expected .com, got %q", got)
	}
	if got := HandleTarget("instagram").Label(); got != "@instagram" {
		t.Errorf("expected @instagram, got %q", got)
	}
}
