package phone

import (
	"testing"

	"github.com/tundex/airtime-bot/internal/errors"
)

func TestResolver_IsValid(t *testing.T) {
	r := NewResolver("NG")

	tests := []struct {
		raw   string
		valid bool
	}{
		{"08031234567", true},
		{"+2348031234567", true},
		{"0803", false},
		{"wife", false},
		{"", false},
		{"@tunde", false},
	}

	for _, tt := range tests {
		if got := r.IsValid(tt.raw); got != tt.valid {
			t.Errorf("IsValid(%q) = %v, want %v", tt.raw, got, tt.valid)
		}
	}
}

func TestResolver_Format(t *testing.T) {
	r := NewResolver("NG")

	got, err := r.Format("08031234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "+2348031234567" {
		t.Errorf("Format = %q, want +2348031234567", got)
	}

	// already in E.164 form, should come back unchanged
	got, err = r.Format("+2348031234567")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "+2348031234567" {
		t.Errorf("Format = %q, want +2348031234567", got)
	}
}

func TestResolver_FormatInvalid(t *testing.T) {
	r := NewResolver("NG")

	_, err := r.Format("0803")
	if err == nil {
		t.Fatal("expected an error for a truncated number")
	}
	if !errors.HasCode(err, errors.CodeInvalidPhone) {
		t.Errorf("expected invalid_phone code, got %v", err)
	}
}

func TestResolver_DefaultRegion(t *testing.T) {
	r := NewResolver("")

	if !r.IsValid("08031234567") {
		t.Error("empty region should default to NG")
	}
}
