package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "graph.mtx", false},
		{"absolute", "/data/graphs/road.mtx", false},
		{"nested", "out/bin/graph.bin", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateChoice(t *testing.T) {
	if err := ValidateChoice("format", "market", "market", "edgelist"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := ValidateChoice("format", "csv", "market", "edgelist")
	if err == nil {
		t.Fatal("expected error for unknown choice")
	}
	if !strings.Contains(err.Error(), "market, edgelist") {
		t.Errorf("error should list allowed values: %v", err)
	}
}

func TestValidateDensity(t *testing.T) {
	tests := []struct {
		d       float64
		wantErr bool
	}{
		{0.5, false},
		{1, false},
		{0.001, false},
		{0, true},
		{-0.1, true},
		{1.5, true},
	}
	for _, tt := range tests {
		if err := ValidateDensity(tt.d); (err != nil) != tt.wantErr {
			t.Errorf("ValidateDensity(%g) error = %v, wantErr %v", tt.d, err, tt.wantErr)
		}
	}
}
