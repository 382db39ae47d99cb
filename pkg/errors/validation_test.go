package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateDataPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative file", "data.json", false},
		{"nested file", "testdata/flare.json", false},
		{"absolute file", "/srv/packview/data.json", false},

		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", 5000), true},
		{"null byte", "data\x00.json", true},
		{"newline", "data\n.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDataPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidConfig)
			}
		})
	}
}

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"landscape", 960, 600, false},
		{"square", 1, 1, false},
		{"zero width", 0, 600, true},
		{"negative height", 800, -1, true},
		{"nan", math.NaN(), 600, true},
		{"inf", 800, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePadding(t *testing.T) {
	for _, p := range []float64{0, 3, 12.5} {
		if err := ValidatePadding(p); err != nil {
			t.Errorf("ValidatePadding(%v) = %v, want nil", p, err)
		}
	}
	for _, p := range []float64{-1, math.NaN(), math.Inf(1)} {
		if err := ValidatePadding(p); err == nil {
			t.Errorf("ValidatePadding(%v) = nil, want error", p)
		}
	}
}
