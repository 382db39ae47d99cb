package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateDataPath validates the configured hierarchy data file path.
//
// The path is operator-supplied configuration, so only obviously broken values
// are rejected:
//   - No empty paths
//   - No null bytes or control characters
//   - Maximum length of 4096 characters
func ValidateDataPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidConfig, "data file path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidConfig, "data file path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "data file path contains invalid control characters")
		}
	}

	return nil
}

// ValidateDimensions checks that a frame size is finite and strictly positive.
func ValidateDimensions(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidInput, "frame size must be positive, got %vx%v", width, height)
		}
	}
	return nil
}

// ValidatePadding checks that the circle padding is finite and non-negative.
func ValidatePadding(padding float64) error {
	if math.IsNaN(padding) || math.IsInf(padding, 0) || padding < 0 {
		return New(ErrCodeInvalidInput, "padding must be non-negative, got %v", padding)
	}
	return nil
}
