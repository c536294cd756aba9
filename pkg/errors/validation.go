package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied graph or config file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateWeight checks that an edge weight is finite and strictly positive.
func ValidateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidWeight, "weight must be finite, got %v", w)
	}
	if w <= 0 {
		return New(ErrCodeInvalidWeight, "weight must be positive, got %v", w)
	}
	return nil
}

// ValidateZoomBounds checks that min and max form a usable zoom interval.
func ValidateZoomBounds(minZoom, maxZoom float64) error {
	if !(minZoom > 0) || math.IsInf(minZoom, 0) {
		return New(ErrCodeInvalidConfig, "min zoom must be a positive number, got %v", minZoom)
	}
	if math.IsNaN(maxZoom) || math.IsInf(maxZoom, 0) {
		return New(ErrCodeInvalidConfig, "max zoom must be finite, got %v", maxZoom)
	}
	if minZoom >= maxZoom {
		return New(ErrCodeInvalidConfig, "min zoom %v must be below max zoom %v", minZoom, maxZoom)
	}
	return nil
}

// ValidateFormat checks a single output format against the supported set.
// Matching is case-insensitive.
func ValidateFormat(format string, valid []string) error {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(valid, f) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (valid: %s)", format, strings.Join(valid, ", "))
	}
	return nil
}

// ValidateZoom checks that zoom lies within [minZoom, maxZoom].
func ValidateZoom(zoom, minZoom, maxZoom float64) error {
	if math.IsNaN(zoom) || zoom < minZoom || zoom > maxZoom {
		return New(ErrCodeInvalidInput, "zoom must be between %v and %v, got %v", minZoom, maxZoom, zoom)
	}
	return nil
}
