package errors

import (
	"strings"
	"unicode"
)

// ValidatePath validates a user-supplied file path for reading or writing.
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

// ValidateChoice validates that value is one of the allowed names.
// The comparison is case-sensitive; kind names the option in the error message.
func ValidateChoice(kind, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "invalid %s: %q (must be one of: %s)", kind, value, strings.Join(allowed, ", "))
}

// ValidateDensity validates an edge selection density in (0, 1].
func ValidateDensity(d float64) error {
	if d <= 0 || d > 1 {
		return New(ErrCodeInvalidInput, "density must be in (0, 1], got %g", d)
	}
	return nil
}
