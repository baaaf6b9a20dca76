package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePersonName validates a person's display name before it reaches the
// store. The store itself does not validate - callers reject bad names first.
//
// The validation rules are intentionally conservative:
//   - No empty names (after trimming)
//   - No control characters
//   - Maximum length of 256 characters
func ValidatePersonName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return New(ErrCodeInvalidName, "name cannot be empty")
	}

	if len(trimmed) > 256 {
		return New(ErrCodeInvalidName, "name too long (max 256 characters)")
	}

	for _, r := range trimmed {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "name contains invalid control characters")
		}
	}

	return nil
}

// personIDRegex matches store-assigned person IDs ("P" + 4-digit sequence).
// Sequences past 9999 grow extra digits rather than wrapping.
var personIDRegex = regexp.MustCompile(`^P\d{4,}$`)

// ValidatePersonID validates the shape of a person ID.
// It does not check that the person exists.
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidPersonID, "person ID cannot be empty")
	}

	if !personIDRegex.MatchString(id) {
		return New(ErrCodeInvalidPersonID, "invalid person ID: %q", id)
	}

	return nil
}
