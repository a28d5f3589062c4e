package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"marketsafe_backend/pkg/apperrors"
)

// Field-level validators. Each either returns the normalized value or fails
// atomically with a VALIDATION_ERROR; there is no partial success.

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// RequireString fails when the value is empty or whitespace-only, and returns
// the trimmed value otherwise.
func RequireString(value, name string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", apperrors.NewValidationError(fmt.Sprintf("%s is required and must be a non-empty string", name))
	}
	return trimmed, nil
}

// ValidEmail normalizes an email address (trim, lowercase) and checks its
// shape: local part of word chars, dots or dashes, then a domain with at
// least one dot.
func ValidEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", apperrors.NewValidationError("Email cannot be empty")
	}
	if !emailPattern.MatchString(normalized) {
		return "", apperrors.NewValidationError("Invalid email format")
	}
	return normalized, nil
}

// IsPositiveNumber fails when the value is not strictly greater than zero.
func IsPositiveNumber(value float64, name string) (float64, error) {
	if value <= 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be positive", name))
	}
	return value, nil
}

// RequireID fails when the id is the zero value, meaning the record was never
// persisted.
func RequireID(id uint, name string) (uint, error) {
	if id == 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s is required", name))
	}
	return id, nil
}

// MaxLength fails when the value exceeds maxLen characters.
func MaxLength(value string, maxLen int, name string) (string, error) {
	if len(value) > maxLen {
		return "", apperrors.NewValidationError(fmt.Sprintf("%s cannot exceed %d characters", name, maxLen))
	}
	return value, nil
}

// ValidHTTPURL checks that the value parses as an http or https URL with a
// non-empty host.
func ValidHTTPURL(value, name string) (string, error) {
	trimmed := strings.TrimSpace(value)
	parsed, err := url.Parse(trimmed)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return "", apperrors.NewValidationError(fmt.Sprintf("%s must be a valid http(s) URL", name))
	}
	return trimmed, nil
}
