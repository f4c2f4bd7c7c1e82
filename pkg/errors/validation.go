package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// identifierRegex matches axis, item and stack identifiers.
var identifierRegex = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// ValidateIdentifier validates an axis, stack or chart identifier. The kind
// names what is being validated in the error message; code is returned on
// failure.
func ValidateIdentifier(code Code, kind, id string) error {
	if id == "" {
		return New(code, "%s id cannot be empty", kind)
	}
	if len(id) > 128 {
		return New(code, "%s id too long (max 128 characters)", kind)
	}
	if !identifierRegex.MatchString(id) {
		return New(code, "invalid %s id: %q", kind, id)
	}
	return nil
}

// ValidateDataKey validates a field name used to read values from data rows.
// Keys may contain spaces but no control characters.
func ValidateDataKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidItem, "data key cannot be empty")
	}
	if len(key) > 256 {
		return New(ErrCodeInvalidItem, "data key too long (max 256 characters)")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItem, "data key contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a data file path referenced from a chart spec.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
