package errors

import (
	"strings"
	"testing"
)

func TestValidateIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"numeric", "0", false},
		{"word", "revenue", false},
		{"with dash and dot", "left-axis.2", false},
		{"underscore", "_stack_1", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"space", "left axis", true},
		{"leading dash", "-x", true},
		{"slash", "a/b", true},
		{"control char", "a\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIdentifier(ErrCodeInvalidAxis, "axis", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIdentifier(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAxis) {
				t.Errorf("ValidateIdentifier(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateDataKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "uv", false},
		{"with space", "page views", false},
		{"unicode", "umsätze", false},

		{"empty", "", true},
		{"too long", strings.Repeat("k", 257), true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDataKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDataKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "data.csv", false},
		{"valid nested", "data/sales.xlsx", false},
		{"valid dotfile", ".rows.json", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "../secret.csv", true},
		{"traversal nested", "data/../../x", true},
		{"backslash", "data\\rows.csv", true},
		{"null byte", "rows\x00.csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidLayout,
		ErrCodeInvalidAxis,
		ErrCodeInvalidItem,
		ErrCodeInvalidData,
		ErrCodeInvalidPath,
		ErrCodeNotFound,
		ErrCodeChartNotFound,
		ErrCodeFileNotFound,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
