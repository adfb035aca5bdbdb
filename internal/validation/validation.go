package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxLibraryNameLength matches the libraries.name column width
	MaxLibraryNameLength = 64
	MaxAnswerLength      = 200
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateLibraryName checks a library name taken from a URL path
func ValidateLibraryName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ValidationError{Field: "library", Message: "library name is required"}
	}
	if !utf8.ValidString(name) {
		return ValidationError{Field: "library", Message: "library name must be valid UTF-8"}
	}
	if utf8.RuneCountInString(name) > MaxLibraryNameLength {
		return ValidationError{Field: "library", Message: fmt.Sprintf("library name must be at most %d characters", MaxLibraryNameLength)}
	}
	if strings.IndexFunc(name, unicode.IsControl) >= 0 {
		return ValidationError{Field: "library", Message: "library name contains control characters"}
	}
	return nil
}

// ValidateAnswer checks a submitted quiz answer. Empty answers are allowed
// and simply graded as wrong.
func ValidateAnswer(answer string) error {
	if utf8.RuneCountInString(answer) > MaxAnswerLength {
		return ValidationError{Field: "answer", Message: fmt.Sprintf("answer must be at most %d characters", MaxAnswerLength)}
	}
	return nil
}
