package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateLibraryName(t *testing.T) {
	tests := []struct {
		name    string
		library string
		wantErr bool
	}{
		{
			name:    "plain name",
			library: "CET4",
			wantErr: false,
		},
		{
			name:    "name with spaces and unicode",
			library: "高考 词汇 2024",
			wantErr: false,
		},
		{
			name:    "name with slash",
			library: "a/b",
			wantErr: false,
		},
		{
			name:    "empty string",
			library: "",
			wantErr: true,
		},
		{
			name:    "only spaces",
			library: "   ",
			wantErr: true,
		},
		{
			name:    "control character",
			library: "bad\nname",
			wantErr: true,
		},
		{
			name:    "too long",
			library: strings.Repeat("x", MaxLibraryNameLength+1),
			wantErr: true,
		},
		{
			name:    "longest allowed",
			library: strings.Repeat("词", MaxLibraryNameLength),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLibraryName(tt.library)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLibraryName(%q) error = %v, wantErr %v", tt.library, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answer  string
		wantErr bool
	}{
		{"empty", "", false},
		{"word", "apple", false},
		{"at limit", strings.Repeat("a", MaxAnswerLength), false},
		{"over limit", strings.Repeat("a", MaxAnswerLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswer(tt.answer)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAnswer(%q) error = %v, wantErr %v", tt.answer, err, tt.wantErr)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidateLibraryName("")
	var verr ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if verr.Field != "library" {
		t.Errorf("Field = %q, want library", verr.Field)
	}
	if err.Error() != "library: library name is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}
