package errors

import (
	"strings"
	"testing"
)

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "tagcloud.png", false},
		{"nested", "out/cloud.svg", false},
		{"absolute", "/tmp/cloud.pdf", false},

		{"empty", "", true},
		{"null byte", "cloud\x00.png", true},
		{"newline", "cloud\n.png", true},
		{"directory", "out/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateFontRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max int
		wantErr  bool
	}{
		{"defaults", 10, 100, false},
		{"equal", 12, 12, false},
		{"zero min", 0, 100, true},
		{"inverted", 50, 10, true},
		{"too large", 10, MaxFontSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFontRange(tt.min, tt.max)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFontRange(%d, %d) error = %v, wantErr %v", tt.min, tt.max, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCanvasSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"auto", 0, 0, false},
		{"default", 1200, 900, false},
		{"half auto", 0, 900, true},
		{"negative", -1, 900, true},
		{"too wide", MaxCanvasDimension + 1, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCanvasSize(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCanvasSize(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
		})
	}
}

func TestValidateText(t *testing.T) {
	if err := ValidateText("go gopher"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateText("  \n "); !Is(err, ErrCodeNoWords) {
		t.Errorf("blank text: got %v, want NO_WORDS", err)
	}
	if err := ValidateText(strings.Repeat("a", MaxInputBytes+1)); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("long text: got %v, want INVALID_INPUT", err)
	}
	if err := ValidateText("a\x00b"); !Is(err, ErrCodeInvalidInput) {
		t.Errorf("null byte: got %v, want INVALID_INPUT", err)
	}
}
