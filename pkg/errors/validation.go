package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// Limits applied to user-supplied layout parameters.
const (
	MaxCanvasDimension = 20000
	MaxFontSize        = 1000
	MaxInputBytes      = 4 << 20
)

// ValidateOutputPath checks a file path the CLI is about to write.
//
// Rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}
	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, string(filepath.Separator)) {
		return New(ErrCodeInvalidPath, "output path %q is a directory", path)
	}
	return nil
}

// ValidateFontRange checks a minimum/maximum font size pair.
func ValidateFontRange(minSize, maxSize int) error {
	if minSize <= 0 {
		return New(ErrCodeInvalidSize, "minimum font size must be positive, got %d", minSize)
	}
	if maxSize < minSize {
		return New(ErrCodeInvalidSize, "maximum font size %d is below minimum %d", maxSize, minSize)
	}
	if maxSize > MaxFontSize {
		return New(ErrCodeInvalidSize, "maximum font size %d exceeds %d", maxSize, MaxFontSize)
	}
	return nil
}

// ValidateCanvasSize checks an output canvas size. Zero on both axes means
// "size to fit the layout" and is accepted.
func ValidateCanvasSize(width, height int) error {
	if width == 0 && height == 0 {
		return nil
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidSize, "canvas size must be positive, got %dx%d", width, height)
	}
	if width > MaxCanvasDimension || height > MaxCanvasDimension {
		return New(ErrCodeInvalidSize, "canvas size %dx%d exceeds %d", width, height, MaxCanvasDimension)
	}
	return nil
}

// ValidateText checks raw input text received over the network.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeNoWords, "input text is empty")
	}
	if len(text) > MaxInputBytes {
		return New(ErrCodeInvalidInput, "input text too long (max %d bytes)", MaxInputBytes)
	}
	if strings.ContainsRune(text, 0) {
		return New(ErrCodeInvalidInput, "input text contains null bytes")
	}
	return nil
}
