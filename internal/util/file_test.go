package util

import (
	"bytes"
	"testing"
)

func TestValidateMimeType(t *testing.T) {
	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	if _, err := ValidateMimeType(bytes.NewReader(pngHeader), []string{MimeImage}); err != nil {
		t.Errorf("png should pass image validation: %v", err)
	}

	if _, err := ValidateMimeType(bytes.NewReader([]byte("plain text, not an image")), []string{MimeImage}); err == nil {
		t.Error("text should fail image validation")
	}
}

func TestHasAllowedExtension(t *testing.T) {
	testCases := []struct {
		filename string
		expected bool
	}{
		{"q1.png", true},
		{"Q1.PNG", true},
		{"scan.jpeg", true},
		{"paper.pdf", false},
		{"noext", false},
	}

	for _, tc := range testCases {
		if got := HasAllowedExtension(tc.filename, AllowedImageExtensions); got != tc.expected {
			t.Errorf("HasAllowedExtension(%q) = %v, want %v", tc.filename, got, tc.expected)
		}
	}
}
