// Package extract pulls plain text out of tender and offer documents.
// Only the two container formats used by the business (.docx and .pdf)
// are supported.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned (wrapped with the offending
// extension) for any file that is not .docx or .pdf.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractionError reports a supported file that could not be read or
// yielded no usable text.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SupportedExtensions lists the file extensions this package can handle.
var SupportedExtensions = map[string]bool{
	".docx": true,
	".pdf":  true,
}

// IsSupported reports whether the filename has a supported extension.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Extract reads the document at path and returns its plain text.
// Dispatch is by lowercase extension.
func Extract(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".docx":
		return extractDOCX(path)
	case ".pdf":
		return extractPDF(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}
