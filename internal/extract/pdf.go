package extract

import (
	"fmt"
	"os/exec"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// PdftotextFallback controls whether PDF extraction shells out to
// pdftotext when the pure-Go reader yields nothing. Process-level
// knob, set once at startup.
var PdftotextFallback = true

func extractPDF(path string) (string, error) {
	text, err := extractPDFLib(path)
	if err != nil || strings.TrimSpace(text) == "" {
		// Scanned or oddly-encoded PDFs defeat the pure-Go reader;
		// pdftotext handles a wider range when installed.
		if PdftotextFallback {
			fallback, ferr := extractPdftotext(path)
			if ferr == nil && strings.TrimSpace(fallback) != "" {
				return strings.TrimSpace(fallback), nil
			}
		}
		if err == nil {
			err = fmt.Errorf("document contains no extractable text")
		}
		return "", &ExtractionError{Path: path, Err: err}
	}
	return strings.TrimSpace(text), nil
}

func extractPDFLib(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
