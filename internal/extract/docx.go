package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fumiama/go-docx"
)

const (
	tableOpen  = "--- TABLA ---"
	tableClose = "--- FIN TABLA ---"
)

func extractDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}
	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", &ExtractionError{Path: path, Err: err}
	}

	var b strings.Builder
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			text := paragraphText(it)
			if text == "" {
				continue
			}
			if isHeadingParagraph(it) {
				// Extra spacing keeps heading lines isolated so the
				// segmenter sees them as candidate titles.
				b.WriteString("\n\n" + text + "\n")
			} else {
				b.WriteString(text + "\n")
			}
		case *docx.Table:
			writeTable(&b, it)
		}
	}

	for _, line := range headerFooterLines(path) {
		b.WriteString(line + "\n")
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", &ExtractionError{Path: path, Err: fmt.Errorf("document contains no extractable text")}
	}
	return text, nil
}

func writeTable(b *strings.Builder, t *docx.Table) {
	b.WriteString("\n" + tableOpen + "\n")
	for _, row := range t.TableRows {
		cells := make([]string, 0, len(row.TableCells))
		for _, cell := range row.TableCells {
			var ct strings.Builder
			for _, p := range cell.Paragraphs {
				if s := paragraphText(p); s != "" {
					if ct.Len() > 0 {
						ct.WriteString(" ")
					}
					ct.WriteString(s)
				}
			}
			cells = append(cells, ct.String())
		}
		b.WriteString(strings.Join(cells, " | ") + "\n")
	}
	b.WriteString(tableClose + "\n\n")
}

func isHeadingParagraph(para *docx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	style := strings.ToLower(para.Properties.Style.Val)
	return strings.HasPrefix(style, "heading")
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// headerFooterLines reads the header/footer parts of the docx archive
// directly. The body parser does not surface them, but tenders often
// carry the issuing entity there, so they are tagged and appended.
func headerFooterLines(path string) []string {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil
	}
	defer zr.Close()

	var names []string
	for _, zf := range zr.File {
		name := zf.Name
		if strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var lines []string
	for _, name := range names {
		prefix := "HEADER: "
		if strings.HasPrefix(name, "word/footer") {
			prefix = "FOOTER: "
		}
		for _, zf := range zr.File {
			if zf.Name != name {
				continue
			}
			rc, err := zf.Open()
			if err != nil {
				continue
			}
			for _, text := range textRuns(rc) {
				lines = append(lines, prefix+text)
			}
			rc.Close()
		}
	}
	return lines
}

// textRuns scans a WordprocessingML part for w:t character data.
func textRuns(r io.Reader) []string {
	dec := xml.NewDecoder(r)
	var runs []string
	var current strings.Builder
	inText := false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if s := strings.TrimSpace(current.String()); s != "" {
					runs = append(runs, s)
				}
				current.Reset()
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		runs = append(runs, s)
	}
	return runs
}
