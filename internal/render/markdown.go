package render

import (
	"fmt"
	"strings"

	"github.com/guxtech/ofertagen/internal/offer"
)

// Markdown renders the offer document as GitHub-flavored markdown:
// a title block with the commercial parameters, then one `##` heading
// per section with its text, list, or table content.
func Markdown(doc offer.OfferDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sanitize(doc.ProjectInfo.Name))
	fmt.Fprintf(&b, "- Cliente: %s\n", sanitize(doc.ProjectInfo.Client))
	fmt.Fprintf(&b, "- Fecha: %s\n", sanitize(doc.ProjectInfo.Date))
	fmt.Fprintf(&b, "- Inversión total: $%s CLP\n", fmtCLP(doc.ProjectInfo.TotalCost))
	fmt.Fprintf(&b, "- Plazo de ejecución: %s\n\n", sanitize(doc.ProjectInfo.Timeline))
	fmt.Fprintf(&b, "---\n\n")

	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "## %s\n\n", sanitize(s.Title))
		switch s.Type {
		case offer.SectionText:
			fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(s.Text))
		case offer.SectionList:
			for _, item := range s.Items {
				fmt.Fprintf(&b, "- %s\n", sanitize(item))
			}
			fmt.Fprintf(&b, "\n")
		case offer.SectionTable:
			writeTable(&b, s.Table)
		}
	}
	return b.String()
}

func writeTable(b *strings.Builder, t offer.Table) {
	if len(t.Headers) == 0 {
		return
	}
	cells := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		cells[i] = sanitizeCell(h)
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
	seps := make([]string, len(t.Headers))
	for i := range seps {
		seps[i] = "---"
	}
	fmt.Fprintf(b, "| %s |\n", strings.Join(seps, " | "))
	for _, row := range t.Rows {
		cells = cells[:0]
		for i := range t.Headers {
			if i < len(row) {
				cells = append(cells, sanitizeCell(row[i]))
			} else {
				cells = append(cells, "")
			}
		}
		fmt.Fprintf(b, "| %s |\n", strings.Join(cells, " | "))
	}
	fmt.Fprintf(b, "\n")
}

func sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// sanitizeCell prepares text for use inside a markdown table cell.
// It strips newlines (like sanitize) and escapes pipe characters that
// would break the table column structure.
func sanitizeCell(s string) string {
	s = sanitize(s)
	return strings.ReplaceAll(s, "|", "\\|")
}

// fmtCLP formats a Chilean peso amount with dot separators
// (e.g. 45000000 → "45.000.000").
func fmtCLP(n int) string {
	if n < 0 {
		return "-" + fmtCLP(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
