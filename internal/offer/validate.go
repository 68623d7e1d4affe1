package offer

import "unicode/utf8"

// Substantive-content thresholds for structural validation.
const (
	minSections        = 5
	minCountedSections = 3
	minTotalChars      = 2000
	minTextChars       = 100
	minListItems       = 2
	tableCredit        = 50
)

// Validate is the structural gate on an assembled document. It is a
// pure boolean signal: the orchestrator decides what a failure means
// (replacement by the fallback document), validation itself never
// mutates or aborts.
//
// A document passes when it has project info, styling, at least 5
// well-formed sections, and enough substantive content: at least 3
// sections counting (text >= 100 chars, list >= 2 items, or a table
// with at least one row) and 2000 total content characters, with each
// table contributing a flat 50-character credit.
func Validate(doc OfferDocument) bool {
	if doc.ProjectInfo == (ProjectInfo{}) {
		return false
	}
	if doc.Styling == (Styling{}) {
		return false
	}
	if len(doc.Sections) < minSections {
		return false
	}

	counted := 0
	totalChars := 0
	for _, s := range doc.Sections {
		if s.ID == "" || s.Title == "" {
			return false
		}
		switch s.Type {
		case SectionText:
			if n := utf8.RuneCountInString(s.Text); n >= minTextChars {
				counted++
				totalChars += n
			}
		case SectionList:
			if len(s.Items) >= minListItems {
				counted++
				for _, item := range s.Items {
					totalChars += utf8.RuneCountInString(item)
				}
			}
		case SectionTable:
			if len(s.Table.Rows) >= 1 {
				counted++
				totalChars += tableCredit
			}
		default:
			return false
		}
	}
	return counted >= minCountedSections && totalChars >= minTotalChars
}
