// Package reflow normalizes generated content for fixed-width
// presentation: narrow paragraphs for PDF body text and short list
// items that fit a bullet column.
package reflow

import (
	"strings"
	"unicode/utf8"
)

const (
	// TextWidth is the default wrap width for paragraph text.
	TextWidth = 70
	// ListWidth is the default maximum length of a list item.
	ListWidth = 45
	// maxClientName bounds client names used in headings.
	maxClientName = 30
)

// Delimiters tried, in order of preference, when splitting an overlong
// list item into two natural halves.
var listDelimiters = []string{
	", ", ". ", " y ", " o ", "; ",
	" además ", " también ", " incluyendo ",
	" para ", " con ", " mediante ", " a través de ",
}

// Text rewraps s to the given width. Paragraphs (blank-line separated)
// are wrapped independently and rejoined with a blank line. Words
// longer than the width are hard-split.
func Text(s string, width int) string {
	if width <= 0 {
		width = TextWidth
	}
	paragraphs := strings.Split(s, "\n\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, wrapParagraph(p, width))
	}
	return strings.Join(out, "\n\n")
}

func wrapParagraph(p string, width int) string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(p) {
		switch {
		case current == "":
			for utf8.RuneCountInString(word) > width {
				r := []rune(word)
				lines = append(lines, string(r[:width]))
				word = string(r[width:])
			}
			current = word
		case utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = ""
			for utf8.RuneCountInString(word) > width {
				r := []rune(word)
				lines = append(lines, string(r[:width]))
				word = string(r[width:])
			}
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return strings.Join(lines, "\n")
}

// List shortens overlong list items. An item over the width is split
// in two at the earliest natural delimiter found past position 20 and
// at least 10 characters before the end; items with no usable
// delimiter are word-wrapped into as many items as needed.
func List(items []string, width int) []string {
	if width <= 0 {
		width = ListWidth
	}
	var out []string
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if utf8.RuneCountInString(item) <= width {
			out = append(out, item)
			continue
		}
		if first, second, ok := splitAtDelimiter(item); ok {
			out = append(out, first, second)
			continue
		}
		out = append(out, wordWrapItems(item, width)...)
	}
	return out
}

func splitAtDelimiter(item string) (string, string, bool) {
	best := -1
	bestLen := 0
	for _, d := range listDelimiters {
		pos := strings.Index(item, d)
		if pos > 20 && pos < len(item)-10 && (best == -1 || pos < best) {
			best = pos
			bestLen = len(d)
		}
	}
	if best == -1 {
		return "", "", false
	}
	first := strings.TrimSpace(item[:best])
	second := strings.TrimSpace(item[best+bestLen:])
	return first, second, true
}

func wordWrapItems(item string, width int) []string {
	var items []string
	current := ""
	for _, word := range strings.Fields(item) {
		if current == "" {
			current = word
		} else if utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word) <= width {
			current += " " + word
		} else {
			items = append(items, current)
			current = word
		}
	}
	if current != "" {
		items = append(items, current)
	}
	return items
}

// ShortenClientName bounds long client names for use in headings and
// project names. Names over 30 characters keep their first three words
// or are cut at 30 characters, whichever is shorter.
func ShortenClientName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= maxClientName {
		return name
	}
	words := strings.Fields(name)
	if len(words) >= 3 {
		short := strings.Join(words[:3], " ")
		if utf8.RuneCountInString(short) <= maxClientName {
			return short
		}
	}
	return string([]rune(name)[:maxClientName])
}
