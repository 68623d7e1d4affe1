package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/guxtech/ofertagen/internal/offer"
)

// HTML converts the offer document into a single self-contained HTML
// page, with the document's styling inlined and page-break markers on
// the sections that request one.
func HTML(doc offer.OfferDocument) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(Markdown(doc)), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}
	contentHTML := applyPageBreakHooks(content.String(), doc)

	return "<!doctype html><html><head><meta charset='utf-8'><title>" +
		sanitize(doc.ProjectInfo.Name) + "</title>" +
		"<style>" + buildCSS(doc.Styling) + "</style></head><body>" +
		"<div class='offer-wrap'><div class='offer-html'>" + contentHTML + "</div></div>" +
		"</body></html>", nil
}

// applyPageBreakHooks tags the h2 of every page-breaking section so
// the print CSS can force it onto a fresh page.
func applyPageBreakHooks(contentHTML string, doc offer.OfferDocument) string {
	for _, s := range doc.Sections {
		if !s.PageBreak {
			continue
		}
		re := regexp.MustCompile(`<h2([^>]*)>\s*` + regexp.QuoteMeta(sanitize(s.Title)) + `\s*</h2>`)
		contentHTML = re.ReplaceAllString(contentHTML,
			`<h2$1 data-page-break-before="true">`+sanitize(s.Title)+`</h2>`)
	}
	return contentHTML
}

func buildCSS(st offer.Styling) string {
	return "html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;} " +
		"body{background:#fff;font-family:" + st.FontFamily + ";color:#1c1917;padding:0.6rem;line-height:1.5;} " +
		".offer-wrap{max-width:1000px;margin:0 auto;} " +
		".offer-html h1{color:" + st.PrimaryColor + ";border-bottom:3px solid " + st.PrimaryColor + ";padding-bottom:0.3rem;} " +
		".offer-html h2{color:" + st.SecondaryColor + ";margin-top:1.4rem;} " +
		".offer-html table{width:100% !important;border-collapse:collapse !important;border:1px solid #a8a29e !important;font-size:0.85rem !important;} " +
		".offer-html th,.offer-html td{border:1px solid #a8a29e !important;padding:0.35rem 0.45rem !important;text-align:left !important;vertical-align:top !important;} " +
		".offer-html thead th{background:" + st.PrimaryColor + " !important;color:#fff !important;font-weight:700 !important;} " +
		`h2[data-page-break-before="true"]{break-before:page;page-break-before:always;} ` +
		"@media print{ @page{size:auto;margin:12mm;} body{padding:0;} .offer-wrap{max-width:none;} }"
}
