package offer

import (
	"strconv"
	"strings"
	"testing"
)

func sampleParams() ProjectParameters {
	return ProjectParameters{
		ProjectName: "Proyecto de Prueba",
		Client:      "Cliente X",
		Date:        "2025",
		TotalCost:   45000000,
		Timeline:    "5 meses",
	}
}

func sampleCompany() CompanyProfile {
	return CompanyProfile{Name: "GUX", Description: "desarrollo de software"}
}

func TestValidateFallbackDocumentPasses(t *testing.T) {
	doc := FallbackDocument(sampleParams(), sampleCompany())
	if !Validate(doc) {
		t.Fatal("fallback document must validate")
	}
}

func TestValidateRejectsMissingStyling(t *testing.T) {
	doc := FallbackDocument(sampleParams(), sampleCompany())
	doc.Styling = Styling{}
	if Validate(doc) {
		t.Fatal("document without styling must fail")
	}
}

func TestValidateRejectsMissingProjectInfo(t *testing.T) {
	doc := FallbackDocument(sampleParams(), sampleCompany())
	doc.ProjectInfo = ProjectInfo{}
	if Validate(doc) {
		t.Fatal("document without project info must fail")
	}
}

func TestValidateRejectsTooFewSections(t *testing.T) {
	doc := FallbackDocument(sampleParams(), sampleCompany())
	doc.Sections = doc.Sections[:4]
	if Validate(doc) {
		t.Fatal("document with 4 sections must fail")
	}
}

func TestValidateRejectsMalformedSection(t *testing.T) {
	doc := FallbackDocument(sampleParams(), sampleCompany())
	doc.Sections[0].ID = ""
	if Validate(doc) {
		t.Fatal("section without id must fail")
	}

	doc = FallbackDocument(sampleParams(), sampleCompany())
	doc.Sections[0].Type = SectionType("imagen")
	if Validate(doc) {
		t.Fatal("unknown section type must fail")
	}
}

func TestValidateRejectsThinContent(t *testing.T) {
	doc := NewSkeleton(sampleParams())
	// Skeleton content: empty texts, empty lists, empty tables.
	if Validate(doc) {
		t.Fatal("empty skeleton must fail")
	}
}

func TestValidateMonotonicity(t *testing.T) {
	doc := NewSkeleton(sampleParams())
	if Validate(doc) {
		t.Fatal("fixture must start failing")
	}
	// Add substantive sections one at a time; once the document starts
	// passing it must keep passing.
	passed := false
	for i := 0; i < 10; i++ {
		doc.Sections = append(doc.Sections, Section{
			ID:    "x",
			Title: "Sección Adicional",
			Type:  SectionText,
			Text:  strings.Repeat("contenido sustantivo ", 20),
		})
		ok := Validate(doc)
		if passed && !ok {
			t.Fatal("validation regressed after adding a valid section")
		}
		passed = ok
	}
	if !passed {
		t.Fatal("expected document to eventually pass")
	}
}

func TestNewSkeletonShape(t *testing.T) {
	doc := NewSkeleton(sampleParams())
	if len(doc.Sections) != 14 {
		t.Fatalf("expected 14 sections, got %d", len(doc.Sections))
	}
	for i, s := range doc.Sections {
		if s.ID != strconv.Itoa(i+1) {
			t.Fatalf("section %d id = %q", i, s.ID)
		}
	}
	breaks := map[string]bool{}
	for _, s := range doc.Sections {
		if s.PageBreak {
			breaks[s.ID] = true
		}
	}
	for _, id := range []string{"1", "3", "5", "7", "10"} {
		if !breaks[id] {
			t.Fatalf("expected page break on section %s", id)
		}
	}
	if len(breaks) != 5 {
		t.Fatalf("unexpected page breaks: %v", breaks)
	}
	if doc.Styling != DefaultStyling {
		t.Fatalf("styling = %+v", doc.Styling)
	}
	if doc.Section(TitleSchedule) == nil {
		t.Fatal("schedule section missing")
	}
}
