// Package offer implements the staged generation pipeline that turns
// segmented tender documents into a structured technical offer.
package offer

import (
	"encoding/json"
	"fmt"
	"time"
)

// Complexity is the project complexity tier inferred during analysis.
type Complexity string

const (
	ComplexityLow    Complexity = "BAJA"
	ComplexityMedium Complexity = "MEDIA"
	ComplexityHigh   Complexity = "ALTA"
)

// ValidComplexity reports whether c is one of the three known tiers.
func ValidComplexity(c Complexity) bool {
	switch c {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return true
	}
	return false
}

// ReportMode marks whether the pipeline completed with collaborator
// content or had to degrade to static fallbacks.
type ReportMode string

const (
	ModeComplete ReportMode = "COMPLETE"
	ModeDegraded ReportMode = "DEGRADED"
)

// CompanyProfile identifies the bidding company.
type CompanyProfile struct {
	Name        string `json:"nombre"`
	Description string `json:"descripcion,omitempty"`
}

// ClientProfile is the output of the client/sector analysis sub-call.
type ClientProfile struct {
	ClientName string   `json:"nombre_cliente"`
	Sector     string   `json:"sector"`
	EndUsers   []string `json:"usuarios_finales"`
}

// ProjectObjectives is the output of the objectives analysis sub-call.
type ProjectObjectives struct {
	Objective  string     `json:"objetivo_principal"`
	Scope      string     `json:"alcance"`
	SystemType string     `json:"tipo_sistema"`
	Complexity Complexity `json:"complejidad"`
}

// TechnicalProfile is the output of the technical analysis sub-call.
type TechnicalProfile struct {
	Requirements []string `json:"requisitos_tecnicos"`
	Technologies []string `json:"tecnologias_mencionadas"`
	Constraints  []string `json:"restricciones"`
}

// ProjectAnalysis merges the three analysis sub-call outputs.
type ProjectAnalysis struct {
	ClientProfile
	ProjectObjectives
	TechnicalProfile
}

// ProjectParameters are the commercial parameters derived from the
// analysis: everything except the project name is deterministic.
type ProjectParameters struct {
	ProjectName string `json:"nombre_proyecto"`
	Client      string `json:"cliente"`
	Date        string `json:"fecha"`
	TotalCost   int    `json:"costo_total"`
	Timeline    string `json:"plazo"`
}

// SectionType discriminates the content shape of a Section.
type SectionType string

const (
	SectionText  SectionType = "text"
	SectionList  SectionType = "list"
	SectionTable SectionType = "table"
)

// Table is the content of a table section.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Section is one block of the offer document. Exactly one of Text,
// Items, or Table carries content, according to Type.
type Section struct {
	ID        string
	Title     string
	Type      SectionType
	Text      string
	Items     []string
	Table     Table
	PageBreak bool
}

type sectionJSON struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Type      SectionType     `json:"type"`
	Content   json.RawMessage `json:"content"`
	PageBreak bool            `json:"pageBreak,omitempty"`
}

// MarshalJSON emits the section with a type-dependent "content" field:
// a string for text, an array for lists, and {headers, rows} for
// tables.
func (s Section) MarshalJSON() ([]byte, error) {
	out := sectionJSON{ID: s.ID, Title: s.Title, Type: s.Type, PageBreak: s.PageBreak}
	var content any
	switch s.Type {
	case SectionText:
		content = s.Text
	case SectionList:
		items := s.Items
		if items == nil {
			items = []string{}
		}
		content = items
	case SectionTable:
		content = s.Table
	default:
		return nil, fmt.Errorf("section %s: unknown type %q", s.ID, s.Type)
	}
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}
	out.Content = raw
	return json.Marshal(out)
}

// UnmarshalJSON reads the type-dependent content back into the typed
// fields.
func (s *Section) UnmarshalJSON(data []byte) error {
	var in sectionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	s.ID = in.ID
	s.Title = in.Title
	s.Type = in.Type
	s.PageBreak = in.PageBreak
	switch in.Type {
	case SectionText:
		return json.Unmarshal(in.Content, &s.Text)
	case SectionList:
		return json.Unmarshal(in.Content, &s.Items)
	case SectionTable:
		return json.Unmarshal(in.Content, &s.Table)
	default:
		return fmt.Errorf("section %s: unknown type %q", in.ID, in.Type)
	}
}

// ProjectInfo heads the offer document.
type ProjectInfo struct {
	Name      string `json:"name"`
	Client    string `json:"client"`
	Date      string `json:"date"`
	TotalCost int    `json:"totalCost"`
	Timeline  string `json:"timeline"`
}

// Styling carries the presentation palette used by the renderer.
type Styling struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	FontFamily     string `json:"fontFamily"`
}

// DefaultStyling is applied to every generated document.
var DefaultStyling = Styling{
	PrimaryColor:   "#2563eb",
	SecondaryColor: "#1e40af",
	FontFamily:     "Arial, sans-serif",
}

// OfferDocument is the generated offer.
type OfferDocument struct {
	ProjectInfo ProjectInfo `json:"projectInfo"`
	Sections    []Section   `json:"sections"`
	Styling     Styling     `json:"styling"`
}

// Section returns a pointer to the section with the given title, or
// nil.
func (d *OfferDocument) Section(title string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Title == title {
			return &d.Sections[i]
		}
	}
	return nil
}

// PipelineMetadata describes how a run went.
type PipelineMetadata struct {
	StagesExecuted       []string   `json:"stages_executed"`
	StageFallbacks       []string   `json:"stage_fallbacks,omitempty"`
	UsedFallbackDocument bool       `json:"used_fallback_document"`
	LLMCalls             int        `json:"llm_calls"`
	Mode                 ReportMode `json:"mode"`
	StartedAt            time.Time  `json:"started_at"`
	CompletedAt          time.Time  `json:"completed_at"`
}

// Result is the full pipeline output.
type Result struct {
	Document   OfferDocument    `json:"oferta"`
	Analysis   ProjectAnalysis  `json:"analisis"`
	Parameters ProjectParameters `json:"parametros"`
	Metadata   PipelineMetadata `json:"pipeline_metadata"`
}
