package offer

import "github.com/guxtech/ofertagen/internal/reflow"

// Fixed section titles of the offer skeleton, in document order.
const (
	TitleSummary        = "Resumen Ejecutivo"
	TitleScope          = "Alcance del Servicio"
	TitleFeatures       = "Funcionalidades Clave del Sistema"
	TitleUsers          = "Tipos de Usuarios y Permisos"
	TitleInfrastructure = "Infraestructura Tecnológica"
	TitleTeam           = "Equipo de Trabajo Asignado"
	TitleMethodology    = "Metodología de Implementación"
	TitleWarranty       = "Garantías y Soporte Post-implementación"
	TitleTraining       = "Plan de Capacitación"
	TitleExperience     = "Experiencia y Referencias"
	TitleSuccessFactors = "Factores Clave para el Éxito"
	TitleSchedule       = "Cronograma Detallado del Proyecto"
	TitleInvestment     = "Inversión y Condiciones de Pago"
	TitleDiversity      = "Política de Diversidad e Inclusión"
)

// NewSkeleton builds the empty 14-slot document structure that the
// synthesis stage fills in order. Ids, titles, types, and page breaks
// are fixed; only content varies per project.
func NewSkeleton(params ProjectParameters) OfferDocument {
	return OfferDocument{
		ProjectInfo: ProjectInfo{
			Name:      reflow.Text(params.ProjectName, reflow.TextWidth),
			Client:    reflow.ShortenClientName(params.Client),
			Date:      params.Date,
			TotalCost: params.TotalCost,
			Timeline:  params.Timeline,
		},
		Sections: []Section{
			{ID: "1", Title: TitleSummary, Type: SectionText, PageBreak: true},
			{ID: "2", Title: TitleScope, Type: SectionList},
			{ID: "3", Title: TitleFeatures, Type: SectionText, PageBreak: true},
			{ID: "4", Title: TitleUsers, Type: SectionTable},
			{ID: "5", Title: TitleInfrastructure, Type: SectionText, PageBreak: true},
			{ID: "6", Title: TitleTeam, Type: SectionTable},
			{ID: "7", Title: TitleMethodology, Type: SectionText, PageBreak: true},
			{ID: "8", Title: TitleWarranty, Type: SectionText},
			{ID: "9", Title: TitleTraining, Type: SectionList},
			{ID: "10", Title: TitleExperience, Type: SectionText, PageBreak: true},
			{ID: "11", Title: TitleSuccessFactors, Type: SectionList},
			{ID: "12", Title: TitleSchedule, Type: SectionTable},
			{ID: "13", Title: TitleInvestment, Type: SectionText},
			{ID: "14", Title: TitleDiversity, Type: SectionText},
		},
		Styling: DefaultStyling,
	}
}
