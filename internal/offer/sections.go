package offer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/guxtech/ofertagen/internal/corpus"
)

// Deterministic section generators. These produce the content for the
// sections that never need a collaborator, and the fallback content
// for the ones that do.

// scopeItems builds the scope list: items extracted from the tender's
// own scope-ish sections, then sector-specific entries, capped at 8.
func scopeItems(tenders []corpus.Entry, client, sector string) []string {
	var items []string
	if len(tenders) > 0 {
		for _, title := range tenders[0].Doc.Titles() {
			lower := strings.ToLower(title)
			if !containsAny(lower, "alcance", "servicio", "entregable", "funcionalidad") {
				continue
			}
			body, _ := tenders[0].Doc.Body(title)
			items = append(items, title+": "+truncate(body, 40))
		}
	}

	switch {
	case strings.Contains(strings.ToLower(sector), "bancario"):
		items = append(items,
			"Gestión de transacciones",
			"Reportes regulatorios",
			"Integración bancaria",
			"Auditoría y trazabilidad")
	case strings.Contains(strings.ToLower(sector), "educativo"):
		items = append(items,
			"Gestión académica",
			"Evaluación y seguimiento",
			"Reportes educativos",
			"Integración institucional")
	case strings.Contains(strings.ToLower(sector), "salud"):
		items = append(items,
			"Gestión de pacientes",
			"Historiales clínicos",
			"Citas y agenda",
			"Integración de salud")
	default:
		items = append(items,
			"Desarrollo para "+client,
			"Gestión principal",
			"Reportes y análisis",
			"Integración de sistemas")
	}

	if len(items) > 8 {
		items = items[:8]
	}
	return items
}

// userPermissionsTable branches the role matrix by sector.
func userPermissionsTable(sector string) Table {
	var rows [][]string
	switch {
	case strings.Contains(strings.ToLower(sector), "bancario"):
		rows = [][]string{
			{"Administrador del Sistema", "Gestión completa del sistema", "Acceso total"},
			{"Ejecutivo Bancario", "Gestión de transacciones", "Acceso operativo"},
			{"Supervisor", "Monitoreo y reportes", "Acceso de supervisión"},
			{"Auditor", "Revisión de transacciones", "Acceso de solo lectura"},
		}
	case strings.Contains(strings.ToLower(sector), "educativo"):
		rows = [][]string{
			{"Administrador Académico", "Gestión de programas y cursos", "Acceso administrativo"},
			{"Docente", "Gestión de evaluaciones", "Acceso docente"},
			{"Estudiante", "Acceso a recursos educativos", "Acceso limitado"},
			{"Coordinador", "Supervisión académica", "Acceso de coordinación"},
		}
	case strings.Contains(strings.ToLower(sector), "salud"):
		rows = [][]string{
			{"Administrador Clínico", "Gestión de pacientes y citas", "Acceso administrativo"},
			{"Médico", "Gestión de historiales clínicos", "Acceso médico"},
			{"Enfermero", "Registro de datos de pacientes", "Acceso de enfermería"},
			{"Recepcionista", "Gestión de citas", "Acceso de recepción"},
		}
	default:
		rows = [][]string{
			{"Administrador del Sistema", "Gestión completa", "Acceso total"},
			{"Usuario Operativo", "Operaciones diarias", "Acceso operativo"},
			{"Supervisor", "Monitoreo y control", "Acceso de supervisión"},
			{"Usuario Final", "Uso del sistema", "Acceso limitado"},
		}
	}
	return Table{
		Headers: []string{"Tipo de Usuario", "Funciones Principales", "Nivel de Permisos"},
		Rows:    rows,
	}
}

// teamTable sizes the staffing by total cost: over 60M is a full
// high-complexity squad, under 30M a minimal one.
func teamTable(totalCost int) Table {
	var rows [][]string
	switch {
	case totalCost > 60000000:
		rows = [][]string{
			{"Project Manager Senior", "Gestión integral del proyecto", "10+ años de experiencia"},
			{"Arquitecto de Soluciones", "Diseño de arquitectura técnica", "8+ años de experiencia"},
			{"Tech Lead", "Liderazgo técnico del equipo", "7+ años de experiencia"},
			{"Desarrollador Senior", "Desarrollo de módulos críticos", "5+ años de experiencia"},
			{"Desarrollador Full Stack", "Desarrollo frontend y backend", "3+ años de experiencia"},
			{"QA Engineer", "Aseguramiento de calidad", "4+ años de experiencia"},
			{"DevOps Engineer", "Infraestructura y despliegue", "5+ años de experiencia"},
			{"UX/UI Designer", "Diseño de interfaces", "4+ años de experiencia"},
		}
	case totalCost < 30000000:
		rows = [][]string{
			{"Project Manager", "Gestión del proyecto", "5+ años de experiencia"},
			{"Desarrollador Full Stack", "Desarrollo completo", "3+ años de experiencia"},
			{"Desarrollador Frontend", "Interfaz de usuario", "2+ años de experiencia"},
			{"QA Tester", "Pruebas del sistema", "2+ años de experiencia"},
		}
	default:
		rows = [][]string{
			{"Project Manager", "Gestión del proyecto", "7+ años de experiencia"},
			{"Arquitecto de Software", "Diseño de arquitectura", "6+ años de experiencia"},
			{"Desarrollador Senior", "Desarrollo de módulos", "4+ años de experiencia"},
			{"Desarrollador Full Stack", "Desarrollo completo", "3+ años de experiencia"},
			{"QA Engineer", "Aseguramiento de calidad", "3+ años de experiencia"},
			{"DevOps Engineer", "Infraestructura", "4+ años de experiencia"},
		}
	}
	return Table{
		Headers: []string{"Rol", "Responsabilidades Principales", "Experiencia Requerida"},
		Rows:    rows,
	}
}

// scheduleTable derives the phase plan from the timeline length.
func scheduleTable(timeline string) Table {
	months := monthsFromTimeline(timeline)
	var rows [][]string
	switch {
	case months <= 3:
		rows = [][]string{
			{"Fase 1: Análisis y Diseño", "Semanas 1-2", "Requisitos y arquitectura"},
			{"Fase 2: Desarrollo", "Semanas 3-8", "Desarrollo del sistema"},
			{"Fase 3: Pruebas e Implementación", "Semanas 9-12", "Testing y despliegue"},
		}
	case months <= 6:
		rows = [][]string{
			{"Fase 1: Análisis y Diseño", "Semanas 1-4", "Requisitos y arquitectura"},
			{"Fase 2: Desarrollo Core", "Semanas 5-16", "Desarrollo de módulos principales"},
			{"Fase 3: Desarrollo Avanzado", "Semanas 17-20", "Módulos especializados"},
			{"Fase 4: Pruebas e Implementación", "Semanas 21-24", "Testing y despliegue"},
		}
	default:
		rows = [][]string{
			{"Fase 1: Análisis y Diseño", "Semanas 1-6", "Requisitos y arquitectura"},
			{"Fase 2: Desarrollo Core", "Semanas 7-20", "Desarrollo de módulos principales"},
			{"Fase 3: Desarrollo Avanzado", "Semanas 21-28", "Módulos especializados"},
			{"Fase 4: Integración", "Semanas 29-32", "Integración de sistemas"},
			{"Fase 5: Pruebas e Implementación", "Semanas 33-36", "Testing y despliegue"},
		}
	}
	return Table{
		Headers: []string{"Fase", "Duración", "Entregables Principales"},
		Rows:    rows,
	}
}

// monthsFromTimeline parses the leading integer of strings like
// "5 meses"; unparseable timelines count as 5.
func monthsFromTimeline(timeline string) int {
	fields := strings.Fields(timeline)
	if len(fields) == 0 {
		return 5
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 5
	}
	return n
}

func trainingPlan(sector string) []string {
	return []string{
		"Capacitación inicial para administradores",
		"Talleres específicos del sector " + sector,
		"Capacitación en funcionalidades avanzadas",
		"Entrenamiento en reportes y análisis",
		"Capacitación en mantenimiento del sistema",
		"Talleres de resolución de problemas",
		"Capacitación en nuevas funcionalidades",
		"Soporte continuo y consultoría técnica",
	}
}

func successFactors(client string, company CompanyProfile) []string {
	return []string{
		"Compromiso total del equipo de " + client,
		fmt.Sprintf("Comunicación efectiva entre %s y %s", company.Name, client),
		"Definición clara de requisitos del proyecto",
		"Capacitación adecuada del personal",
		"Infraestructura técnica apropiada",
		"Apoyo de la alta dirección",
		"Plan de contingencia para mitigar riesgos",
		"Monitoreo continuo del progreso del proyecto",
	}
}

func warrantyText(client, sector string, company CompanyProfile) string {
	return fmt.Sprintf("%s ofrece garantías específicas para %s del sector %s, "+
		"incluyendo soporte técnico 24/7 durante los primeros 6 meses post-implementación, "+
		"mantenimiento preventivo mensual, y actualizaciones de seguridad trimestrales. "+
		"Se incluye capacitación inicial para el equipo y documentación técnica completa.",
		company.Name, client, sector)
}

func experienceText(sector string, company CompanyProfile) string {
	return fmt.Sprintf("%s cuenta con amplia experiencia en el sector %s, habiendo "+
		"desarrollado soluciones similares para empresas del mismo rubro. Nuestro equipo "+
		"tiene más de 10 años de experiencia en desarrollo de software empresarial y ha "+
		"completado exitosamente más de 50 proyectos en diversos sectores, incluyendo "+
		"casos de éxito específicos en %s.",
		company.Name, sector, sector)
}

func investmentText(client string, params ProjectParameters) string {
	return fmt.Sprintf("La inversión total para el proyecto de %s es de $%s CLP, con un "+
		"plazo de %s. El pago se estructura en cuotas: 30%% al inicio del proyecto, 40%% "+
		"durante el desarrollo, y 30%% al finalizar la implementación. Incluye desarrollo, "+
		"implementación, capacitación y soporte post-implementación.",
		client, formatCLP(params.TotalCost), params.Timeline)
}

func diversityText(client string, company CompanyProfile) string {
	return fmt.Sprintf(`%[1]s se compromete firmemente con la diversidad e inclusión en todos nuestros proyectos, incluyendo el desarrollo de la solución para %[2]s. Nuestra política se fundamenta en los siguientes principios:

Compromiso con la Diversidad: promovemos activamente la participación de profesionales de diferentes géneros, edades, orígenes étnicos y culturales en nuestros equipos de desarrollo, y fomentamos la inclusión de personas con diferentes capacidades y perspectivas.

Equipo Inclusivo: nuestro equipo de trabajo para el proyecto de %[2]s refleja esta política, en un ambiente de trabajo respetuoso donde todas las voces son valoradas durante el proceso de desarrollo.

Desarrollo de Soluciones Inclusivas: las soluciones que desarrollamos para %[2]s están diseñadas considerando la accesibilidad y usabilidad para usuarios diversos, incorporando principios de diseño universal.

Capacitación y Sensibilización: el equipo recibe capacitación continua en temas de diversidad e inclusión.

Medición y Seguimiento: establecemos métricas y evaluaciones periódicas para asegurar que estas políticas se implementen efectivamente.

Este compromiso contribuye a la calidad de las soluciones que desarrollamos para %[2]s, asegurando que sean accesibles, relevantes y beneficiosas para todos los usuarios finales.`,
		company.Name, client)
}

// Fallback texts for the collaborator-backed sections.

func fallbackSummary(analysis ProjectAnalysis, params ProjectParameters, company CompanyProfile) string {
	return fmt.Sprintf("%s presenta esta propuesta técnica para %s, empresa del sector %s, "+
		"con el objetivo de %s. El proyecto tiene un costo total de $%s y un plazo de %s.",
		company.Name, params.Client, analysis.Sector, analysis.Objective,
		formatCLP(params.TotalCost), params.Timeline)
}

func fallbackFeatures(analysis ProjectAnalysis, client string) string {
	objective := analysis.Objective
	if objective == "" {
		objective = "desarrollar el sistema requerido"
	}
	return fmt.Sprintf("El sistema para %s incluye funcionalidades específicas del sector %s, "+
		"diseñadas para %s.", client, analysis.Sector, objective)
}

func fallbackInfrastructure(analysis ProjectAnalysis, client string) string {
	return fmt.Sprintf("La infraestructura para %s incluye tecnologías modernas y escalables, "+
		"adaptadas específicamente para el sector %s.", client, analysis.Sector)
}

func fallbackMethodology(analysis ProjectAnalysis, params ProjectParameters) string {
	return fmt.Sprintf("La metodología para %s utiliza un enfoque ágil adaptado al sector %s, "+
		"con un plazo de %s y entregables incrementales.",
		params.Client, analysis.Sector, params.Timeline)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
