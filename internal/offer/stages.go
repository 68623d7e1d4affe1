package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guxtech/ofertagen/internal/corpus"
)

// StageRunner is the collaborator-facing surface of the pipeline. Each
// method performs exactly one collaborator attempt; the pipeline
// substitutes the documented static fallback when a method fails.
type StageRunner interface {
	AnalyzeClient(ctx context.Context, tenders []corpus.Entry) (ClientProfile, error)
	AnalyzeObjectives(ctx context.Context, tenders []corpus.Entry) (ProjectObjectives, error)
	AnalyzeTechnical(ctx context.Context, tenders []corpus.Entry) (TechnicalProfile, error)
	ProposeProjectName(ctx context.Context, analysis ProjectAnalysis, base ProjectParameters, company CompanyProfile) (string, error)
	WriteSummary(ctx context.Context, tenders []corpus.Entry, analysis ProjectAnalysis, params ProjectParameters, company CompanyProfile) (string, error)
	WriteFeatures(ctx context.Context, tenders []corpus.Entry, analysis ProjectAnalysis, company CompanyProfile) (string, error)
	WriteInfrastructure(ctx context.Context, analysis ProjectAnalysis, company CompanyProfile) (string, error)
	WriteMethodology(ctx context.Context, analysis ProjectAnalysis, params ProjectParameters, company CompanyProfile) (string, error)
}

type LLMStageRunner struct {
	exec *StageExecutor
}

func NewLLMStageRunner(exec *StageExecutor) *LLMStageRunner {
	return &LLMStageRunner{exec: exec}
}

const clientSchemaPrompt = `Devuelve SOLO un JSON:
{
    "nombre_cliente": "Nombre específico del cliente",
    "sector": "Sector específico (bancario, educativo, salud, etc.)",
    "usuarios_finales": ["Usuarios específicos del sector"]
}`

const objectivesSchemaPrompt = `Devuelve SOLO un JSON:
{
    "objetivo_principal": "Objetivo específico del proyecto",
    "alcance": "Alcance específico del proyecto",
    "tipo_sistema": "Tipo de sistema requerido",
    "complejidad": "BAJA|MEDIA|ALTA"
}`

const technicalSchemaPrompt = `Devuelve SOLO un JSON:
{
    "requisitos_tecnicos": ["Requisitos específicos"],
    "tecnologias_mencionadas": ["Tecnologías específicas"],
    "restricciones": ["Restricciones específicas"]
}`

const textSchemaPrompt = `Devuelve SOLO un JSON:
{
    "contenido": "Texto solicitado"
}`

// textPayload wraps free-text stage output so every stage flows
// through the same JSON path.
type textPayload struct {
	Contenido string `json:"contenido"`
}

func (r *LLMStageRunner) AnalyzeClient(ctx context.Context, tenders []corpus.Entry) (ClientProfile, error) {
	out := ClientProfile{}
	prompt := fmt.Sprintf(
		"Analiza este contenido y extrae información del cliente.\n\nCONTENIDO:\n%s\n\nARCHIVO: %s\n\nTAREA:\nBusca EXHAUSTIVAMENTE el nombre del cliente y su sector.\n\n%s",
		clientDigest(tenders), originFilename(tenders), clientSchemaPrompt,
	)
	err := r.exec.Run(ctx, "analisis_cliente", prompt, &out, func() error {
		if strings.TrimSpace(out.ClientName) == "" || strings.TrimSpace(out.Sector) == "" {
			return errors.New("nombre_cliente y sector son obligatorios")
		}
		return nil
	})
	return out, err
}

func (r *LLMStageRunner) AnalyzeObjectives(ctx context.Context, tenders []corpus.Entry) (ProjectObjectives, error) {
	out := ProjectObjectives{}
	prompt := fmt.Sprintf(
		"Analiza este contenido y extrae información del proyecto.\n\nCONTENIDO:\n%s\n\nARCHIVO: %s\n\nTAREA:\nExtrae información específica del proyecto.\n\n%s",
		projectDigest(tenders), originFilename(tenders), objectivesSchemaPrompt,
	)
	err := r.exec.Run(ctx, "analisis_proyecto", prompt, &out, func() error {
		if strings.TrimSpace(out.Objective) == "" {
			return errors.New("objetivo_principal es obligatorio")
		}
		if !ValidComplexity(out.Complexity) {
			return fmt.Errorf("complejidad inválida: %q", out.Complexity)
		}
		return nil
	})
	return out, err
}

func (r *LLMStageRunner) AnalyzeTechnical(ctx context.Context, tenders []corpus.Entry) (TechnicalProfile, error) {
	out := TechnicalProfile{}
	prompt := fmt.Sprintf(
		"Analiza este contenido y extrae información técnica.\n\nCONTENIDO:\n%s\n\nARCHIVO: %s\n\nTAREA:\nExtrae requisitos técnicos específicos.\n\n%s",
		technicalDigest(tenders), originFilename(tenders), technicalSchemaPrompt,
	)
	err := r.exec.Run(ctx, "analisis_tecnico", prompt, &out, func() error {
		if len(out.Requirements) == 0 {
			return errors.New("requisitos_tecnicos es obligatorio")
		}
		return nil
	})
	return out, err
}

func (r *LLMStageRunner) ProposeProjectName(ctx context.Context, analysis ProjectAnalysis, base ProjectParameters, company CompanyProfile) (string, error) {
	out := textPayload{}
	prompt := fmt.Sprintf(
		"Propón un nombre de proyecto breve y específico.\n\nCLIENTE: %s\nSECTOR: %s\nOBJETIVO: %s\nCOMPLEJIDAD: %s\nEMPRESA: %s\nCOSTO: $%s\nPLAZO: %s\n\n%s",
		analysis.ClientName, analysis.Sector, truncate(analysis.Objective, 100),
		analysis.Complexity, company.Name, formatCLP(base.TotalCost), base.Timeline,
		textSchemaPrompt,
	)
	err := r.exec.Run(ctx, "nombre_proyecto", prompt, &out, func() error {
		if strings.TrimSpace(out.Contenido) == "" {
			return errors.New("contenido vacío")
		}
		return nil
	})
	return strings.TrimSpace(out.Contenido), err
}

func (r *LLMStageRunner) WriteSummary(ctx context.Context, tenders []corpus.Entry, analysis ProjectAnalysis, params ProjectParameters, company CompanyProfile) (string, error) {
	out := textPayload{}
	prompt := fmt.Sprintf(
		"Genera un resumen ejecutivo específico para %s del sector %s.\n\nINFORMACIÓN CLAVE:\n%s\n\nPROYECTO: %s\nOBJETIVO: %s\nCOSTO: $%s\nPLAZO: %s\nEMPRESA: %s\n\nGenera un resumen ejecutivo de 300-400 palabras que:\n1. Mencione específicamente a %s\n2. Explique el objetivo del proyecto\n3. Describa el valor que aportará la solución\n4. Mencione el costo y plazo\n5. Sea específico para el sector %s\n\n%s",
		params.Client, analysis.Sector, objectiveDigest(tenders),
		params.ProjectName, analysis.Objective, formatCLP(params.TotalCost), params.Timeline,
		company.Name, params.Client, analysis.Sector, textSchemaPrompt,
	)
	err := r.exec.Run(ctx, "resumen_ejecutivo", prompt, &out, nonEmptyContent(&out))
	return strings.TrimSpace(out.Contenido), err
}

func (r *LLMStageRunner) WriteFeatures(ctx context.Context, tenders []corpus.Entry, analysis ProjectAnalysis, company CompanyProfile) (string, error) {
	out := textPayload{}
	prompt := fmt.Sprintf(
		"Genera funcionalidades específicas para %s del sector %s.\n\nFUNCIONALIDADES IDENTIFICADAS:\n%s\n\nSECTOR: %s\nOBJETIVO: %s\n\nGenera un texto de 400-500 palabras que describa:\n1. Funcionalidades específicas para %s\n2. Módulos adaptados al sector %s\n3. Características técnicas relevantes\n4. Beneficios específicos para el cliente\n\n%s",
		analysis.ClientName, analysis.Sector, featureDigest(tenders),
		analysis.Sector, analysis.Objective, analysis.ClientName, analysis.Sector,
		textSchemaPrompt,
	)
	err := r.exec.Run(ctx, "funcionalidades", prompt, &out, nonEmptyContent(&out))
	return strings.TrimSpace(out.Contenido), err
}

func (r *LLMStageRunner) WriteInfrastructure(ctx context.Context, analysis ProjectAnalysis, company CompanyProfile) (string, error) {
	out := textPayload{}
	prompt := fmt.Sprintf(
		"Genera descripción de infraestructura para %s del sector %s.\n\nREQUISITOS TÉCNICOS: %s\nTECNOLOGÍAS: %s\n\nGenera texto de 300-400 palabras que describa:\n1. Arquitectura técnica específica para %s\n2. Tecnologías adaptadas al sector %s\n3. Consideraciones de seguridad y escalabilidad\n4. Integración con sistemas existentes\n\n%s",
		analysis.ClientName, analysis.Sector,
		strings.Join(analysis.Requirements, ", "), strings.Join(analysis.Technologies, ", "),
		analysis.ClientName, analysis.Sector, textSchemaPrompt,
	)
	err := r.exec.Run(ctx, "infraestructura", prompt, &out, nonEmptyContent(&out))
	return strings.TrimSpace(out.Contenido), err
}

func (r *LLMStageRunner) WriteMethodology(ctx context.Context, analysis ProjectAnalysis, params ProjectParameters, company CompanyProfile) (string, error) {
	out := textPayload{}
	prompt := fmt.Sprintf(
		"Genera metodología de implementación para %s del sector %s.\n\nPLAZO: %s\nSECTOR: %s\n\nGenera texto de 400-500 palabras que describa:\n1. Metodología ágil adaptada al sector %s\n2. Fases de implementación específicas para %s\n3. Entregables y hitos del proyecto\n4. Gestión de riesgos y calidad\n\n%s",
		params.Client, analysis.Sector, params.Timeline, analysis.Sector,
		analysis.Sector, params.Client, textSchemaPrompt,
	)
	err := r.exec.Run(ctx, "metodologia", prompt, &out, nonEmptyContent(&out))
	return strings.TrimSpace(out.Contenido), err
}

func nonEmptyContent(out *textPayload) func() error {
	return func() error {
		if strings.TrimSpace(out.Contenido) == "" {
			return errors.New("contenido vacío")
		}
		return nil
	}
}

// Prompt digests. Each picks the tender sections most likely to carry
// the information the stage needs, truncated to keep prompts bounded.

func originFilename(tenders []corpus.Entry) string {
	if len(tenders) == 0 {
		return ""
	}
	return tenders[0].Origin
}

func digest(tenders []corpus.Entry, keywords []string, minLen, perSection int, fallbackSections, fallbackLen int) string {
	if len(tenders) == 0 {
		return ""
	}
	doc := tenders[0].Doc
	var b strings.Builder
	for _, title := range doc.Titles() {
		if !containsAny(strings.ToLower(title), keywords...) {
			continue
		}
		body, _ := doc.Body(title)
		if len([]rune(body)) > minLen {
			b.WriteString(title + ": " + truncate(body, perSection) + "\n")
		}
	}
	if b.Len() == 0 {
		n := 0
		for _, title := range doc.Titles() {
			if n >= fallbackSections {
				break
			}
			body, _ := doc.Body(title)
			if len([]rune(body)) > 20 {
				b.WriteString(title + ": " + truncate(body, fallbackLen) + "\n")
				n++
			}
		}
	}
	return b.String()
}

func clientDigest(tenders []corpus.Entry) string {
	return digest(tenders,
		[]string{"titulo", "encabezado", "header", "cliente", "empresa", "organizacion", "institucion"},
		50, 200, 3, 150)
}

func projectDigest(tenders []corpus.Entry) string {
	return digest(tenders,
		[]string{"objetivo", "alcance", "proyecto", "sistema", "desarrollo", "implementacion"},
		30, 180, 4, 120)
}

func technicalDigest(tenders []corpus.Entry) string {
	return digest(tenders,
		[]string{"requisitos", "tecnico", "tecnologia", "sistema", "plataforma", "software", "hardware"},
		30, 150, 3, 100)
}

func objectiveDigest(tenders []corpus.Entry) string {
	if len(tenders) == 0 {
		return ""
	}
	doc := tenders[0].Doc
	var b strings.Builder
	for _, title := range doc.Titles() {
		if !containsAny(strings.ToLower(title), "objetivo", "proposito", "necesidad", "problema") {
			continue
		}
		body, _ := doc.Body(title)
		if len([]rune(body)) > 50 {
			b.WriteString(truncate(body, 200) + " ")
		}
	}
	return strings.TrimSpace(b.String())
}

func featureDigest(tenders []corpus.Entry) string {
	if len(tenders) == 0 {
		return ""
	}
	doc := tenders[0].Doc
	var lines []string
	for _, title := range doc.Titles() {
		if len(lines) >= 5 {
			break
		}
		if !containsAny(strings.ToLower(title), "funcionalidad", "requisito", "caracteristica", "modulo", "sistema") {
			continue
		}
		body, _ := doc.Body(title)
		lines = append(lines, title+": "+truncate(body, 100))
	}
	return strings.Join(lines, "\n")
}
