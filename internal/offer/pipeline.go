package offer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/guxtech/ofertagen/internal/corpus"
	"github.com/guxtech/ofertagen/internal/reflow"
)

type StageProgressFn func(stage, message string)

// Pipeline orchestrates offer generation: analysis, parameter
// derivation, skeleton, per-section synthesis, structural validation,
// and presentation reflow. Collaborator failures never abort a run;
// the orchestrator substitutes the documented static fallback for the
// failing stage and records the substitution in the metadata.
type Pipeline struct {
	runner  StageRunner
	company CompanyProfile
}

func NewPipeline(runner StageRunner, company CompanyProfile) *Pipeline {
	return &Pipeline{runner: runner, company: company}
}

func (p *Pipeline) Generate(ctx context.Context, tenders []corpus.Entry) (Result, error) {
	return p.generate(ctx, tenders, nil)
}

func (p *Pipeline) GenerateWithProgress(ctx context.Context, tenders []corpus.Entry, progress StageProgressFn) (Result, error) {
	return p.generate(ctx, tenders, progress)
}

func (p *Pipeline) generate(ctx context.Context, tenders []corpus.Entry, progress StageProgressFn) (Result, error) {
	res := Result{Metadata: PipelineMetadata{StartedAt: time.Now(), Mode: ModeComplete}}
	if p.company.Name == "" {
		return res, errors.New("company name is required")
	}

	res.Analysis = p.runAnalysis(ctx, tenders, &res.Metadata, progress)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	res.Parameters = p.runParameters(ctx, tenders, res.Analysis, &res.Metadata, progress)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	emit(progress, "estructura_base", "Construyendo estructura base de la oferta...")
	doc := NewSkeleton(res.Parameters)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "estructura_base")

	p.fillSections(ctx, &doc, tenders, res.Analysis, res.Parameters, &res.Metadata, progress)
	if err := ctx.Err(); err != nil {
		return res, err
	}

	emit(progress, "validacion", "Validando estructura del documento...")
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "validacion")
	doc = p.finalizeDocument(doc, res.Parameters, &res.Metadata, progress)

	emit(progress, "formato", "Aplicando formato de presentación...")
	applyReflow(&doc)
	res.Metadata.StagesExecuted = append(res.Metadata.StagesExecuted, "formato")

	res.Document = doc
	res.Metadata.CompletedAt = time.Now()
	return res, nil
}

// runAnalysis performs the three analysis sub-calls concurrently. With
// no tenders loaded there is nothing to analyze, so the static
// defaults apply directly without spending collaborator calls.
func (p *Pipeline) runAnalysis(ctx context.Context, tenders []corpus.Entry, md *PipelineMetadata, progress StageProgressFn) ProjectAnalysis {
	emit(progress, "analisis", "Analizando licitaciones...")
	analysis := ProjectAnalysis{
		ClientProfile:     defaultClientProfile(),
		ProjectObjectives: defaultProjectObjectives(),
		TechnicalProfile:  defaultTechnicalProfile(),
	}

	if len(tenders) == 0 {
		md.StagesExecuted = append(md.StagesExecuted,
			"analisis_cliente", "analisis_proyecto", "analisis_tecnico")
		md.StageFallbacks = append(md.StageFallbacks,
			"analisis_cliente", "analisis_proyecto", "analisis_tecnico")
		return analysis
	}

	var (
		wg               sync.WaitGroup
		cp               ClientProfile
		po               ProjectObjectives
		tp               TechnicalProfile
		errC, errO, errT error
	)
	wg.Add(3)
	go func() { defer wg.Done(); cp, errC = p.runner.AnalyzeClient(ctx, tenders) }()
	go func() { defer wg.Done(); po, errO = p.runner.AnalyzeObjectives(ctx, tenders) }()
	go func() { defer wg.Done(); tp, errT = p.runner.AnalyzeTechnical(ctx, tenders) }()
	wg.Wait()
	md.LLMCalls += 3
	md.StagesExecuted = append(md.StagesExecuted,
		"analisis_cliente", "analisis_proyecto", "analisis_tecnico")

	if errC != nil {
		emit(progress, "analisis_cliente", "Fallback estático: "+errC.Error())
		md.StageFallbacks = append(md.StageFallbacks, "analisis_cliente")
	} else {
		analysis.ClientProfile = cp
	}
	if errO != nil {
		emit(progress, "analisis_proyecto", "Fallback estático: "+errO.Error())
		md.StageFallbacks = append(md.StageFallbacks, "analisis_proyecto")
	} else {
		analysis.ProjectObjectives = po
	}
	if errT != nil {
		emit(progress, "analisis_tecnico", "Fallback estático: "+errT.Error())
		md.StageFallbacks = append(md.StageFallbacks, "analisis_tecnico")
	} else {
		analysis.TechnicalProfile = tp
	}
	return analysis
}

// runParameters derives the deterministic commercial parameters, then
// asks the collaborator only for the project name.
func (p *Pipeline) runParameters(ctx context.Context, tenders []corpus.Entry, analysis ProjectAnalysis, md *PipelineMetadata, progress StageProgressFn) ProjectParameters {
	emit(progress, "parametros", "Calculando parámetros del proyecto...")
	params := BaseParameters(analysis)
	md.StagesExecuted = append(md.StagesExecuted, "parametros")

	name, err := p.runner.ProposeProjectName(ctx, analysis, params, p.company)
	md.LLMCalls++
	if err != nil {
		emit(progress, "nombre_proyecto", "Fallback estático: "+err.Error())
		md.StageFallbacks = append(md.StageFallbacks, "nombre_proyecto")
	} else {
		params.ProjectName = name
	}
	return params
}

// fillSections synthesizes content slot by slot in skeleton order.
// Four text sections go through the collaborator with per-section
// fallback; the rest are deterministic.
func (p *Pipeline) fillSections(ctx context.Context, doc *OfferDocument, tenders []corpus.Entry, analysis ProjectAnalysis, params ProjectParameters, md *PipelineMetadata, progress StageProgressFn) {
	md.StagesExecuted = append(md.StagesExecuted, "sintesis_secciones")
	for i := range doc.Sections {
		s := &doc.Sections[i]
		emit(progress, "sintesis_secciones", "Generando: "+s.Title)
		switch s.Title {
		case TitleSummary:
			p.fillText(ctx, s, md, progress, "resumen_ejecutivo",
				func() (string, error) {
					return p.runner.WriteSummary(ctx, tenders, analysis, params, p.company)
				},
				func() string { return fallbackSummary(analysis, params, p.company) })
		case TitleScope:
			s.Items = scopeItems(tenders, params.Client, analysis.Sector)
		case TitleFeatures:
			p.fillText(ctx, s, md, progress, "funcionalidades",
				func() (string, error) {
					return p.runner.WriteFeatures(ctx, tenders, analysis, p.company)
				},
				func() string { return fallbackFeatures(analysis, params.Client) })
		case TitleUsers:
			s.Table = userPermissionsTable(analysis.Sector)
		case TitleInfrastructure:
			p.fillText(ctx, s, md, progress, "infraestructura",
				func() (string, error) {
					return p.runner.WriteInfrastructure(ctx, analysis, p.company)
				},
				func() string { return fallbackInfrastructure(analysis, params.Client) })
		case TitleTeam:
			s.Table = teamTable(params.TotalCost)
		case TitleMethodology:
			p.fillText(ctx, s, md, progress, "metodologia",
				func() (string, error) {
					return p.runner.WriteMethodology(ctx, analysis, params, p.company)
				},
				func() string { return fallbackMethodology(analysis, params) })
		case TitleWarranty:
			s.Text = warrantyText(params.Client, analysis.Sector, p.company)
		case TitleTraining:
			s.Items = trainingPlan(analysis.Sector)
		case TitleExperience:
			s.Text = experienceText(analysis.Sector, p.company)
		case TitleSuccessFactors:
			s.Items = successFactors(params.Client, p.company)
		case TitleSchedule:
			s.Table = scheduleTable(params.Timeline)
		case TitleInvestment:
			s.Text = investmentText(params.Client, params)
		case TitleDiversity:
			s.Text = diversityText(params.Client, p.company)
		}
	}
}

// finalizeDocument is the structural gate: a document that fails
// validation is replaced wholesale by the static fallback template and
// the run is marked degraded.
func (p *Pipeline) finalizeDocument(doc OfferDocument, params ProjectParameters, md *PipelineMetadata, progress StageProgressFn) OfferDocument {
	if Validate(doc) {
		return doc
	}
	emit(progress, "validacion", "Documento incompleto, usando plantilla de respaldo")
	md.UsedFallbackDocument = true
	md.Mode = ModeDegraded
	return FallbackDocument(params, p.company)
}

func (p *Pipeline) fillText(ctx context.Context, s *Section, md *PipelineMetadata, progress StageProgressFn, stage string, generate func() (string, error), fallback func() string) {
	text, err := generate()
	md.LLMCalls++
	if err != nil {
		emit(progress, stage, "Fallback estático: "+err.Error())
		md.StageFallbacks = append(md.StageFallbacks, stage)
		text = fallback()
	}
	s.Text = text
}

// applyReflow normalizes all free-text and list content for
// presentation. Tables are left as-is.
func applyReflow(doc *OfferDocument) {
	for i := range doc.Sections {
		s := &doc.Sections[i]
		switch s.Type {
		case SectionText:
			s.Text = reflow.Text(s.Text, reflow.TextWidth)
		case SectionList:
			s.Items = reflow.List(s.Items, reflow.ListWidth)
		}
	}
}

func defaultClientProfile() ClientProfile {
	return ClientProfile{
		ClientName: "Cliente",
		Sector:     "Tecnología",
		EndUsers:   []string{"Usuarios del sistema"},
	}
}

func defaultProjectObjectives() ProjectObjectives {
	return ProjectObjectives{
		Objective:  "Desarrollar sistema tecnológico",
		Scope:      "Sistema completo",
		SystemType: "Sistema web",
		Complexity: ComplexityMedium,
	}
}

func defaultTechnicalProfile() TechnicalProfile {
	return TechnicalProfile{
		Requirements: []string{"Sistema web", "Base de datos"},
		Technologies: []string{"Python", "React"},
		Constraints:  []string{"Sin restricciones específicas"},
	}
}

func emit(progress StageProgressFn, stage, message string) {
	if progress != nil {
		progress(stage, message)
	}
}
