package offer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/guxtech/ofertagen/internal/corpus"
)

// stubRunner returns canned stage outputs and counts calls. Any stage
// listed in fail returns an error instead.
type stubRunner struct {
	fail  map[string]bool
	calls []string
	text  string
}

func (s *stubRunner) record(stage string) error {
	s.calls = append(s.calls, stage)
	if s.fail[stage] {
		return &StageError{Stage: stage, Err: errors.New("stub failure")}
	}
	return nil
}

func (s *stubRunner) content() string {
	if s.text != "" {
		return s.text
	}
	return strings.Repeat("Contenido generado para la sección correspondiente. ", 6)
}

func (s *stubRunner) AnalyzeClient(_ context.Context, _ []corpus.Entry) (ClientProfile, error) {
	if err := s.record("analisis_cliente"); err != nil {
		return ClientProfile{}, err
	}
	return ClientProfile{ClientName: "Banco Austral", Sector: "bancario", EndUsers: []string{"Ejecutivos"}}, nil
}

func (s *stubRunner) AnalyzeObjectives(_ context.Context, _ []corpus.Entry) (ProjectObjectives, error) {
	if err := s.record("analisis_proyecto"); err != nil {
		return ProjectObjectives{}, err
	}
	return ProjectObjectives{Objective: "Desarrollar sistema de transacciones", Scope: "Completo", SystemType: "Web", Complexity: ComplexityHigh}, nil
}

func (s *stubRunner) AnalyzeTechnical(_ context.Context, _ []corpus.Entry) (TechnicalProfile, error) {
	if err := s.record("analisis_tecnico"); err != nil {
		return TechnicalProfile{}, err
	}
	return TechnicalProfile{Requirements: []string{"Web"}, Technologies: []string{"PostgreSQL"}}, nil
}

func (s *stubRunner) ProposeProjectName(_ context.Context, _ ProjectAnalysis, _ ProjectParameters, _ CompanyProfile) (string, error) {
	if err := s.record("nombre_proyecto"); err != nil {
		return "", err
	}
	return "Sistema de Transacciones Banco Austral", nil
}

func (s *stubRunner) WriteSummary(_ context.Context, _ []corpus.Entry, _ ProjectAnalysis, _ ProjectParameters, _ CompanyProfile) (string, error) {
	if err := s.record("resumen_ejecutivo"); err != nil {
		return "", err
	}
	return s.content(), nil
}

func (s *stubRunner) WriteFeatures(_ context.Context, _ []corpus.Entry, _ ProjectAnalysis, _ CompanyProfile) (string, error) {
	if err := s.record("funcionalidades"); err != nil {
		return "", err
	}
	return s.content(), nil
}

func (s *stubRunner) WriteInfrastructure(_ context.Context, _ ProjectAnalysis, _ CompanyProfile) (string, error) {
	if err := s.record("infraestructura"); err != nil {
		return "", err
	}
	return s.content(), nil
}

func (s *stubRunner) WriteMethodology(_ context.Context, _ ProjectAnalysis, _ ProjectParameters, _ CompanyProfile) (string, error) {
	if err := s.record("metodologia"); err != nil {
		return "", err
	}
	return s.content(), nil
}

func TestGenerateComplete(t *testing.T) {
	runner := &stubRunner{}
	p := NewPipeline(runner, sampleCompany())
	res, err := p.Generate(context.Background(), sampleTenders())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if res.Metadata.Mode != ModeComplete {
		t.Fatalf("mode = %q", res.Metadata.Mode)
	}
	if res.Metadata.UsedFallbackDocument {
		t.Fatal("unexpected fallback document")
	}
	if len(res.Metadata.StageFallbacks) != 0 {
		t.Fatalf("unexpected fallbacks: %v", res.Metadata.StageFallbacks)
	}
	if res.Metadata.LLMCalls != 8 {
		t.Fatalf("llm calls = %d, want 8", res.Metadata.LLMCalls)
	}

	doc := res.Document
	if len(doc.Sections) != 14 {
		t.Fatalf("sections = %d", len(doc.Sections))
	}
	if doc.ProjectInfo.Name != "Sistema de Transacciones Banco Austral" {
		t.Fatalf("project name = %q", doc.ProjectInfo.Name)
	}
	// ALTA + bancario
	if doc.ProjectInfo.TotalCost != 104000000 || doc.ProjectInfo.Timeline != "6 meses" {
		t.Fatalf("parameters = %d / %q", doc.ProjectInfo.TotalCost, doc.ProjectInfo.Timeline)
	}
	if !Validate(doc) {
		t.Fatal("generated document must validate")
	}

	summary := doc.Section(TitleSummary)
	if summary == nil || !strings.Contains(summary.Text, "Contenido generado") {
		t.Fatalf("summary = %+v", summary)
	}
	users := doc.Section(TitleUsers)
	if users == nil || len(users.Table.Rows) == 0 || users.Table.Rows[1][0] != "Ejecutivo Bancario" {
		t.Fatalf("users table not sector-branched: %+v", users)
	}
	if sched := doc.Section(TitleSchedule); sched == nil || len(sched.Table.Rows) != 4 {
		t.Fatalf("schedule for 6 meses should have 4 phases: %+v", sched)
	}
}

func TestGenerateAnalysisFallbacks(t *testing.T) {
	runner := &stubRunner{fail: map[string]bool{
		"analisis_cliente":  true,
		"analisis_proyecto": true,
		"analisis_tecnico":  true,
		"nombre_proyecto":   true,
	}}
	p := NewPipeline(runner, sampleCompany())
	res, err := p.Generate(context.Background(), sampleTenders())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, stage := range []string{"analisis_cliente", "analisis_proyecto", "analisis_tecnico", "nombre_proyecto"} {
		if !containsString(res.Metadata.StageFallbacks, stage) {
			t.Fatalf("missing fallback for %s: %v", stage, res.Metadata.StageFallbacks)
		}
	}
	// Static analysis defaults: MEDIA, sector Tecnología.
	if res.Parameters.TotalCost != 45000000 || res.Parameters.Timeline != "5 meses" {
		t.Fatalf("parameters = %+v", res.Parameters)
	}
	if res.Parameters.ProjectName != "Proyecto Tecnología - Cliente" {
		t.Fatalf("project name = %q", res.Parameters.ProjectName)
	}
	if res.Metadata.Mode != ModeComplete {
		t.Fatalf("per-stage fallbacks must not degrade the run: %q", res.Metadata.Mode)
	}
}

func TestGenerateSectionFallbacks(t *testing.T) {
	runner := &stubRunner{fail: map[string]bool{
		"resumen_ejecutivo": true,
		"metodologia":       true,
	}}
	p := NewPipeline(runner, sampleCompany())
	res, err := p.Generate(context.Background(), sampleTenders())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	summary := res.Document.Section(TitleSummary)
	if summary == nil || !strings.Contains(summary.Text, "GUX presenta esta propuesta") {
		t.Fatalf("expected static summary, got %+v", summary)
	}
	features := res.Document.Section(TitleFeatures)
	if features == nil || !strings.Contains(features.Text, "Contenido generado") {
		t.Fatalf("non-failing section should keep collaborator text: %+v", features)
	}
	if !containsString(res.Metadata.StageFallbacks, "resumen_ejecutivo") ||
		!containsString(res.Metadata.StageFallbacks, "metodologia") {
		t.Fatalf("fallbacks = %v", res.Metadata.StageFallbacks)
	}
}

func TestGenerateEmptyCorpusSkipsAnalysisCalls(t *testing.T) {
	runner := &stubRunner{}
	p := NewPipeline(runner, sampleCompany())
	res, err := p.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, call := range runner.calls {
		if strings.HasPrefix(call, "analisis_") {
			t.Fatalf("analysis call made with empty corpus: %v", runner.calls)
		}
	}
	for _, stage := range []string{"analisis_cliente", "analisis_proyecto", "analisis_tecnico"} {
		if !containsString(res.Metadata.StageFallbacks, stage) {
			t.Fatalf("missing fallback for %s", stage)
		}
	}
	// 4 synthesis calls plus the project name.
	if res.Metadata.LLMCalls != 5 {
		t.Fatalf("llm calls = %d, want 5", res.Metadata.LLMCalls)
	}
}

func TestGenerateShortTextsStayComplete(t *testing.T) {
	// Thin collaborator texts alone do not sink the document: the
	// deterministic sections carry enough substance on their own.
	runner := &stubRunner{text: "ok"}
	p := NewPipeline(runner, sampleCompany())
	res, err := p.Generate(context.Background(), nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Metadata.UsedFallbackDocument || res.Metadata.Mode != ModeComplete {
		t.Fatalf("unexpected degradation: %+v", res.Metadata)
	}
}

func TestFinalizeDocumentSubstitutesFallback(t *testing.T) {
	p := NewPipeline(&stubRunner{}, sampleCompany())
	md := PipelineMetadata{Mode: ModeComplete}

	thin := NewSkeleton(sampleParams())
	doc := p.finalizeDocument(thin, sampleParams(), &md, nil)
	if !md.UsedFallbackDocument || md.Mode != ModeDegraded {
		t.Fatalf("expected degradation, got %+v", md)
	}
	if len(doc.Sections) != 13 {
		t.Fatalf("fallback template has 13 sections, got %d", len(doc.Sections))
	}
	if !Validate(doc) {
		t.Fatal("fallback document must validate")
	}

	md = PipelineMetadata{Mode: ModeComplete}
	full := FallbackDocument(sampleParams(), sampleCompany())
	if out := p.finalizeDocument(full, sampleParams(), &md, nil); md.UsedFallbackDocument || len(out.Sections) != len(full.Sections) {
		t.Fatalf("valid document must pass through untouched: %+v", md)
	}
}

func TestGenerateCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPipeline(&stubRunner{}, sampleCompany())
	if _, err := p.Generate(ctx, sampleTenders()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerateRequiresCompanyName(t *testing.T) {
	p := NewPipeline(&stubRunner{}, CompanyProfile{})
	if _, err := p.Generate(context.Background(), nil); err == nil {
		t.Fatal("expected error for missing company name")
	}
}

func TestGenerateProgressEvents(t *testing.T) {
	var stages []string
	p := NewPipeline(&stubRunner{}, sampleCompany())
	_, err := p.GenerateWithProgress(context.Background(), sampleTenders(), func(stage, _ string) {
		stages = append(stages, stage)
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{"analisis", "parametros", "estructura_base", "sintesis_secciones", "validacion", "formato"} {
		if !containsString(stages, want) {
			t.Fatalf("missing progress stage %q in %v", want, stages)
		}
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
