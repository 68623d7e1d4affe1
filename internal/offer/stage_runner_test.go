package offer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/guxtech/ofertagen/internal/corpus"
	"github.com/guxtech/ofertagen/internal/segment"
)

type queueCaller struct {
	responses []string
	prompts   []string
	err       error
}

func (q *queueCaller) GenerateJSON(_ context.Context, prompt string) (string, error) {
	q.prompts = append(q.prompts, prompt)
	if q.err != nil {
		return "", q.err
	}
	if len(q.responses) == 0 {
		return "{}", nil
	}
	out := q.responses[0]
	q.responses = q.responses[1:]
	return out, nil
}

func sampleTenders() []corpus.Entry {
	doc := segment.NewDocument()
	doc.Add("CLIENTE", "La institución convocante es el Banco Austral de Chile, entidad del sector bancario.")
	doc.Add("OBJETIVO DEL PROYECTO", "Desarrollar un sistema de gestión de transacciones con reportería regulatoria integrada.")
	doc.Add("REQUISITOS TECNICOS", "El sistema debe operar sobre plataforma web con base de datos relacional y API de integración.")
	doc.Add("FUNCIONALIDADES", "Debe incluir módulos de registro, autorización y auditoría de operaciones.")
	return []corpus.Entry{{Origin: "licitacion_banco.docx", Doc: doc}}
}

func sampleAnalysis() ProjectAnalysis {
	return ProjectAnalysis{
		ClientProfile:     ClientProfile{ClientName: "Banco Austral", Sector: "bancario", EndUsers: []string{"Ejecutivos"}},
		ProjectObjectives: ProjectObjectives{Objective: "Desarrollar sistema de transacciones", Scope: "Sistema completo", SystemType: "Sistema web", Complexity: ComplexityHigh},
		TechnicalProfile:  TechnicalProfile{Requirements: []string{"Plataforma web"}, Technologies: []string{"PostgreSQL"}},
	}
}

func TestAnalyzeClient(t *testing.T) {
	valid := `{"nombre_cliente":"Banco Austral","sector":"bancario","usuarios_finales":["Ejecutivos"]}`

	t.Run("happy", func(t *testing.T) {
		q := &queueCaller{responses: []string{valid}}
		r := NewLLMStageRunner(NewStageExecutor(q))
		out, err := r.AnalyzeClient(context.Background(), sampleTenders())
		if err != nil {
			t.Fatalf("AnalyzeClient: %v", err)
		}
		if out.ClientName != "Banco Austral" || out.Sector != "bancario" {
			t.Fatalf("unexpected profile: %+v", out)
		}
		if len(q.prompts) != 1 || !strings.Contains(q.prompts[0], "nombre_cliente") {
			t.Fatal("expected schema prompt")
		}
		if !strings.Contains(q.prompts[0], "licitacion_banco.docx") {
			t.Fatal("expected origin filename in prompt")
		}
	})

	t.Run("code fences stripped", func(t *testing.T) {
		q := &queueCaller{responses: []string{"```json\n" + valid + "\n```"}}
		r := NewLLMStageRunner(NewStageExecutor(q))
		out, err := r.AnalyzeClient(context.Background(), sampleTenders())
		if err != nil {
			t.Fatalf("AnalyzeClient fenced: %v", err)
		}
		if out.ClientName != "Banco Austral" {
			t.Fatalf("unexpected profile: %+v", out)
		}
	})

	t.Run("missing fields fail", func(t *testing.T) {
		q := &queueCaller{responses: []string{`{"nombre_cliente":"","sector":""}`}}
		r := NewLLMStageRunner(NewStageExecutor(q))
		if _, err := r.AnalyzeClient(context.Background(), sampleTenders()); err == nil {
			t.Fatal("expected validation failure")
		}
	})

	t.Run("stage name in error", func(t *testing.T) {
		q := &queueCaller{responses: []string{"no es json"}}
		r := NewLLMStageRunner(NewStageExecutor(q))
		_, err := r.AnalyzeClient(context.Background(), sampleTenders())
		if err == nil {
			t.Fatal("expected failure")
		}
		if got := StageNameFromError(err); got != "analisis_cliente" {
			t.Fatalf("stage name = %q", got)
		}
	})
}

func TestAnalyzeObjectivesComplexity(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		q := &queueCaller{responses: []string{`{"objetivo_principal":"Desarrollar sistema","alcance":"Completo","tipo_sistema":"Web","complejidad":"ALTA"}`}}
		r := NewLLMStageRunner(NewStageExecutor(q))
		out, err := r.AnalyzeObjectives(context.Background(), sampleTenders())
		if err != nil {
			t.Fatalf("AnalyzeObjectives: %v", err)
		}
		if out.Complexity != ComplexityHigh {
			t.Fatalf("complexity = %q", out.Complexity)
		}
	})

	t.Run("invalid complexity", func(t *testing.T) {
		q := &queueCaller{responses: []string{`{"objetivo_principal":"Desarrollar sistema","complejidad":"EXTREMA"}`}}
		r := NewLLMStageRunner(NewStageExecutor(q))
		if _, err := r.AnalyzeObjectives(context.Background(), sampleTenders()); err == nil {
			t.Fatal("expected complexity rejection")
		}
	})
}

func TestStagesHappyAndPromptBlocks(t *testing.T) {
	textJSON := `{"contenido":"Texto generado por la etapa"}`
	stageCases := []struct {
		name         string
		validJSON    string
		promptMarker string
		stageName    string
		run          func(*LLMStageRunner) error
	}{
		{
			name:         "analisis_tecnico",
			validJSON:    `{"requisitos_tecnicos":["Web"],"tecnologias_mencionadas":["PostgreSQL"],"restricciones":[]}`,
			promptMarker: "requisitos_tecnicos",
			stageName:    "analisis_tecnico",
			run: func(r *LLMStageRunner) error {
				_, err := r.AnalyzeTechnical(context.Background(), sampleTenders())
				return err
			},
		},
		{
			name:         "nombre_proyecto",
			validJSON:    textJSON,
			promptMarker: "nombre de proyecto",
			stageName:    "nombre_proyecto",
			run: func(r *LLMStageRunner) error {
				_, err := r.ProposeProjectName(context.Background(), sampleAnalysis(), sampleParams(), sampleCompany())
				return err
			},
		},
		{
			name:         "resumen_ejecutivo",
			validJSON:    textJSON,
			promptMarker: "resumen ejecutivo de 300-400 palabras",
			stageName:    "resumen_ejecutivo",
			run: func(r *LLMStageRunner) error {
				_, err := r.WriteSummary(context.Background(), sampleTenders(), sampleAnalysis(), sampleParams(), sampleCompany())
				return err
			},
		},
		{
			name:         "funcionalidades",
			validJSON:    textJSON,
			promptMarker: "FUNCIONALIDADES IDENTIFICADAS",
			stageName:    "funcionalidades",
			run: func(r *LLMStageRunner) error {
				_, err := r.WriteFeatures(context.Background(), sampleTenders(), sampleAnalysis(), sampleCompany())
				return err
			},
		},
		{
			name:         "infraestructura",
			validJSON:    textJSON,
			promptMarker: "REQUISITOS TÉCNICOS",
			stageName:    "infraestructura",
			run: func(r *LLMStageRunner) error {
				_, err := r.WriteInfrastructure(context.Background(), sampleAnalysis(), sampleCompany())
				return err
			},
		},
		{
			name:         "metodologia",
			validJSON:    textJSON,
			promptMarker: "Metodología ágil",
			stageName:    "metodologia",
			run: func(r *LLMStageRunner) error {
				_, err := r.WriteMethodology(context.Background(), sampleAnalysis(), sampleParams(), sampleCompany())
				return err
			},
		},
	}

	for _, tc := range stageCases {
		t.Run(tc.name, func(t *testing.T) {
			q := &queueCaller{responses: []string{tc.validJSON}}
			r := NewLLMStageRunner(NewStageExecutor(q))
			if err := tc.run(r); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if len(q.prompts) != 1 || !strings.Contains(q.prompts[0], tc.promptMarker) {
				t.Fatalf("expected prompt marker %q", tc.promptMarker)
			}
		})
		t.Run(tc.name+"_failure", func(t *testing.T) {
			q := &queueCaller{responses: []string{"no es json"}}
			r := NewLLMStageRunner(NewStageExecutor(q))
			err := tc.run(r)
			if err == nil {
				t.Fatal("expected stage failure")
			}
			var stageErr *StageError
			if !errors.As(err, &stageErr) || stageErr.Stage != tc.stageName {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestStageExecutorTransportError(t *testing.T) {
	q := &queueCaller{err: errors.New("conexión rechazada")}
	r := NewLLMStageRunner(NewStageExecutor(q))
	_, err := r.AnalyzeClient(context.Background(), sampleTenders())
	if err == nil {
		t.Fatal("expected transport failure")
	}
	if got := StageNameFromError(err); got != "analisis_cliente" {
		t.Fatalf("stage name = %q", got)
	}
}

func TestDigestsUseMatchingSections(t *testing.T) {
	tenders := sampleTenders()

	if d := clientDigest(tenders); !strings.Contains(d, "CLIENTE") {
		t.Fatalf("client digest missed client section: %q", d)
	}
	if d := projectDigest(tenders); !strings.Contains(d, "OBJETIVO DEL PROYECTO") {
		t.Fatalf("project digest missed objective section: %q", d)
	}
	if d := technicalDigest(tenders); !strings.Contains(d, "REQUISITOS TECNICOS") {
		t.Fatalf("technical digest missed requirements section: %q", d)
	}
	if d := featureDigest(tenders); !strings.Contains(d, "FUNCIONALIDADES") {
		t.Fatalf("feature digest missed features section: %q", d)
	}
	if d := objectiveDigest(tenders); !strings.Contains(d, "Desarrollar un sistema") {
		t.Fatalf("objective digest missed body text: %q", d)
	}
	if d := clientDigest(nil); d != "" {
		t.Fatalf("empty corpus digest = %q", d)
	}
}
