package offer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "Eres un experto en generación de ofertas técnicas para licitaciones. " +
	"Analizas licitaciones en español y produces contenido profesional y específico. " +
	"SIEMPRE devuelves JSON válido con exactamente el esquema solicitado, sin texto adicional."

// StageError wraps a failure of a single pipeline stage. The
// orchestrator decides what to do with it; stages themselves never
// substitute fallbacks.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// StageNameFromError extracts the failing stage name, or "pipeline"
// when err is not a stage failure.
func StageNameFromError(err error) string {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return "pipeline"
}

// LLMCaller is the collaborator abstraction: one prompt in, one raw
// response out.
type LLMCaller interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicCaller struct {
	messages AnthropicMessager
	model    anthropic.Model
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

// NewAnthropicCallerFromEnv builds the production collaborator from
// ANTHROPIC_API_KEY.
func NewAnthropicCallerFromEnv() (*AnthropicCaller, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	model := anthropic.Model(strings.TrimSpace(os.Getenv("ANTHROPIC_MODEL")))
	if model == "" {
		model = anthropic.ModelClaudeSonnet4_20250514
	}
	return &AnthropicCaller{messages: newAnthropicClient(apiKey), model: model}, nil
}

func (a *AnthropicCaller) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:       a.model,
		MaxTokens:   4096,
		System:      []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages:    []anthropic.MessageParam{anthropic.NewUserMessage(anthropic.NewTextBlock(prompt))},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}

// StageExecutor runs one collaborator attempt per stage: call, isolate
// the first JSON object, unmarshal, validate. Any failure surfaces as
// a StageError; there are no retries, the orchestrator falls back to
// static content instead.
type StageExecutor struct {
	caller LLMCaller
}

func NewStageExecutor(caller LLMCaller) *StageExecutor {
	return &StageExecutor{caller: caller}
}

func (e *StageExecutor) Run(ctx context.Context, stageName, prompt string, out any, validate func() error) error {
	raw, err := e.caller.GenerateJSON(ctx, prompt)
	if err != nil {
		return &StageError{Stage: stageName, Err: fmt.Errorf("transport failure: %w", err)}
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return &StageError{Stage: stageName, Err: errors.New("empty response")}
	}
	block, err := firstJSONObject(stripCodeFences(raw))
	if err != nil {
		return &StageError{Stage: stageName, Err: err}
	}
	if err := json.Unmarshal([]byte(block), out); err != nil {
		return &StageError{Stage: stageName, Err: fmt.Errorf("json parse: %w", err)}
	}
	if validate != nil {
		if err := validate(); err != nil {
			return &StageError{Stage: stageName, Err: fmt.Errorf("schema validation: %w", err)}
		}
	}
	return nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

// firstJSONObject returns the first balanced top-level JSON object in
// s. Collaborators tend to wrap JSON in commentary; everything outside
// the first object is discarded.
func firstJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", errors.New("no JSON object in response")
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}
	return "", errors.New("unbalanced JSON object in response")
}
