package structurer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tmc/langchaingo/outputparser"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
	"research-agent/internal/infrastructure/prompts"
)

var _ input.Structurer = (*Structurer)(nil)

// ErrSchemaViolation is wrapped by every ParseError.
var ErrSchemaViolation = errors.New("output does not match the research schema")

// ParseError reports a structuring reply that could not be turned into a
// ResearchResult. Raw holds the reply as received.
type ParseError struct {
	Raw    string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse research output: %s: %v", e.Reason, e.Err)
	}
	return "failed to parse research output: " + e.Reason
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSchemaViolation, e.Err}
	}
	return []error{ErrSchemaViolation}
}

type Structurer struct {
	llm          output.LLMPort
	logger       output.LoggerPort
	template     string
	instructions string
}

func New(llm output.LLMPort, logger output.LoggerPort) (*Structurer, error) {
	parser, err := outputparser.NewDefined(entity.ResearchResult{})
	if err != nil {
		return nil, fmt.Errorf("build output parser: %w", err)
	}
	return &Structurer{
		llm:          llm,
		logger:       logger,
		template:     prompts.StructuringPrompt,
		instructions: parser.GetFormatInstructions(),
	}, nil
}

// Structure makes a single model call and parses its reply. Tools in
// toolsUsed that the reply omits are appended to the result.
func (s *Structurer) Structure(ctx context.Context, rawText string, toolsUsed []string) (*entity.ResearchResult, error) {
	prompt, err := prompts.GenerateStructuringPrompt(s.template, prompts.StructuringPromptData{
		FormatInstructions: s.instructions,
		ResearchContent:    rawText,
		ToolsUsed:          toolsUsed,
	})
	if err != nil {
		return nil, fmt.Errorf("render structuring prompt: %w", err)
	}

	resp, err := s.llm.Chat(ctx, output.ChatRequest{
		Messages:    []entity.Message{{Role: entity.RoleUser, Content: prompt}},
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("structuring llm request failed: %w", err)
	}

	result, err := Parse(resp.Message.Content)
	if err != nil {
		s.logger.Warn("Failed to parse structured output", "error", err)
		return nil, err
	}

	for _, name := range toolsUsed {
		if !result.UsesTool(name) {
			result.ToolsUsed = append(result.ToolsUsed, name)
		}
	}

	s.logger.Info("Structuring completed",
		"topic", result.Topic,
		"sources_count", len(result.Sources),
		"tools_used", result.ToolsUsed,
	)
	return result, nil
}

// schemaFields lists the keys a reply must carry. Matching is exact: no case
// folding, no duplicates, nothing else.
var schemaFields = []string{"topic", "summary", "sources", "tools_used"}

// Parse validates a model reply against the research schema. Every field must
// be present, non-null and of the right type; list elements must be strings.
// Unknown, duplicate or differently cased keys and trailing data are rejected.
// A surrounding ```json fence is tolerated.
func Parse(raw string) (*entity.ResearchResult, error) {
	text := stripFence(raw)
	if text == "" {
		return nil, &ParseError{Raw: raw, Reason: "empty response"}
	}

	fields, reason, err := readObject(text)
	if reason != "" {
		return nil, &ParseError{Raw: raw, Reason: reason, Err: err}
	}

	missing := make([]string, 0, len(schemaFields))
	for _, name := range schemaFields {
		if v, ok := fields[name]; !ok || strings.TrimSpace(string(v)) == "null" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ParseError{Raw: raw, Reason: "missing required fields: " + strings.Join(missing, ", ")}
	}

	result := &entity.ResearchResult{}
	if err := json.Unmarshal(fields["topic"], &result.Topic); err != nil {
		return nil, &ParseError{Raw: raw, Reason: `field "topic" has the wrong type`, Err: err}
	}
	if err := json.Unmarshal(fields["summary"], &result.Summary); err != nil {
		return nil, &ParseError{Raw: raw, Reason: `field "summary" has the wrong type`, Err: err}
	}
	if result.Sources, err = stringList("sources", fields["sources"]); err != nil {
		return nil, &ParseError{Raw: raw, Reason: err.Error()}
	}
	if result.ToolsUsed, err = stringList("tools_used", fields["tools_used"]); err != nil {
		return nil, &ParseError{Raw: raw, Reason: err.Error()}
	}

	result.Normalize()
	return result, nil
}

// readObject walks a single top-level JSON object and returns its raw values
// by key. A non-empty reason means the text is not an acceptable object.
func readObject(text string) (map[string]json.RawMessage, string, error) {
	dec := json.NewDecoder(strings.NewReader(text))

	tok, err := dec.Token()
	if err != nil {
		return nil, "invalid JSON", err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, "expected a JSON object", nil
	}

	known := make(map[string]bool, len(schemaFields))
	for _, name := range schemaFields {
		known[name] = true
	}

	fields := make(map[string]json.RawMessage, len(schemaFields))
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, "invalid JSON", err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, "invalid JSON", nil
		}
		if !known[key] {
			return nil, fmt.Sprintf("unknown field %q", key), nil
		}
		if _, dup := fields[key]; dup {
			return nil, fmt.Sprintf("duplicate field %q", key), nil
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, "invalid JSON", err
		}
		fields[key] = value
	}

	if _, err := dec.Token(); err != nil {
		return nil, "invalid JSON", err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, "unexpected data after JSON object", nil
	}
	return fields, "", nil
}

func stringList(name string, raw json.RawMessage) ([]string, error) {
	var items []*string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("field %q has the wrong type", name)
	}
	list := make([]string, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("field %q has a null element at index %d", name, i)
		}
		list = append(list, *item)
	}
	return list, nil
}

func stripFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		lang := strings.TrimSpace(text[:i])
		if lang == "" || lang == "json" || lang == "JSON" {
			text = text[i+1:]
		}
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
