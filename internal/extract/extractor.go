package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dossier-ai/dossier/internal/telemetry"
	"github.com/dossier-ai/dossier/provider"
)

// Kind selects the focus-area description embedded into analysis prompts.
type Kind string

const (
	KindCompany Kind = "company"
	KindPerson  Kind = "person"
	KindNews    Kind = "news"
)

var focusAreas = map[Kind]string{
	KindCompany: "company overview, products/services, recent news, key executives, market position, sales opportunities",
	KindPerson:  "background, current role, work history, interests and posts, pain points, engagement opportunities",
}

// ExtractionError means the model's output could not be parsed or validated
// against the target schema. The extractor never retries; retry policy
// belongs to the pipeline runner.
type ExtractionError struct {
	Kind    Kind
	Subject string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s %q: %v", e.Kind, e.Subject, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Extractor turns raw search content into a schema-validated value via the
// generative capability.
type Extractor struct {
	llm    provider.Provider
	logger *log.Logger
}

func NewExtractor(llm provider.Provider, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.New(log.Writer(), "[EXTRACT] ", log.LstdFlags)
	}
	return &Extractor{llm: llm, logger: logger}
}

// Extract analyzes content about the named subject and decodes the model's
// reply into out, which must be a pointer matching the schema's shape.
func (e *Extractor) Extract(ctx context.Context, content interface{}, kind Kind, name string, schema map[string]interface{}, out interface{}) error {
	focus, ok := focusAreas[kind]
	if !ok {
		focus = focusAreas[KindPerson]
	}

	schemaHint, _ := json.Marshal(schema)
	prompt := fmt.Sprintf(
		"Analyze the information about %s and return JSON matching the schema. "+
			"Fill as much as possible; use sensible defaults if unknown (empty string, [], or null).\n"+
			"Focus: %s\nSchema:\n%s\n\nContent:\n%s",
		name, focus, schemaHint, FormatContent(content))

	reply, err := e.llm.GenerateJSON(ctx, prompt, SanitizeSchema(schema))
	if err != nil {
		telemetry.LLMRequests.WithLabelValues("analyze", "error").Inc()
		return &ExtractionError{Kind: kind, Subject: name, Err: err}
	}
	telemetry.LLMRequests.WithLabelValues("analyze", "ok").Inc()

	if err := DecodeValidated(reply, schema, out); err != nil {
		e.logger.Printf("invalid model output for %s %q: %v", kind, name, err)
		return &ExtractionError{Kind: kind, Subject: name, Err: err}
	}
	return nil
}

// DecodeValidated checks reply against the original (non-sanitized) schema
// and unmarshals it into out.
func DecodeValidated(reply string, schema map[string]interface{}, out interface{}) error {
	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewStringLoader(reply))
	if err != nil {
		return fmt.Errorf("parse model reply: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
	}
	if err := json.Unmarshal([]byte(reply), out); err != nil {
		return fmt.Errorf("decode model reply: %w", err)
	}
	return nil
}
