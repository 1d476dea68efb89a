package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/content-pipeline/internal/db"
	"github.com/jonathan/content-pipeline/internal/extract"
	"github.com/jonathan/content-pipeline/internal/llm"
)

// Generator produces structured content for a validated request.
type Generator interface {
	Generate(ctx context.Context, req extract.ContentRequest, profile db.Profile) (*Generated, error)
}

// defaultTemperature is used when the entry carries no creativity parameter.
const defaultTemperature = 0.2

// GeminiGenerator implements Generator on top of the llm client.
type GeminiGenerator struct {
	client llm.Client
	schema *gojsonschema.Schema
}

// NewGeminiGenerator builds a generator around an LLM client.
func NewGeminiGenerator(client llm.Client) (*GeminiGenerator, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(generatedSchema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile generated-content schema: %w", err)
	}
	return &GeminiGenerator{client: client, schema: schema}, nil
}

// Generate builds the prompt, calls the LLM in JSON mode and validates the
// payload against the schema before returning it.
func (g *GeminiGenerator) Generate(ctx context.Context, req extract.ContentRequest, profile db.Profile) (*Generated, error) {
	prompt := PromptFor(req, profile)

	raw, err := g.client.GenerateJSON(ctx, prompt, llm.TierStandard, Temperature(req.Creativity))
	if err != nil {
		return nil, &GenerationError{
			Kind:    Classify(err),
			Message: fmt.Sprintf("content generation failed for entry %s", req.EntryID),
			Cause:   err,
		}
	}

	gen, err := ParseGenerated(g.schema, raw)
	if err != nil {
		return nil, &GenerationError{
			Kind:    KindInvalidInput,
			Message: fmt.Sprintf("content payload rejected for entry %s", req.EntryID),
			Cause:   err,
		}
	}

	if gen.AspectRatio == "" {
		gen.AspectRatio = AspectRatioFor(req.ContentType)
	}
	return gen, nil
}

// ParseGenerated validates raw JSON against the schema and unmarshals it.
func ParseGenerated(schema *gojsonschema.Schema, raw string) (*Generated, error) {
	result, err := schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return nil, fmt.Errorf("payload violates schema: %s: %s", first.Field(), first.Description())
	}

	var gen Generated
	if err := json.Unmarshal([]byte(raw), &gen); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return &gen, nil
}

// Temperature maps the entry's opaque creativity parameter onto a sampling
// temperature, clamped to [0, 1]. Unparseable or absent values fall back to
// the default.
func Temperature(creativity string) float32 {
	if creativity == "" {
		return defaultTemperature
	}
	v, err := strconv.ParseFloat(creativity, 32)
	if err != nil {
		return defaultTemperature
	}
	// Allow percentage-style values like "70".
	if v > 1 {
		v = v / 100
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return float32(v)
}
