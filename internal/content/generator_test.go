package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/api/googleapi"

	"github.com/jonathan/content-pipeline/internal/db"
	"github.com/jonathan/content-pipeline/internal/extract"
	"github.com/jonathan/content-pipeline/internal/llm"
)

// stubLLM is an llm.Client returning canned output.
type stubLLM struct {
	json string
	err  error

	lastPrompt      string
	lastTemperature float32
}

func (s *stubLLM) GenerateContent(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	return s.json, s.err
}

func (s *stubLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier, temperature float32) (string, error) {
	s.lastPrompt = prompt
	s.lastTemperature = temperature
	return s.json, s.err
}

func (s *stubLLM) GetModel(llm.ModelTier) string { return "stub" }
func (s *stubLLM) Close() error                  { return nil }

const validPayload = `{
	"title": "Launch day",
	"body": "We are live. Come see what is new.",
	"hashtags": ["#launch"],
	"image_type": "single_image",
	"aspect_ratio": "1:1"
}`

func TestGeminiGenerator_Generate(t *testing.T) {
	stub := &stubLLM{json: validPayload}
	gen, err := NewGeminiGenerator(stub)
	require.NoError(t, err)

	req := extract.ContentRequest{
		ContentType: "static_post", ContentTheme: "promo",
		Topic: "Launch", Platform: "instagram", Creativity: "0.7",
	}
	out, err := gen.Generate(t.Context(), req, db.DefaultProfile())
	require.NoError(t, err)

	assert.Equal(t, "Launch day", out.Title)
	assert.Equal(t, []string{"#launch"}, out.Hashtags)
	assert.Contains(t, stub.lastPrompt, "Launch")
	assert.InDelta(t, 0.7, stub.lastTemperature, 0.001)
}

func TestGeminiGenerator_RejectsMalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"not json", "this is prose"},
		{"missing title", `{"body": "b", "image_type": "single_image", "aspect_ratio": "1:1"}`},
		{"empty body", `{"title": "t", "body": "", "image_type": "single_image", "aspect_ratio": "1:1"}`},
		{"bad aspect ratio", `{"title": "t", "body": "b", "image_type": "single_image", "aspect_ratio": "square"}`},
	}

	req := extract.ContentRequest{
		ContentType: "static_post", ContentTheme: "promo",
		Topic: "Launch", Platform: "instagram",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGeminiGenerator(&stubLLM{json: tt.json})
			require.NoError(t, err)

			_, err = gen.Generate(t.Context(), req, db.DefaultProfile())
			require.Error(t, err)

			var gerr *GenerationError
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, KindInvalidInput, gerr.Kind)
		})
	}
}

func TestGeminiGenerator_ClassifiesUpstreamErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"rate limited", &googleapi.Error{Code: 429}, KindRateLimited},
		{"bad request", &googleapi.Error{Code: 400}, KindInvalidInput},
		{"server error", &googleapi.Error{Code: 503}, KindUpstreamUnavailable},
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"opaque", errors.New("connection reset"), KindUpstreamUnavailable},
	}

	req := extract.ContentRequest{
		ContentType: "static_post", ContentTheme: "promo",
		Topic: "Launch", Platform: "instagram",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen, err := NewGeminiGenerator(&stubLLM{err: tt.err})
			require.NoError(t, err)

			_, err = gen.Generate(t.Context(), req, db.DefaultProfile())
			require.Error(t, err)

			var gerr *GenerationError
			require.ErrorAs(t, err, &gerr)
			assert.Equal(t, tt.want, gerr.Kind)
			assert.ErrorIs(t, gerr, tt.err)
		})
	}
}

func TestParseGenerated_BackfillsNothing(t *testing.T) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(generatedSchema))
	require.NoError(t, err)

	gen, err := ParseGenerated(schema, validPayload)
	require.NoError(t, err)
	assert.Equal(t, "1:1", gen.AspectRatio)
}

func TestTemperature(t *testing.T) {
	tests := []struct {
		input string
		want  float32
	}{
		{"", 0.2},
		{"not-a-number", 0.2},
		{"0.7", 0.7},
		{"0", 0},
		{"1", 1},
		{"70", 0.7},
		{"150", 1},
		{"-3", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.InDelta(t, tt.want, Temperature(tt.input), 0.001)
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{429, KindRateLimited},
		{400, KindInvalidInput},
		{404, KindInvalidInput},
		{500, KindUpstreamUnavailable},
		{503, KindUpstreamUnavailable},
	}

	for _, tt := range tests {
		if got := ClassifyStatus(tt.status); got != tt.want {
			t.Errorf("ClassifyStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}
