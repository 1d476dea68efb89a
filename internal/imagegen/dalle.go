// Package imagegen synthesizes images for generated content via an external
// text-to-image capability.
package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/content-pipeline/internal/content"
	"github.com/jonathan/content-pipeline/internal/db"
	"github.com/jonathan/content-pipeline/internal/extract"
)

// Synthesizer produces image bytes for generated content.
type Synthesizer interface {
	Synthesize(ctx context.Context, gen *content.Generated, req extract.ContentRequest, profile db.Profile) (*content.Image, error)
}

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "dall-e-3"
	defaultSize    = "1024x1024"
)

// DallE talks to the OpenAI images endpoint.
type DallE struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewDallE creates an adapter for the OpenAI images API. An empty baseURL
// selects the public endpoint. The timeout bounds each synthesis call.
func NewDallE(apiKey, baseURL string, timeout time.Duration) *DallE {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &DallE{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   defaultModel,
		client:  &http.Client{Timeout: timeout},
	}
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// Synthesize builds the image prompt and requests one PNG from the
// capability. Failures are classified *content.GenerationError values.
func (d *DallE) Synthesize(ctx context.Context, gen *content.Generated, req extract.ContentRequest, profile db.Profile) (*content.Image, error) {
	prompt := content.ImagePromptFor(gen, req, profile)

	payload := imageRequest{
		Model:          d.model,
		Prompt:         prompt,
		Size:           defaultSize,
		Quality:        "standard",
		N:              1,
		ResponseFormat: "b64_json",
	}
	blob, err := json.Marshal(payload)
	if err != nil {
		return nil, genErr(content.KindInvalidInput, "failed to encode image request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/v1/images/generations", bytes.NewReader(blob))
	if err != nil {
		return nil, genErr(content.KindInvalidInput, "failed to build image request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+d.apiKey)

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return nil, genErr(classifyTransport(err), "image request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, genErr(content.ClassifyStatus(resp.StatusCode),
			fmt.Sprintf("image endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body))), nil)
	}

	var parsed imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, genErr(content.KindUpstreamUnavailable, "failed to decode image response", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].B64JSON == "" {
		return nil, genErr(content.KindUpstreamUnavailable, "image response contained no data", nil)
	}

	raw, err := base64.StdEncoding.DecodeString(parsed.Data[0].B64JSON)
	if err != nil {
		return nil, genErr(content.KindUpstreamUnavailable, "failed to decode image bytes", err)
	}

	return &content.Image{Bytes: raw, Format: "png"}, nil
}

// classifyTransport maps client-side transport failures onto error kinds.
// Timeouts of any flavor surface as KindTimeout.
func classifyTransport(err error) content.Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return content.KindTimeout
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return content.KindTimeout
	}
	return content.KindUpstreamUnavailable
}

func genErr(kind content.Kind, message string, cause error) *content.GenerationError {
	return &content.GenerationError{Kind: kind, Message: message, Cause: cause}
}
