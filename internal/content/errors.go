package content

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Kind classifies a failure from an AI generation capability.
type Kind string

// Generation failure kinds.
const (
	KindRateLimited         Kind = "rate_limited"
	KindInvalidInput        Kind = "invalid_input"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindTimeout             Kind = "timeout"
)

// GenerationError represents a classified failure from either the text or
// the image generation capability. Always entry-level, never batch-fatal.
type GenerationError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation error (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation error (%s): %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Classify maps a transport-level error onto a failure kind.
func Classify(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return ClassifyStatus(apiErr.Code)
	}
	return KindUpstreamUnavailable
}

// ClassifyStatus maps an HTTP status code onto a failure kind.
func ClassifyStatus(status int) Kind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 400 && status < 500:
		return KindInvalidInput
	default:
		return KindUpstreamUnavailable
	}
}
