// Package content produces structured social-media content for calendar
// entries by delegating to an LLM capability.
package content

import (
	"fmt"
	"strings"
)

// Slide is one frame of a carousel post.
type Slide struct {
	Focus       string `json:"focus"`
	Description string `json:"description"`
}

// VideoScript holds the beats of a short- or long-form video.
type VideoScript struct {
	Hook  string `json:"hook,omitempty"`
	Value string `json:"value,omitempty"`
	Story string `json:"story,omitempty"`
	CTA   string `json:"cta,omitempty"`
}

// Generated is the structured payload produced for one calendar entry. It is
// consumed immediately by the image synthesizer and never persisted.
type Generated struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Hashtags    []string `json:"hashtags,omitempty"`
	ImageType   string   `json:"image_type"`
	AspectRatio string   `json:"aspect_ratio"`

	// OverlayText is the caption to render into the image, when the entry
	// asked for text in the image.
	OverlayText string `json:"overlay_text,omitempty"`

	// Per-content-type extras.
	Slides       []Slide      `json:"slides,omitempty"`
	VideoScript  *VideoScript `json:"video_script,omitempty"`
	EmailSubject string       `json:"email_subject,omitempty"`
}

// Summary returns a short operator-facing description of the payload.
func (g *Generated) Summary() string {
	body := strings.TrimSpace(g.Body)
	if len(body) > 80 {
		body = body[:80] + "..."
	}
	return fmt.Sprintf("%s: %s", g.Title, body)
}

// Image is raw synthesized image data plus its encoding.
type Image struct {
	Bytes  []byte
	Format string // e.g. "png"
}
