package content

import (
	"fmt"
	"strings"

	"github.com/jonathan/content-pipeline/internal/db"
	"github.com/jonathan/content-pipeline/internal/extract"
)

// aspectRatios maps content types to the aspect ratio the platform expects.
var aspectRatios = map[string]string{
	"static_post":         "1:1",
	"carousel":            "1:1",
	"story":               "9:16",
	"short_video or reel": "9:16",
	"long_video":          "16:9",
	"email":               "16:9",
}

// AspectRatioFor returns the expected aspect ratio for a content type.
func AspectRatioFor(contentType string) string {
	if r, ok := aspectRatios[contentType]; ok {
		return r
	}
	return "1:1"
}

// PromptFor builds the text-generation prompt for a request. Pure: the same
// request and profile always produce the same prompt.
func PromptFor(req extract.ContentRequest, profile db.Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create %s social media content for the %s platform about %q.\n\n", req.ContentType, req.Platform, req.Topic)

	b.WriteString("Business Context:\n")
	fmt.Fprintf(&b, "- Company: %s\n", profile.BusinessName)
	if profile.BusinessDescription != "" {
		fmt.Fprintf(&b, "- About: %s\n", profile.BusinessDescription)
	}
	fmt.Fprintf(&b, "- Industry: %s\n", profile.PrimaryIndustry())
	fmt.Fprintf(&b, "- Target Audience: %s\n", profile.PrimaryAudience())
	fmt.Fprintf(&b, "- Brand Voice: %s\n", profile.BrandVoice)
	fmt.Fprintf(&b, "- Unique Value: %s\n", profile.UniqueValue)

	b.WriteString("\nContent Parameters:\n")
	fmt.Fprintf(&b, "- Theme: %s\n", req.ContentTheme)
	tone := req.Tone
	if tone == "" {
		tone = profile.BrandTone
	}
	fmt.Fprintf(&b, "- Tone: %s\n", tone)
	if req.HookType != "" {
		fmt.Fprintf(&b, "- Hook Type: %s\n", req.HookType)
	}
	if req.HookLength != "" {
		fmt.Fprintf(&b, "- Hook Length: %s\n", req.HookLength)
	}
	if req.TextInImage != "" {
		fmt.Fprintf(&b, "- Text In Image: %s\n", req.TextInImage)
	}
	if profile.Hashtags != "" {
		fmt.Fprintf(&b, "- Hashtags that work well: %s\n", profile.Hashtags)
	}

	b.WriteString("\nRespond with a single JSON object with keys: title, body, hashtags (array of strings), image_type, aspect_ratio")
	fmt.Fprintf(&b, " (use %q)", AspectRatioFor(req.ContentType))
	if req.TextInImage != "" {
		b.WriteString(", overlay_text")
	}
	switch req.ContentType {
	case "carousel":
		b.WriteString(", slides (array of {focus, description}, 4 slides)")
	case "short_video or reel", "long_video":
		b.WriteString(", video_script ({hook, value, story, cta})")
	case "email":
		b.WriteString(", email_subject")
	}
	b.WriteString(".\nReturn only the JSON object, no commentary.")

	return b.String()
}

// ImagePromptFor builds the image-generation prompt from generated content
// and the entry's visual-style directive, mirroring the content prompt's
// business-context block so both capabilities stay on-brand.
func ImagePromptFor(gen *Generated, req extract.ContentRequest, profile db.Profile) string {
	style := req.VisualStyle
	if style == "" {
		style = "modern"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s style image for a %s %s", style, req.Platform, req.ContentType)

	switch req.ContentType {
	case "static_post":
		fmt.Fprintf(&b, " featuring %s branding in square format. Include text overlay space for the caption.", profile.BusinessName)
	case "carousel":
		b.WriteString(" designed as the lead slide of a cohesive carousel series.")
		if len(gen.Slides) > 0 {
			fmt.Fprintf(&b, " First slide: %s.", gen.Slides[0].Description)
		}
	case "story":
		b.WriteString(" in vertical story format optimized for mobile viewing.")
	case "short_video or reel", "long_video":
		b.WriteString(" as an eye-catching video thumbnail.")
	case "email":
		b.WriteString(" as an email header banner suitable for marketing campaigns.")
	}

	if gen.OverlayText != "" {
		fmt.Fprintf(&b, " Render the text %q prominently.", gen.OverlayText)
	}

	fmt.Fprintf(&b, "\n\nBusiness Context:\n- Company: %s\n- Industry: %s\n- Target Audience: %s\n- Brand Tone: %s\n",
		profile.BusinessName, profile.PrimaryIndustry(), profile.PrimaryAudience(), profile.BrandTone)
	fmt.Fprintf(&b, "\nContent Details:\n- Title: %s\n- Topic: %s\n", gen.Title, req.Topic)
	fmt.Fprintf(&b, "\nStyle Requirements:\n- %s aesthetic matching the %s brand tone\n- Optimized for %s\n- High quality, suitable for social media\n- Aspect ratio: %s\n",
		style, profile.BrandTone, req.Platform, gen.AspectRatio)

	return strings.TrimSpace(b.String())
}
