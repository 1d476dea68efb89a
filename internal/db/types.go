package db

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEntry is a single scheduled content item, joined through its
// calendar to the owning user. The generation parameters are opaque to the
// pipeline; they are passed through to the AI capabilities as-is.
type CalendarEntry struct {
	ID         uuid.UUID
	CalendarID uuid.UUID
	UserID     uuid.UUID
	EntryDate  time.Time

	ContentType  string
	ContentTheme string
	Topic        string
	Platform     string
	HookType     string
	HookLength   string
	Tone         string
	Creativity   string
	TextInImage  string
	VisualStyle  string

	ContentGenerated bool
	Status           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// State returns the entry's collapsed processing state.
func (e *CalendarEntry) State() EntryState {
	return StateOf(e.ContentGenerated, e.Status)
}

// Profile is the business/brand context of the user owning an entry.
// Read-only as far as this pipeline is concerned.
type Profile struct {
	BusinessName        string
	BusinessDescription string
	BrandTone           string
	BrandVoice          string
	Industry            []string
	TargetAudience      []string
	UniqueValue         string
	ContentThemes       []string
	Hashtags            string
}

// PrimaryIndustry returns the first configured industry, or a default.
func (p *Profile) PrimaryIndustry() string {
	if len(p.Industry) > 0 && p.Industry[0] != "" {
		return p.Industry[0]
	}
	return "general"
}

// PrimaryAudience returns the first configured audience, or a default.
func (p *Profile) PrimaryAudience() string {
	if len(p.TargetAudience) > 0 && p.TargetAudience[0] != "" {
		return p.TargetAudience[0]
	}
	return "our audience"
}
