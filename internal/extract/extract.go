// Package extract maps raw calendar entries onto validated content requests.
package extract

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/content-pipeline/internal/db"
)

// ContentRequest is the generator-facing view of a calendar entry. The four
// required fields gate eligibility; the rest are optional and an empty value
// means "use generator defaults".
type ContentRequest struct {
	EntryID    uuid.UUID
	CalendarID uuid.UUID
	UserID     uuid.UUID

	ContentType  string `validate:"required"`
	ContentTheme string `validate:"required"`
	Topic        string `validate:"required"`
	Platform     string `validate:"required"`

	HookType    string
	HookLength  string
	Tone        string
	Creativity  string
	TextInImage string
	VisualStyle string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldColumns maps struct field names to the store's column names for
// operator-facing error messages.
var fieldColumns = map[string]string{
	"ContentType":  "content_type",
	"ContentTheme": "content_theme",
	"Topic":        "topic",
	"Platform":     "platform",
}

// Extract builds a ContentRequest from an entry. Deterministic: the same
// entry always yields the same request. A missing required field returns a
// *ValidationError and no AI capability is ever called for the entry.
func Extract(entry db.CalendarEntry) (ContentRequest, error) {
	req := ContentRequest{
		EntryID:    entry.ID,
		CalendarID: entry.CalendarID,
		UserID:     entry.UserID,

		ContentType:  strings.TrimSpace(entry.ContentType),
		ContentTheme: strings.TrimSpace(entry.ContentTheme),
		Topic:        strings.TrimSpace(entry.Topic),
		Platform:     strings.TrimSpace(entry.Platform),

		HookType:    strings.TrimSpace(entry.HookType),
		HookLength:  strings.TrimSpace(entry.HookLength),
		Tone:        strings.TrimSpace(entry.Tone),
		Creativity:  strings.TrimSpace(entry.Creativity),
		TextInImage: strings.TrimSpace(entry.TextInImage),
		VisualStyle: strings.TrimSpace(entry.VisualStyle),
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			field := verrs[0].StructField()
			if col, ok := fieldColumns[field]; ok {
				field = col
			}
			return ContentRequest{}, &ValidationError{Field: field, Message: "missing required field"}
		}
		return ContentRequest{}, &ValidationError{Message: err.Error()}
	}

	return req, nil
}
