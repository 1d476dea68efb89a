package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DefaultProfile is the minimal brand context used when a user has no
// usable profile row. Generation can still proceed with it.
func DefaultProfile() Profile {
	return Profile{
		BusinessName:   "Our Business",
		BrandTone:      "professional",
		BrandVoice:     "helpful and engaging",
		Industry:       []string{"general"},
		TargetAudience: []string{"our audience"},
		UniqueValue:    "providing value",
		ContentThemes:  []string{"business"},
	}
}

// GetProfile loads the brand/business context for a user. A missing row is
// not an error; the defaults are returned so generation can still run. Other
// failures return the defaults alongside the error so the caller can decide
// whether to proceed.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	var p Profile
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(business_name, ''), COALESCE(business_description, ''),
		        COALESCE(brand_tone, ''), COALESCE(brand_voice, ''),
		        COALESCE(industry, '{}'), COALESCE(target_audience, '{}'),
		        COALESCE(unique_value_proposition, ''), COALESCE(content_themes, '{}'),
		        COALESCE(hashtags_that_work_well, '')
		 FROM profiles WHERE id = $1`,
		userID,
	).Scan(&p.BusinessName, &p.BusinessDescription, &p.BrandTone, &p.BrandVoice,
		&p.Industry, &p.TargetAudience, &p.UniqueValue, &p.ContentThemes, &p.Hashtags)
	if err != nil {
		if err == pgx.ErrNoRows {
			return DefaultProfile(), nil
		}
		return DefaultProfile(), &StoreError{
			Message: fmt.Sprintf("failed to load profile for user %s", userID),
			Cause:   err,
		}
	}

	fillProfileDefaults(&p)
	return p, nil
}

// fillProfileDefaults backfills blanks so downstream prompt building never
// sees empty context fields.
func fillProfileDefaults(p *Profile) {
	defaults := DefaultProfile()
	if p.BusinessName == "" {
		p.BusinessName = defaults.BusinessName
	}
	if p.BrandTone == "" {
		p.BrandTone = defaults.BrandTone
	}
	if p.BrandVoice == "" {
		p.BrandVoice = defaults.BrandVoice
	}
	if len(p.Industry) == 0 {
		p.Industry = defaults.Industry
	}
	if len(p.TargetAudience) == 0 {
		p.TargetAudience = defaults.TargetAudience
	}
	if p.UniqueValue == "" {
		p.UniqueValue = defaults.UniqueValue
	}
	if len(p.ContentThemes) == 0 {
		p.ContentThemes = defaults.ContentThemes
	}
}
