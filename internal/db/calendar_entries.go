package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// entryColumns is the select list shared by entry queries. The generation
// parameters are cast to text because the authoring flow stores some of them
// as numerics or booleans; this pipeline treats them all as opaque strings.
const entryColumns = `
	e.id, e.calendar_id, c.user_id, e.entry_date,
	COALESCE(e.content_type, ''), COALESCE(e.content_theme, ''),
	COALESCE(e.topic, ''), COALESCE(e.platform, ''),
	COALESCE(e.hook_type, ''), COALESCE(e.hook_length::text, ''),
	COALESCE(e.tone, ''), COALESCE(e.creativity::text, ''),
	COALESCE(e.text_in_image::text, ''), COALESCE(e.visual_style, ''),
	e.content, COALESCE(e.status, ''), e.created_at, e.updated_at`

// FetchPending returns every entry still awaiting content generation, joined
// to its calendar for the owning user. Ordering is by creation time then id
// so repeated runs see the entries in a stable order.
func (db *DB) FetchPending(ctx context.Context) ([]CalendarEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT`+entryColumns+`
		 FROM calendar_entries e
		 JOIN social_media_calendars c ON c.id = e.calendar_id
		 WHERE e.content = false
		 ORDER BY e.created_at, e.id`,
	)
	if err != nil {
		return nil, &StoreError{Message: "failed to query pending entries", Cause: err}
	}
	defer rows.Close()

	var entries []CalendarEntry
	for rows.Next() {
		var e CalendarEntry
		if err := rows.Scan(
			&e.ID, &e.CalendarID, &e.UserID, &e.EntryDate,
			&e.ContentType, &e.ContentTheme, &e.Topic, &e.Platform,
			&e.HookType, &e.HookLength, &e.Tone, &e.Creativity,
			&e.TextInImage, &e.VisualStyle,
			&e.ContentGenerated, &e.Status, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, &StoreError{Message: "failed to scan entry", Cause: err}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Message: "failed to read pending entries", Cause: err}
	}
	return entries, nil
}

// MarkGenerated commits a successful generation: content flag, status label
// and updated_at advance together in one UPDATE, derived from StateGenerated.
func (db *DB) MarkGenerated(ctx context.Context, id uuid.UUID) error {
	flag, status := StateGenerated.View()
	tag, err := db.pool.Exec(ctx,
		`UPDATE calendar_entries SET content = $1, status = $2, updated_at = NOW() WHERE id = $3`,
		flag, status, id,
	)
	if err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to mark entry %s generated", id), Cause: err}
	}
	if tag.RowsAffected() == 0 {
		return &StoreError{Message: fmt.Sprintf("entry %s no longer exists", id)}
	}
	return nil
}

// MarkFailed annotates a failed entry for diagnostics. The content flag is
// left untouched so the entry stays eligible for the next run.
func (db *DB) MarkFailed(ctx context.Context, id uuid.UUID) error {
	_, status := StateFailed.View()
	_, err := db.pool.Exec(ctx,
		`UPDATE calendar_entries SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to mark entry %s failed", id), Cause: err}
	}
	return nil
}

// ResetEntries flips entries back to pending so a test run can reprocess
// them. A nil calendar id resets every entry. Returns the affected count.
func (db *DB) ResetEntries(ctx context.Context, calendarID uuid.UUID) (int64, error) {
	flag, status := StatePending.View()

	var query string
	args := []any{flag, status}
	if calendarID == uuid.Nil {
		query = `UPDATE calendar_entries SET content = $1, status = $2, updated_at = NOW()`
	} else {
		query = `UPDATE calendar_entries SET content = $1, status = $2, updated_at = NOW() WHERE calendar_id = $3`
		args = append(args, calendarID)
	}

	tag, err := db.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, &StoreError{Message: "failed to reset entries", Cause: err}
	}
	return tag.RowsAffected(), nil
}
