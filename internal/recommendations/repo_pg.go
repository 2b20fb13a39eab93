package recommendations

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const recommendationColumns = `
id, profile_id, category, title, subtitle, reasoning, fit_score, priority,
action_items, relevant_grade, expires_at, school_id, program_id, status,
profile_version, display_order, feedback, dismissed_at, created_at, updated_at`

// ReplaceActive dismisses the profile's active batch and inserts the new one
// inside one transaction, so readers never observe a profile with zero or two
// active batches.
func (r *PGRepo) ReplaceActive(ctx context.Context, profileID, profileVersion string, recs []GeneratedRecommendation) ([]Recommendation, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback()

	const dismiss = `
UPDATE recommendations
SET status = $1, dismissed_at = now(), updated_at = now()
WHERE profile_id = $2 AND status = $3`
	if _, err := tx.ExecContext(ctx, dismiss, StatusDismissed, profileID, StatusActive); err != nil {
		return nil, fmt.Errorf("dismiss previous batch: %w", err)
	}

	const insert = `
INSERT INTO recommendations (
    id, profile_id, category, title, subtitle, reasoning, fit_score, priority,
    action_items, relevant_grade, expires_at, school_id, program_id, status,
    profile_version, display_order
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
RETURNING created_at, updated_at`

	now := time.Now().UTC()
	out := make([]Recommendation, 0, len(recs))
	for i, rec := range recs {
		row := Recommendation{
			ID:             uuid.NewString(),
			ProfileID:      profileID,
			Category:       rec.Category,
			Title:          rec.Title,
			Subtitle:       rec.Subtitle,
			Reasoning:      rec.Reasoning,
			FitScore:       rec.FitScore,
			Priority:       rec.Priority,
			ActionItems:    rec.ActionItems,
			RelevantGrade:  rec.RelevantGrade,
			ExpiresAt:      rec.ExpiresAt,
			SchoolID:       rec.SchoolID,
			ProgramID:      rec.ProgramID,
			Status:         StatusActive,
			ProfileVersion: profileVersion,
			DisplayOrder:   i,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		actionItems, err := marshalActionItems(rec.ActionItems)
		if err != nil {
			return nil, err
		}
		err = tx.QueryRowContext(ctx, insert,
			row.ID,
			row.ProfileID,
			string(row.Category),
			row.Title,
			nullString(row.Subtitle),
			row.Reasoning,
			row.FitScore,
			nullString(row.Priority),
			actionItems,
			nullString(row.RelevantGrade),
			row.ExpiresAt,
			row.SchoolID,
			row.ProgramID,
			row.Status,
			row.ProfileVersion,
			row.DisplayOrder,
		).Scan(&row.CreatedAt, &row.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("insert recommendation: %w", err)
		}
		out = append(out, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit replace: %w", err)
	}
	return out, nil
}

// ListActive returns the profile's active recommendations, highest priority
// first, then by category tier and stored display order.
func (r *PGRepo) ListActive(ctx context.Context, profileID string) ([]Recommendation, error) {
	query := `
SELECT ` + recommendationColumns + `
FROM recommendations
WHERE profile_id = $1 AND status = $2
ORDER BY
    CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 WHEN 'low' THEN 2 ELSE 3 END,
    CASE category WHEN 'school' THEN 0 WHEN 'program' THEN 1 WHEN 'activity' THEN 2 ELSE 3 END,
    display_order ASC`
	rows, err := r.DB.QueryContext(ctx, query, profileID, StatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Dismiss marks a recommendation dismissed with optional feedback.
func (r *PGRepo) Dismiss(ctx context.Context, id, feedback string) error {
	const query = `
UPDATE recommendations
SET status = $1, feedback = $2, dismissed_at = now(), updated_at = now()
WHERE id = $3`
	return r.execStatus(ctx, query, StatusDismissed, nullString(feedback), id)
}

// MarkSaved marks a recommendation saved.
func (r *PGRepo) MarkSaved(ctx context.Context, id string) error {
	const query = `
UPDATE recommendations
SET status = $1, updated_at = now()
WHERE id = $2`
	return r.execStatus(ctx, query, StatusSaved, id)
}

// MarkActedUpon marks a recommendation acted upon.
func (r *PGRepo) MarkActedUpon(ctx context.Context, id string) error {
	const query = `
UPDATE recommendations
SET status = $1, updated_at = now()
WHERE id = $2`
	return r.execStatus(ctx, query, StatusActedUpon, id)
}

func (r *PGRepo) execStatus(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecommendation(row interface{ Scan(dest ...any) error }) (Recommendation, error) {
	var rec Recommendation
	var subtitle, priority, relevantGrade, feedback sql.NullString
	var fitScore sql.NullFloat64
	var actionItems []byte
	var expiresAt, dismissedAt sql.NullTime
	var schoolID, programID sql.NullString
	var category string
	if err := row.Scan(
		&rec.ID,
		&rec.ProfileID,
		&category,
		&rec.Title,
		&subtitle,
		&rec.Reasoning,
		&fitScore,
		&priority,
		&actionItems,
		&relevantGrade,
		&expiresAt,
		&schoolID,
		&programID,
		&rec.Status,
		&rec.ProfileVersion,
		&rec.DisplayOrder,
		&feedback,
		&dismissedAt,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return Recommendation{}, err
	}
	rec.Category = Category(category)
	rec.Subtitle = subtitle.String
	rec.Priority = priority.String
	rec.RelevantGrade = relevantGrade.String
	rec.Feedback = feedback.String
	if fitScore.Valid {
		f := fitScore.Float64
		rec.FitScore = &f
	}
	if len(actionItems) > 0 {
		if err := json.Unmarshal(actionItems, &rec.ActionItems); err != nil {
			rec.ActionItems = nil
		}
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		rec.ExpiresAt = &t
	}
	if dismissedAt.Valid {
		t := dismissedAt.Time
		rec.DismissedAt = &t
	}
	if schoolID.Valid {
		s := schoolID.String
		rec.SchoolID = &s
	}
	if programID.Valid {
		s := programID.String
		rec.ProgramID = &s
	}
	return rec, nil
}

func marshalActionItems(items []string) (any, error) {
	if len(items) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal action items: %w", err)
	}
	return raw, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ Repo = (*PGRepo)(nil)
