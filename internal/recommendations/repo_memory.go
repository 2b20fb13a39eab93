package recommendations

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo for tests and local development.
type MemoryRepo struct {
	mu   sync.Mutex
	rows map[string]Recommendation
}

// NewMemoryRepo returns an empty in-memory repo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]Recommendation)}
}

// ReplaceActive dismisses the profile's active rows and inserts recs as the
// new active batch.
func (r *MemoryRepo) ReplaceActive(_ context.Context, profileID, profileVersion string, recs []GeneratedRecommendation) ([]Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, row := range r.rows {
		if row.ProfileID == profileID && row.Status == StatusActive {
			row.Status = StatusDismissed
			row.DismissedAt = &now
			row.UpdatedAt = now
			r.rows[id] = row
		}
	}

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
			ActionItems:    append([]string(nil), rec.ActionItems...),
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
		r.rows[row.ID] = row
		out = append(out, row)
	}
	return out, nil
}

// ListActive returns the profile's active rows, highest priority first, then
// by category tier and stored display order.
func (r *MemoryRepo) ListActive(_ context.Context, profileID string) ([]Recommendation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Recommendation
	for _, row := range r.rows {
		if row.ProfileID == profileID && row.Status == StatusActive {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if pa, pb := priorityRank(a.Priority), priorityRank(b.Priority); pa != pb {
			return pa < pb
		}
		if ca, cb := categoryRank(a.Category), categoryRank(b.Category); ca != cb {
			return ca < cb
		}
		return a.DisplayOrder < b.DisplayOrder
	})
	return out, nil
}

// Dismiss marks a row dismissed with optional feedback.
func (r *MemoryRepo) Dismiss(_ context.Context, id, feedback string) error {
	return r.mutate(id, func(row *Recommendation) {
		now := time.Now().UTC()
		row.Status = StatusDismissed
		row.Feedback = feedback
		row.DismissedAt = &now
	})
}

// MarkSaved marks a row saved.
func (r *MemoryRepo) MarkSaved(_ context.Context, id string) error {
	return r.mutate(id, func(row *Recommendation) {
		row.Status = StatusSaved
	})
}

// MarkActedUpon marks a row acted upon.
func (r *MemoryRepo) MarkActedUpon(_ context.Context, id string) error {
	return r.mutate(id, func(row *Recommendation) {
		row.Status = StatusActedUpon
	})
}

// Get returns a row by id. Test helper.
func (r *MemoryRepo) Get(id string) (Recommendation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	return row, ok
}

func (r *MemoryRepo) mutate(id string, apply func(*Recommendation)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	apply(&row)
	row.UpdatedAt = time.Now().UTC()
	r.rows[id] = row
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
