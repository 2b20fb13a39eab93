package recommendations

import "context"

// Repo persists recommendation rows. Rows are never deleted: a new generation
// run dismisses the previous active batch and inserts the new one in a single
// transaction, and the status endpoints mutate status in place.
type Repo interface {
	// ReplaceActive atomically dismisses the profile's current active
	// recommendations and inserts recs as the new active batch, tagged with
	// profileVersion and ordered by their slice position. It returns the
	// inserted rows.
	ReplaceActive(ctx context.Context, profileID, profileVersion string, recs []GeneratedRecommendation) ([]Recommendation, error)
	// ListActive returns the profile's active recommendations in display order.
	ListActive(ctx context.Context, profileID string) ([]Recommendation, error)
	// Dismiss marks a recommendation dismissed, recording optional feedback.
	Dismiss(ctx context.Context, id, feedback string) error
	// MarkSaved marks a recommendation saved.
	MarkSaved(ctx context.Context, id string) error
	// MarkActedUpon marks a recommendation acted upon.
	MarkActedUpon(ctx context.Context, id string) error
}
