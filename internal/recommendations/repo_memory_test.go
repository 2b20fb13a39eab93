package recommendations

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryRepoReplaceActiveKeepsOneBatch(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.ReplaceActive(ctx, "p1", "v1", []GeneratedRecommendation{
		{Category: CategorySchool, Title: "Rice University"},
		{Category: CategoryGeneral, Title: "Plan testing"},
	})
	if err != nil {
		t.Fatalf("first ReplaceActive: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 inserted rows, got %d", len(first))
	}

	second, err := repo.ReplaceActive(ctx, "p1", "v2", []GeneratedRecommendation{
		{Category: CategoryProgram, Title: "Research Science Institute"},
	})
	if err != nil {
		t.Fatalf("second ReplaceActive: %v", err)
	}

	active, err := repo.ListActive(ctx, "p1")
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected one active batch of 1, got %d rows", len(active))
	}
	if active[0].ID != second[0].ID {
		t.Fatalf("active row is not from the latest batch")
	}
	if active[0].ProfileVersion != "v2" {
		t.Fatalf("expected profile version v2, got %q", active[0].ProfileVersion)
	}

	// The first batch is dismissed, not deleted.
	old, ok := repo.Get(first[0].ID)
	if !ok {
		t.Fatalf("dismissed row was deleted")
	}
	if old.Status != StatusDismissed || old.DismissedAt == nil {
		t.Fatalf("expected dismissed with timestamp, got %q", old.Status)
	}
}

func TestMemoryRepoReplaceActiveScopedToProfile(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	if _, err := repo.ReplaceActive(ctx, "p1", "v1", []GeneratedRecommendation{{Category: CategoryGeneral, Title: "A"}}); err != nil {
		t.Fatalf("ReplaceActive p1: %v", err)
	}
	if _, err := repo.ReplaceActive(ctx, "p2", "v1", []GeneratedRecommendation{{Category: CategoryGeneral, Title: "B"}}); err != nil {
		t.Fatalf("ReplaceActive p2: %v", err)
	}

	active, _ := repo.ListActive(ctx, "p1")
	if len(active) != 1 {
		t.Fatalf("replacing p2 must not touch p1, got %d rows", len(active))
	}
}

func TestMemoryRepoStatusTransitions(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	rows, err := repo.ReplaceActive(ctx, "p1", "v1", []GeneratedRecommendation{
		{Category: CategorySchool, Title: "A"},
		{Category: CategorySchool, Title: "B"},
		{Category: CategorySchool, Title: "C"},
	})
	if err != nil {
		t.Fatalf("ReplaceActive: %v", err)
	}

	if err := repo.Dismiss(ctx, rows[0].ID, "not interested"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if err := repo.MarkSaved(ctx, rows[1].ID); err != nil {
		t.Fatalf("MarkSaved: %v", err)
	}
	if err := repo.MarkActedUpon(ctx, rows[2].ID); err != nil {
		t.Fatalf("MarkActedUpon: %v", err)
	}

	dismissed, _ := repo.Get(rows[0].ID)
	if dismissed.Status != StatusDismissed || dismissed.Feedback != "not interested" || dismissed.DismissedAt == nil {
		t.Fatalf("unexpected dismissed row: %+v", dismissed)
	}
	saved, _ := repo.Get(rows[1].ID)
	if saved.Status != StatusSaved {
		t.Fatalf("expected saved, got %q", saved.Status)
	}
	acted, _ := repo.Get(rows[2].ID)
	if acted.Status != StatusActedUpon {
		t.Fatalf("expected acted_upon, got %q", acted.Status)
	}

	active, _ := repo.ListActive(ctx, "p1")
	if len(active) != 0 {
		t.Fatalf("expected no active rows after transitions, got %d", len(active))
	}
}

func TestMemoryRepoUnknownID(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Dismiss(context.Background(), "missing", ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.MarkSaved(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepoListActiveOrdering(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	_, err := repo.ReplaceActive(ctx, "p1", "v1", []GeneratedRecommendation{
		{Category: CategoryGeneral, Title: "general-high", Priority: PriorityHigh},
		{Category: CategorySchool, Title: "school-high", Priority: PriorityHigh},
		{Category: CategorySchool, Title: "school-low", Priority: PriorityLow},
	})
	if err != nil {
		t.Fatalf("ReplaceActive: %v", err)
	}

	active, _ := repo.ListActive(ctx, "p1")
	want := []string{"school-high", "general-high", "school-low"}
	for i, title := range want {
		if active[i].Title != title {
			t.Fatalf("position %d: got %q, want %q", i, active[i].Title, title)
		}
	}
}
