package recommendations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoReplaceActiveDismissesAndInsertsInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE recommendations").
		WithArgs(StatusDismissed, "p1", StatusActive).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("INSERT INTO recommendations").
		WithArgs(
			sqlmock.AnyArg(), // id
			"p1",
			string(CategorySchool),
			"Rice University",
			"Target school",
			"Strong fit.",
			nil, // fit_score
			"high",
			sqlmock.AnyArg(), // action_items
			"11th",
			nil, // expires_at
			nil, // school_id
			nil, // program_id
			StatusActive,
			"fingerprint-1",
			0,
		).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	repo := &PGRepo{DB: db}
	rows, err := repo.ReplaceActive(context.Background(), "p1", "fingerprint-1", []GeneratedRecommendation{
		{
			Category:      CategorySchool,
			Title:         "Rice University",
			Subtitle:      "Target school",
			Reasoning:     "Strong fit.",
			Priority:      PriorityHigh,
			ActionItems:   []string{"Visit campus"},
			RelevantGrade: "11th",
		},
	})
	if err != nil {
		t.Fatalf("ReplaceActive: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 inserted row, got %d", len(rows))
	}
	if rows[0].Status != StatusActive || rows[0].ProfileVersion != "fingerprint-1" || rows[0].DisplayOrder != 0 {
		t.Fatalf("unexpected inserted row: %+v", rows[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoReplaceActiveRollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE recommendations").
		WithArgs(StatusDismissed, "p1", StatusActive).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("INSERT INTO recommendations").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	repo := &PGRepo{DB: db}
	_, err = repo.ReplaceActive(context.Background(), "p1", "v1", []GeneratedRecommendation{
		{Category: CategoryGeneral, Title: "Advice"},
	})
	if err == nil {
		t.Fatalf("expected insert error to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDismiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE recommendations").
		WithArgs(StatusDismissed, "too generic", "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	if err := repo.Dismiss(context.Background(), "rec-1", "too generic"); err != nil {
		t.Fatalf("Dismiss: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoMarkSavedUnknownID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE recommendations").
		WithArgs(StatusSaved, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := &PGRepo{DB: db}
	if err := repo.MarkSaved(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	now := time.Now().UTC()
	columns := []string{
		"id", "profile_id", "category", "title", "subtitle", "reasoning",
		"fit_score", "priority", "action_items", "relevant_grade", "expires_at",
		"school_id", "program_id", "status", "profile_version", "display_order",
		"feedback", "dismissed_at", "created_at", "updated_at",
	}
	mock.ExpectQuery("SELECT (.+) FROM recommendations").
		WithArgs("p1", StatusActive).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("rec-1", "p1", "school", "Rice University", "Target school", "Strong fit.",
				0.8, "high", []byte(`["Visit campus"]`), "11th", nil,
				"school-1", nil, StatusActive, "v1", 0,
				nil, nil, now, now))

	repo := &PGRepo{DB: db}
	rows, err := repo.ListActive(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	rec := rows[0]
	if rec.Category != CategorySchool || rec.Title != "Rice University" {
		t.Fatalf("unexpected row: %+v", rec)
	}
	if rec.FitScore == nil || *rec.FitScore != 0.8 {
		t.Fatalf("expected fit score 0.8, got %v", rec.FitScore)
	}
	if len(rec.ActionItems) != 1 || rec.ActionItems[0] != "Visit campus" {
		t.Fatalf("expected action items, got %v", rec.ActionItems)
	}
	if rec.SchoolID == nil || *rec.SchoolID != "school-1" {
		t.Fatalf("expected school id, got %v", rec.SchoolID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
