package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("not found")

// ProgramQuery filters summer programs for agent candidate selection.
type ProgramQuery struct {
	Grade           int
	ApplicationYear int
	ExcludeIDs      map[string]struct{}
	Limit           int
}

// Repo defines read operations against the school and program catalog.
type Repo interface {
	// FindSchoolByName matches a school name case-insensitively (exact match).
	FindSchoolByName(ctx context.Context, name string) (School, error)
	// SearchSchools returns schools whose name contains the query, case-insensitively.
	SearchSchools(ctx context.Context, query string, limit int) ([]School, error)
	// EligiblePrograms returns active programs for the target application year whose
	// grade range admits the student, excluding ids in q.ExcludeIDs, capped at
	// q.Limit and ordered by (application deadline ascending, name ascending).
	EligiblePrograms(ctx context.Context, q ProgramQuery) ([]SummerProgram, error)
}
