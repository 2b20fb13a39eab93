package profiles

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a profile or related row does not exist.
var ErrNotFound = errors.New("not found")

// Repo defines persistence operations for student profiles and their
// satellite records.
type Repo interface {
	GetProfile(ctx context.Context, profileID string) (Profile, error)
	// PrimaryTestScores returns only primary-flagged scores, at most one per test type.
	PrimaryTestScores(ctx context.Context, profileID string) ([]TestScore, error)
	// TopActivities returns leadership-or-standout activities in display order, capped at limit.
	TopActivities(ctx context.Context, profileID string, limit int) ([]Activity, error)
	// TopAwards returns awards of state tier or above, capped at limit.
	TopAwards(ctx context.Context, profileID string, limit int) ([]Award, error)
	ListSchools(ctx context.Context, profileID string) ([]SchoolListEntry, error)
	ListPrograms(ctx context.Context, profileID string) ([]ProgramListEntry, error)
	// GetPreferences returns ErrNotFound when the student has none saved.
	GetPreferences(ctx context.Context, profileID string) (Preferences, error)
	// UpdateAbout replaces the profile's identity and free-text fields.
	UpdateAbout(ctx context.Context, profileID string, about AboutUpdate) error
	// UpdateAcademics replaces the profile's academic numbers.
	UpdateAcademics(ctx context.Context, profileID string, academics AcademicsUpdate) error
}

// AboutUpdate carries the writable identity and free-text fields.
type AboutUpdate struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	GraduationYear *int   `json:"graduationYear"`
	Interests      string `json:"interests"`
	Values         string `json:"values"`
	Aspirations    string `json:"aspirations"`
}

// AcademicsUpdate carries the writable academic numbers.
type AcademicsUpdate struct {
	GPA       *float64 `json:"gpa"`
	GPAScale  *float64 `json:"gpaScale"`
	ClassRank *int     `json:"classRank"`
	ClassSize *int     `json:"classSize"`
}
