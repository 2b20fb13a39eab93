package profiles

import "time"

// Profile is a student's stored profile row.
type Profile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	GraduationYear *int      `json:"graduationYear,omitempty"`
	GPA            *float64  `json:"gpa,omitempty"`
	GPAScale       *float64  `json:"gpaScale,omitempty"`
	ClassRank      *int      `json:"classRank,omitempty"`
	ClassSize      *int      `json:"classSize,omitempty"`
	Interests      string    `json:"interests"`
	Values         string    `json:"values"`
	Aspirations    string    `json:"aspirations"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TestScore is a single standardized test result.
type TestScore struct {
	ID        string     `json:"id"`
	ProfileID string     `json:"profileId"`
	TestType  string     `json:"testType"` // "sat" or "act"
	Score     int        `json:"score"`
	IsPrimary bool       `json:"isPrimary"`
	TakenAt   *time.Time `json:"takenAt,omitempty"`
}

// Activity is an extracurricular entry.
type Activity struct {
	ID           string `json:"id"`
	ProfileID    string `json:"profileId"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Description  string `json:"description"`
	IsLeadership bool   `json:"isLeadership"`
	IsStandout   bool   `json:"isStandout"`
	DisplayOrder int    `json:"displayOrder"`
}

// Award tiers, lowest to highest reach.
const (
	TierSchool        = "school"
	TierLocal         = "local"
	TierState         = "state"
	TierNational      = "national"
	TierInternational = "international"
)

// Award is an honor or award entry.
type Award struct {
	ID         string `json:"id"`
	ProfileID  string `json:"profileId"`
	Title      string `json:"title"`
	Tier       string `json:"tier"`
	GradeLevel string `json:"gradeLevel,omitempty"`
}

// SchoolListEntry is a school the student is already tracking.
type SchoolListEntry struct {
	ID         string  `json:"id"`
	ProfileID  string  `json:"profileId"`
	SchoolID   *string `json:"schoolId,omitempty"`
	SchoolName string  `json:"schoolName"`
}

// ProgramListEntry is a summer program the student is already tracking.
type ProgramListEntry struct {
	ID        string `json:"id"`
	ProfileID string `json:"profileId"`
	ProgramID string `json:"programId"`
}

// Preferences captures optional student guidance preferences for recommendations.
type Preferences struct {
	ProfileID        string    `json:"profileId"`
	PreferredMajors  string    `json:"preferredMajors"`
	PreferredRegions string    `json:"preferredRegions"`
	SchoolSize       string    `json:"schoolSize"`
	AdditionalNotes  string    `json:"additionalNotes"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
