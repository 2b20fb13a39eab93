package recommendations

import "time"

// Category identifies which agent produced a recommendation.
type Category string

const (
	CategorySchool   Category = "school"
	CategoryProgram  Category = "program"
	CategoryActivity Category = "activity"
	CategoryGeneral  Category = "general"
)

// Priority tiers, highest urgency first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Recommendation statuses. Rows are never deleted; status transitions are the
// only in-place mutation.
const (
	StatusActive    = "active"
	StatusDismissed = "dismissed"
	StatusSaved     = "saved"
	StatusActedUpon = "acted_upon"
)

// GeneratedRecommendation is the unit flowing through the pipeline. Category is
// set by the producing agent and never changed downstream. SchoolID/ProgramID
// are populated only when the agent's output could be confidently matched to a
// catalog row.
type GeneratedRecommendation struct {
	Category      Category   `json:"category"`
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle,omitempty"`
	Reasoning     string     `json:"reasoning"`
	FitScore      *float64   `json:"fitScore,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	ActionItems   []string   `json:"actionItems,omitempty"`
	RelevantGrade string     `json:"relevantGrade,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	SchoolID      *string    `json:"schoolId,omitempty"`
	ProgramID     *string    `json:"programId,omitempty"`
}

// Recommendation is a persisted recommendation row.
type Recommendation struct {
	ID             string     `json:"id"`
	ProfileID      string     `json:"profileId"`
	Category       Category   `json:"category"`
	Title          string     `json:"title"`
	Subtitle       string     `json:"subtitle,omitempty"`
	Reasoning      string     `json:"reasoning"`
	FitScore       *float64   `json:"fitScore,omitempty"`
	Priority       string     `json:"priority,omitempty"`
	ActionItems    []string   `json:"actionItems,omitempty"`
	RelevantGrade  string     `json:"relevantGrade,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	SchoolID       *string    `json:"schoolId,omitempty"`
	ProgramID      *string    `json:"programId,omitempty"`
	Status         string     `json:"status"`
	ProfileVersion string     `json:"profileVersion"`
	DisplayOrder   int        `json:"displayOrder"`
	Feedback       string     `json:"feedback,omitempty"`
	DismissedAt    *time.Time `json:"dismissedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// RunResult is the orchestrator's return value for one generation run.
type RunResult struct {
	Recommendations []GeneratedRecommendation `json:"recommendations"`
	Stage           StageInfo                 `json:"stage"`
	SavedCount      int                       `json:"savedCount"`
}
