package catalog

import "time"

// School is a catalog row for a college or university.
type School struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	City           string     `json:"city,omitempty"`
	State          string     `json:"state,omitempty"`
	AcceptanceRate *float64   `json:"acceptanceRate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// SummerProgram is a catalog row for a summer enrichment program.
type SummerProgram struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Organization        string     `json:"organization,omitempty"`
	Description         string     `json:"description,omitempty"`
	FocusAreas          []string   `json:"focusAreas,omitempty"`
	MinGrade            *int       `json:"minGrade,omitempty"`
	MaxGrade            *int       `json:"maxGrade,omitempty"`
	ApplicationYear     int        `json:"applicationYear"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	IsActive            bool       `json:"isActive"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// AdmitsGrade reports whether the program's inclusive grade range covers the
// given numeric grade. A nil bound is treated as unbounded on that side.
func (p SummerProgram) AdmitsGrade(grade int) bool {
	if p.MinGrade != nil && grade < *p.MinGrade {
		return false
	}
	if p.MaxGrade != nil && grade > *p.MaxGrade {
		return false
	}
	return true
}
