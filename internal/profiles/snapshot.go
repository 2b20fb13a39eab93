package profiles

import (
	"fmt"
	"strings"

	"admissions-backend/internal/shared/util"
)

// Limits applied when assembling a snapshot, to keep prompts compact.
const (
	maxSnapshotActivities = 5
	maxSnapshotAwards     = 5
)

// SnapshotActivity is an activity as seen by recommendation agents.
type SnapshotActivity struct {
	Name         string
	Role         string
	IsLeadership bool
	IsStandout   bool
}

// SnapshotAward is an award as seen by recommendation agents.
type SnapshotAward struct {
	Title string
	Tier  string
}

// Snapshot is a flat, read-only view of a student profile assembled per
// orchestration run. It is never mutated after load.
type Snapshot struct {
	ProfileID      string
	FirstName      string
	GraduationYear int // 0 when unknown

	GPA       *float64
	GPAScale  *float64
	ClassRank *int
	ClassSize *int
	SAT       *int
	ACT       *int

	Activities []SnapshotActivity
	Awards     []SnapshotAward

	Interests   string
	Values      string
	Aspirations string

	ExistingSchoolIDs   []string
	ExistingSchoolNames []string
	ExistingProgramIDs  []string
}

// HasExistingSchoolName reports whether name matches a tracked school,
// case-insensitively.
func (s *Snapshot) HasExistingSchoolName(name string) bool {
	for _, existing := range s.ExistingSchoolNames {
		if strings.EqualFold(strings.TrimSpace(existing), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// ExistingProgramIDSet returns the tracked program ids as a set.
func (s *Snapshot) ExistingProgramIDSet() map[string]struct{} {
	out := make(map[string]struct{}, len(s.ExistingProgramIDs))
	for _, id := range s.ExistingProgramIDs {
		out[id] = struct{}{}
	}
	return out
}

// Fingerprint returns a coarse hash of the profile fields that matter for
// change detection: grade, GPA, test scores, and activity/award/interest
// counts. It deliberately ignores free text so trivial edits don't invalidate
// a recommendation batch.
func (s *Snapshot) Fingerprint(grade string) string {
	gpa := "-"
	if s.GPA != nil {
		gpa = fmt.Sprintf("%.2f", *s.GPA)
	}
	sat := "-"
	if s.SAT != nil {
		sat = fmt.Sprintf("%d", *s.SAT)
	}
	act := "-"
	if s.ACT != nil {
		act = fmt.Sprintf("%d", *s.ACT)
	}
	key := fmt.Sprintf("%s|%s|%s|%s|activities:%d|awards:%d|interests:%d",
		grade, gpa, sat, act,
		len(s.Activities), len(s.Awards), countItems(s.Interests))
	return util.HashKey(key)
}

func countItems(raw string) int {
	count := 0
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool { return r == ',' || r == '\n' || r == ';' }) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}
