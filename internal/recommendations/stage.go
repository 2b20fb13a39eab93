package recommendations

import (
	"fmt"
	"time"
)

// Season of the academic calendar.
type Season string

const (
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
)

// Grade sentinels outside the 9th-12th range.
const (
	GradeGraduated     = "graduated"
	GradePreHighSchool = "pre-high-school"
)

// Stage keys outside the grade-by-season table.
const (
	StageGraduated     = "graduated"
	StagePreHighSchool = "pre_high_school"
	StageUnknown       = "unknown"
)

// academicYearRollover is the month/day on which the academic year advances.
// It also splits summer from fall.
const (
	rolloverMonth = time.August
	rolloverDay   = 15
)

// StageInfo describes where a student sits in the admissions timeline.
// RecommendationTypes is always derived from Stage, never user-settable.
type StageInfo struct {
	Stage               string     `json:"stage"`
	Grade               string     `json:"grade"`
	Season              Season     `json:"season"`
	GraduationYear      int        `json:"graduationYear"`
	Description         string     `json:"description"`
	Priorities          []string   `json:"priorities"`
	RecommendationTypes []Category `json:"recommendationTypes"`
}

// Includes reports whether the stage enables the given recommendation category.
func (s StageInfo) Includes(category Category) bool {
	for _, c := range s.RecommendationTypes {
		if c == category {
			return true
		}
	}
	return false
}

// GradeNumber returns the numeric grade level (8-12), or 0 for sentinels.
func (s StageInfo) GradeNumber() int {
	switch s.Grade {
	case "8th":
		return 8
	case "9th":
		return 9
	case "10th":
		return 10
	case "11th":
		return 11
	case "12th":
		return 12
	default:
		return 0
	}
}

type stageEntry struct {
	description string
	priorities  []string
	types       []Category
}

// stageTable encodes admissions-timeline policy per grade and season. Notable
// boundaries: summer before senior year drops programs (too late to apply),
// and senior spring narrows to general advice only (decision season).
var stageTable = map[string]stageEntry{
	"freshman_fall": {
		description: "Start of 9th grade: settle into high school academics and explore activities.",
		priorities:  []string{"Build strong study habits", "Try a range of clubs and activities", "Get to know teachers"},
		types:       []Category{CategoryActivity, CategoryGeneral},
	},
	"freshman_winter": {
		description: "Middle of 9th grade: keep grades steady and commit to a few activities.",
		priorities:  []string{"Protect your GPA", "Narrow to activities you enjoy", "Plan a productive summer"},
		types:       []Category{CategoryActivity, CategoryGeneral},
	},
	"freshman_spring": {
		description: "End of 9th grade: finish strong and lock in summer plans.",
		priorities:  []string{"Finish the year with strong grades", "Apply to summer programs", "Deepen one or two activities"},
		types:       []Category{CategoryProgram, CategoryActivity, CategoryGeneral},
	},
	"freshman_summer": {
		description: "Summer after 9th grade: explore interests through programs and projects.",
		priorities:  []string{"Attend a summer program or start a project", "Read widely", "Preview 10th grade coursework"},
		types:       []Category{CategoryProgram, CategoryActivity, CategoryGeneral},
	},
	"sophomore_fall": {
		description: "Start of 10th grade: take on more challenging coursework and grow involvement.",
		priorities:  []string{"Step up course rigor where possible", "Seek more responsibility in activities", "Consider the PSAT"},
		types:       []Category{CategoryProgram, CategoryActivity, CategoryGeneral},
	},
	"sophomore_winter": {
		description: "Middle of 10th grade: summer program applications open now.",
		priorities:  []string{"Apply to selective summer programs", "Keep grades up", "Start a testing plan"},
		types:       []Category{CategoryProgram, CategoryActivity, CategoryGeneral},
	},
	"sophomore_spring": {
		description: "End of 10th grade: begin exploring colleges while finishing the year strong.",
		priorities:  []string{"Start a broad college list", "Confirm summer plans", "Plan junior-year courses"},
		types:       []Category{CategorySchool, CategoryProgram, CategoryActivity, CategoryGeneral},
	},
	"sophomore_summer": {
		description: "Summer after 10th grade: build a spike and start visiting campuses.",
		priorities:  []string{"Go deep on one interest", "Visit a few campuses", "Prep for the PSAT/SAT"},
		types:       []Category{CategorySchool, CategoryActivity, CategoryGeneral},
	},
	"junior_fall": {
		description: "Start of 11th grade: the most important academic year; college research begins in earnest.",
		priorities:  []string{"Prioritize grades in rigorous courses", "Research colleges seriously", "Apply to summer programs early", "Take the PSAT"},
		types:       []Category{CategorySchool, CategoryProgram, CategoryGeneral},
	},
	"junior_winter": {
		description: "Middle of 11th grade: test prep and summer applications in parallel.",
		priorities:  []string{"Sit for the SAT or ACT", "Finish summer program applications", "Refine the college list"},
		types:       []Category{CategorySchool, CategoryProgram, CategoryGeneral},
	},
	"junior_spring": {
		description: "End of 11th grade: build the college list and line up recommenders.",
		priorities:  []string{"Finalize a balanced college list", "Ask teachers for recommendations", "Plan campus visits", "Retake tests if needed"},
		types:       []Category{CategorySchool, CategoryProgram, CategoryGeneral},
	},
	"junior_summer": {
		description: "Summer before 12th grade: essays and applications take over; summer programs are behind you.",
		priorities:  []string{"Draft the personal essay", "Finalize the college list", "Start application forms"},
		types:       []Category{CategorySchool, CategoryGeneral},
	},
	"senior_fall": {
		description: "Start of 12th grade: application season.",
		priorities:  []string{"Submit early applications", "Keep grades up", "Complete financial aid forms"},
		types:       []Category{CategorySchool, CategoryGeneral},
	},
	"senior_winter": {
		description: "Middle of 12th grade: regular decision deadlines and early results.",
		priorities:  []string{"Submit remaining applications", "Respond to interview requests", "Avoid senioritis"},
		types:       []Category{CategorySchool, CategoryGeneral},
	},
	"senior_spring": {
		description: "End of 12th grade: decisions arrive; nothing left to apply to.",
		priorities:  []string{"Compare offers and aid packages", "Visit admitted-student days", "Commit by the deadline"},
		types:       []Category{CategoryGeneral},
	},
	"senior_summer": {
		description: "Summer after 12th grade: transition to college.",
		priorities:  []string{"Complete enrollment tasks", "Thank recommenders", "Prepare for the transition"},
		types:       []Category{CategoryGeneral},
	},
}

// defaultStageEntry is the permissive fallback for stage keys outside the
// table, with all four categories enabled.
var defaultStageEntry = stageEntry{
	description: "Keep building a strong academic and extracurricular foundation.",
	priorities:  []string{"Focus on academics", "Pursue genuine interests", "Plan ahead for admissions milestones"},
	types:       []Category{CategorySchool, CategoryProgram, CategoryActivity, CategoryGeneral},
}

// SeasonOf maps a calendar date to an academic season: Jan-Feb winter,
// Mar-May spring, Jun 1-Aug 14 summer, Aug 15-Dec 31 fall.
func SeasonOf(date time.Time) Season {
	month := date.Month()
	switch {
	case month <= time.February:
		return SeasonWinter
	case month <= time.May:
		return SeasonSpring
	case month < rolloverMonth:
		return SeasonSummer
	case month == rolloverMonth && date.Day() < rolloverDay:
		return SeasonSummer
	default:
		return SeasonFall
	}
}

// AcademicYear returns the graduation year of the current senior class: the
// calendar year before the Aug 15 rollover, the next one after it.
func AcademicYear(date time.Time) int {
	if SeasonOf(date) == SeasonFall {
		return date.Year() + 1
	}
	return date.Year()
}

// StageFor derives a StageInfo from a graduation year and an explicit date.
// gradeOverride, when non-empty, takes precedence over the derived grade; it
// is used when the caller has ground truth but the stored graduation year is
// missing or inconsistent. The function is pure: identical inputs always
// produce identical output.
func StageFor(graduationYear int, date time.Time, gradeOverride string) StageInfo {
	season := SeasonOf(date)

	grade := gradeOverride
	if grade == "" {
		if graduationYear <= 0 {
			return unknownStage(season, graduationYear)
		}
		grade = deriveGrade(graduationYear, date)
	}

	switch grade {
	case GradeGraduated:
		return terminalStage(StageGraduated, GradeGraduated, season, graduationYear,
			"High school is behind you; this timeline no longer applies.")
	case GradePreHighSchool:
		return terminalStage(StagePreHighSchool, GradePreHighSchool, season, graduationYear,
			"High school has not started yet; check back closer to 9th grade.")
	}

	key := fmt.Sprintf("%s_%s", gradePrefix(grade), season)
	entry, ok := stageTable[key]
	if !ok {
		entry = defaultStageEntry
	}
	return StageInfo{
		Stage:               key,
		Grade:               grade,
		Season:              season,
		GraduationYear:      graduationYear,
		Description:         entry.description,
		Priorities:          append([]string(nil), entry.priorities...),
		RecommendationTypes: append([]Category(nil), entry.types...),
	}
}

func deriveGrade(graduationYear int, date time.Time) string {
	yearsUntil := graduationYear - AcademicYear(date)
	switch {
	case yearsUntil < 0:
		return GradeGraduated
	case yearsUntil == 0:
		return "12th"
	case yearsUntil == 1:
		return "11th"
	case yearsUntil == 2:
		return "10th"
	case yearsUntil == 3:
		return "9th"
	case yearsUntil == 4:
		return "8th"
	default:
		return GradePreHighSchool
	}
}

func gradePrefix(grade string) string {
	switch grade {
	case "9th":
		return "freshman"
	case "10th":
		return "sophomore"
	case "11th":
		return "junior"
	case "12th":
		return "senior"
	default:
		// 8th graders and malformed overrides land on the permissive default.
		return grade
	}
}

func terminalStage(stage, grade string, season Season, graduationYear int, description string) StageInfo {
	return StageInfo{
		Stage:          stage,
		Grade:          grade,
		Season:         season,
		GraduationYear: graduationYear,
		Description:    description,
	}
}

func unknownStage(season Season, graduationYear int) StageInfo {
	return StageInfo{
		Stage:               StageUnknown,
		Season:              season,
		GraduationYear:      graduationYear,
		Description:         defaultStageEntry.description,
		Priorities:          append([]string(nil), defaultStageEntry.priorities...),
		RecommendationTypes: append([]Category(nil), defaultStageEntry.types...),
	}
}
