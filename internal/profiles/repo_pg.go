package profiles

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// GetProfile returns a profile by ID.
func (r *PGRepo) GetProfile(ctx context.Context, profileID string) (Profile, error) {
	const query = `
SELECT id, user_id, first_name, last_name, graduation_year, gpa, gpa_scale,
       class_rank, class_size, interests, personal_values, aspirations,
       created_at, updated_at
FROM student_profiles
WHERE id = $1
LIMIT 1`
	var p Profile
	var graduationYear, classRank, classSize sql.NullInt64
	var gpa, gpaScale sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query, profileID).Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&graduationYear,
		&gpa,
		&gpaScale,
		&classRank,
		&classSize,
		&p.Interests,
		&p.Values,
		&p.Aspirations,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	if graduationYear.Valid {
		v := int(graduationYear.Int64)
		p.GraduationYear = &v
	}
	if gpa.Valid {
		v := gpa.Float64
		p.GPA = &v
	}
	if gpaScale.Valid {
		v := gpaScale.Float64
		p.GPAScale = &v
	}
	if classRank.Valid {
		v := int(classRank.Int64)
		p.ClassRank = &v
	}
	if classSize.Valid {
		v := int(classSize.Int64)
		p.ClassSize = &v
	}
	return p, nil
}

// PrimaryTestScores returns primary-flagged scores for a profile.
func (r *PGRepo) PrimaryTestScores(ctx context.Context, profileID string) ([]TestScore, error) {
	const query = `
SELECT id, profile_id, test_type, score, is_primary, taken_at
FROM test_scores
WHERE profile_id = $1 AND is_primary = TRUE
ORDER BY test_type ASC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TestScore
	for rows.Next() {
		var score TestScore
		var takenAt sql.NullTime
		if err := rows.Scan(&score.ID, &score.ProfileID, &score.TestType, &score.Score, &score.IsPrimary, &takenAt); err != nil {
			return nil, err
		}
		if takenAt.Valid {
			t := takenAt.Time
			score.TakenAt = &t
		}
		out = append(out, score)
	}
	return out, rows.Err()
}

// TopActivities returns leadership-or-standout activities in display order.
func (r *PGRepo) TopActivities(ctx context.Context, profileID string, limit int) ([]Activity, error) {
	if limit <= 0 {
		limit = maxSnapshotActivities
	}
	const query = `
SELECT id, profile_id, name, role, description, is_leadership, is_standout, display_order
FROM activities
WHERE profile_id = $1 AND (is_leadership = TRUE OR is_standout = TRUE)
ORDER BY display_order ASC, name ASC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.Name, &a.Role, &a.Description, &a.IsLeadership, &a.IsStandout, &a.DisplayOrder); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// TopAwards returns state-tier-or-above awards for a profile.
func (r *PGRepo) TopAwards(ctx context.Context, profileID string, limit int) ([]Award, error) {
	if limit <= 0 {
		limit = maxSnapshotAwards
	}
	const query = `
SELECT id, profile_id, title, tier, grade_level
FROM awards
WHERE profile_id = $1 AND tier IN ('state', 'national', 'international')
ORDER BY CASE tier
    WHEN 'international' THEN 0
    WHEN 'national' THEN 1
    ELSE 2
END, title ASC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, profileID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Award
	for rows.Next() {
		var a Award
		var gradeLevel sql.NullString
		if err := rows.Scan(&a.ID, &a.ProfileID, &a.Title, &a.Tier, &gradeLevel); err != nil {
			return nil, err
		}
		if gradeLevel.Valid {
			a.GradeLevel = gradeLevel.String
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListSchools returns the student's tracked school list.
func (r *PGRepo) ListSchools(ctx context.Context, profileID string) ([]SchoolListEntry, error) {
	const query = `
SELECT id, profile_id, school_id, school_name
FROM student_schools
WHERE profile_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SchoolListEntry
	for rows.Next() {
		var entry SchoolListEntry
		var schoolID sql.NullString
		if err := rows.Scan(&entry.ID, &entry.ProfileID, &schoolID, &entry.SchoolName); err != nil {
			return nil, err
		}
		if schoolID.Valid {
			id := schoolID.String
			entry.SchoolID = &id
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// ListPrograms returns the student's tracked program list.
func (r *PGRepo) ListPrograms(ctx context.Context, profileID string) ([]ProgramListEntry, error) {
	const query = `
SELECT id, profile_id, program_id
FROM student_programs
WHERE profile_id = $1
ORDER BY created_at ASC`
	rows, err := r.DB.QueryContext(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProgramListEntry
	for rows.Next() {
		var entry ProgramListEntry
		if err := rows.Scan(&entry.ID, &entry.ProfileID, &entry.ProgramID); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// GetPreferences returns saved recommendation preferences.
func (r *PGRepo) GetPreferences(ctx context.Context, profileID string) (Preferences, error) {
	const query = `
SELECT profile_id, preferred_majors, preferred_regions, school_size, additional_notes, updated_at
FROM recommendation_preferences
WHERE profile_id = $1
LIMIT 1`
	var prefs Preferences
	err := r.DB.QueryRowContext(ctx, query, profileID).Scan(
		&prefs.ProfileID,
		&prefs.PreferredMajors,
		&prefs.PreferredRegions,
		&prefs.SchoolSize,
		&prefs.AdditionalNotes,
		&prefs.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Preferences{}, ErrNotFound
		}
		return Preferences{}, err
	}
	return prefs, nil
}

// UpdateAbout replaces the profile's identity and free-text fields.
func (r *PGRepo) UpdateAbout(ctx context.Context, profileID string, about AboutUpdate) error {
	const query = `
UPDATE student_profiles
SET first_name = $1, last_name = $2, graduation_year = $3,
    interests = $4, personal_values = $5, aspirations = $6, updated_at = now()
WHERE id = $7`
	return r.execProfileUpdate(ctx, query,
		about.FirstName,
		about.LastName,
		about.GraduationYear,
		about.Interests,
		about.Values,
		about.Aspirations,
		profileID,
	)
}

// UpdateAcademics replaces the profile's academic numbers.
func (r *PGRepo) UpdateAcademics(ctx context.Context, profileID string, academics AcademicsUpdate) error {
	const query = `
UPDATE student_profiles
SET gpa = $1, gpa_scale = $2, class_rank = $3, class_size = $4, updated_at = now()
WHERE id = $5`
	return r.execProfileUpdate(ctx, query,
		academics.GPA,
		academics.GPAScale,
		academics.ClassRank,
		academics.ClassSize,
		profileID,
	)
}

func (r *PGRepo) execProfileUpdate(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
