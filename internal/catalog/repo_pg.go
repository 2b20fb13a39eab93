package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// FindSchoolByName matches a school name case-insensitively.
func (r *PGRepo) FindSchoolByName(ctx context.Context, name string) (School, error) {
	const query = `
SELECT id, name, city, state, acceptance_rate, created_at
FROM schools
WHERE lower(name) = lower($1)
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, name)
	school, err := scanSchool(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return School{}, ErrNotFound
		}
		return School{}, err
	}
	return school, nil
}

// SearchSchools returns schools whose name contains the query.
func (r *PGRepo) SearchSchools(ctx context.Context, query string, limit int) ([]School, error) {
	if limit <= 0 {
		limit = 10
	}
	const q = `
SELECT id, name, city, state, acceptance_rate, created_at
FROM schools
WHERE name ILIKE '%' || $1 || '%'
ORDER BY name ASC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, q, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []School
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, school)
	}
	return out, rows.Err()
}

// EligiblePrograms returns candidate programs for the given query. Exclusions and
// the cap are applied after the scan so the SQL stays a simple range query.
func (r *PGRepo) EligiblePrograms(ctx context.Context, q ProgramQuery) ([]SummerProgram, error) {
	const query = `
SELECT id, name, organization, description, focus_areas, min_grade, max_grade,
       application_year, application_deadline, is_active, created_at
FROM summer_programs
WHERE is_active = TRUE
  AND application_year = $1
  AND (min_grade IS NULL OR min_grade <= $2)
  AND (max_grade IS NULL OR max_grade >= $2)
ORDER BY application_deadline ASC NULLS LAST, name ASC`
	rows, err := r.DB.QueryContext(ctx, query, q.ApplicationYear, q.Grade)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}

	var out []SummerProgram
	for rows.Next() {
		program, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		if _, excluded := q.ExcludeIDs[program.ID]; excluded {
			continue
		}
		out = append(out, program)
		if len(out) >= limit {
			break
		}
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchool(row rowScanner) (School, error) {
	var s School
	var city, state sql.NullString
	var acceptanceRate sql.NullFloat64
	if err := row.Scan(&s.ID, &s.Name, &city, &state, &acceptanceRate, &s.CreatedAt); err != nil {
		return School{}, err
	}
	if city.Valid {
		s.City = city.String
	}
	if state.Valid {
		s.State = state.String
	}
	if acceptanceRate.Valid {
		rate := acceptanceRate.Float64
		s.AcceptanceRate = &rate
	}
	return s, nil
}

func scanProgram(row rowScanner) (SummerProgram, error) {
	var p SummerProgram
	var organization, description sql.NullString
	var focusAreas []byte
	var minGrade, maxGrade sql.NullInt64
	var deadline sql.NullTime
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&organization,
		&description,
		&focusAreas,
		&minGrade,
		&maxGrade,
		&p.ApplicationYear,
		&deadline,
		&p.IsActive,
		&p.CreatedAt,
	); err != nil {
		return SummerProgram{}, err
	}
	if organization.Valid {
		p.Organization = organization.String
	}
	if description.Valid {
		p.Description = description.String
	}
	if len(focusAreas) > 0 {
		if err := json.Unmarshal(focusAreas, &p.FocusAreas); err != nil {
			p.FocusAreas = nil
		}
	}
	if minGrade.Valid {
		g := int(minGrade.Int64)
		p.MinGrade = &g
	}
	if maxGrade.Valid {
		g := int(maxGrade.Int64)
		p.MaxGrade = &g
	}
	if deadline.Valid {
		t := deadline.Time
		p.ApplicationDeadline = &t
	}
	return p, nil
}

var _ Repo = (*PGRepo)(nil)
