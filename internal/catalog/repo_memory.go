package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo stores catalog rows in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu       sync.RWMutex
	schools  []School
	programs []SummerProgram
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// AddSchool registers a school in the catalog.
func (r *MemoryRepo) AddSchool(school School) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schools = append(r.schools, school)
}

// AddProgram registers a summer program in the catalog.
func (r *MemoryRepo) AddProgram(program SummerProgram) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs = append(r.programs, program)
}

// FindSchoolByName matches a school name case-insensitively.
func (r *MemoryRepo) FindSchoolByName(ctx context.Context, name string) (School, error) {
	if err := ctx.Err(); err != nil {
		return School{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, school := range r.schools {
		if strings.EqualFold(school.Name, name) {
			return school, nil
		}
	}
	return School{}, ErrNotFound
}

// SearchSchools returns schools whose name contains the query.
func (r *MemoryRepo) SearchSchools(ctx context.Context, query string, limit int) ([]School, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	needle := strings.ToLower(strings.TrimSpace(query))

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []School
	for _, school := range r.schools {
		if strings.Contains(strings.ToLower(school.Name), needle) {
			out = append(out, school)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// EligiblePrograms filters programs by year, grade range, and exclusions.
func (r *MemoryRepo) EligiblePrograms(ctx context.Context, q ProgramQuery) ([]SummerProgram, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	candidates := make([]SummerProgram, 0, len(r.programs))
	for _, program := range r.programs {
		if !program.IsActive || program.ApplicationYear != q.ApplicationYear {
			continue
		}
		if !program.AdmitsGrade(q.Grade) {
			continue
		}
		if _, excluded := q.ExcludeIDs[program.ID]; excluded {
			continue
		}
		candidates = append(candidates, program)
	}
	r.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		switch {
		case a.ApplicationDeadline == nil && b.ApplicationDeadline == nil:
			return a.Name < b.Name
		case a.ApplicationDeadline == nil:
			return false
		case b.ApplicationDeadline == nil:
			return true
		case !a.ApplicationDeadline.Equal(*b.ApplicationDeadline):
			return a.ApplicationDeadline.Before(*b.ApplicationDeadline)
		default:
			return a.Name < b.Name
		}
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

var _ Repo = (*MemoryRepo)(nil)
