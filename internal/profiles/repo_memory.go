package profiles

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores profiles in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu          sync.RWMutex
	profiles    map[string]Profile
	scores      map[string][]TestScore
	activities  map[string][]Activity
	awards      map[string][]Award
	schools     map[string][]SchoolListEntry
	programs    map[string][]ProgramListEntry
	preferences map[string]Preferences
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		profiles:    make(map[string]Profile),
		scores:      make(map[string][]TestScore),
		activities:  make(map[string][]Activity),
		awards:      make(map[string][]Award),
		schools:     make(map[string][]SchoolListEntry),
		programs:    make(map[string][]ProgramListEntry),
		preferences: make(map[string]Preferences),
	}
}

// PutProfile stores a profile.
func (r *MemoryRepo) PutProfile(p Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

// AddTestScore appends a test score.
func (r *MemoryRepo) AddTestScore(s TestScore) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[s.ProfileID] = append(r.scores[s.ProfileID], s)
}

// AddActivity appends an activity.
func (r *MemoryRepo) AddActivity(a Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.activities[a.ProfileID] = append(r.activities[a.ProfileID], a)
}

// AddAward appends an award.
func (r *MemoryRepo) AddAward(a Award) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.awards[a.ProfileID] = append(r.awards[a.ProfileID], a)
}

// AddSchool appends a tracked school.
func (r *MemoryRepo) AddSchool(entry SchoolListEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schools[entry.ProfileID] = append(r.schools[entry.ProfileID], entry)
}

// AddProgram appends a tracked program.
func (r *MemoryRepo) AddProgram(entry ProgramListEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.programs[entry.ProfileID] = append(r.programs[entry.ProfileID], entry)
}

// PutPreferences stores recommendation preferences.
func (r *MemoryRepo) PutPreferences(p Preferences) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preferences[p.ProfileID] = p
}

// GetProfile returns a profile by ID.
func (r *MemoryRepo) GetProfile(ctx context.Context, profileID string) (Profile, error) {
	if err := ctx.Err(); err != nil {
		return Profile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[profileID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

// PrimaryTestScores returns primary-flagged scores.
func (r *MemoryRepo) PrimaryTestScores(ctx context.Context, profileID string) ([]TestScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []TestScore
	for _, s := range r.scores[profileID] {
		if s.IsPrimary {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TestType < out[j].TestType })
	return out, nil
}

// TopActivities returns leadership-or-standout activities in display order.
func (r *MemoryRepo) TopActivities(ctx context.Context, profileID string, limit int) ([]Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = maxSnapshotActivities
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Activity
	for _, a := range r.activities[profileID] {
		if a.IsLeadership || a.IsStandout {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// TopAwards returns state-tier-or-above awards.
func (r *MemoryRepo) TopAwards(ctx context.Context, profileID string, limit int) ([]Award, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = maxSnapshotAwards
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Award
	for _, a := range r.awards[profileID] {
		switch a.Tier {
		case TierState, TierNational, TierInternational:
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if tr := tierRank(out[i].Tier) - tierRank(out[j].Tier); tr != 0 {
			return tr < 0
		}
		return out[i].Title < out[j].Title
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func tierRank(tier string) int {
	switch tier {
	case TierInternational:
		return 0
	case TierNational:
		return 1
	default:
		return 2
	}
}

// ListSchools returns the tracked school list.
func (r *MemoryRepo) ListSchools(ctx context.Context, profileID string) ([]SchoolListEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]SchoolListEntry(nil), r.schools[profileID]...), nil
}

// ListPrograms returns the tracked program list.
func (r *MemoryRepo) ListPrograms(ctx context.Context, profileID string) ([]ProgramListEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]ProgramListEntry(nil), r.programs[profileID]...), nil
}

// GetPreferences returns saved preferences or ErrNotFound.
func (r *MemoryRepo) GetPreferences(ctx context.Context, profileID string) (Preferences, error) {
	if err := ctx.Err(); err != nil {
		return Preferences{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	prefs, ok := r.preferences[profileID]
	if !ok {
		return Preferences{}, ErrNotFound
	}
	return prefs, nil
}

// UpdateAbout replaces the profile's identity and free-text fields.
func (r *MemoryRepo) UpdateAbout(ctx context.Context, profileID string, about AboutUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profileID]
	if !ok {
		return ErrNotFound
	}
	p.FirstName = about.FirstName
	p.LastName = about.LastName
	p.GraduationYear = about.GraduationYear
	p.Interests = about.Interests
	p.Values = about.Values
	p.Aspirations = about.Aspirations
	r.profiles[profileID] = p
	return nil
}

// UpdateAcademics replaces the profile's academic numbers.
func (r *MemoryRepo) UpdateAcademics(ctx context.Context, profileID string, academics AcademicsUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profileID]
	if !ok {
		return ErrNotFound
	}
	p.GPA = academics.GPA
	p.GPAScale = academics.GPAScale
	p.ClassRank = academics.ClassRank
	p.ClassSize = academics.ClassSize
	r.profiles[profileID] = p
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
