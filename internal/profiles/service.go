package profiles

import (
	"context"
	"errors"
	"fmt"
)

// Service assembles agent-facing snapshots from stored profile data.
type Service struct {
	Repo Repo
}

// Snapshot performs the fan-in read for one profile: academics, primary test
// scores, top activities and awards, free-text context, and the existing
// school/program lists used downstream as exclusion filters.
func (s *Service) Snapshot(ctx context.Context, profileID string) (*Snapshot, error) {
	if profileID == "" {
		return nil, errors.New("profileID is required")
	}

	profile, err := s.Repo.GetProfile(ctx, profileID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("profile lookup id=%s: %w", profileID, err)
	}

	snapshot := &Snapshot{
		ProfileID:   profile.ID,
		FirstName:   profile.FirstName,
		GPA:         profile.GPA,
		GPAScale:    profile.GPAScale,
		ClassRank:   profile.ClassRank,
		ClassSize:   profile.ClassSize,
		Interests:   profile.Interests,
		Values:      profile.Values,
		Aspirations: profile.Aspirations,
	}
	if profile.GraduationYear != nil {
		snapshot.GraduationYear = *profile.GraduationYear
	}

	scores, err := s.Repo.PrimaryTestScores(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("test scores id=%s: %w", profileID, err)
	}
	for _, score := range scores {
		v := score.Score
		switch score.TestType {
		case "sat":
			snapshot.SAT = &v
		case "act":
			snapshot.ACT = &v
		}
	}

	activities, err := s.Repo.TopActivities(ctx, profileID, maxSnapshotActivities)
	if err != nil {
		return nil, fmt.Errorf("activities id=%s: %w", profileID, err)
	}
	for _, a := range activities {
		snapshot.Activities = append(snapshot.Activities, SnapshotActivity{
			Name:         a.Name,
			Role:         a.Role,
			IsLeadership: a.IsLeadership,
			IsStandout:   a.IsStandout,
		})
	}

	awards, err := s.Repo.TopAwards(ctx, profileID, maxSnapshotAwards)
	if err != nil {
		return nil, fmt.Errorf("awards id=%s: %w", profileID, err)
	}
	for _, a := range awards {
		snapshot.Awards = append(snapshot.Awards, SnapshotAward{Title: a.Title, Tier: a.Tier})
	}

	schoolList, err := s.Repo.ListSchools(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("school list id=%s: %w", profileID, err)
	}
	for _, entry := range schoolList {
		if entry.SchoolID != nil {
			snapshot.ExistingSchoolIDs = append(snapshot.ExistingSchoolIDs, *entry.SchoolID)
		}
		if entry.SchoolName != "" {
			snapshot.ExistingSchoolNames = append(snapshot.ExistingSchoolNames, entry.SchoolName)
		}
	}

	programList, err := s.Repo.ListPrograms(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("program list id=%s: %w", profileID, err)
	}
	for _, entry := range programList {
		snapshot.ExistingProgramIDs = append(snapshot.ExistingProgramIDs, entry.ProgramID)
	}

	return snapshot, nil
}

// GraduationYear returns the stored graduation year, or 0 when unset.
func (s *Service) GraduationYear(ctx context.Context, profileID string) (int, error) {
	profile, err := s.Repo.GetProfile(ctx, profileID)
	if err != nil {
		return 0, err
	}
	if profile.GraduationYear == nil {
		return 0, nil
	}
	return *profile.GraduationYear, nil
}

// Preferences returns the student's recommendation preferences, or nil when
// none are saved. Absence is not an error.
func (s *Service) Preferences(ctx context.Context, profileID string) (*Preferences, error) {
	prefs, err := s.Repo.GetPreferences(ctx, profileID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prefs, nil
}
