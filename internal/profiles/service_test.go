package profiles

import (
	"context"
	"errors"
	"testing"
)

func seedRichProfile(repo *MemoryRepo) {
	year := 2028
	repo.PutProfile(Profile{
		ID:             "p1",
		UserID:         "u1",
		FirstName:      "Ada",
		GraduationYear: &year,
		GPA:            f64(3.9),
		GPAScale:       f64(4.0),
		Interests:      "robotics, debate",
	})
	repo.AddTestScore(TestScore{ID: "t1", ProfileID: "p1", TestType: "sat", Score: 1480, IsPrimary: true})
	repo.AddTestScore(TestScore{ID: "t2", ProfileID: "p1", TestType: "sat", Score: 1380, IsPrimary: false})
	repo.AddTestScore(TestScore{ID: "t3", ProfileID: "p1", TestType: "act", Score: 33, IsPrimary: true})

	repo.AddActivity(Activity{ID: "a1", ProfileID: "p1", Name: "Debate", IsLeadership: true, DisplayOrder: 1})
	repo.AddActivity(Activity{ID: "a2", ProfileID: "p1", Name: "Chess Club", DisplayOrder: 0}) // neither flag
	repo.AddActivity(Activity{ID: "a3", ProfileID: "p1", Name: "Robotics", IsStandout: true, DisplayOrder: 0})

	repo.AddAward(Award{ID: "w1", ProfileID: "p1", Title: "State Debate Champion", Tier: TierState})
	repo.AddAward(Award{ID: "w2", ProfileID: "p1", Title: "Attendance", Tier: TierSchool})

	stanford := "school-stanford"
	repo.AddSchool(SchoolListEntry{ID: "s1", ProfileID: "p1", SchoolID: &stanford, SchoolName: "Stanford University"})
	repo.AddSchool(SchoolListEntry{ID: "s2", ProfileID: "p1", SchoolName: "Olin College"})
	repo.AddProgram(ProgramListEntry{ID: "pr1", ProfileID: "p1", ProgramID: "prog-rsi"})
}

func TestSnapshotAssemblesProfile(t *testing.T) {
	repo := NewMemoryRepo()
	seedRichProfile(repo)
	svc := &Service{Repo: repo}

	snap, err := svc.Snapshot(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if snap.ProfileID != "p1" || snap.FirstName != "Ada" || snap.GraduationYear != 2028 {
		t.Fatalf("unexpected identity fields: %+v", snap)
	}
	if snap.SAT == nil || *snap.SAT != 1480 {
		t.Fatalf("expected primary SAT 1480, got %v", snap.SAT)
	}
	if snap.ACT == nil || *snap.ACT != 33 {
		t.Fatalf("expected primary ACT 33, got %v", snap.ACT)
	}

	// Only leadership-or-standout activities make the snapshot.
	if len(snap.Activities) != 2 {
		t.Fatalf("expected 2 activities, got %d: %+v", len(snap.Activities), snap.Activities)
	}
	for _, a := range snap.Activities {
		if a.Name == "Chess Club" {
			t.Fatalf("unflagged activity should be excluded")
		}
	}

	// Only state tier and above make the snapshot.
	if len(snap.Awards) != 1 || snap.Awards[0].Title != "State Debate Champion" {
		t.Fatalf("unexpected awards: %+v", snap.Awards)
	}

	if len(snap.ExistingSchoolNames) != 2 {
		t.Fatalf("expected 2 school names, got %v", snap.ExistingSchoolNames)
	}
	if len(snap.ExistingSchoolIDs) != 1 {
		t.Fatalf("only linked schools contribute ids, got %v", snap.ExistingSchoolIDs)
	}
	if len(snap.ExistingProgramIDs) != 1 || snap.ExistingProgramIDs[0] != "prog-rsi" {
		t.Fatalf("unexpected program ids: %v", snap.ExistingProgramIDs)
	}
}

func TestSnapshotUnknownProfile(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	if _, err := svc.Snapshot(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPreferencesAbsenceIsNotAnError(t *testing.T) {
	repo := NewMemoryRepo()
	seedRichProfile(repo)
	svc := &Service{Repo: repo}

	prefs, err := svc.Preferences(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs != nil {
		t.Fatalf("expected nil preferences when none saved, got %+v", prefs)
	}

	repo.PutPreferences(Preferences{ProfileID: "p1", PreferredMajors: "engineering"})
	prefs, err = svc.Preferences(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs == nil || prefs.PreferredMajors != "engineering" {
		t.Fatalf("unexpected preferences: %+v", prefs)
	}
}

func TestUpdateAboutAndAcademics(t *testing.T) {
	repo := NewMemoryRepo()
	seedRichProfile(repo)
	ctx := context.Background()

	year := 2029
	if err := repo.UpdateAbout(ctx, "p1", AboutUpdate{FirstName: "Ada", LastName: "L", GraduationYear: &year, Interests: "math"}); err != nil {
		t.Fatalf("UpdateAbout: %v", err)
	}
	if err := repo.UpdateAcademics(ctx, "p1", AcademicsUpdate{GPA: f64(4.0), GPAScale: f64(4.0)}); err != nil {
		t.Fatalf("UpdateAcademics: %v", err)
	}

	p, err := repo.GetProfile(ctx, "p1")
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.GraduationYear == nil || *p.GraduationYear != 2029 || p.Interests != "math" {
		t.Fatalf("about update not applied: %+v", p)
	}
	if p.GPA == nil || *p.GPA != 4.0 {
		t.Fatalf("academics update not applied: %+v", p)
	}

	if err := repo.UpdateAbout(ctx, "missing", AboutUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
