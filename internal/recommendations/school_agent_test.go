package recommendations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"admissions-backend/internal/catalog"
	"admissions-backend/internal/llm"
	"admissions-backend/internal/profiles"
)

// stubLLM returns a canned payload, or an error, and records the prompts it
// was asked to complete.
type stubLLM struct {
	payload json.RawMessage
	err     error
	prompts []string
	tiers   []llm.ModelTier
}

func (s *stubLLM) Complete(_ context.Context, input llm.CompletionInput) (json.RawMessage, error) {
	s.prompts = append(s.prompts, input.Prompt)
	s.tiers = append(s.tiers, input.Tier)
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func testAgentInput(snapshot *profiles.Snapshot) AgentInput {
	now := date(2026, time.October, 1)
	return AgentInput{
		Snapshot: snapshot,
		Stage:    StageFor(snapshot.GraduationYear, now, ""),
		Now:      now,
	}
}

func TestSchoolAgentFiltersExistingSchools(t *testing.T) {
	// The stub deliberately ignores the prompt's exclusion instruction; the
	// agent must filter anyway.
	payload, _ := json.Marshal(schoolPayload{Schools: []schoolItem{
		{Name: "Rice University", Tier: "target", Reasoning: "Strong fit.", FitScore: fit(0.8)},
		{Name: "stanford university", Tier: "reach", Reasoning: "Already tracked."},
		{Name: "", Tier: "safety"},
	}})
	agent := &SchoolAgent{LLM: &stubLLM{payload: payload}}

	in := testAgentInput(&profiles.Snapshot{
		ProfileID:           "p1",
		GraduationYear:      2028,
		ExistingSchoolNames: []string{"Stanford University"},
	})
	recs := agent.Generate(context.Background(), in)

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].Title != "Rice University" {
		t.Fatalf("expected Rice University, got %q", recs[0].Title)
	}
	if recs[0].Subtitle != "Target school" {
		t.Fatalf("expected tier subtitle, got %q", recs[0].Subtitle)
	}
	if recs[0].SchoolID != nil {
		t.Fatalf("expected no catalog match without a catalog, got %v", *recs[0].SchoolID)
	}
}

func TestSchoolAgentMatchesCatalogVariants(t *testing.T) {
	repo := catalog.NewMemoryRepo()
	repo.AddSchool(catalog.School{ID: "s-mich", Name: "University of Michigan"})

	payload, _ := json.Marshal(schoolPayload{Schools: []schoolItem{
		{Name: "Michigan", Tier: "target", Reasoning: "Catalog stores the long form."},
	}})
	agent := &SchoolAgent{LLM: &stubLLM{payload: payload}, Catalog: repo}

	recs := agent.Generate(context.Background(), testAgentInput(&profiles.Snapshot{
		ProfileID:      "p1",
		GraduationYear: 2028,
	}))

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].SchoolID == nil || *recs[0].SchoolID != "s-mich" {
		t.Fatalf("expected catalog match s-mich, got %v", recs[0].SchoolID)
	}
}

func TestSchoolAgentUnmatchedNameKeepsRecommendation(t *testing.T) {
	repo := catalog.NewMemoryRepo()

	payload, _ := json.Marshal(schoolPayload{Schools: []schoolItem{
		{Name: "Obscure College of the Plains", Tier: "safety", Reasoning: "Not in catalog."},
	}})
	agent := &SchoolAgent{LLM: &stubLLM{payload: payload}, Catalog: repo}

	recs := agent.Generate(context.Background(), testAgentInput(&profiles.Snapshot{
		ProfileID:      "p1",
		GraduationYear: 2028,
	}))

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	if recs[0].SchoolID != nil {
		t.Fatalf("expected nil SchoolID on catalog miss, got %v", *recs[0].SchoolID)
	}
}

func TestSchoolAgentFailsSoft(t *testing.T) {
	agent := &SchoolAgent{LLM: &stubLLM{err: errors.New("provider down")}}
	recs := agent.Generate(context.Background(), testAgentInput(&profiles.Snapshot{
		ProfileID:      "p1",
		GraduationYear: 2028,
	}))
	if recs != nil {
		t.Fatalf("expected nil on LLM failure, got %v", recs)
	}
}

func TestSchoolAgentRejectsMalformedPayload(t *testing.T) {
	agent := &SchoolAgent{LLM: &stubLLM{payload: json.RawMessage(`not json`)}}
	recs := agent.Generate(context.Background(), testAgentInput(&profiles.Snapshot{
		ProfileID:      "p1",
		GraduationYear: 2028,
	}))
	if recs != nil {
		t.Fatalf("expected nil on malformed payload, got %v", recs)
	}
}

func TestSchoolNameVariants(t *testing.T) {
	variants := schoolNameVariants("University of Michigan")
	found := false
	for _, v := range variants {
		if v == "Michigan" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected stripped variant, got %v", variants)
	}

	variants = schoolNameVariants("Rice")
	wantAny := map[string]bool{"University of Rice": false, "Rice University": false}
	for _, v := range variants {
		if _, ok := wantAny[v]; ok {
			wantAny[v] = true
		}
	}
	for v, seen := range wantAny {
		if !seen {
			t.Fatalf("missing variant %q in %v", v, variants)
		}
	}
}
