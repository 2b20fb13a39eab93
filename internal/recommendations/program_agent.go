package recommendations

import (
	"context"
	"fmt"
	"strings"

	"admissions-backend/internal/catalog"
	"admissions-backend/internal/llm"
)

// maxProgramCandidates bounds the catalog rows offered to the model, biasing
// toward time-sensitive options via the deadline-ascending order.
const maxProgramCandidates = 20

// ProgramAgent recommends summer programs from the catalog. Unlike the school
// agent it constrains the model to a candidate set, so every surfaced
// recommendation resolves to a known catalog row.
type ProgramAgent struct {
	LLM     llm.Client
	Catalog catalog.Repo
}

// Category returns CategoryProgram.
func (a *ProgramAgent) Category() Category { return CategoryProgram }

// Generate produces program recommendations, or an empty list on failure.
func (a *ProgramAgent) Generate(ctx context.Context, in AgentInput) []GeneratedRecommendation {
	// Hard stop: by senior winter no summer program makes sense anymore.
	switch in.Stage.Stage {
	case "senior_winter", "senior_spring":
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, agentTimeout)
	defer cancel()
	recs, err := a.generate(ctx, in)
	return agentOutcome{recs: recs, err: err}.settle(CategoryProgram, in.Snapshot.ProfileID)
}

func (a *ProgramAgent) generate(ctx context.Context, in AgentInput) ([]GeneratedRecommendation, error) {
	grade := in.Stage.GradeNumber()
	if grade == 0 {
		return nil, nil
	}

	candidates, err := a.Catalog.EligiblePrograms(ctx, catalog.ProgramQuery{
		Grade:           grade,
		ApplicationYear: targetApplicationYear(in),
		ExcludeIDs:      in.Snapshot.ExistingProgramIDSet(),
		Limit:           maxProgramCandidates,
	})
	if err != nil {
		return nil, fmt.Errorf("program candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	raw, err := a.LLM.Complete(ctx, llm.CompletionInput{
		System: systemPromptAdvisor,
		Prompt: a.buildPrompt(in, candidates),
		Tier:   llm.TierStandard,
	})
	if err != nil {
		return nil, fmt.Errorf("llm program recommendations: %w", err)
	}

	var payload programPayload
	if err := decodePayload(raw, &payload); err != nil {
		return nil, err
	}

	byID := make(map[string]catalog.SummerProgram, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
	}
	existing := in.Snapshot.ExistingProgramIDSet()

	var out []GeneratedRecommendation
	for _, item := range payload.Programs {
		program, known := byID[strings.TrimSpace(item.ID)]
		if !known {
			// Never surface an unresolvable reference.
			continue
		}
		if _, tracked := existing[program.ID]; tracked {
			continue
		}
		id := program.ID
		rec := GeneratedRecommendation{
			Category:      CategoryProgram,
			Title:         program.Name,
			Subtitle:      program.Organization,
			Reasoning:     strings.TrimSpace(item.Reasoning),
			FitScore:      clampFitScore(item.FitScore),
			Priority:      normalizePriority(item.Priority),
			ActionItems:   cleanActionItems(item.ActionItems),
			RelevantGrade: in.Stage.Grade,
			ExpiresAt:     program.ApplicationDeadline,
			ProgramID:     &id,
		}
		out = append(out, rec)
	}
	return out, nil
}

// targetApplicationYear picks which application year's programs to query.
// Outside summer, this year's programs have already started, so candidates
// come from the next calendar year.
func targetApplicationYear(in AgentInput) int {
	year := in.Now.Year()
	if in.Stage.Season != SeasonSummer {
		return year + 1
	}
	return year
}

func (a *ProgramAgent) buildPrompt(in AgentInput, candidates []catalog.SummerProgram) string {
	var b strings.Builder
	b.WriteString(profileBrief(in))

	b.WriteString("\nCANDIDATE SUMMER PROGRAMS\n")
	b.WriteString("Choose only from this list, referencing programs by id:\n")
	for _, c := range candidates {
		fmt.Fprintf(&b, "- id: %s | %s", c.ID, c.Name)
		if c.Organization != "" {
			fmt.Fprintf(&b, " (%s)", c.Organization)
		}
		if len(c.FocusAreas) > 0 {
			fmt.Fprintf(&b, " | focus: %s", strings.Join(c.FocusAreas, ", "))
		}
		if c.ApplicationDeadline != nil {
			fmt.Fprintf(&b, " | deadline: %s", c.ApplicationDeadline.Format("2006-01-02"))
		}
		if c.Description != "" {
			fmt.Fprintf(&b, " | %s", c.Description)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nTASK\n")
	b.WriteString("Recommend the 3-5 programs from the candidate list that best fit this student.\n")
	b.WriteString("Judge fit holistically: interest alignment, how the program strengthens the student's profile, realistic admission likelihood, and deadline timing.\n")
	b.WriteString("Each reasoning must be 2-5 sentences specific to this student.\n")

	b.WriteString("\nRespond with JSON matching exactly:\n")
	b.WriteString(`{"programs":[{"id":"string","name":"string","reasoning":"string","fitScore":0.0,"priority":"high|medium|low","actionItems":["string"]}]}`)
	b.WriteString("\nfitScore is between 0 and 1. id must be one of the candidate ids.\n")
	return b.String()
}

var _ Agent = (*ProgramAgent)(nil)
