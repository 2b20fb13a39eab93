package recommendations

import (
	"context"
	"fmt"
	"strings"

	"admissions-backend/internal/catalog"
	"admissions-backend/internal/llm"
)

// SchoolAgent recommends colleges. It relies on the model's own knowledge of
// schools rather than a catalog prompt, then matches returned names back to
// catalog rows after the fact.
type SchoolAgent struct {
	LLM     llm.Client
	Catalog catalog.Repo
}

// Category returns CategorySchool.
func (a *SchoolAgent) Category() Category { return CategorySchool }

// Generate produces school recommendations, or an empty list on failure.
func (a *SchoolAgent) Generate(ctx context.Context, in AgentInput) []GeneratedRecommendation {
	ctx, cancel := context.WithTimeout(ctx, agentTimeout)
	defer cancel()
	recs, err := a.generate(ctx, in)
	return agentOutcome{recs: recs, err: err}.settle(CategorySchool, in.Snapshot.ProfileID)
}

func (a *SchoolAgent) generate(ctx context.Context, in AgentInput) ([]GeneratedRecommendation, error) {
	raw, err := a.LLM.Complete(ctx, llm.CompletionInput{
		System: systemPromptAdvisor,
		Prompt: a.buildPrompt(in),
		Tier:   llm.TierStandard,
	})
	if err != nil {
		return nil, fmt.Errorf("llm school recommendations: %w", err)
	}

	var payload schoolPayload
	if err := decodePayload(raw, &payload); err != nil {
		return nil, err
	}

	var out []GeneratedRecommendation
	for _, item := range payload.Schools {
		title := strings.TrimSpace(item.Name)
		if title == "" {
			continue
		}
		// The prompt asks the model to skip schools already on the student's
		// list, but the filter here is the enforcement point.
		if in.Snapshot.HasExistingSchoolName(title) {
			continue
		}
		rec := GeneratedRecommendation{
			Category:    CategorySchool,
			Title:       title,
			Subtitle:    tierSubtitle(item.Tier),
			Reasoning:   strings.TrimSpace(item.Reasoning),
			FitScore:    clampFitScore(item.FitScore),
			Priority:    normalizePriority(item.Priority),
			ActionItems: cleanActionItems(item.ActionItems),
			SchoolID:    a.matchCatalogSchool(ctx, title),
		}
		out = append(out, rec)
	}
	return out, nil
}

func (a *SchoolAgent) buildPrompt(in AgentInput) string {
	var b strings.Builder
	b.WriteString(profileBrief(in))

	b.WriteString("\nTASK\n")
	b.WriteString("Recommend 5-8 colleges for this student, split across reach, target, and safety tiers.\n")
	b.WriteString("Judge fit holistically: interest alignment, how the school strengthens the student's profile, realistic admission likelihood, and application deadline timing.\n")
	b.WriteString("Each reasoning must be 2-5 sentences specific to this student.\n")

	if len(in.Snapshot.ExistingSchoolNames) > 0 {
		b.WriteString("\nDo NOT recommend any of these schools, which are already on the student's list:\n")
		for _, name := range in.Snapshot.ExistingSchoolNames {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}

	b.WriteString("\nRespond with JSON matching exactly:\n")
	b.WriteString(`{"schools":[{"name":"string","tier":"reach|target|safety","reasoning":"string","fitScore":0.0,"priority":"high|medium|low","actionItems":["string"]}]}`)
	b.WriteString("\nfitScore is between 0 and 1.\n")
	return b.String()
}

// matchCatalogSchool resolves a free-text school name to a catalog id.
// Best-effort enrichment: any failure or miss leaves the recommendation
// standing on its title alone.
func (a *SchoolAgent) matchCatalogSchool(ctx context.Context, name string) *string {
	if a.Catalog == nil {
		return nil
	}
	for _, variant := range schoolNameVariants(name) {
		school, err := a.Catalog.FindSchoolByName(ctx, variant)
		if err == nil {
			return &school.ID
		}
	}
	results, err := a.Catalog.SearchSchools(ctx, name, 1)
	if err == nil && len(results) == 1 {
		return &results[0].ID
	}
	return nil
}

// schoolNameVariants generates plausible catalog spellings of a school name:
// the name as given, with "University of" stripped or prepended, and with a
// trailing "University" stripped or appended.
func schoolNameVariants(name string) []string {
	trimmed := strings.TrimSpace(name)
	variants := []string{trimmed}
	lower := strings.ToLower(trimmed)

	if strings.HasPrefix(lower, "university of ") {
		variants = append(variants, strings.TrimSpace(trimmed[len("university of "):]))
	} else {
		variants = append(variants, "University of "+trimmed)
	}
	if strings.HasSuffix(lower, " university") {
		variants = append(variants, strings.TrimSpace(trimmed[:len(trimmed)-len(" university")]))
	} else {
		variants = append(variants, trimmed+" University")
	}
	return variants
}

func tierSubtitle(tier string) string {
	switch strings.ToLower(strings.TrimSpace(tier)) {
	case "reach":
		return "Reach school"
	case "target":
		return "Target school"
	case "safety":
		return "Safety school"
	default:
		return ""
	}
}

var _ Agent = (*SchoolAgent)(nil)
