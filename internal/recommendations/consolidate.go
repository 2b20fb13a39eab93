package recommendations

import (
	"context"
	"fmt"
	"strings"

	"admissions-backend/internal/llm"
)

// reasoningSummaryLimit caps how much of each category recommendation's
// reasoning is replayed into the consolidation prompt.
const reasoningSummaryLimit = 100

// ConsolidationAgent runs after the category agents and turns the combined
// picture into general guidance: cross-cutting next steps that no single
// category captures. It always runs, even when every category agent came
// back empty.
type ConsolidationAgent struct {
	LLM llm.Client
}

// Category returns CategoryGeneral.
func (a *ConsolidationAgent) Category() Category { return CategoryGeneral }

// Consolidate produces 2-4 general recommendations from the stage and the
// already-generated category recommendations. Failures degrade to an empty
// list like any other agent.
func (a *ConsolidationAgent) Consolidate(ctx context.Context, in AgentInput, generated []GeneratedRecommendation) []GeneratedRecommendation {
	ctx, cancel := context.WithTimeout(ctx, agentTimeout)
	defer cancel()
	recs, err := a.consolidate(ctx, in, generated)
	return agentOutcome{recs: recs, err: err}.settle(CategoryGeneral, in.Snapshot.ProfileID)
}

func (a *ConsolidationAgent) consolidate(ctx context.Context, in AgentInput, generated []GeneratedRecommendation) ([]GeneratedRecommendation, error) {
	raw, err := a.LLM.Complete(ctx, llm.CompletionInput{
		System: systemPromptAdvisor,
		Prompt: a.buildPrompt(in, generated),
		Tier:   llm.TierFast,
	})
	if err != nil {
		return nil, fmt.Errorf("llm general recommendations: %w", err)
	}

	var payload generalPayload
	if err := decodePayload(raw, &payload); err != nil {
		return nil, err
	}

	var out []GeneratedRecommendation
	for _, item := range payload.Recommendations {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		out = append(out, GeneratedRecommendation{
			Category:      CategoryGeneral,
			Title:         title,
			Subtitle:      strings.TrimSpace(item.Subtitle),
			Reasoning:     strings.TrimSpace(item.Reasoning),
			Priority:      normalizePriority(item.Priority),
			ActionItems:   cleanActionItems(item.ActionItems),
			RelevantGrade: in.Stage.Grade,
		})
	}
	return out, nil
}

func (a *ConsolidationAgent) buildPrompt(in AgentInput, generated []GeneratedRecommendation) string {
	var b strings.Builder
	b.WriteString(profileBrief(in))

	if len(generated) > 0 {
		b.WriteString("\nRECOMMENDATIONS ALREADY GENERATED THIS RUN\n")
		for _, rec := range generated {
			fmt.Fprintf(&b, "- [%s] %s", rec.Category, rec.Title)
			if rec.Reasoning != "" {
				fmt.Fprintf(&b, ": %s", truncateReasoning(rec.Reasoning, reasoningSummaryLimit))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString("\nNo category-specific recommendations were generated this run.\n")
	}

	b.WriteString("\nTASK\n")
	b.WriteString("Write 2-4 general recommendations: concrete next steps for this student that complement the items above without repeating them.\n")
	b.WriteString("Focus on the current stage priorities. Examples: testing plans, course selection, essay timing, activity depth.\n")
	b.WriteString("Each reasoning must be 1-3 sentences specific to this student.\n")

	b.WriteString("\nRespond with JSON matching exactly:\n")
	b.WriteString(`{"recommendations":[{"title":"string","subtitle":"string","reasoning":"string","priority":"high|medium|low","actionItems":["string"]}]}`)
	b.WriteString("\n")
	return b.String()
}
