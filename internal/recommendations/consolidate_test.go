package recommendations

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"admissions-backend/internal/llm"
	"admissions-backend/internal/profiles"
)

func TestConsolidateProducesGeneralRecommendations(t *testing.T) {
	payload, _ := json.Marshal(generalPayload{Recommendations: []generalItem{
		{Title: "Plan your SAT timeline", Reasoning: "Junior fall is the window.", Priority: "high"},
		{Title: "  ", Reasoning: "blank titles are dropped"},
		{Title: "Draft a college list", Priority: "urgent-ish"},
	}})
	stub := &stubLLM{payload: payload}
	agent := &ConsolidationAgent{LLM: stub}

	in := testAgentInput(&profiles.Snapshot{ProfileID: "p1", GraduationYear: 2028})
	recs := agent.Consolidate(context.Background(), in, nil)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	for _, rec := range recs {
		if rec.Category != CategoryGeneral {
			t.Fatalf("expected general category, got %s", rec.Category)
		}
	}
	if recs[1].Priority != "" {
		t.Fatalf("unknown priority should normalize to empty, got %q", recs[1].Priority)
	}
	if len(stub.tiers) != 1 || stub.tiers[0] != llm.TierFast {
		t.Fatalf("consolidation should use the fast tier, got %v", stub.tiers)
	}
}

func TestConsolidatePromptTruncatesReasoning(t *testing.T) {
	payload, _ := json.Marshal(generalPayload{})
	stub := &stubLLM{payload: payload}
	agent := &ConsolidationAgent{LLM: stub}

	long := strings.Repeat("x", 500)
	in := testAgentInput(&profiles.Snapshot{ProfileID: "p1", GraduationYear: 2028})
	agent.Consolidate(context.Background(), in, []GeneratedRecommendation{
		{Category: CategorySchool, Title: "Rice University", Reasoning: long},
	})

	if len(stub.prompts) != 1 {
		t.Fatalf("expected 1 prompt, got %d", len(stub.prompts))
	}
	if strings.Contains(stub.prompts[0], long) {
		t.Fatalf("full reasoning leaked into the consolidation prompt")
	}
	if !strings.Contains(stub.prompts[0], strings.Repeat("x", reasoningSummaryLimit)+"...") {
		t.Fatalf("expected truncated reasoning in prompt")
	}
}

func TestConsolidateRunsWithEmptyInput(t *testing.T) {
	payload, _ := json.Marshal(generalPayload{Recommendations: []generalItem{
		{Title: "Focus on course rigor"},
	}})
	agent := &ConsolidationAgent{LLM: &stubLLM{payload: payload}}

	in := testAgentInput(&profiles.Snapshot{ProfileID: "p1", GraduationYear: 2028})
	recs := agent.Consolidate(context.Background(), in, nil)
	if len(recs) != 1 {
		t.Fatalf("consolidation should run even with no category output, got %d", len(recs))
	}
}

func TestConsolidateFailsSoft(t *testing.T) {
	agent := &ConsolidationAgent{LLM: &stubLLM{err: errors.New("timeout")}}
	in := testAgentInput(&profiles.Snapshot{ProfileID: "p1", GraduationYear: 2028})
	if recs := agent.Consolidate(context.Background(), in, nil); recs != nil {
		t.Fatalf("expected nil on failure, got %v", recs)
	}
}

func TestTruncateReasoning(t *testing.T) {
	if got := truncateReasoning("short", 100); got != "short" {
		t.Fatalf("short input should pass through, got %q", got)
	}
	long := strings.Repeat("a", 150)
	got := truncateReasoning(long, 100)
	if len(got) != 103 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected 100 chars plus ellipsis, got %d chars", len(got))
	}
}
