package recommendations

import (
	"encoding/json"
	"fmt"
	"strings"
)

// LLM output payloads. Each agent constrains the model to one of these shapes
// via its prompt; decoding failures count as agent failures.

type schoolItem struct {
	Name        string   `json:"name"`
	Tier        string   `json:"tier"` // reach | target | safety
	Reasoning   string   `json:"reasoning"`
	FitScore    *float64 `json:"fitScore"`
	Priority    string   `json:"priority"`
	ActionItems []string `json:"actionItems"`
}

type schoolPayload struct {
	Schools []schoolItem `json:"schools"`
}

type programItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Reasoning   string   `json:"reasoning"`
	FitScore    *float64 `json:"fitScore"`
	Priority    string   `json:"priority"`
	ActionItems []string `json:"actionItems"`
}

type programPayload struct {
	Programs []programItem `json:"programs"`
}

type generalItem struct {
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Reasoning   string   `json:"reasoning"`
	Priority    string   `json:"priority"`
	ActionItems []string `json:"actionItems"`
}

type generalPayload struct {
	Recommendations []generalItem `json:"recommendations"`
}

func decodePayload(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("llm output invalid: %w", err)
	}
	return nil
}

// normalizePriority maps model output onto the known tiers, dropping anything else.
func normalizePriority(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case PriorityHigh:
		return PriorityHigh
	case PriorityMedium:
		return PriorityMedium
	case PriorityLow:
		return PriorityLow
	default:
		return ""
	}
}

// clampFitScore constrains a model-provided score to [0, 1].
func clampFitScore(score *float64) *float64 {
	if score == nil {
		return nil
	}
	v := *score
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return &v
}

func cleanActionItems(items []string) []string {
	var out []string
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
