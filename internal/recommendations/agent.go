package recommendations

import (
	"context"
	"time"

	"admissions-backend/internal/profiles"
	"admissions-backend/internal/shared/metrics"
	"admissions-backend/internal/shared/telemetry"
)

// agentTimeout bounds each agent's LLM call so a stalled request can never
// hold up the whole run. A timeout degrades to an empty list like any other
// agent failure.
const agentTimeout = 90 * time.Second

// AgentInput is the shared input for one agent invocation.
type AgentInput struct {
	Snapshot    *profiles.Snapshot
	Stage       StageInfo
	Preferences *profiles.Preferences
	Now         time.Time
}

// Agent generates recommendations of a single category. Generate never
// returns an error to the caller: failures are recovered internally and
// surface as an empty list so one agent can never block the others.
type Agent interface {
	Category() Category
	Generate(ctx context.Context, in AgentInput) []GeneratedRecommendation
}

// agentOutcome is the tagged result agents produce internally. The
// orchestrator flattens failures to empty lists, but the distinction between
// "model said no" and "call failed" is kept here for logging.
type agentOutcome struct {
	recs []GeneratedRecommendation
	err  error
}

// settle flattens an outcome to the fail-soft contract, recording failures.
func (o agentOutcome) settle(category Category, profileID string) []GeneratedRecommendation {
	if o.err != nil {
		metrics.IncAgentFailed()
		telemetry.Warn("agent.failed", map[string]any{
			"category":   string(category),
			"profile_id": profileID,
			"error":      o.err.Error(),
		})
		return nil
	}
	return o.recs
}
