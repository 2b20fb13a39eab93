package recommendations

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"admissions-backend/internal/profiles"
	"admissions-backend/internal/shared/metrics"
	"admissions-backend/internal/shared/telemetry"
)

// Service orchestrates a recommendation run: snapshot, stage, agent fan-out,
// consolidation, prioritization, and the atomic batch swap. Concurrent runs
// for the same profile are serialized so the dismiss-then-insert swap cannot
// interleave.
type Service struct {
	Profiles     *profiles.Service
	Repo         Repo
	Agents       []Agent
	Consolidator *ConsolidationAgent

	// Now is the clock used for stage derivation. Tests override it.
	Now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService wires the orchestrator from its dependencies.
func NewService(profileSvc *profiles.Service, repo Repo, agents []Agent, consolidator *ConsolidationAgent) *Service {
	return &Service{
		Profiles:     profileSvc,
		Repo:         repo,
		Agents:       agents,
		Consolidator: consolidator,
		Now:          time.Now,
		locks:        make(map[string]*sync.Mutex),
	}
}

// Generate runs the full pipeline for one profile and persists the result as
// the new active batch. gradeOverride, when non-empty, takes precedence over
// the grade derived from the stored graduation year.
//
// Agent failures degrade the run (fewer recommendations); only a missing
// profile or a persistence failure fails it.
func (s *Service) Generate(ctx context.Context, profileID, gradeOverride string) (RunResult, error) {
	metrics.IncRunStarted()
	start := time.Now()

	unlock := s.lockProfile(profileID)
	defer unlock()

	result, err := s.run(ctx, profileID, gradeOverride)
	if err != nil {
		metrics.IncRunFailed()
		return RunResult{}, err
	}

	elapsed := time.Since(start)
	metrics.IncRunCompleted()
	metrics.ObserveRunDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("run.complete", map[string]any{
		"profile_id":  profileID,
		"stage":       result.Stage.Stage,
		"generated":   len(result.Recommendations),
		"saved":       result.SavedCount,
		"duration_ms": elapsed.Milliseconds(),
	})
	return result, nil
}

func (s *Service) run(ctx context.Context, profileID, gradeOverride string) (RunResult, error) {
	snapshot, err := s.Profiles.Snapshot(ctx, profileID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return RunResult{}, ErrProfileNotFound
		}
		return RunResult{}, fmt.Errorf("snapshot: %w", err)
	}

	prefs, err := s.Profiles.Preferences(ctx, profileID)
	if err != nil {
		return RunResult{}, fmt.Errorf("preferences: %w", err)
	}

	now := s.Now()
	stage := StageFor(snapshot.GraduationYear, now, gradeOverride)

	// Terminal and unknown stages get no agents and leave any existing
	// batch untouched.
	if len(stage.RecommendationTypes) == 0 {
		return RunResult{Stage: stage}, nil
	}

	in := AgentInput{
		Snapshot:    snapshot,
		Stage:       stage,
		Preferences: prefs,
		Now:         now,
	}

	generated := s.fanOut(ctx, in)
	if s.Consolidator != nil && stage.Includes(CategoryGeneral) {
		generated = append(generated, s.Consolidator.Consolidate(ctx, in, generated)...)
	}
	generated = Prioritize(generated)

	rows, err := s.Repo.ReplaceActive(ctx, profileID, snapshot.Fingerprint(stage.Grade), generated)
	if err != nil {
		return RunResult{}, fmt.Errorf("persist batch: %w", err)
	}

	return RunResult{
		Recommendations: generated,
		Stage:           stage,
		SavedCount:      len(rows),
	}, nil
}

// fanOut runs every stage-enabled category agent concurrently and collects
// their outputs in agent registration order. Agents are fail-soft, so the
// group never returns an error; it exists for the shared cancellation.
func (s *Service) fanOut(ctx context.Context, in AgentInput) []GeneratedRecommendation {
	results := make([][]GeneratedRecommendation, len(s.Agents))
	g, ctx := errgroup.WithContext(ctx)
	for i, agent := range s.Agents {
		if !in.Stage.Includes(agent.Category()) {
			continue
		}
		i, agent := i, agent
		g.Go(func() error {
			results[i] = agent.Generate(ctx, in)
			return nil
		})
	}
	_ = g.Wait()

	var out []GeneratedRecommendation
	for _, recs := range results {
		out = append(out, recs...)
	}
	return out
}

// ListActive returns the profile's active recommendations in stored order.
func (s *Service) ListActive(ctx context.Context, profileID string) ([]Recommendation, error) {
	return s.Repo.ListActive(ctx, profileID)
}

// Dismiss marks a recommendation dismissed, recording optional feedback.
func (s *Service) Dismiss(ctx context.Context, id, feedback string) error {
	return s.Repo.Dismiss(ctx, id, feedback)
}

// MarkSaved marks a recommendation saved.
func (s *Service) MarkSaved(ctx context.Context, id string) error {
	return s.Repo.MarkSaved(ctx, id)
}

// MarkActedUpon marks a recommendation acted upon.
func (s *Service) MarkActedUpon(ctx context.Context, id string) error {
	return s.Repo.MarkActedUpon(ctx, id)
}

func (s *Service) lockProfile(profileID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[profileID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[profileID] = lock
	}
	s.mu.Unlock()
	lock.Lock()
	return lock.Unlock
}
