package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// ModelTier selects the model class for a completion.
type ModelTier string

const (
	// TierStandard is the default model used for fit reasoning.
	TierStandard ModelTier = "standard"
	// TierFast is a cheaper model used for short synthesis prompts.
	TierFast ModelTier = "fast"
)

// Client abstracts LLM providers for structured recommendation generation.
// Implementations must return a valid JSON document matching the schema
// described inside the prompt, or an error.
type Client interface {
	Complete(ctx context.Context, input CompletionInput) (json.RawMessage, error)
}

// CompletionInput captures a single structured-output completion request.
type CompletionInput struct {
	System string
	Prompt string
	Tier   ModelTier
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// Complete returns ErrNotImplemented.
func (PlaceholderClient) Complete(ctx context.Context, input CompletionInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
