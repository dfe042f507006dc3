package llm

import (
	"context"

	"github.com/Vuhuydiet/smartrent-ai/models"
)

// Client is the language-model client used by the chat service. Every
// successful Generate call updates the instance's usage counters.
type Client interface {
	// Generate performs one text-generation call for the rendered prompt
	// and returns the response text with an approximate token accounting.
	Generate(ctx context.Context, prompt string) (string, *models.TokenUsage, error)

	// EstimateTokens returns a cheap, deterministic token approximation
	// for the given text. Not billing-accurate.
	EstimateTokens(text string) int

	// ModelName reports the configured model identifier.
	ModelName() string

	// PersonaPreamble returns the instructional text prepended to every
	// prompt by the context builder.
	PersonaPreamble() string

	// UsageStats snapshots the session counters.
	UsageStats() models.UsageStats

	// ResetDailyCounters zeroes the session counters.
	ResetDailyCounters()
}
