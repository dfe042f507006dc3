package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Vuhuydiet/smartrent-ai/apperrors"
	"github.com/Vuhuydiet/smartrent-ai/config"
	"github.com/Vuhuydiet/smartrent-ai/models"
)

// charsPerToken drives the token estimator: roughly 4 characters per
// token for English text. Gemini uses its own tokenization, so this is a
// deliberate approximation.
const charsPerToken = 4

// GeminiClient talks to the Gemini API through its OpenAI-compatible
// endpoint. One instance owns one UsageTracker.
type GeminiClient struct {
	api          *openai.Client
	modelName    string
	systemPrompt string
	timeout      time.Duration
	tracker      *UsageTracker
}

// NewGeminiClient builds a client from the given LLM configuration. The
// API key is validated here, at construction time, so a missing
// credential surfaces as a startup/health failure rather than on the
// first chat request.
func NewGeminiClient(cfg config.LLMConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not configured", apperrors.ErrConfiguration)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &GeminiClient{
		api:          openai.NewClientWithConfig(clientConfig),
		modelName:    cfg.Model,
		systemPrompt: cfg.SystemPrompt,
		timeout:      timeout,
		tracker:      NewUsageTracker(cfg.Model),
	}, nil
}

// Generate performs one chat completion for the rendered prompt. On
// success the embedded tracker is updated exactly once. Upstream failures
// are wrapped so the original provider message survives for logging.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, *models.TokenUsage, error) {
	promptTokens := c.EstimateTokens(prompt)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("ERROR: [LLM] Chat completion failed for model '%s': %v", c.modelName, err)
		return "", nil, fmt.Errorf("%w: failed to generate AI response: %v", apperrors.ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil, fmt.Errorf("%w: model '%s' returned no choices", apperrors.ErrUpstream, c.modelName)
	}

	text := resp.Choices[0].Message.Content
	completionTokens := c.EstimateTokens(text)
	usage := &models.TokenUsage{
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
	}
	c.tracker.Record(usage)

	return text, usage, nil
}

// EstimateTokens approximates the token count as len(text)/4, floored at
// 1. Monotonically non-decreasing in text length.
func (c *GeminiClient) EstimateTokens(text string) int {
	n := len(text) / charsPerToken
	if n < 1 {
		return 1
	}
	return n
}

// ModelName reports the configured model identifier.
func (c *GeminiClient) ModelName() string {
	return c.modelName
}

// PersonaPreamble returns the configured system prompt.
func (c *GeminiClient) PersonaPreamble() string {
	return c.systemPrompt
}

// UsageStats snapshots the session counters.
func (c *GeminiClient) UsageStats() models.UsageStats {
	return c.tracker.Snapshot()
}

// ResetDailyCounters zeroes the session counters.
func (c *GeminiClient) ResetDailyCounters() {
	c.tracker.ResetDailyCounters()
}
