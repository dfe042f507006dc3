package models

import (
	"time"
)

// Message roles stored in a conversation history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn. Immutable once appended;
// ordering within a conversation is append order.
type Message struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationHistory is the ordered message history for one conversation
// id. Owned exclusively by the conversation repository; UpdatedAt is
// monotonically non-decreasing across appends.
type ConversationHistory struct {
	ConversationID string    `json:"conversation_id"`
	Messages       []Message `json:"messages"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ChatRequest is the inbound chat payload. ConversationID and Context are
// optional; an empty ConversationID makes the service mint a new one.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id,omitempty"`
	Context        string `json:"context,omitempty"`
}

// TokenUsage is an approximate accounting of one model call. Counts come
// from a cheap length-based estimator, not the model tokenizer, and must
// not be treated as billing-accurate.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse is returned for a processed chat request.
type ChatResponse struct {
	Message        string      `json:"message"`
	ConversationID string      `json:"conversation_id"`
	Timestamp      time.Time   `json:"timestamp"`
	ModelUsed      string      `json:"model_used"`
	TokenUsage     *TokenUsage `json:"token_usage,omitempty"`
}

// UsageStats is a snapshot of one client instance's session counters.
// Never persisted; counters reset to zero on process restart.
type UsageStats struct {
	RequestsMadeToday    int       `json:"requests_made_today"`
	TotalTokensUsedToday int       `json:"total_tokens_used_today"`
	ModelName            string    `json:"model_name"`
	LastUpdated          time.Time `json:"last_updated"`
}

// AccountTokenInfo reports session-based usage to the client. The Gemini
// API exposes no quota introspection, so the remaining/limit/rate fields
// are always null.
type AccountTokenInfo struct {
	RequestsMadeToday      int       `json:"requests_made_today"`
	RequestsRemainingToday *int      `json:"requests_remaining_today"`
	DailyRequestLimit      *int      `json:"daily_request_limit"`
	RateLimitPerMinute     *int      `json:"rate_limit_per_minute"`
	LastUpdated            time.Time `json:"last_updated"`
}
