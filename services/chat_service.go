package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Vuhuydiet/smartrent-ai/apperrors"
	"github.com/Vuhuydiet/smartrent-ai/llm"
	"github.com/Vuhuydiet/smartrent-ai/models"
	"github.com/Vuhuydiet/smartrent-ai/repository"
)

// ChatService orchestrates one chat request: conversation lookup, prompt
// rendering, the model call and history bookkeeping.
type ChatService interface {
	ProcessChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	GetConversation(conversationID string) (*models.ConversationHistory, error)
	ClearConversation(conversationID string) bool
	ListConversations() []string
	TokenUsageStats() (*models.AccountTokenInfo, error)
	ResetDailyCounters() error
}

type chatService struct {
	llmClient llm.Client // nil when the credential is missing
	convRepo  repository.ConversationRepository
	builder   *ContextBuilder
}

// NewChatService creates the chat orchestrator. llmClient may be nil when
// construction failed at startup (missing credential); conversation
// read/delete endpoints keep working, chat and usage calls fail with a
// configuration error.
func NewChatService(llmClient llm.Client, convRepo repository.ConversationRepository, builder *ContextBuilder) ChatService {
	return &chatService{
		llmClient: llmClient,
		convRepo:  convRepo,
		builder:   builder,
	}
}

// ProcessChat handles one chat turn. Steps run strictly in order: each
// one feeds the next. On a model failure the user turn has already been
// appended and stays; no retry is attempted.
func (s *chatService) ProcessChat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, fmt.Errorf("%w: message cannot be empty", apperrors.ErrValidation)
	}
	if s.llmClient == nil {
		return nil, fmt.Errorf("%w: chatbot service is not available", apperrors.ErrConfiguration)
	}

	conversation := s.convRepo.GetOrCreate(req.ConversationID)
	conversationID := conversation.ConversationID

	conversation, err := s.convRepo.Append(conversationID, models.Message{
		Role:      models.RoleUser,
		Content:   req.Message,
		Timestamp: time.Now(),
	})
	if err != nil {
		return nil, err
	}

	prompt := s.builder.Render(s.llmClient.PersonaPreamble(), conversation, req.Context)

	responseText, usage, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		log.Printf("ERROR: [ChatService] Model call failed for conversation '%s': %v", conversationID, err)
		return nil, fmt.Errorf("%w: failed to process chat request: %v", apperrors.ErrProcessing, err)
	}

	if _, err := s.convRepo.Append(conversationID, models.Message{
		Role:      models.RoleAssistant,
		Content:   responseText,
		Timestamp: time.Now(),
	}); err != nil {
		return nil, err
	}

	return &models.ChatResponse{
		Message:        responseText,
		ConversationID: conversationID,
		Timestamp:      time.Now(),
		ModelUsed:      s.llmClient.ModelName(),
		TokenUsage:     usage,
	}, nil
}

// GetConversation returns the history for conversationID, or ErrNotFound.
func (s *chatService) GetConversation(conversationID string) (*models.ConversationHistory, error) {
	conversation, exists := s.convRepo.Get(conversationID)
	if !exists {
		return nil, fmt.Errorf("%w: conversation '%s' does not exist", apperrors.ErrNotFound, conversationID)
	}
	return conversation, nil
}

// ClearConversation removes the history, reporting whether it existed.
func (s *chatService) ClearConversation(conversationID string) bool {
	return s.convRepo.Delete(conversationID)
}

// ListConversations returns all known conversation ids.
func (s *chatService) ListConversations() []string {
	return s.convRepo.ListIDs()
}

// TokenUsageStats reports the session counters. The upstream API exposes
// no quota introspection, so the remaining/limit fields stay null.
func (s *chatService) TokenUsageStats() (*models.AccountTokenInfo, error) {
	if s.llmClient == nil {
		return nil, fmt.Errorf("%w: chatbot service is not available", apperrors.ErrConfiguration)
	}
	stats := s.llmClient.UsageStats()
	return &models.AccountTokenInfo{
		RequestsMadeToday: stats.RequestsMadeToday,
		LastUpdated:       stats.LastUpdated,
	}, nil
}

// ResetDailyCounters zeroes the session counters.
func (s *chatService) ResetDailyCounters() error {
	if s.llmClient == nil {
		return fmt.Errorf("%w: chatbot service is not available", apperrors.ErrConfiguration)
	}
	s.llmClient.ResetDailyCounters()
	log.Println("INFO: [ChatService] Daily token counters have been reset.")
	return nil
}
