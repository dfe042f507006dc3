package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Vuhuydiet/smartrent-ai/apperrors"
	"github.com/Vuhuydiet/smartrent-ai/llm"
	"github.com/Vuhuydiet/smartrent-ai/models"
	"github.com/Vuhuydiet/smartrent-ai/repository"
)

// MockLLMClient is a mock type for the llm.Client interface.
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, *models.TokenUsage, error) {
	args := m.Called(ctx, prompt)
	var usage *models.TokenUsage
	if args.Get(1) != nil {
		usage = args.Get(1).(*models.TokenUsage)
	}
	return args.String(0), usage, args.Error(2)
}

func (m *MockLLMClient) EstimateTokens(text string) int {
	args := m.Called(text)
	return args.Int(0)
}

func (m *MockLLMClient) ModelName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLLMClient) PersonaPreamble() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLLMClient) UsageStats() models.UsageStats {
	args := m.Called()
	return args.Get(0).(models.UsageStats)
}

func (m *MockLLMClient) ResetDailyCounters() {
	m.Called()
}

var _ llm.Client = (*MockLLMClient)(nil)

func newTestChatService(client llm.Client) (ChatService, repository.ConversationRepository) {
	convRepo := repository.NewConversationRepository(0)
	return NewChatService(client, convRepo, NewContextBuilder(10)), convRepo
}

func TestChatService_ProcessChat(t *testing.T) {
	t.Run("New conversation appends one user and one assistant turn", func(t *testing.T) {
		mockLLM := new(MockLLMClient)
		mockLLM.On("PersonaPreamble").Return("You are a test assistant.")
		mockLLM.On("ModelName").Return("gemini-2.5-pro")
		mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).
			Return("Hello! How can I help you with SmartRent today?",
				&models.TokenUsage{PromptTokens: 10, CompletionTokens: 15, TotalTokens: 25}, nil).Once()

		service, convRepo := newTestChatService(mockLLM)
		response, err := service.ProcessChat(context.Background(), models.ChatRequest{Message: "Hello"})

		assert.NoError(t, err)
		assert.NotNil(t, response)
		assert.Equal(t, "Hello! How can I help you with SmartRent today?", response.Message)
		assert.NotEmpty(t, response.ConversationID)
		assert.Equal(t, "gemini-2.5-pro", response.ModelUsed)
		assert.Equal(t, 25, response.TokenUsage.TotalTokens)

		history, exists := convRepo.Get(response.ConversationID)
		assert.True(t, exists)
		assert.Len(t, history.Messages, 2)
		assert.Equal(t, models.RoleUser, history.Messages[0].Role)
		assert.Equal(t, "Hello", history.Messages[0].Content)
		assert.Equal(t, models.RoleAssistant, history.Messages[1].Role)
		mockLLM.AssertExpectations(t)
	})

	t.Run("Follow-up request reuses the conversation", func(t *testing.T) {
		mockLLM := new(MockLLMClient)
		mockLLM.On("PersonaPreamble").Return("You are a test assistant.")
		mockLLM.On("ModelName").Return("gemini-2.5-pro")
		mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).
			Return("Hello! How can I help you?", &models.TokenUsage{TotalTokens: 15}, nil).Once()
		mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).
			Return("I can help you with maintenance requests.", &models.TokenUsage{TotalTokens: 30}, nil).Once()

		service, convRepo := newTestChatService(mockLLM)

		first, err := service.ProcessChat(context.Background(), models.ChatRequest{Message: "Hello"})
		assert.NoError(t, err)

		second, err := service.ProcessChat(context.Background(), models.ChatRequest{
			Message:        "How do I submit a maintenance request?",
			ConversationID: first.ConversationID,
		})
		assert.NoError(t, err)
		assert.Equal(t, first.ConversationID, second.ConversationID)
		assert.Equal(t, "I can help you with maintenance requests.", second.Message)

		history, exists := convRepo.Get(first.ConversationID)
		assert.True(t, exists)
		assert.Len(t, history.Messages, 4)
		mockLLM.AssertExpectations(t)
	})

	t.Run("Two requests without ids get two different conversations", func(t *testing.T) {
		mockLLM := new(MockLLMClient)
		mockLLM.On("PersonaPreamble").Return("preamble")
		mockLLM.On("ModelName").Return("gemini-2.5-pro")
		mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).
			Return("reply", &models.TokenUsage{TotalTokens: 5}, nil).Twice()

		service, _ := newTestChatService(mockLLM)
		first, err := service.ProcessChat(context.Background(), models.ChatRequest{Message: "one"})
		assert.NoError(t, err)
		second, err := service.ProcessChat(context.Background(), models.ChatRequest{Message: "two"})
		assert.NoError(t, err)
		assert.NotEqual(t, first.ConversationID, second.ConversationID)
		mockLLM.AssertExpectations(t)
	})

	t.Run("Rendered prompt includes the just-appended user turn", func(t *testing.T) {
		mockLLM := new(MockLLMClient)
		mockLLM.On("PersonaPreamble").Return("preamble")
		mockLLM.On("ModelName").Return("gemini-2.5-pro")
		mockLLM.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
			// The current user message appears both in the history block
			// and in the restated latest-message line.
			return strings.Contains(prompt, "Human: What is my balance?") &&
				strings.Contains(prompt, "Please respond to the latest message: What is my balance?")
		})).Return("reply", &models.TokenUsage{TotalTokens: 5}, nil).Once()

		service, _ := newTestChatService(mockLLM)
		_, err := service.ProcessChat(context.Background(), models.ChatRequest{Message: "What is my balance?"})
		assert.NoError(t, err)
		mockLLM.AssertExpectations(t)
	})

	t.Run("Whitespace-only message is rejected before any conversation is created", func(t *testing.T) {
		mockLLM := new(MockLLMClient)
		service, convRepo := newTestChatService(mockLLM)

		response, err := service.ProcessChat(context.Background(), models.ChatRequest{Message: "   "})
		assert.Error(t, err)
		assert.Nil(t, response)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Empty(t, convRepo.ListIDs())
		mockLLM.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("Upstream failure surfaces as a processing error without retry", func(t *testing.T) {
		mockLLM := new(MockLLMClient)
		mockLLM.On("PersonaPreamble").Return("preamble")
		mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).
			Return("", nil, fmt.Errorf("%w: quota exceeded", apperrors.ErrUpstream)).Once()

		service, _ := newTestChatService(mockLLM)
		response, err := service.ProcessChat(context.Background(), models.ChatRequest{Message: "Hello"})

		assert.Error(t, err)
		assert.Nil(t, response)
		assert.ErrorIs(t, err, apperrors.ErrProcessing)
		mockLLM.AssertNumberOfCalls(t, "Generate", 1)
	})

	t.Run("Missing client fails with a configuration error", func(t *testing.T) {
		service, _ := newTestChatService(nil)
		response, err := service.ProcessChat(context.Background(), models.ChatRequest{Message: "Hello"})
		assert.Error(t, err)
		assert.Nil(t, response)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})
}

func TestChatService_Passthroughs(t *testing.T) {
	mockLLM := new(MockLLMClient)
	mockLLM.On("PersonaPreamble").Return("preamble")
	mockLLM.On("ModelName").Return("gemini-2.5-pro")
	mockLLM.On("Generate", mock.Anything, mock.AnythingOfType("string")).
		Return("reply", &models.TokenUsage{TotalTokens: 5}, nil)

	service, _ := newTestChatService(mockLLM)
	response, err := service.ProcessChat(context.Background(), models.ChatRequest{Message: "Hello"})
	assert.NoError(t, err)
	conversationID := response.ConversationID

	t.Run("GetConversation returns the stored history", func(t *testing.T) {
		history, err := service.GetConversation(conversationID)
		assert.NoError(t, err)
		assert.Equal(t, conversationID, history.ConversationID)
		assert.Len(t, history.Messages, 2)
	})

	t.Run("GetConversation on unknown id fails with not found", func(t *testing.T) {
		history, err := service.GetConversation("never-seen")
		assert.Nil(t, history)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("ListConversations includes the conversation", func(t *testing.T) {
		assert.Contains(t, service.ListConversations(), conversationID)
	})

	t.Run("Clear existing returns true and removes it", func(t *testing.T) {
		assert.True(t, service.ClearConversation(conversationID))
		history, err := service.GetConversation(conversationID)
		assert.Nil(t, history)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("Clear unknown returns false", func(t *testing.T) {
		assert.False(t, service.ClearConversation("never-seen"))
	})
}

func TestChatService_Usage(t *testing.T) {
	t.Run("TokenUsageStats reports counters with null quota fields", func(t *testing.T) {
		mockLLM := new(MockLLMClient)
		mockLLM.On("UsageStats").Return(models.UsageStats{
			RequestsMadeToday:    3,
			TotalTokensUsedToday: 120,
			ModelName:            "gemini-2.5-pro",
		}).Once()

		service, _ := newTestChatService(mockLLM)
		info, err := service.TokenUsageStats()
		assert.NoError(t, err)
		assert.Equal(t, 3, info.RequestsMadeToday)
		assert.Nil(t, info.RequestsRemainingToday)
		assert.Nil(t, info.DailyRequestLimit)
		assert.Nil(t, info.RateLimitPerMinute)
		mockLLM.AssertExpectations(t)
	})

	t.Run("ResetDailyCounters delegates to the client", func(t *testing.T) {
		mockLLM := new(MockLLMClient)
		mockLLM.On("ResetDailyCounters").Return().Once()

		service, _ := newTestChatService(mockLLM)
		assert.NoError(t, service.ResetDailyCounters())
		mockLLM.AssertExpectations(t)
	})

	t.Run("Usage calls without a client fail with a configuration error", func(t *testing.T) {
		service, _ := newTestChatService(nil)

		info, err := service.TokenUsageStats()
		assert.Nil(t, info)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
		assert.True(t, errors.Is(service.ResetDailyCounters(), apperrors.ErrConfiguration))
	})
}
