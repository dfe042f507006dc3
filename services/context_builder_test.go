package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Vuhuydiet/smartrent-ai/models"
)

const testPreamble = "You are an AI assistant for SmartRent."

func historyWith(messages ...models.Message) *models.ConversationHistory {
	return &models.ConversationHistory{
		ConversationID: "conv-test",
		Messages:       messages,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
}

func TestContextBuilder_Render(t *testing.T) {
	builder := NewContextBuilder(10)

	t.Run("Empty history renders only the preamble", func(t *testing.T) {
		prompt := builder.Render(testPreamble, historyWith(), "")
		assert.Equal(t, testPreamble, prompt)
		assert.NotContains(t, prompt, "Conversation history:")
		assert.NotContains(t, prompt, "Please respond to the latest message:")
	})

	t.Run("Additional context gets a labeled block", func(t *testing.T) {
		prompt := builder.Render(testPreamble, historyWith(), "Tenant of unit 4B")
		assert.Contains(t, prompt, "Additional context: Tenant of unit 4B")
	})

	t.Run("Messages are labeled Human and Assistant per role", func(t *testing.T) {
		history := historyWith(
			models.Message{Role: models.RoleUser, Content: "Hello"},
			models.Message{Role: models.RoleAssistant, Content: "Hi! How can I help?"},
		)
		prompt := builder.Render(testPreamble, history, "")
		assert.Contains(t, prompt, "Conversation history:")
		assert.Contains(t, prompt, "Human: Hello")
		assert.Contains(t, prompt, "Assistant: Hi! How can I help?")
	})

	t.Run("Latest user message is restated", func(t *testing.T) {
		history := historyWith(
			models.Message{Role: models.RoleUser, Content: "How do I pay rent?"},
		)
		prompt := builder.Render(testPreamble, history, "")
		assert.Contains(t, prompt, "Please respond to the latest message: How do I pay rent?")
	})

	t.Run("No restatement when the latest message is from the assistant", func(t *testing.T) {
		history := historyWith(
			models.Message{Role: models.RoleUser, Content: "Hello"},
			models.Message{Role: models.RoleAssistant, Content: "Hi!"},
		)
		prompt := builder.Render(testPreamble, history, "")
		assert.NotContains(t, prompt, "Please respond to the latest message:")
	})

	t.Run("Window never exceeds the last 10 messages", func(t *testing.T) {
		var messages []models.Message
		for i := 0; i < 25; i++ {
			role := models.RoleUser
			if i%2 == 1 {
				role = models.RoleAssistant
			}
			messages = append(messages, models.Message{Role: role, Content: fmt.Sprintf("message-%d", i)})
		}
		prompt := builder.Render(testPreamble, historyWith(messages...), "")

		for i := 0; i < 15; i++ {
			assert.NotContains(t, prompt, fmt.Sprintf(": message-%d\n", i))
		}
		for i := 15; i < 25; i++ {
			assert.Contains(t, prompt, fmt.Sprintf("message-%d", i))
		}
	})

	t.Run("Blocks are joined by blank lines", func(t *testing.T) {
		history := historyWith(
			models.Message{Role: models.RoleUser, Content: "Hello"},
		)
		prompt := builder.Render(testPreamble, history, "demo")
		blocks := strings.Split(prompt, "\n\n")
		assert.Equal(t, testPreamble, blocks[0])
		assert.Equal(t, "Additional context: demo", blocks[1])
		assert.Equal(t, "Conversation history:", blocks[2])
		assert.Equal(t, "Human: Hello", blocks[3])
	})
}
