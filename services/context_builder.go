package services

import (
	"fmt"
	"strings"

	"github.com/Vuhuydiet/smartrent-ai/models"
)

// ContextBuilder renders a conversation into a single prompt string for
// the language-model client. Pure: no I/O, no mutation.
type ContextBuilder struct {
	historyLimit int
}

// NewContextBuilder creates a builder that includes at most historyLimit
// recent messages in the rendered prompt (10 when non-positive).
func NewContextBuilder(historyLimit int) *ContextBuilder {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &ContextBuilder{historyLimit: historyLimit}
}

// Render assembles the prompt: persona preamble, an optional additional-
// context block, the recent history window labeled Human/Assistant, and —
// when the latest message of the full history is user-authored — an
// explicit restatement of that message. The restatement is deliberately
// redundant with the history block; it biases the model toward the
// newest turn.
func (b *ContextBuilder) Render(preamble string, history *models.ConversationHistory, extraContext string) string {
	parts := []string{preamble}

	if extraContext != "" {
		parts = append(parts, fmt.Sprintf("Additional context: %s", extraContext))
	}

	messages := history.Messages
	recent := messages
	if len(recent) > b.historyLimit {
		recent = recent[len(recent)-b.historyLimit:]
	}
	if len(recent) > 0 {
		parts = append(parts, "Conversation history:")
		for _, msg := range recent {
			label := "Assistant"
			if msg.Role == models.RoleUser {
				label = "Human"
			}
			parts = append(parts, fmt.Sprintf("%s: %s", label, msg.Content))
		}
	}

	if len(messages) > 0 && messages[len(messages)-1].Role == models.RoleUser {
		parts = append(parts, fmt.Sprintf("\nPlease respond to the latest message: %s", messages[len(messages)-1].Content))
	}

	return strings.Join(parts, "\n\n")
}
