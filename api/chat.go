package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Vuhuydiet/smartrent-ai/models"
	"github.com/Vuhuydiet/smartrent-ai/utils"
)

// ChatHandler handles POST /chat: one full chat turn through the
// orchestrator.
func (h *APIHandler) ChatHandler(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format: "+err.Error(), err)
		return
	}

	response, err := h.chatService.ProcessChat(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetConversationHandler handles GET /conversation/:conversationID.
func (h *APIHandler) GetConversationHandler(c *gin.Context) {
	conversationID := c.Param("conversationID")

	conversation, err := h.chatService.GetConversation(conversationID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversation)
}

// ClearConversationHandler handles DELETE /conversation/:conversationID.
func (h *APIHandler) ClearConversationHandler(c *gin.Context) {
	conversationID := c.Param("conversationID")

	if !h.chatService.ClearConversation(conversationID) {
		utils.SendJSONError(c, http.StatusNotFound, "Conversation not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Conversation cleared successfully"})
}

// ListConversationsHandler handles GET /conversations.
func (h *APIHandler) ListConversationsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.chatService.ListConversations())
}

// ChatHealthHandler handles GET /health for the chatbot service. A
// missing credential means the model client never constructed, which is
// reported as 503 rather than failing unrelated routes.
func (h *APIHandler) ChatHealthHandler(c *gin.Context) {
	if h.llmInitErr != nil {
		utils.SendJSONError(c, http.StatusServiceUnavailable, "Chatbot service unavailable: "+h.llmInitErr.Error(), h.llmInitErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "chatbot"})
}

// TokenUsageHandler handles GET /token-usage. Counts are session-based
// estimates; the upstream API exposes no quota limits, so those fields
// are null.
func (h *APIHandler) TokenUsageHandler(c *gin.Context) {
	info, err := h.chatService.TokenUsageStats()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// ResetCountersHandler handles POST /reset-counters.
func (h *APIHandler) ResetCountersHandler(c *gin.Context) {
	if err := h.chatService.ResetDailyCounters(); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Token usage counters have been reset successfully"})
}
