package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Vuhuydiet/smartrent-ai/apperrors"
	"github.com/Vuhuydiet/smartrent-ai/models"
	"github.com/Vuhuydiet/smartrent-ai/services"
	"github.com/Vuhuydiet/smartrent-ai/utils"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	chatService services.ChatService
	userService services.UserService
	llmInitErr  error // non-nil when the model client failed to construct
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
// llmInitErr carries the model-client construction failure (if any) so
// the chatbot health endpoint can report 503 while unrelated routes keep
// serving.
func NewAPIHandler(chatService services.ChatService, userService services.UserService, llmInitErr error) *APIHandler {
	return &APIHandler{
		chatService: chatService,
		userService: userService,
		llmInitErr:  llmInitErr,
	}
}

// RootHandler returns the API welcome message.
func (h *APIHandler) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to SmartRent AI API"})
}

// HealthHandler is the process liveness check. It succeeds regardless of
// the model credential; credential problems belong to the chatbot health
// endpoint.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// CreateUserHandler handles POST /users/.
func (h *APIHandler) CreateUserHandler(c *gin.Context) {
	var data models.UserCreate
	if err := c.ShouldBindJSON(&data); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format: "+err.Error(), err)
		return
	}

	user, err := h.userService.CreateUser(data)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUserHandler handles GET /users/:userID.
func (h *APIHandler) GetUserHandler(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if user == nil {
		utils.SendJSONError(c, http.StatusNotFound, "User not found", nil)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUserHandler handles DELETE /users/:userID.
func (h *APIHandler) DeleteUserHandler(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	deleted, err := h.userService.DeleteUser(id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		utils.SendJSONError(c, http.StatusNotFound, "User not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func parseUserID(c *gin.Context) (uint, bool) {
	raw := c.Param("userID")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid user ID: "+raw, err)
		return 0, false
	}
	return uint(id), true
}

// respondError translates a service error into an HTTP status per the
// failure taxonomy. Only anticipated kinds map to 4xx; everything else is
// a generic 500 with detail kept in the log.
func (h *APIHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		utils.SendJSONError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, apperrors.ErrConflict):
		utils.SendJSONError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, apperrors.ErrNotFound):
		utils.SendJSONError(c, http.StatusNotFound, err.Error(), err)
	case errors.Is(err, apperrors.ErrConfiguration):
		utils.SendJSONError(c, http.StatusInternalServerError, "Chatbot service is not available.", err)
	case errors.Is(err, apperrors.ErrProcessing), errors.Is(err, apperrors.ErrUpstream):
		utils.SendJSONError(c, http.StatusInternalServerError, "An error occurred while processing your message.", err)
	default:
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
	}
}
