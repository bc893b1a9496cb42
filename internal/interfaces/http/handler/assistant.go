package handler

import (
	"github.com/gin-gonic/gin"

	appassistant "github.com/practiq/backend/internal/application/assistant"
)

// AssistantHandler serves the practice assistant chat endpoint
type AssistantHandler struct {
	BaseHandler
	assistantService *appassistant.Service
}

// NewAssistantHandler creates a new AssistantHandler
func NewAssistantHandler(assistantService *appassistant.Service) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Chat handles POST /api/v1/assistant/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req appassistant.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid chat request: "+err.Error())
		return
	}

	resp, err := h.assistantService.Chat(c.Request.Context(), req)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, resp)
}
