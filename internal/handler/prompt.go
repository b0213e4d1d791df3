package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/aura-assistant/backend/internal/service"
)

type PromptHandler struct {
	service service.KnowledgeService
}

func NewPromptHandler(service service.KnowledgeService) *PromptHandler {
	return &PromptHandler{service: service}
}

type UpdatePromptRequest struct {
	Content string `json:"content" binding:"required"`
}

// GetActive returns the content of the prompt currently used as the
// composition base.
func (h *PromptHandler) GetActive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"content": h.service.GetActivePrompt(c.Request.Context())})
}

// Update activates a new system prompt, superseding the previous one.
func (h *PromptHandler) Update(c *gin.Context) {
	var req UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt content is required."})
		return
	}

	prompt, err := h.service.SetActivePrompt(c.Request.Context(), req.Content)
	if err != nil {
		klog.Errorf("UpdatePrompt: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the prompt."})
		return
	}

	c.JSON(http.StatusOK, prompt)
}
