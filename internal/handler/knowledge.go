package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/aura-assistant/backend/internal/middleware"
	"github.com/aura-assistant/backend/internal/repository"
	"github.com/aura-assistant/backend/internal/service"
)

type KnowledgeHandler struct {
	service service.KnowledgeService
}

func NewKnowledgeHandler(service service.KnowledgeService) *KnowledgeHandler {
	return &KnowledgeHandler{service: service}
}

type CreateSuggestionRequest struct {
	Question       string `json:"question" binding:"required"`
	SuggestedReply string `json:"suggested_reply" binding:"required"`
	CreatedBy      string `json:"created_by"`
}

type CreateInstructionRequest struct {
	Content   string `json:"content" binding:"required"`
	CreatedBy string `json:"created_by"`
}

type TransitionRequest struct {
	Status     string `json:"status" binding:"required"`
	ApprovedBy string `json:"approved_by"`
}

// CreateSuggestion stores a new Q&A suggestion in pending state.
func (h *KnowledgeHandler) CreateSuggestion(c *gin.Context) {
	var req CreateSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question and suggested reply are required."})
		return
	}

	suggestion, err := h.service.SubmitSuggestion(c.Request.Context(), req.Question, req.SuggestedReply, req.CreatedBy)
	if err != nil {
		klog.Errorf("CreateSuggestion: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the suggestion."})
		return
	}

	c.JSON(http.StatusCreated, suggestion)
}

// CreateInstruction stores a new behavioral instruction in pending state.
func (h *KnowledgeHandler) CreateInstruction(c *gin.Context) {
	var req CreateInstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Instruction content is required."})
		return
	}

	instruction, err := h.service.SubmitInstruction(c.Request.Context(), req.Content, req.CreatedBy)
	if err != nil {
		klog.Errorf("CreateInstruction: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the instruction."})
		return
	}

	c.JSON(http.StatusCreated, instruction)
}

// ListSuggestions lists suggestions newest first, optionally filtered by
// ?status=.
func (h *KnowledgeHandler) ListSuggestions(c *gin.Context) {
	suggestions, err := h.service.ListSuggestions(c.Request.Context(), c.Query("status"))
	if err != nil {
		klog.Errorf("ListSuggestions: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while fetching suggestions."})
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

// ListInstructions lists instructions newest first, optionally filtered by
// ?status=.
func (h *KnowledgeHandler) ListInstructions(c *gin.Context) {
	instructions, err := h.service.ListInstructions(c.Request.Context(), c.Query("status"))
	if err != nil {
		klog.Errorf("ListInstructions: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while fetching instructions."})
		return
	}
	c.JSON(http.StatusOK, instructions)
}

// UpdateSuggestion approves or rejects a suggestion.
func (h *KnowledgeHandler) UpdateSuggestion(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required."})
		return
	}

	suggestion, err := h.service.TransitionSuggestion(c.Request.Context(), id, req.Status, h.moderator(c, req.ApprovedBy))
	if err != nil {
		h.transitionError(c, "UpdateSuggestion", err)
		return
	}

	c.JSON(http.StatusOK, suggestion)
}

// UpdateInstruction approves or rejects an instruction.
func (h *KnowledgeHandler) UpdateInstruction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required."})
		return
	}

	instruction, err := h.service.TransitionInstruction(c.Request.Context(), id, req.Status, h.moderator(c, req.ApprovedBy))
	if err != nil {
		h.transitionError(c, "UpdateInstruction", err)
		return
	}

	c.JSON(http.StatusOK, instruction)
}

// moderator prefers the authenticated identity over the request body field.
func (h *KnowledgeHandler) moderator(c *gin.Context, approvedBy string) string {
	if username := c.GetString(middleware.ContextUsername); username != "" {
		return username
	}
	return approvedBy
}

func (h *KnowledgeHandler) transitionError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be either 'approved' or 'rejected'."})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		klog.Errorf("%s: failed: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the record."})
	}
}
