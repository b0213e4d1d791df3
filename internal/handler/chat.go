package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/aura-assistant/backend/internal/repository"
	"github.com/aura-assistant/backend/internal/service"
)

type ChatHandler struct {
	chats service.ChatService
	turns service.TurnService
}

func NewChatHandler(chats service.ChatService, turns service.TurnService) *ChatHandler {
	return &ChatHandler{chats: chats, turns: turns}
}

// ChatRequest is one turn submission. ConversationHistory is accepted for
// compatibility with older clients but ignored: history is derived
// server-side from the conversation store.
type ChatRequest struct {
	PromptText          string `json:"promptText" binding:"required"`
	ChatID              uint   `json:"chatId"`
	ConversationHistory string `json:"conversationHistory"`
}

// SubmitTurn runs one chat turn and returns the assistant reply.
func (h *ChatHandler) SubmitTurn(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt text is required."})
		return
	}

	result, err := h.turns.SubmitTurn(c.Request.Context(), req.ChatID, req.PromptText)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		klog.Errorf("SubmitTurn: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An unexpected error occurred."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": result.Reply.Content,
		"chatId":   result.ChatID,
	})
}

// ListChats returns all chats, newest first.
func (h *ChatHandler) ListChats(c *gin.Context) {
	chats, err := h.chats.ListChats(c.Request.Context())
	if err != nil {
		klog.Errorf("ListChats: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while fetching chats."})
		return
	}
	c.JSON(http.StatusOK, chats)
}

// CreateChat creates an empty chat with the default title.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	chat, err := h.chats.CreateChat(c.Request.Context())
	if err != nil {
		klog.Errorf("CreateChat: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating a new chat."})
		return
	}
	c.JSON(http.StatusCreated, chat)
}

// GetMessages returns a chat's messages, oldest first.
func (h *ChatHandler) GetMessages(c *gin.Context) {
	chatID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	messages, err := h.chats.GetMessages(c.Request.Context(), chatID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		klog.Errorf("GetMessages: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while fetching messages."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// RenameChat updates a chat's title.
func (h *ChatHandler) RenameChat(c *gin.Context) {
	chatID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	var req struct {
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required."})
		return
	}

	chat, err := h.chats.RenameChat(c.Request.Context(), chatID, req.Title)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		klog.Errorf("RenameChat: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the chat title."})
		return
	}

	c.JSON(http.StatusOK, chat)
}

// DeleteChat removes a chat and its messages.
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	chatID, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chat id"})
		return
	}

	if err := h.chats.DeleteChat(c.Request.Context(), chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat not found"})
			return
		}
		klog.Errorf("DeleteChat: failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while deleting the chat."})
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
