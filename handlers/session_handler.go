package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thefundraisingaccelerator/fundraising-copilot/models"
	"github.com/thefundraisingaccelerator/fundraising-copilot/repository"
	"github.com/thefundraisingaccelerator/fundraising-copilot/service"
)

// SessionHandler handles HTTP requests for conversation sessions
type SessionHandler struct {
	sessionRepo *repository.SessionRepository
	chatService *service.ChatService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionRepo *repository.SessionRepository, chatService *service.ChatService) *SessionHandler {
	return &SessionHandler{
		sessionRepo: sessionRepo,
		chatService: chatService,
	}
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	session := h.sessionRepo.Create()

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":         session.ID,
			"created_at": session.CreatedAt,
		},
	})
}

// GetSession handles GET /api/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := h.lookupSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// SendMessage handles POST /api/sessions/:id/messages
func (h *SessionHandler) SendMessage(c *gin.Context) {
	id, ok := h.parseSessionID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": err.Error(),
			},
		})
		return
	}

	h.runTurn(c, id, req.Message, 0)
}

// SendStarter handles POST /api/sessions/:id/starters/:key
func (h *SessionHandler) SendStarter(c *gin.Context) {
	id, ok := h.parseSessionID(c)
	if !ok {
		return
	}

	prompt, ok := service.StarterPrompts[c.Param("key")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_STARTER",
				"message": "Unknown starter prompt",
			},
		})
		return
	}

	h.runTurn(c, id, prompt, service.StarterMaxOutputTokens)
}

// runTurn sends one user turn through the chat service and writes the reply
func (h *SessionHandler) runTurn(c *gin.Context, sessionID uuid.UUID, message string, maxOutputTokens int32) {
	result, err := h.chatService.SendMessage(c.Request.Context(), service.SendMessageRequest{
		SessionID:       sessionID,
		Message:         message,
		MaxOutputTokens: maxOutputTokens,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Session not found",
				},
			})
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": "Message must not be empty",
				},
			})
		default:
			// Model failure aborts the turn; the user turn stays in
			// history without a paired response.
			c.JSON(http.StatusBadGateway, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MODEL_CALL_FAILED",
					"message": err.Error(),
				},
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"reply":             result.Reply,
			"investors_matched": result.InvestorsMatched,
		},
	})
}

// ResetSession handles POST /api/sessions/:id/reset
func (h *SessionHandler) ResetSession(c *gin.Context) {
	id, ok := h.parseSessionID(c)
	if !ok {
		return
	}

	if err := h.sessionRepo.Reset(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Session not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteSession handles DELETE /api/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := h.parseSessionID(c)
	if !ok {
		return
	}

	if err := h.sessionRepo.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Session not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *SessionHandler) parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_ID",
				"message": "Invalid session ID format",
			},
		})
		return uuid.UUID{}, false
	}
	return id, true
}

func (h *SessionHandler) lookupSession(c *gin.Context) (*models.Session, bool) {
	id, ok := h.parseSessionID(c)
	if !ok {
		return nil, false
	}

	s, err := h.sessionRepo.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Session not found",
			},
		})
		return nil, false
	}
	return s, true
}
