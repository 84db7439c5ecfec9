package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twin-dojo/internal/domain"
	"twin-dojo/internal/service"
)

// ConversationHandler mantiene dependencias para las prácticas.
type ConversationHandler struct {
	logger        *zap.Logger
	conversations *service.ConversationService
}

func NewConversationHandler(logger *zap.Logger, conversations *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{logger: logger, conversations: conversations}
}

// SessionTypes maneja GET /session-types.
func (h *ConversationHandler) SessionTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"session_types": service.AllFramings()})
}

// Start maneja POST /conversations.
func (h *ConversationHandler) Start(c *gin.Context) {
	var req struct {
		EmployeeID  string `json:"employee_id" binding:"required"`
		SessionType string `json:"session_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid start conversation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	st, err := domain.ParseSessionType(req.SessionType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv, err := h.conversations.Start(c.Request.Context(), req.EmployeeID, st)
	if err != nil {
		writeServiceError(c, h.logger, "start conversation", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"conversation": conv})
}

// Get maneja GET /conversations/:id.
func (h *ConversationHandler) Get(c *gin.Context) {
	conv, err := h.conversations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, "get conversation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv})
}

// Send maneja POST /conversations/:id/messages.
func (h *ConversationHandler) Send(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid send message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := h.conversations.Send(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		writeServiceError(c, h.logger, "send message", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// End maneja POST /conversations/:id/end.
func (h *ConversationHandler) End(c *gin.Context) {
	var req struct {
		Score   int    `json:"score"`
		Summary string `json:"summary"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid end conversation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	conv, err := h.conversations.End(c.Request.Context(), c.Param("id"), req.Score, req.Summary)
	if err != nil {
		writeServiceError(c, h.logger, "end conversation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversation": conv})
}
