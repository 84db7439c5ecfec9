package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twin-dojo/internal/domain"
	"twin-dojo/internal/service"
)

// ReplyHandler expone el motor sin estado: el cliente manda persona, historial y mensaje.
type ReplyHandler struct {
	logger *zap.Logger
	engine *service.PersonaEngine
}

func NewReplyHandler(logger *zap.Logger, engine *service.PersonaEngine) *ReplyHandler {
	return &ReplyHandler{logger: logger, engine: engine}
}

func (h *ReplyHandler) RemoteEnabled() bool {
	return h != nil && h.engine.RemoteEnabled()
}

// Reply maneja POST /reply.
func (h *ReplyHandler) Reply(c *gin.Context) {
	var req struct {
		Employee    domain.Employee `json:"employee"`
		History     []domain.Turn   `json:"history"`
		UserMessage string          `json:"user_message" binding:"required"`
		SessionType string          `json:"session_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid reply request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if strings.TrimSpace(req.UserMessage) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_message is required"})
		return
	}
	st, err := domain.ParseSessionType(req.SessionType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee := req.Employee.WithTraits(req.Employee.Traits)
	reply := h.engine.Reply(c.Request.Context(), employee, req.History, req.UserMessage, st)
	c.JSON(http.StatusOK, gin.H{"reply": reply.Text, "source": reply.Source})
}
