package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twin-dojo/internal/service"
)

// writeServiceError traduce los errores centinela de los servicios a códigos HTTP.
func writeServiceError(c *gin.Context, logger *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, service.ErrEmployeeNotFound), errors.Is(err, service.ErrConversationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrEmployeeInvalidInput), errors.Is(err, service.ErrConversationInvalidInput),
		errors.Is(err, service.ErrAssessmentInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAssessmentIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "assessment incomplete"})
	case errors.Is(err, service.ErrGenerationInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "reply already in progress"})
	case errors.Is(err, service.ErrConversationEnded):
		c.JSON(http.StatusConflict, gin.H{"error": "conversation ended"})
	case errors.Is(err, service.ErrEmployeeNotConfigured), errors.Is(err, service.ErrConversationNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	default:
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not " + op})
	}
}
