package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twin-dojo/internal/domain"
	"twin-dojo/internal/service"
)

// AssessmentHandler expone el cuestionario y su puntaje.
type AssessmentHandler struct {
	logger *zap.Logger
}

func NewAssessmentHandler(logger *zap.Logger) *AssessmentHandler {
	return &AssessmentHandler{logger: logger}
}

// Questions maneja GET /assessment/questions.
func (h *AssessmentHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": service.Questionnaire()})
}

// Score maneja POST /assessment/score. Con strict=true exige respuestas válidas y completas;
// sin strict, faltantes o fuera de rango cuentan como neutrales.
func (h *AssessmentHandler) Score(c *gin.Context) {
	var req struct {
		Answers domain.AssessmentResponse `json:"answers"`
		Strict  bool                      `json:"strict"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assessment request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !req.Strict {
		c.JSON(http.StatusOK, gin.H{"traits": service.ScoreAssessment(req.Answers)})
		return
	}

	a := service.NewAssessment(h.logger)
	for id, v := range req.Answers {
		if err := a.Answer(id, v); err != nil {
			writeServiceError(c, h.logger, "score assessment", err)
			return
		}
	}
	traits, err := a.Score()
	if err != nil {
		writeServiceError(c, h.logger, "score assessment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"traits": traits})
}
