package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"twin-dojo/internal/domain"
	"twin-dojo/internal/service"
)

// EmployeeHandler mantiene dependencias para los endpoints de personas.
type EmployeeHandler struct {
	logger    *zap.Logger
	employees *service.EmployeeService
}

func NewEmployeeHandler(logger *zap.Logger, employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{logger: logger, employees: employees}
}

// Create maneja POST /employees.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req struct {
		Name   string               `json:"name" binding:"required"`
		Role   string               `json:"role" binding:"required"`
		Gender domain.Gender        `json:"gender"`
		Traits *domain.TraitProfile `json:"traits"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create employee request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	employee, err := h.employees.Create(c.Request.Context(), service.CreateEmployeeInput{
		Name:   req.Name,
		Role:   req.Role,
		Gender: req.Gender,
		Traits: req.Traits,
	})
	if err != nil {
		writeServiceError(c, h.logger, "create employee", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"employee": employee})
}

// List maneja GET /employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := h.employees.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, "list employees", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": list})
}

// Get maneja GET /employees/:id.
func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, "get employee", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}

// ReplaceTraits maneja PUT /employees/:id/traits. El cuerpo es el perfil completo.
func (h *EmployeeHandler) ReplaceTraits(c *gin.Context) {
	var traits domain.TraitProfile
	if err := c.ShouldBindJSON(&traits); err != nil {
		h.logger.Warn("invalid traits request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	employee, err := h.employees.ReplaceTraits(c.Request.Context(), c.Param("id"), traits)
	if err != nil {
		writeServiceError(c, h.logger, "replace traits", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee})
}
