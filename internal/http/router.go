package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	assessmentH *AssessmentHandler,
	employeeH *EmployeeHandler,
	conversationH *ConversationHandler,
	replyH *ReplyHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "remote_generation": replyH.RemoteEnabled()})
	})

	assessment := r.Group("/assessment")
	assessment.GET("/questions", assessmentH.Questions)
	assessment.POST("/score", assessmentH.Score)

	r.GET("/session-types", conversationH.SessionTypes)

	employees := r.Group("/employees")
	employees.POST("", employeeH.Create)
	employees.GET("", employeeH.List)
	employees.GET("/:id", employeeH.Get)
	employees.PUT("/:id/traits", employeeH.ReplaceTraits)

	conversations := r.Group("/conversations")
	conversations.POST("", conversationH.Start)
	conversations.GET("/:id", conversationH.Get)
	conversations.POST("/:id/messages", conversationH.Send)
	conversations.POST("/:id/end", conversationH.End)

	r.POST("/reply", replyH.Reply)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
