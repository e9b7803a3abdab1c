package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/trait-assessment-service/internal/config"
	"github.com/SAP-F-2025/trait-assessment-service/internal/services"
	"github.com/SAP-F-2025/trait-assessment-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	instrumentHandler *InstrumentHandler
	sessionHandler    *SessionHandler
	evaluationHandler *EvaluationHandler
	auth              gin.HandlerFunc
}

func NewHandlerManager(serviceManager services.ServiceManager, authConfig config.AuthConfig, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		instrumentHandler: NewInstrumentHandler(serviceManager.Instrument(), logger),
		sessionHandler:    NewSessionHandler(serviceManager.Session(), logger),
		evaluationHandler: NewEvaluationHandler(serviceManager.Evaluation(), serviceManager.Export(), logger),
		auth:              AuthMiddleware(authConfig, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(requestContext(), hm.auth)
	{
		instruments := v1.Group("/instruments")
		{
			instruments.GET("", hm.instrumentHandler.ListInstruments)
			instruments.GET("/:id", hm.instrumentHandler.GetInstrument)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.StartSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.PUT("/:id/answers", hm.sessionHandler.SetAnswer)
			sessions.POST("/:id/evaluate", hm.sessionHandler.EvaluateSession)
			sessions.DELETE("/:id", hm.sessionHandler.DiscardSession)
		}

		evaluations := v1.Group("/evaluations")
		{
			evaluations.POST("", hm.evaluationHandler.Evaluate)
			evaluations.POST("/batch", hm.evaluationHandler.EvaluateBatch)
			evaluations.GET("/:id", hm.evaluationHandler.GetEvaluation)
		}

		students := v1.Group("/students")
		{
			students.GET("/:student_id/evaluations", hm.evaluationHandler.ListStudentEvaluations)
			students.GET("/:student_id/evaluations/export", hm.evaluationHandler.ExportStudentEvaluations)
		}
	}
}

// requestContext carries the request id into the service layer's context.
func requestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetString("request_id"); id != "" {
			c.Request = c.Request.WithContext(services.WithRequestID(c.Request.Context(), id))
		}
		c.Next()
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "trait-assessment-service",
	})
}
