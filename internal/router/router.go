package router

import (
	"github.com/gin-gonic/gin"

	"github.com/takerupon/ai-ocr-test/internal/config"
	"github.com/takerupon/ai-ocr-test/internal/handler"
	"github.com/takerupon/ai-ocr-test/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	workflowH *handler.WorkflowHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health check
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	v1.POST("/files", workflowH.SelectFile)
	v1.DELETE("/files", workflowH.ClearFile)
	v1.POST("/extract", workflowH.Submit)
	v1.GET("/result", workflowH.Result)
	v1.GET("/export", workflowH.Export)
	v1.GET("/status", workflowH.Status)

	return r
}
