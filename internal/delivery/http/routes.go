package http

import (
	_ "embed"
	"html/template"

	"github.com/claimcheck/backend/config"
	"github.com/gin-gonic/gin"
)

const indexTemplateName = "index.html"

//go:embed templates/index.html
var indexHTML string

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.SetHTMLTemplate(template.Must(template.New(indexTemplateName).Parse(indexHTML)))

	router.GET("/", handler.Home)
	router.GET("/health", handler.HealthCheck)
	router.POST("/analyze", RateLimitMiddleware(cfg.RateLimit.PerIP), handler.Analyze)

	router.NoRoute(handler.NotFound)

	return router
}
