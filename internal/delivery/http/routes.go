package http

import (
	"github.com/gin-gonic/gin"
	"github.com/lumo/storefront/config"
	"github.com/rs/zerolog"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger zerolog.Logger) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RequestIDMiddleware())
	router.Use(RecoveryMiddleware(logger))
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		chat := v1.Group("/chat")
		{
			chat.POST("/messages", handler.SendMessage)
		}

		projects := v1.Group("/projects")
		{
			projects.GET("", handler.ListProjects)
			projects.GET("/:id", handler.GetProject)
		}
	}

	return router
}
