// Package api wires the HTTP surface: routing, middleware, and the JSON
// handlers over the publisher service.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonesrussell/content-publisher/internal/config"
	"github.com/jonesrussell/content-publisher/internal/logger"
	"github.com/jonesrussell/content-publisher/internal/publisher"
)

// NewRouter builds the gin engine with all routes and middleware.
// Validation and health endpoints are public; publish and platform
// management require the configured bearer token.
func NewRouter(cfg *config.Config, service *publisher.Service, log logger.Logger, version string) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware(cfg.CORS.AllowedOrigins))

	h := NewHandlers(cfg, service, log, version)

	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/health/live", h.Live)
	router.GET("/health/ready", h.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	content := router.Group("/content")
	{
		content.POST("/validate", h.ValidateContent)
		content.POST("/validate/:platform", h.ValidateContentForPlatform)
		content.GET("/platforms", h.ContentPlatforms)
	}

	auth := bearerAuth(cfg.Auth.Token, log)

	protected := router.Group("/content", auth)
	{
		protected.POST("/publish", h.PublishContent)
		protected.POST("/batch-publish", h.BatchPublishContent)
	}

	platforms := router.Group("/platforms", auth)
	{
		platforms.GET("", h.ListPlatforms)
		platforms.GET("/:name/status", h.GetPlatform)
		platforms.POST("/:name/test", h.TestPlatform)
		platforms.POST("/test-all", h.TestAllPlatforms)
	}

	return router
}
