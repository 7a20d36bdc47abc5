package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/content-publisher/internal/config"
	"github.com/jonesrussell/content-publisher/internal/logger"
	"github.com/jonesrussell/content-publisher/internal/models"
	"github.com/jonesrussell/content-publisher/internal/publisher"
)

// Handlers holds the HTTP handler dependencies.
type Handlers struct {
	cfg     *config.Config
	service *publisher.Service
	logger  logger.Logger
	version string
}

// NewHandlers creates the handler set.
func NewHandlers(cfg *config.Config, service *publisher.Service, log logger.Logger, version string) *Handlers {
	return &Handlers{
		cfg:     cfg,
		service: service,
		logger:  log,
		version: version,
	}
}

// Root reports the service identity.
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "content-publisher",
		"version": h.version,
		"health":  "/health",
		"metrics": "/metrics",
	})
}

// Health reports overall service health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "content-publisher",
		"version": h.version,
	})
}

// Live is the liveness probe.
func (h *Handlers) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Ready is the readiness probe. The service is ready when at least one
// registered platform answers its connection test.
func (h *Handlers) Ready(c *gin.Context) {
	if len(h.service.AvailablePlatforms()) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "no platforms configured",
		})
		return
	}

	connections := h.service.TestConnections(c.Request.Context())
	anyConnected := false
	for _, connected := range connections {
		if connected {
			anyConnected = true
			break
		}
	}
	if !anyConnected {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":    "not ready",
			"reason":    "no platforms reachable",
			"platforms": connections,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"platforms": connections,
	})
}

// ValidateContent validates a content item without publishing it.
func (h *Handlers) ValidateContent(c *gin.Context) {
	var content models.Content
	if err := c.ShouldBindJSON(&content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := content.Normalize(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	result := h.service.Validate(&content)
	c.JSON(http.StatusOK, result)
}

// ValidateContentForPlatform validates a content item against one
// platform's rules.
func (h *Handlers) ValidateContentForPlatform(c *gin.Context) {
	platform := c.Param("platform")

	var content models.Content
	if err := c.ShouldBindJSON(&content); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := content.Normalize(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	result := h.service.ValidateForPlatform(&content, platform)
	c.JSON(http.StatusOK, result)
}

// PublishContent validates and publishes a content item to the requested
// platforms. Publishing failures are reported in the response body, not
// as HTTP errors.
func (h *Handlers) PublishContent(c *gin.Context) {
	var req models.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Normalize(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	resp := h.service.Publish(c.Request.Context(), &req)
	if !resp.Success {
		h.logger.Warn("Publish request failed",
			logger.String("message", resp.Message),
			logger.Strings("errors", resp.Errors),
		)
	}
	c.JSON(http.StatusOK, resp)
}

// BatchPublishContent publishes multiple content items with bounded
// concurrency.
func (h *Handlers) BatchPublishContent(c *gin.Context) {
	var req models.BatchPublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Normalize(h.cfg.Limits.DefaultConcurrency); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	resp := h.service.BatchPublish(c.Request.Context(), &req)
	c.JSON(http.StatusOK, resp)
}

// ContentPlatforms lists the platforms available for publishing.
func (h *Handlers) ContentPlatforms(c *gin.Context) {
	platforms := h.service.AvailablePlatforms()
	c.JSON(http.StatusOK, gin.H{
		"platforms": platforms,
		"status":    h.service.GetPlatformStatus(),
		"total":     len(platforms),
	})
}
