package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListPlatforms returns the status of every registered platform.
func (h *Handlers) ListPlatforms(c *gin.Context) {
	status := h.service.GetPlatformStatus()
	c.JSON(http.StatusOK, gin.H{
		"platforms": status,
		"total":     len(status),
	})
}

// GetPlatform returns the status and connectivity of one platform.
func (h *Handlers) GetPlatform(c *gin.Context) {
	name := c.Param("name")

	status, ok := h.service.GetPlatformStatus()[name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Platform not found: " + name})
		return
	}

	connected := h.service.TestConnection(c.Request.Context(), name)
	c.JSON(http.StatusOK, gin.H{
		"name":       status.Name,
		"enabled":    status.Enabled,
		"configured": status.Configured,
		"connected":  connected,
	})
}

// TestPlatform runs a connectivity check against one platform.
func (h *Handlers) TestPlatform(c *gin.Context) {
	name := c.Param("name")

	if _, ok := h.service.GetPlatformStatus()[name]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Platform not found: " + name})
		return
	}

	connected := h.service.TestConnection(c.Request.Context(), name)
	c.JSON(http.StatusOK, gin.H{
		"platform":  name,
		"connected": connected,
	})
}

// TestAllPlatforms runs connectivity checks against every registered
// platform.
func (h *Handlers) TestAllPlatforms(c *gin.Context) {
	results := h.service.TestConnections(c.Request.Context())

	var successful, failed []string
	for _, name := range h.service.AvailablePlatforms() {
		if results[name] {
			successful = append(successful, name)
		} else {
			failed = append(failed, name)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"results":    results,
		"successful": successful,
		"failed":     failed,
		"total":      len(results),
	})
}
