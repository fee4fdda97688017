package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/voicebookhq/voicebook-backend/internal/health"
)

const serviceName = "voicebook-backend"

type HealthHandler struct {
	checker *health.Checker
	version string
}

func NewHealthHandler(checker *health.Checker, version string) *HealthHandler {
	return &HealthHandler{checker: checker, version: version}
}

// Health reports aggregate component health. A failing component degrades the
// status but still answers 200: the process itself is alive.
func (h *HealthHandler) Health(c *gin.Context) {
	components, healthy := h.checker.Check(c.Request.Context())

	status := "ok"
	if !healthy {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"components": components,
	})
}

// Root answers the service identity probe.
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": serviceName,
		"version": h.version,
	})
}
