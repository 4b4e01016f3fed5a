package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessCheck reports whether a dependency is usable
type ReadinessCheck = func(ctx context.Context) error

// HealthHandler serves liveness, readiness and version
type HealthHandler struct {
	version string
	checks  map[string]ReadinessCheck
}

func NewHealthHandler(version string, checks map[string]ReadinessCheck) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready runs every check with a short deadline
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	failures := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			failures[name] = err.Error()
		}
	}
	if len(failures) > 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": failures})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) Version(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": h.version})
}
