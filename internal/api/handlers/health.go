// SPDX-License-Identifier: LicenseRef-Regrada-Proprietary

package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck pings one dependency
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

// NewHealthHandler reports on the named checks. Dependencies that are not
// configured are simply left out.
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Health reports dependency status
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string,checks=map[string]string}
// @Failure 503 {object} object{status=string,checks=map[string]string}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	healthy := true
	checks := gin.H{}
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			healthy = false
			checks[name] = "down"
			continue
		}
		checks[name] = "up"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
