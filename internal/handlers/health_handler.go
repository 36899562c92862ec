package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency. A nil error means it is up.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthHandler struct {
	checks []HealthCheck
}

func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/checkhealth", h.CheckHealth)
}

// CheckHealth always answers 200 while the process serves requests; degraded
// dependencies are reported in the body.
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := "ok"
	dependencies := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			dependencies[check.Name] = "down: " + err.Error()
			status = "degraded"
			continue
		}
		dependencies[check.Name] = "up"
	}

	c.JSON(http.StatusOK, gin.H{
		"service":      "shamba-service",
		"status":       status,
		"dependencies": dependencies,
	})
}
