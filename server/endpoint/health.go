// Package endpoint provides the probe and build-information handlers.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/speechkit/component"
)

// HealthChecker returns the health of registered components.
type HealthChecker func(ctx context.Context) []component.Health

// rollup folds component health into one status. Degraded components, such
// as storage without credentials, never make the service unhealthy.
func rollup(components []component.Health) component.HealthStatus {
	overall := component.StatusHealthy
	for _, ch := range components {
		switch ch.Status {
		case component.StatusUnhealthy:
			return component.StatusUnhealthy
		case component.StatusDegraded:
			overall = component.StatusDegraded
		}
	}
	return overall
}

func check(c *gin.Context, checker HealthChecker) []component.Health {
	if checker == nil {
		return []component.Health{}
	}
	return checker(c.Request.Context())
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// Health reports overall service health with the per-component breakdown.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		components := check(c, checker)
		status := rollup(components)

		code := http.StatusOK
		if status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  now(),
			"components": components,
		})
	}
}
