package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/shellkit/component"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []component.Health

// Health returns a handler that reports overall service health. The
// aggregate is the worst component status: one unhealthy component
// makes the whole service unhealthy and the endpoint answers 503 so a
// load balancer drains it.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var components []component.Health
		if checker != nil {
			components = checker(c.Request.Context())
		}

		status := aggregateStatus(components)
		httpStatus := http.StatusOK
		if status == "unhealthy" {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}

func aggregateStatus(components []component.Health) string {
	status := "healthy"
	for _, ch := range components {
		switch ch.Status {
		case component.StatusUnhealthy:
			return "unhealthy"
		case component.StatusDegraded:
			status = "degraded"
		}
	}
	return status
}
