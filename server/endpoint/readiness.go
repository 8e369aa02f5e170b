package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadyCheck reports whether the service can accept traffic. The shell
// wires this to the bridge registry's Published state, so the endpoint
// flips to ready exactly when the shared services become visible.
type ReadyCheck func() bool

// Readiness returns a handler for K8s readiness checks.
func Readiness(serviceName string, ready ReadyCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "ready"
		httpStatus := http.StatusOK

		if ready != nil && !ready() {
			status = "not_ready"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":    status,
			"service":   serviceName,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
