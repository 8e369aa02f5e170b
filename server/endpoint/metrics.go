package endpoint

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics returns a handler with a JSON snapshot of runtime health:
// goroutine count, heap usage, and GC activity. The OTLP exporters
// carry the real telemetry; this route exists for a quick look with
// curl when no collector is running.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)

		c.JSON(http.StatusOK, gin.H{
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"uptime":     time.Since(startTime).String(),
			"goroutines": runtime.NumGoroutine(),
			"heap": gin.H{
				"alloc_mb":   m.HeapAlloc / 1024 / 1024,
				"sys_mb":     m.Sys / 1024 / 1024,
				"objects":    m.HeapObjects,
				"next_gc_mb": m.NextGC / 1024 / 1024,
			},
			"gc": gin.H{
				"runs":           m.NumGC,
				"total_pause_ms": m.PauseTotalNs / 1e6,
			},
		})
	}
}
