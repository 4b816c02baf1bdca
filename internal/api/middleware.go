package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sthanna/UsTaxesFree/internal/observability/metrics"
)

// metricsMiddleware records request counts and latency per route. The
// route template is used as the path label so ids don't explode the
// cardinality.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
