package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/service"
)

// Metrics records request counts and latencies per route. Health and scrape
// endpoints are left out so steady polling does not drown the API traffic.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		switch path {
		case "/metrics", "/health", "/ready":
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
