package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/dataset"
	"github.com/noah-isme/exam-analytics-api/internal/service"
)

type tableProvider interface {
	Table(ctx context.Context) (*dataset.Table, error)
}

type cachePinger interface {
	Ping(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	data    tableProvider
	cache   cachePinger
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, data tableProvider, cache cachePinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, data: data, cache: cache}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness: the dataset must be buildable and, when a cache
// is configured, redis must answer a ping. A first call triggers the lazy
// dataset build.
func (h *MetricsHandler) Ready(c *gin.Context) {
	payload := gin.H{"status": "ready", "dataset": "loaded"}
	status := http.StatusOK

	if h.data != nil {
		if table, err := h.data.Table(c.Request.Context()); err != nil {
			payload["status"] = "not ready"
			payload["dataset"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			payload["rows"] = len(table.Records)
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			payload["cache"] = "unreachable"
		} else {
			payload["cache"] = "ok"
		}
	}
	c.JSON(status, payload)
}
