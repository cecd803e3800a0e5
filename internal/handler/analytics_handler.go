package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
	"github.com/noah-isme/exam-analytics-api/pkg/response"
)

type analyticsService interface {
	Filter(ctx context.Context, req models.FilterRequest) (*models.FilterResult, error)
	Comparison(ctx context.Context, req models.ComparisonRequest) (*models.Comparison, error)
	Trends(ctx context.Context, entityType, name, metric string) (*models.TrendSummary, error)
	TrendLine(ctx context.Context, entityType, name, metric string) (*models.TrendLine, error)
	Report(ctx context.Context, reportType, department string) (*models.Report, error)
	SystemMetrics() models.SystemMetrics
}

// AnalyticsHandler serves ad-hoc filtering, comparison, trend and report
// endpoints.
type AnalyticsHandler struct {
	analytics analyticsService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(analytics analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Filter godoc
// @Summary Multi-criteria record filter with aggregates
// @Tags Analytics
// @Accept json
// @Produce json
// @Param request body models.FilterRequest true "Filter criteria"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /analytics/filter [post]
func (h *AnalyticsHandler) Filter(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req models.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	result, err := h.analytics.Filter(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "records filtered", result)
}

// Comparison godoc
// @Summary Side-by-side comparison of two departments or subjects
// @Tags Analytics
// @Produce json
// @Param entity_type query string true "department or subject"
// @Param entity_name_1 query string true "First entity"
// @Param entity_name_2 query string true "Second entity"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /analytics/comparison [get]
func (h *AnalyticsHandler) Comparison(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req models.ComparisonRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	comparison, err := h.analytics.Comparison(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "entities compared", comparison)
}

// Trends godoc
// @Summary Year-over-year trend for one entity
// @Tags Analytics
// @Produce json
// @Param entity_type query string true "department or subject"
// @Param entity_name query string true "Entity name"
// @Param metric query string false "pass_rate (default), distinction_rate or exam_count"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /analytics/trends [get]
func (h *AnalyticsHandler) Trends(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	entityType := strings.TrimSpace(c.Query("entity_type"))
	name := strings.TrimSpace(c.Query("entity_name"))
	if entityType == "" || name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "entity_type and entity_name are required"))
		return
	}
	metric := strings.TrimSpace(c.Query("metric"))
	if metric == "" {
		metric = "pass_rate"
	}
	trend, err := h.analytics.Trends(c.Request.Context(), entityType, name, metric)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "trend computed", trend)
}

// TrendLine godoc
// @Summary Least-squares trend line for one entity
// @Tags Analytics
// @Produce json
// @Param entity_type query string true "department or subject"
// @Param entity_name query string true "Entity name"
// @Param metric query string false "pass_rate (default), distinction_rate or exam_count"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /analytics/trend-line [get]
func (h *AnalyticsHandler) TrendLine(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	entityType := strings.TrimSpace(c.Query("entity_type"))
	name := strings.TrimSpace(c.Query("entity_name"))
	if entityType == "" || name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "entity_type and entity_name are required"))
		return
	}
	metric := strings.TrimSpace(c.Query("metric"))
	if metric == "" {
		metric = "pass_rate"
	}
	line, err := h.analytics.TrendLine(c.Request.Context(), entityType, name, metric)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "trend line fitted", line)
}

// Report godoc
// @Summary Narrative statistics report
// @Tags Analytics
// @Produce json
// @Param report_type query string false "summary (default), detailed or executive"
// @Param department query string false "Restrict to one department"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /analytics/report [get]
func (h *AnalyticsHandler) Report(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	reportType := strings.TrimSpace(c.Query("report_type"))
	if reportType == "" {
		reportType = "summary"
	}
	report, err := h.analytics.Report(c.Request.Context(), reportType, strings.TrimSpace(c.Query("department")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "report generated", report)
}

// System godoc
// @Summary Runtime metrics snapshot
// @Tags Analytics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /analytics/system [get]
func (h *AnalyticsHandler) System(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.OK(c, "system metrics collected", h.analytics.SystemMetrics())
}
