package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
	"github.com/noah-isme/exam-analytics-api/pkg/response"
)

type kpiService interface {
	Overall(ctx context.Context, filter models.Filter) (*models.OverallKPI, error)
	Yearly(ctx context.Context, filter models.Filter) ([]models.GroupStats, error)
	DepartmentStats(ctx context.Context, filter models.Filter, sortBy string) ([]models.DepartmentStats, error)
}

type filterOptionsService interface {
	FilterOptions(ctx context.Context) (*models.FilterOptions, error)
}

// KPIHandler serves the dashboard KPI endpoints.
type KPIHandler struct {
	stats   kpiService
	options filterOptionsService
}

// NewKPIHandler constructs the handler.
func NewKPIHandler(stats kpiService, options filterOptionsService) *KPIHandler {
	return &KPIHandler{stats: stats, options: options}
}

// Overall godoc
// @Summary Overall pass/fail/distinction rates
// @Tags KPIs
// @Produce json
// @Param year query int false "Exam year"
// @Param department query string false "Department"
// @Success 200 {object} response.Envelope
// @Router /kpis/overall [get]
func (h *KPIHandler) Overall(c *gin.Context) {
	if h.stats == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	kpi, err := h.stats.Overall(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "overall KPIs computed", kpi)
}

// Yearly godoc
// @Summary Year-over-year exam statistics
// @Tags KPIs
// @Produce json
// @Param department query string false "Department"
// @Success 200 {object} response.Envelope
// @Router /kpis/yearly [get]
func (h *KPIHandler) Yearly(c *gin.Context) {
	if h.stats == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.stats.Yearly(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "yearly statistics computed", stats)
}

// DepartmentStats godoc
// @Summary Ranked department statistics
// @Tags KPIs
// @Produce json
// @Param limit query int false "Maximum entries"
// @Param sort_by query string false "Sort key (pass_rate, exam_count, students)"
// @Success 200 {object} response.Envelope
// @Router /kpis/department-stats [get]
func (h *KPIHandler) DepartmentStats(c *gin.Context) {
	if h.stats == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.stats.DepartmentStats(c.Request.Context(), filter, c.Query("sort_by"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if limit > 0 && limit < len(stats) {
		stats = stats[:limit]
	}
	response.OK(c, "department statistics computed", stats)
}

// Filters godoc
// @Summary Distinct filter values for dropdowns
// @Tags KPIs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /kpis/filters [get]
func (h *KPIHandler) Filters(c *gin.Context) {
	if h.options == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	options, err := h.options.FilterOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "filter options collected", options)
}
