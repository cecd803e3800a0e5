package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
	"github.com/noah-isme/exam-analytics-api/pkg/response"
)

type departmentService interface {
	DepartmentStats(ctx context.Context, filter models.Filter, sortBy string) ([]models.DepartmentStats, error)
	DepartmentDetail(ctx context.Context, name string) (*models.DepartmentDetail, error)
	DepartmentSubjects(ctx context.Context, name string) ([]models.SubjectStats, error)
	Leaderboard(ctx context.Context, filter models.Filter, n int) (*models.Leaderboard, error)
}

// DepartmentHandler serves department listing and drill-down endpoints.
type DepartmentHandler struct {
	stats departmentService
}

// NewDepartmentHandler constructs the handler.
func NewDepartmentHandler(stats departmentService) *DepartmentHandler {
	return &DepartmentHandler{stats: stats}
}

// List godoc
// @Summary Paginated department statistics
// @Tags Departments
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param sort_by query string false "Sort key (pass_rate, exam_count, students)"
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *DepartmentHandler) List(c *gin.Context) {
	if h.stats == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, offset, err := pageFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.stats.DepartmentStats(c.Request.Context(), filter, c.Query("sort_by"))
	if err != nil {
		response.Error(c, err)
		return
	}
	lo, hi := pageBounds(len(stats), limit, offset)
	response.OK(c, "departments listed", response.Paginated{
		Items:  stats[lo:hi],
		Total:  len(stats),
		Limit:  limit,
		Offset: offset,
	})
}

// Leaderboard godoc
// @Summary Top and bottom departments by pass rate
// @Tags Departments
// @Produce json
// @Param top_n query int false "Entries per side (default 5)"
// @Success 200 {object} response.Envelope
// @Router /departments/leaderboard [get]
func (h *DepartmentHandler) Leaderboard(c *gin.Context) {
	if h.stats == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	n, err := queryInt(c, "top_n", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	board, err := h.stats.Leaderboard(c.Request.Context(), filter, n)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "leaderboard computed", board)
}

// Detail godoc
// @Summary Department detail with component averages
// @Tags Departments
// @Produce json
// @Param name path string true "Department name"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /departments/{name} [get]
func (h *DepartmentHandler) Detail(c *gin.Context) {
	if h.stats == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "department name is required"))
		return
	}
	detail, err := h.stats.DepartmentDetail(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "department detail computed", detail)
}

// Subjects godoc
// @Summary Subjects taught within a department
// @Tags Departments
// @Produce json
// @Param name path string true "Department name"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /departments/{name}/subjects [get]
func (h *DepartmentHandler) Subjects(c *gin.Context) {
	if h.stats == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "department name is required"))
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	subjects, err := h.stats.DepartmentSubjects(c.Request.Context(), name)
	if err != nil {
		response.Error(c, err)
		return
	}
	if limit > 0 && limit < len(subjects) {
		subjects = subjects[:limit]
	}
	response.OK(c, "department subjects computed", subjects)
}
