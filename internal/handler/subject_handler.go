package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
	"github.com/noah-isme/exam-analytics-api/pkg/response"
)

type subjectService interface {
	List(ctx context.Context, filter models.Filter) ([]models.SubjectStats, error)
	Search(ctx context.Context, query string) ([]models.SubjectStats, error)
	PassRates(ctx context.Context, filter models.Filter, order string) ([]models.SubjectStats, error)
	Difficulty(ctx context.Context, filter models.Filter, limit int, category string) ([]models.SubjectDifficulty, error)
}

// SubjectHandler serves subject listing and ranking endpoints.
type SubjectHandler struct {
	subjects subjectService
}

// NewSubjectHandler constructs the handler.
func NewSubjectHandler(subjects subjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

// List godoc
// @Summary Paginated subject statistics
// @Tags Subjects
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param sort_by query string false "Sort key (exam_count, name)"
// @Success 200 {object} response.Envelope
// @Router /subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	if h.subjects == nil {
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
	stats, err := h.subjects.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	lo, hi := pageBounds(len(stats), limit, offset)
	response.OK(c, "subjects listed", response.Paginated{
		Items:  stats[lo:hi],
		Total:  len(stats),
		Limit:  limit,
		Offset: offset,
	})
}

// Search godoc
// @Summary Subject name search
// @Tags Subjects
// @Produce json
// @Param query query string true "Name fragment"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /subjects/search [get]
func (h *SubjectHandler) Search(c *gin.Context) {
	if h.subjects == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	found, err := h.subjects.Search(c.Request.Context(), strings.TrimSpace(c.Query("query")))
	if err != nil {
		response.Error(c, err)
		return
	}
	if limit > 0 && limit < len(found) {
		found = found[:limit]
	}
	response.OK(c, "subjects searched", found)
}

// DifficultyRank godoc
// @Summary Subjects ranked by mean score
// @Tags Subjects
// @Produce json
// @Param limit query int false "Maximum entries"
// @Param category query string false "hardest (default) or easiest"
// @Success 200 {object} response.Envelope
// @Router /subjects/difficulty-rank [get]
func (h *SubjectHandler) DifficultyRank(c *gin.Context) {
	if h.subjects == nil {
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
	ranked, err := h.subjects.Difficulty(c.Request.Context(), filter, limit, c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "subject difficulty ranked", ranked)
}

// PassRates godoc
// @Summary Subjects ranked by pass rate
// @Tags Subjects
// @Produce json
// @Param limit query int false "Maximum entries"
// @Param order query string false "asc (default, struggling first) or desc"
// @Success 200 {object} response.Envelope
// @Router /subjects/pass-rates [get]
func (h *SubjectHandler) PassRates(c *gin.Context) {
	if h.subjects == nil {
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
	stats, err := h.subjects.PassRates(c.Request.Context(), filter, c.Query("order"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if limit > 0 && limit < len(stats) {
		stats = stats[:limit]
	}
	response.OK(c, "subject pass rates computed", stats)
}
