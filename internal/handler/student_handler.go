package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
	"github.com/noah-isme/exam-analytics-api/pkg/response"
)

type studentService interface {
	Search(ctx context.Context, query, searchType string) ([]models.StudentProfile, error)
	Profile(ctx context.Context, studentID string) (*models.StudentProfile, error)
	Performance(ctx context.Context, studentID string) (*models.StudentPerformance, error)
	Results(ctx context.Context, studentID string) ([]models.StudentResult, error)
	Batch(ctx context.Context, req models.BatchStudentRequest) ([]models.BatchStudent, error)
}

// StudentHandler serves per-student lookup endpoints.
type StudentHandler struct {
	students studentService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(students studentService) *StudentHandler {
	return &StudentHandler{students: students}
}

// Search godoc
// @Summary Student search by ID or name
// @Tags Students
// @Produce json
// @Param query query string true "ID or name fragment"
// @Param limit query int false "Maximum entries"
// @Param search_type query string false "id, name or all (default)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/search [get]
func (h *StudentHandler) Search(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	profiles, err := h.students.Search(c.Request.Context(), strings.TrimSpace(c.Query("query")), c.Query("search_type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if limit > 0 && limit < len(profiles) {
		profiles = profiles[:limit]
	}
	response.OK(c, "students searched", profiles)
}

// Profile godoc
// @Summary Student profile summary
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id} [get]
func (h *StudentHandler) Profile(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id is required"))
		return
	}
	profile, err := h.students.Profile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "student profile computed", profile)
}

// Performance godoc
// @Summary Per-student exam metrics
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/performance [get]
func (h *StudentHandler) Performance(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id is required"))
		return
	}
	perf, err := h.students.Performance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "student performance computed", perf)
}

// Results godoc
// @Summary Per-student exam rows
// @Tags Students
// @Produce json
// @Param id path string true "Student ID"
// @Param year query int false "Restrict to one exam year"
// @Param limit query int false "Maximum entries"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/results [get]
func (h *StudentHandler) Results(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id is required"))
		return
	}
	year, err := queryIntPtr(c, "year")
	if err != nil {
		response.Error(c, err)
		return
	}
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	results, err := h.students.Results(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if year != nil {
		kept := results[:0]
		for _, r := range results {
			if r.Year != nil && *r.Year == *year {
				kept = append(kept, r)
			}
		}
		results = kept
	}
	if limit > 0 && limit < len(results) {
		results = results[:limit]
	}
	response.OK(c, "student results listed", results)
}

// Batch godoc
// @Summary Summaries for several students at once
// @Tags Students
// @Accept json
// @Produce json
// @Param request body models.BatchStudentRequest true "Student IDs to look up"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /students/batch [post]
func (h *StudentHandler) Batch(c *gin.Context) {
	if h.students == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req models.BatchStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	students, err := h.students.Batch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "batch student data computed", students)
}
