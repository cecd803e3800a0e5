package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
	"github.com/noah-isme/exam-analytics-api/pkg/response"
)

type exportService interface {
	DepartmentsCSV(ctx context.Context, filter models.Filter) ([]byte, string, error)
	ReportPDF(ctx context.Context, reportType, department string) ([]byte, string, error)
}

// ExportHandler serves downloadable document endpoints.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// DepartmentsCSV godoc
// @Summary Department statistics as a CSV download
// @Tags Export
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /export/departments.csv [get]
func (h *ExportHandler) DepartmentsCSV(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	filter, err := filterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, filename, err := h.exports.DepartmentsCSV(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv", payload)
}

// ReportPDF godoc
// @Summary Statistics report as a PDF download
// @Tags Export
// @Produce application/pdf
// @Security BearerAuth
// @Param report_type query string false "summary (default), detailed or executive"
// @Param department query string false "Restrict to one department"
// @Success 200 {file} file
// @Failure 401 {object} response.Envelope
// @Router /export/report.pdf [get]
func (h *ExportHandler) ReportPDF(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	reportType := strings.TrimSpace(c.Query("report_type"))
	if reportType == "" {
		reportType = "summary"
	}
	payload, filename, err := h.exports.ReportPDF(c.Request.Context(), reportType, strings.TrimSpace(c.Query("department")))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}
