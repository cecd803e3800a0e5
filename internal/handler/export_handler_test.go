package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/exam-analytics-api/internal/models"
)

type fakeExportSrv struct {
	csv      []byte
	pdf      []byte
	filename string
	err      error

	lastReportType string
}

func (f *fakeExportSrv) DepartmentsCSV(context.Context, models.Filter) ([]byte, string, error) {
	return f.csv, f.filename, f.err
}

func (f *fakeExportSrv) ReportPDF(_ context.Context, reportType, _ string) ([]byte, string, error) {
	f.lastReportType = reportType
	return f.pdf, f.filename, f.err
}

func TestExportDepartmentsCSVHeaders(t *testing.T) {
	srv := &fakeExportSrv{csv: []byte("department,pass_rate\nSCIENCE,80.00\n"), filename: "departments-20260101.csv"}
	h := NewExportHandler(srv)

	rec, _ := perform(t, h.DepartmentsCSV, http.MethodGet, "/export/departments.csv", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "departments-20260101.csv")
	assert.Contains(t, rec.Body.String(), "SCIENCE")
}

func TestExportReportPDFDefaultsType(t *testing.T) {
	srv := &fakeExportSrv{pdf: []byte("%PDF-1.4"), filename: "report-summary-20260101.pdf"}
	h := NewExportHandler(srv)

	rec, _ := perform(t, h.ReportPDF, http.MethodGet, "/export/report.pdf", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "summary", srv.lastReportType)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}
