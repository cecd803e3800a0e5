package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	"github.com/noah-isme/exam-analytics-api/pkg/export"
)

// ExportService renders statistics into downloadable documents.
type ExportService struct {
	stats     *StatsService
	analytics *AnalyticsService
	logger    *zap.Logger
}

// NewExportService constructs an export service.
func NewExportService(stats *StatsService, analytics *AnalyticsService, logger *zap.Logger) *ExportService {
	return &ExportService{
		stats:     stats,
		analytics: analytics,
		logger:    logger,
	}
}

func departmentRows(stats []models.DepartmentStats) []export.DepartmentRow {
	rows := make([]export.DepartmentRow, 0, len(stats))
	for _, d := range stats {
		rows = append(rows, export.DepartmentRow{
			Department: d.Department,
			Students:   d.Students,
			Exams:      d.Exams,
			PassCount:  d.PassCount,
			PassRate:   d.PassRate,
		})
	}
	return rows
}

// DepartmentsCSV renders the department statistics table as CSV.
func (s *ExportService) DepartmentsCSV(ctx context.Context, filter models.Filter) ([]byte, string, error) {
	stats, err := s.stats.DepartmentStats(ctx, filter, models.SortByPassRate)
	if err != nil {
		return nil, "", err
	}

	payload, err := export.DepartmentCSV(departmentRows(stats))
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("departments-%s.csv", time.Now().UTC().Format("20060102"))
	return payload, filename, nil
}

// ReportPDF renders a performance report as a PDF document.
func (s *ExportService) ReportPDF(ctx context.Context, reportType, department string) ([]byte, string, error) {
	report, err := s.analytics.Report(ctx, reportType, department)
	if err != nil {
		return nil, "", err
	}

	doc := export.ReportDocument{
		Title: "Exam Performance Report",
		Scope: report.DataScope,
		Summary: []export.Metric{
			{Label: "Report type", Value: report.ReportType},
			{Label: "Exam records", Value: fmt.Sprintf("%d", report.Summary.TotalExamRecords)},
			{Label: "Unique students", Value: fmt.Sprintf("%d", report.Summary.UniqueStudents)},
			{Label: "Unique subjects", Value: fmt.Sprintf("%d", report.Summary.UniqueSubjects)},
			{Label: "Departments", Value: fmt.Sprintf("%d", report.Summary.DepartmentsIncluded)},
			{Label: "Pass rate", Value: fmt.Sprintf("%.2f%%", report.Summary.PassRate)},
			{Label: "Fail rate", Value: fmt.Sprintf("%.2f%%", report.Summary.FailRate)},
			{Label: "Distinction rate", Value: fmt.Sprintf("%.2f%%", report.Summary.DistinctionRate)},
		},
		Rankings: departmentRows(report.TopDepartments),
		Insights: report.KeyInsights,
	}

	payload, err := export.ReportPDF(doc)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("report-%s-%s.pdf", report.ReportType, time.Now().UTC().Format("20060102"))
	return payload, filename, nil
}
