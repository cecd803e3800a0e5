package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartmentCSV(t *testing.T) {
	payload, err := DepartmentCSV([]DepartmentRow{
		{Department: "Computer Science", Students: 40, Exams: 120, PassCount: 102, PassRate: 85},
		{Department: "Physics", Students: 25, Exams: 75, PassCount: 60, PassRate: 80.5},
	})
	require.NoError(t, err)

	want := "department,students,exams,pass_count,pass_rate\n" +
		"Computer Science,40,120,102,85.00\n" +
		"Physics,25,75,60,80.50\n"
	assert.Equal(t, want, string(payload))
}

func TestDepartmentCSVEmpty(t *testing.T) {
	payload, err := DepartmentCSV(nil)
	require.NoError(t, err)

	// Header still renders so downstream tooling sees the columns.
	assert.Equal(t, "department,students,exams,pass_count,pass_rate\n", string(payload))
}

func TestReportPDF(t *testing.T) {
	payload, err := ReportPDF(ReportDocument{
		Title: "Exam Performance Report",
		Scope: "Computer Science",
		Summary: []Metric{
			{Label: "Pass rate", Value: "85.00%"},
			{Label: "Exam records", Value: "120"},
		},
		Rankings: []DepartmentRow{{Department: "Computer Science", Exams: 120, PassRate: 85}},
		Insights: []string{"Pass rates improved year over year."},
	})
	require.NoError(t, err)

	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF-", string(payload[:5]))
}

func TestReportPDFRequiresSummary(t *testing.T) {
	_, err := ReportPDF(ReportDocument{Title: "Empty"})
	assert.Error(t, err)
}
