package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-analytics-api/internal/models"
)

type fakeKPISrv struct {
	overall    *models.OverallKPI
	yearly     []models.GroupStats
	deptStats  []models.DepartmentStats
	err        error
	lastFilter models.Filter
	lastSortBy string
}

func (f *fakeKPISrv) Overall(_ context.Context, filter models.Filter) (*models.OverallKPI, error) {
	f.lastFilter = filter
	return f.overall, f.err
}

func (f *fakeKPISrv) Yearly(_ context.Context, filter models.Filter) ([]models.GroupStats, error) {
	f.lastFilter = filter
	return f.yearly, f.err
}

func (f *fakeKPISrv) DepartmentStats(_ context.Context, filter models.Filter, sortBy string) ([]models.DepartmentStats, error) {
	f.lastFilter = filter
	f.lastSortBy = sortBy
	return f.deptStats, f.err
}

type fakeOptionsSrv struct {
	options *models.FilterOptions
	err     error
}

func (f *fakeOptionsSrv) FilterOptions(context.Context) (*models.FilterOptions, error) {
	return f.options, f.err
}

func TestKPIOverallPinsYearRange(t *testing.T) {
	srv := &fakeKPISrv{overall: &models.OverallKPI{TotalExams: 10, PassRate: 80}}
	h := NewKPIHandler(srv, nil)

	rec, envelope := perform(t, h.Overall, http.MethodGet, "/kpis/overall?year=2023&department=SCIENCE", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", envelope.Status)
	require.NotNil(t, srv.lastFilter.YearFrom)
	require.NotNil(t, srv.lastFilter.YearTo)
	assert.Equal(t, 2023, *srv.lastFilter.YearFrom)
	assert.Equal(t, 2023, *srv.lastFilter.YearTo)
	assert.Equal(t, "SCIENCE", srv.lastFilter.Department)
}

func TestKPIOverallRejectsBadYear(t *testing.T) {
	h := NewKPIHandler(&fakeKPISrv{}, nil)

	rec, envelope := perform(t, h.Overall, http.MethodGet, "/kpis/overall?year=latest", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ERR_VALIDATION", envelope.ErrorCode)
}

func TestKPIDepartmentStatsPassesSortAndTrims(t *testing.T) {
	srv := &fakeKPISrv{deptStats: []models.DepartmentStats{
		{Department: "A"}, {Department: "B"}, {Department: "C"},
	}}
	h := NewKPIHandler(srv, nil)

	rec, envelope := perform(t, h.DepartmentStats, http.MethodGet, "/kpis/department-stats?limit=2&sort_by=students", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "students", srv.lastSortBy)
	var stats []models.DepartmentStats
	decodeData(t, envelope, &stats)
	assert.Len(t, stats, 2)
}

func TestKPIFilters(t *testing.T) {
	h := NewKPIHandler(nil, &fakeOptionsSrv{options: &models.FilterOptions{Years: []int{2023, 2022}}})

	rec, envelope := perform(t, h.Filters, http.MethodGet, "/kpis/filters", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	var options models.FilterOptions
	decodeData(t, envelope, &options)
	assert.Equal(t, []int{2023, 2022}, options.Years)
}
