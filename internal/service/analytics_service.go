package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
)

// Report and trend vocabulary accepted by the analytics endpoints.
const (
	ReportSummary   = "summary"
	ReportDetailed  = "detailed"
	ReportExecutive = "executive"

	MetricPassRate        = "pass_rate"
	MetricDistinctionRate = "distinction_rate"
	MetricExamCount       = "exam_count"
)

const defaultFilterLimit = 100

// AnalyticsService serves ad-hoc filtering, comparisons, trend analysis,
// and report generation.
type AnalyticsService struct {
	data    *DatasetService
	cache   *CacheService
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(data *DatasetService, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{data: data, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// Filter applies the requested criteria, aggregates over every match, and
// returns one page of records. Not cached: the criteria space is unbounded.
func (s *AnalyticsService) Filter(ctx context.Context, req models.FilterRequest) (*models.FilterResult, error) {
	records, err := s.data.Records(ctx, req.ToFilter())
	if err != nil {
		return nil, err
	}

	g := computeGroup(records)
	limit := req.Limit
	if limit <= 0 {
		limit = defaultFilterLimit
	}
	offset := req.Offset
	if offset > len(records) {
		offset = len(records)
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}

	result := &models.FilterResult{
		FiltersApplied:   req,
		TotalRecords:     g.TotalExams,
		PassCount:        g.PassCount,
		FailCount:        g.FailCount,
		DistinctionCount: g.DistinctionCount,
		PassRate:         g.PassRate,
		Records:          records[offset:end],
		Limit:            limit,
		Offset:           req.Offset,
	}

	switch models.GroupBy(req.GroupBy) {
	case models.GroupByYear:
		result.Groups = groupByYear(records)
	case models.GroupByDepartment:
		result.Groups = groupByKey(records, func(r models.ExamRecord) string { return r.Department })
	case models.GroupBySubject:
		result.Groups = groupByKey(records, func(r models.ExamRecord) string { return r.Subject })
	}
	return result, nil
}

func groupByYear(records []models.ExamRecord) []models.GroupStats {
	byYear := map[int][]models.ExamRecord{}
	for _, rec := range records {
		if rec.ExamYear == nil {
			continue
		}
		byYear[*rec.ExamYear] = append(byYear[*rec.ExamYear], rec)
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	out := make([]models.GroupStats, 0, len(years))
	for _, y := range years {
		g := computeGroup(byYear[y])
		year := y
		g.Year = &year
		out = append(out, g)
	}
	return out
}

func groupByKey(records []models.ExamRecord, key func(models.ExamRecord) string) []models.GroupStats {
	byKey := map[string][]models.ExamRecord{}
	for _, rec := range records {
		k := key(rec)
		if k == "" {
			continue
		}
		byKey[k] = append(byKey[k], rec)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]models.GroupStats, 0, len(keys))
	for _, k := range keys {
		g := computeGroup(byKey[k])
		g.Key = k
		out = append(out, g)
	}
	return out
}

// Comparison pits two departments or subjects against each other.
func (s *AnalyticsService) Comparison(ctx context.Context, req models.ComparisonRequest) (*models.Comparison, error) {
	key := fmt.Sprintf("stats:comparison:%s:%s:%s", req.Type, req.First, req.Second)
	return cached(ctx, s.cache, key, s.ttl, func() (*models.Comparison, error) {
		first, err := s.comparisonSide(ctx, req.Type, req.First)
		if err != nil {
			return nil, err
		}
		second, err := s.comparisonSide(ctx, req.Type, req.Second)
		if err != nil {
			return nil, err
		}

		better := first.Name
		switch {
		case second.PassRate > first.PassRate:
			better = second.Name
		case second.PassRate == first.PassRate:
			better = "tie"
		}

		return &models.Comparison{
			EntityType:          req.Type,
			First:               *first,
			Second:              *second,
			BetterPerformer:     better,
			PassRateDiff:        round2(first.PassRate - second.PassRate),
			DistinctionRateDiff: round2(first.DistinctionRate - second.DistinctionRate),
		}, nil
	})
}

func (s *AnalyticsService) comparisonSide(ctx context.Context, entityType, name string) (*models.ComparisonSide, error) {
	records, err := s.entityRecords(ctx, entityType, name)
	if err != nil {
		return nil, err
	}
	g := computeGroup(records)
	return &models.ComparisonSide{
		Name:             name,
		TotalExams:       g.TotalExams,
		UniqueStudents:   g.UniqueStudents,
		PassCount:        g.PassCount,
		DistinctionCount: g.DistinctionCount,
		PassRate:         g.PassRate,
		DistinctionRate:  g.DistinctionRate,
	}, nil
}

func (s *AnalyticsService) entityRecords(ctx context.Context, entityType, name string) ([]models.ExamRecord, error) {
	var filter models.Filter
	var notFound *appErrors.Error
	switch entityType {
	case "department":
		filter.Department = name
		notFound = appErrors.ErrDepartmentNotFound
	case "subject":
		filter.Subject = name
		notFound = appErrors.ErrSubjectNotFound
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "entity type must be department or subject")
	}
	records, err := s.data.Records(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, appErrors.Clone(notFound, fmt.Sprintf("%s %q has no exam records", entityType, name))
	}
	return records, nil
}

// Trends returns the yearly series for one entity and a two-point direction
// verdict comparing the latest year against the earliest.
func (s *AnalyticsService) Trends(ctx context.Context, entityType, name, metric string) (*models.TrendSummary, error) {
	switch metric {
	case "", MetricPassRate:
		metric = MetricPassRate
	case MetricDistinctionRate, MetricExamCount:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "metric must be pass_rate, distinction_rate, or exam_count")
	}

	key := fmt.Sprintf("stats:trends:%s:%s:%s", entityType, name, metric)
	return cached(ctx, s.cache, key, s.ttl, func() (*models.TrendSummary, error) {
		records, err := s.entityRecords(ctx, entityType, name)
		if err != nil {
			return nil, err
		}

		points := trendPoints(records, metric)
		summary := &models.TrendSummary{
			Entity:    name,
			Metric:    metric,
			Points:    points,
			Direction: models.TrendStable,
		}
		if len(points) == 0 {
			return summary, nil
		}

		earliest := points[0].Value
		latest := points[len(points)-1].Value
		summary.Earliest = &earliest
		summary.Latest = &latest
		if len(points) > 1 {
			switch {
			case latest > earliest:
				summary.Direction = models.TrendUpward
			case latest < earliest:
				summary.Direction = models.TrendDownward
			}
			summary.Change = round2(latest - earliest)
		}
		return summary, nil
	})
}

func trendPoints(records []models.ExamRecord, metric string) []models.TrendPoint {
	groups := groupByYear(records)
	points := make([]models.TrendPoint, 0, len(groups))
	for _, g := range groups {
		p := models.TrendPoint{
			Year:            *g.Year,
			ExamCount:       g.TotalExams,
			PassRate:        g.PassRate,
			DistinctionRate: g.DistinctionRate,
		}
		switch metric {
		case MetricDistinctionRate:
			p.Value = g.DistinctionRate
		case MetricExamCount:
			p.Value = float64(g.TotalExams)
		default:
			p.Value = g.PassRate
		}
		points = append(points, p)
	}
	return points
}

// TrendLine fits a least-squares line through the yearly series of one
// entity. It is the chart overlay companion of Trends, not a replacement.
func (s *AnalyticsService) TrendLine(ctx context.Context, entityType, name, metric string) (*models.TrendLine, error) {
	summary, err := s.Trends(ctx, entityType, name, metric)
	if err != nil {
		return nil, err
	}
	if len(summary.Points) < 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least two yearly points are required for a trend line")
	}

	var sumX, sumY, sumXY, sumXX float64
	n := float64(len(summary.Points))
	for _, p := range summary.Points {
		x := float64(p.Year)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trend line is undefined for a single year")
	}
	slope := (n*sumXY - sumX*sumY) / denom
	return &models.TrendLine{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}, nil
}

// Report composes a performance report. Detailed reports add the top
// departments; executive reports add key insights on top of that.
func (s *AnalyticsService) Report(ctx context.Context, reportType, department string) (*models.Report, error) {
	switch reportType {
	case "":
		reportType = ReportSummary
	case ReportSummary, ReportDetailed, ReportExecutive:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "report type must be summary, detailed, or executive")
	}

	records, err := s.data.Records(ctx, models.Filter{Department: department})
	if err != nil {
		return nil, err
	}

	g := computeGroup(records)
	subjects := map[string]struct{}{}
	departments := map[string]struct{}{}
	for _, rec := range records {
		if rec.Subject != "" {
			subjects[rec.Subject] = struct{}{}
		}
		if rec.Department != "" {
			departments[rec.Department] = struct{}{}
		}
	}

	scope := "entire dataset"
	if department != "" {
		scope = "department"
	}
	report := &models.Report{
		ReportType:  reportType,
		GeneratedAt: time.Now().UTC(),
		DataScope:   scope,
		Summary: models.ReportSummary{
			TotalExamRecords:    g.TotalExams,
			UniqueStudents:      g.UniqueStudents,
			UniqueSubjects:      len(subjects),
			DepartmentsIncluded: len(departments),
			PassRate:            g.PassRate,
			FailRate:            g.FailRate,
			DistinctionRate:     g.DistinctionRate,
		},
	}

	if reportType != ReportSummary && department == "" {
		stats := departmentStats(records)
		sort.SliceStable(stats, func(i, j int) bool { return stats[i].PassRate > stats[j].PassRate })
		if len(stats) > 5 {
			stats = stats[:5]
		}
		report.TopDepartments = stats
	}

	if reportType == ReportExecutive {
		if report.Summary.PassRate >= 95 {
			report.KeyInsights = append(report.KeyInsights, "High overall pass rate indicates strong academic performance")
		}
		if report.Summary.DistinctionRate >= 10 {
			report.KeyInsights = append(report.KeyInsights, "Distinction rate above 10% shows excellent student achievement")
		}
		if report.Summary.FailRate >= 5 {
			report.KeyInsights = append(report.KeyInsights, "Fail rate above 5% suggests need for academic support programs")
		}
	}
	return report, nil
}

// SystemMetrics exposes the instrumentation snapshot.
func (s *AnalyticsService) SystemMetrics() models.SystemMetrics {
	return s.metrics.Snapshot()
}
