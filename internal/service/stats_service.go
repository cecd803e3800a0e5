package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
)

// StatsService computes KPI and department statistics over the canonical
// table. Every public method is cached under the stats: prefix so a dataset
// reload can invalidate the lot with one pattern.
type StatsService struct {
	data   *DatasetService
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsService constructs a stats service.
func NewStatsService(data *DatasetService, cache *CacheService, ttl time.Duration, logger *zap.Logger) *StatsService {
	return &StatsService{data: data, cache: cache, ttl: ttl, logger: logger}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// rate returns count/total as a percentage rounded to 2 decimals, 0 when
// the group is empty.
func rate(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(count) / float64(total) * 100)
}

// computeGroup tallies one slice of records. Pass and fail counts read the
// raw outcome field; the distinction count reads the derived performance.
// The two are independent statistics.
func computeGroup(records []models.ExamRecord) models.GroupStats {
	g := models.GroupStats{TotalExams: len(records)}
	students := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if rec.StudentID != "" {
			students[rec.StudentID] = struct{}{}
		}
		switch {
		case rec.PassedRaw():
			g.PassCount++
		case rec.FailedRaw():
			g.FailCount++
		default:
			g.OtherCount++
		}
		if rec.IsDistinction() {
			g.DistinctionCount++
		}
	}
	g.UniqueStudents = len(students)
	g.PassRate = rate(g.PassCount, g.TotalExams)
	g.FailRate = rate(g.FailCount, g.TotalExams)
	g.DistinctionRate = rate(g.DistinctionCount, g.TotalExams)
	return g
}

// cached wraps the usual lookup-compute-store dance around fn.
func cached[T any](ctx context.Context, cache *CacheService, key string, ttl time.Duration, fn func() (T, error)) (T, error) {
	var out T
	if hit, err := cache.Get(ctx, key, &out); err == nil && hit {
		return out, nil
	}
	out, err := fn()
	if err != nil {
		return out, err
	}
	_ = cache.Set(ctx, key, out, ttl)
	return out, nil
}

// Overall returns the headline KPI block, optionally filter-scoped.
func (s *StatsService) Overall(ctx context.Context, filter models.Filter) (*models.OverallKPI, error) {
	key := "stats:kpi:overall:" + filter.CacheKey()
	return cached(ctx, s.cache, key, s.ttl, func() (*models.OverallKPI, error) {
		table, err := s.data.Table(ctx)
		if err != nil {
			return nil, err
		}
		records, err := s.data.Records(ctx, filter)
		if err != nil {
			return nil, err
		}
		g := computeGroup(records)
		return &models.OverallKPI{
			PassRate:        g.PassRate,
			FailRate:        g.FailRate,
			DistinctionRate: g.DistinctionRate,
			UniqueStudents:  g.UniqueStudents,
			TotalExams:      g.TotalExams,
			LastUpdated:     table.LoadedAt,
		}, nil
	})
}

// Yearly returns per-year statistics sorted ascending by year. Records
// without a resolved year are excluded.
func (s *StatsService) Yearly(ctx context.Context, filter models.Filter) ([]models.GroupStats, error) {
	key := "stats:kpi:yearly:" + filter.CacheKey()
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.GroupStats, error) {
		records, err := s.data.Records(ctx, filter)
		if err != nil {
			return nil, err
		}
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
		return out, nil
	})
}

// departmentStats groups the records by department, empty names excluded.
func departmentStats(records []models.ExamRecord) []models.DepartmentStats {
	type agg struct {
		students map[string]struct{}
		exams    int
		pass     int
	}
	byDept := map[string]*agg{}
	for _, rec := range records {
		if rec.Department == "" {
			continue
		}
		a := byDept[rec.Department]
		if a == nil {
			a = &agg{students: map[string]struct{}{}}
			byDept[rec.Department] = a
		}
		a.exams++
		if rec.StudentID != "" {
			a.students[rec.StudentID] = struct{}{}
		}
		if rec.PassedRaw() {
			a.pass++
		}
	}
	out := make([]models.DepartmentStats, 0, len(byDept))
	for name, a := range byDept {
		out = append(out, models.DepartmentStats{
			Department: name,
			Students:   len(a.students),
			Exams:      a.exams,
			PassCount:  a.pass,
			PassRate:   rate(a.pass, a.exams),
		})
	}
	// Deterministic base order before any stable re-sort.
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

// DepartmentStats lists departments sorted by the requested key. Unknown
// keys fall back to pass rate. Ties keep name order.
func (s *StatsService) DepartmentStats(ctx context.Context, filter models.Filter, sortBy string) ([]models.DepartmentStats, error) {
	key := fmt.Sprintf("stats:departments:%s:%s", sortBy, filter.CacheKey())
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.DepartmentStats, error) {
		records, err := s.data.Records(ctx, filter)
		if err != nil {
			return nil, err
		}
		stats := departmentStats(records)
		switch sortBy {
		case models.SortByExamCount:
			sort.SliceStable(stats, func(i, j int) bool { return stats[i].Exams > stats[j].Exams })
		case models.SortByStudentCount:
			sort.SliceStable(stats, func(i, j int) bool { return stats[i].Students > stats[j].Students })
		default:
			sort.SliceStable(stats, func(i, j int) bool { return stats[i].PassRate > stats[j].PassRate })
		}
		return stats, nil
	})
}

// DepartmentDetail returns the full statistics block for one department.
func (s *StatsService) DepartmentDetail(ctx context.Context, name string) (*models.DepartmentDetail, error) {
	key := "stats:department:" + name
	return cached(ctx, s.cache, key, s.ttl, func() (*models.DepartmentDetail, error) {
		records, err := s.data.Records(ctx, models.Filter{Department: name})
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, appErrors.ErrDepartmentNotFound
		}
		g := computeGroup(records)
		return &models.DepartmentDetail{
			Department:           name,
			UniqueStudents:       g.UniqueStudents,
			TotalExams:           g.TotalExams,
			PassCount:            g.PassCount,
			FailCount:            g.FailCount,
			DistinctionCount:     g.DistinctionCount,
			PassRate:             g.PassRate,
			FailRate:             g.FailRate,
			DistinctionRate:      g.DistinctionRate,
			AvgTheoryInternal:    meanOf(records, func(r models.ExamRecord) *float64 { return r.TheoryInternalPct }),
			AvgPracticalInternal: meanOf(records, func(r models.ExamRecord) *float64 { return r.PracticalInternalPct }),
			AvgTheoryExternal:    meanOf(records, func(r models.ExamRecord) *float64 { return r.TheoryExternalPct }),
			AvgPracticalExternal: meanOf(records, func(r models.ExamRecord) *float64 { return r.PracticalExternalPct }),
		}, nil
	})
}

// meanOf averages a component over the records where it is present.
func meanOf(records []models.ExamRecord, pick func(models.ExamRecord) *float64) *float64 {
	var sum float64
	var n int
	for _, rec := range records {
		if v := pick(rec); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	m := round2(sum / float64(n))
	return &m
}

// DepartmentSubjects lists per-subject statistics within one department,
// sorted by exam count descending.
func (s *StatsService) DepartmentSubjects(ctx context.Context, name string) ([]models.SubjectStats, error) {
	key := "stats:department-subjects:" + name
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.SubjectStats, error) {
		records, err := s.data.Records(ctx, models.Filter{Department: name})
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, appErrors.ErrDepartmentNotFound
		}
		return subjectStats(records, ""), nil
	})
}

// subjectStats tallies subjects, optionally filtered by a case-insensitive
// name fragment, sorted by exam count descending then name.
func subjectStats(records []models.ExamRecord, search string) []models.SubjectStats {
	search = strings.ToLower(strings.TrimSpace(search))
	type agg struct {
		exams int
		pass  int
	}
	bySubject := map[string]*agg{}
	for _, rec := range records {
		if rec.Subject == "" {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(rec.Subject), search) {
			continue
		}
		a := bySubject[rec.Subject]
		if a == nil {
			a = &agg{}
			bySubject[rec.Subject] = a
		}
		a.exams++
		if rec.PassedRaw() {
			a.pass++
		}
	}
	out := make([]models.SubjectStats, 0, len(bySubject))
	for name, a := range bySubject {
		out = append(out, models.SubjectStats{
			Subject:   name,
			ExamCount: a.exams,
			PassCount: a.pass,
			PassRate:  rate(a.pass, a.exams),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	sort.SliceStable(out, func(i, j int) bool { return out[i].ExamCount > out[j].ExamCount })
	return out
}

// Leaderboard returns the n best and n worst departments by pass rate.
// Small departments are not excluded; a single-exam department can top the
// board.
func (s *StatsService) Leaderboard(ctx context.Context, filter models.Filter, n int) (*models.Leaderboard, error) {
	if n <= 0 {
		n = 5
	}
	key := fmt.Sprintf("stats:leaderboard:%d:%s", n, filter.CacheKey())
	return cached(ctx, s.cache, key, s.ttl, func() (*models.Leaderboard, error) {
		records, err := s.data.Records(ctx, filter)
		if err != nil {
			return nil, err
		}
		stats := departmentStats(records)

		top := make([]models.DepartmentStats, len(stats))
		copy(top, stats)
		sort.SliceStable(top, func(i, j int) bool { return top[i].PassRate > top[j].PassRate })

		bottom := make([]models.DepartmentStats, len(stats))
		copy(bottom, stats)
		sort.SliceStable(bottom, func(i, j int) bool { return bottom[i].PassRate < bottom[j].PassRate })

		board := &models.Leaderboard{
			Top:    rankEntries(top, n),
			Bottom: rankEntries(bottom, n),
		}
		return board, nil
	})
}

func rankEntries(stats []models.DepartmentStats, n int) []models.LeaderboardEntry {
	if n > len(stats) {
		n = len(stats)
	}
	entries := make([]models.LeaderboardEntry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, models.LeaderboardEntry{
			Rank:       i + 1,
			Department: stats[i].Department,
			PassRate:   stats[i].PassRate,
			Exams:      stats[i].Exams,
			Students:   stats[i].Students,
		})
	}
	return entries
}
