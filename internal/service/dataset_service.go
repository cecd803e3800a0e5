package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/dataset"
	"github.com/noah-isme/exam-analytics-api/internal/models"
)

// statsCachePattern matches every cached statistics payload. A reload wipes
// the lot so no response outlives the dataset it was computed from.
const statsCachePattern = "stats:*"

// ReloadResult summarises one dataset reload.
type ReloadResult struct {
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
	Warnings []string  `json:"warnings,omitempty"`
}

// DatasetStore abstracts the build lifecycle of the canonical table.
type DatasetStore interface {
	Get(ctx context.Context) (*dataset.Table, error)
	Reload(ctx context.Context) (*dataset.Table, error)
	Loaded() bool
	OnBuild(fn func(rows int, d time.Duration))
}

// DatasetService owns access to the canonical table and its lifecycle.
type DatasetService struct {
	store  DatasetStore
	cache  *CacheService
	logger *zap.Logger
}

// NewDatasetService constructs a dataset service.
func NewDatasetService(store DatasetStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *DatasetService {
	if metrics != nil {
		store.OnBuild(metrics.ObserveDatasetBuild)
	}
	return &DatasetService{store: store, cache: cache, logger: logger}
}

// Table returns the current build, loading it on first use.
func (s *DatasetService) Table(ctx context.Context) (*dataset.Table, error) {
	return s.store.Get(ctx)
}

// Records returns the records matching the filter. An empty filter returns
// the full table without copying.
func (s *DatasetService) Records(ctx context.Context, filter models.Filter) ([]models.ExamRecord, error) {
	table, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsZero() {
		return table.Records, nil
	}
	matched := make([]models.ExamRecord, 0, len(table.Records))
	for _, rec := range table.Records {
		if filter.Matches(rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Reload rebuilds the table from the source and invalidates every cached
// statistics payload.
func (s *DatasetService) Reload(ctx context.Context) (*ReloadResult, error) {
	table, err := s.store.Reload(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Invalidate(ctx, statsCachePattern); err != nil {
		s.logger.Warn("stats cache invalidation failed after reload", zap.Error(err))
	}
	s.logger.Info("dataset reloaded", zap.Int("rows", len(table.Records)))
	return &ReloadResult{
		Rows:     len(table.Records),
		LoadedAt: table.LoadedAt,
		Warnings: table.Warnings,
	}, nil
}

// Loaded reports whether a build exists, without triggering one.
func (s *DatasetService) Loaded() bool {
	return s.store.Loaded()
}

// FilterOptions returns the distinct values for dashboard filter dropdowns.
// Years are newest first, everything else ascending.
func (s *DatasetService) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	table, err := s.store.Get(ctx)
	if err != nil {
		return nil, err
	}

	yearSet := map[int]struct{}{}
	deptSet := map[string]struct{}{}
	subjectSet := map[string]struct{}{}
	semesterSet := map[int]struct{}{}
	for _, rec := range table.Records {
		if rec.ExamYear != nil {
			yearSet[*rec.ExamYear] = struct{}{}
		}
		if rec.Department != "" {
			deptSet[rec.Department] = struct{}{}
		}
		if rec.Subject != "" {
			subjectSet[rec.Subject] = struct{}{}
		}
		if rec.Semester != nil {
			semesterSet[*rec.Semester] = struct{}{}
		}
	}

	opts := &models.FilterOptions{
		Years:       make([]int, 0, len(yearSet)),
		Departments: make([]string, 0, len(deptSet)),
		Subjects:    make([]string, 0, len(subjectSet)),
		Semesters:   make([]int, 0, len(semesterSet)),
	}
	for y := range yearSet {
		opts.Years = append(opts.Years, y)
	}
	for d := range deptSet {
		opts.Departments = append(opts.Departments, d)
	}
	for sub := range subjectSet {
		opts.Subjects = append(opts.Subjects, sub)
	}
	for sem := range semesterSet {
		opts.Semesters = append(opts.Semesters, sem)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(opts.Years)))
	sort.Strings(opts.Departments)
	sort.Strings(opts.Subjects)
	sort.Ints(opts.Semesters)
	return opts, nil
}
