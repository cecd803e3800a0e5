package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
)

// StudentService serves per-student lookups over the canonical table.
type StudentService struct {
	data   *DatasetService
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewStudentService constructs a student service.
func NewStudentService(data *DatasetService, cache *CacheService, ttl time.Duration, logger *zap.Logger) *StudentService {
	return &StudentService{data: data, cache: cache, ttl: ttl, logger: logger}
}

// Search matches students whose ID or name contains the fragment,
// case-insensitively, and returns their profiles sorted by ID. searchType
// narrows the match to "id" or "name"; anything else searches both.
func (s *StudentService) Search(ctx context.Context, query, searchType string) ([]models.StudentProfile, error) {
	if query == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "search query is required")
	}
	if searchType != "id" && searchType != "name" {
		searchType = "all"
	}
	key := "stats:students:search:" + searchType + ":" + query
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.StudentProfile, error) {
		records, err := s.data.Records(ctx, models.Filter{})
		if err != nil {
			return nil, err
		}
		needle := strings.ToLower(query)
		matched := map[string][]models.ExamRecord{}
		for _, rec := range records {
			if rec.StudentID == "" {
				continue
			}
			idHit := strings.Contains(strings.ToLower(rec.StudentID), needle)
			nameHit := strings.Contains(strings.ToLower(rec.StudentName), needle)
			hit := idHit || nameHit
			switch searchType {
			case "id":
				hit = idHit
			case "name":
				hit = nameHit
			}
			if hit {
				matched[rec.StudentID] = append(matched[rec.StudentID], rec)
			}
		}
		out := make([]models.StudentProfile, 0, len(matched))
		for _, recs := range matched {
			out = append(out, buildProfile(recs))
		}
		sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
		return out, nil
	})
}

// Profile returns the identity block for one student.
func (s *StudentService) Profile(ctx context.Context, studentID string) (*models.StudentProfile, error) {
	key := "stats:students:profile:" + studentID
	return cached(ctx, s.cache, key, s.ttl, func() (*models.StudentProfile, error) {
		records, err := s.studentRecords(ctx, studentID)
		if err != nil {
			return nil, err
		}
		profile := buildProfile(records)
		return &profile, nil
	})
}

// Performance aggregates one student's attempts across all exams.
func (s *StudentService) Performance(ctx context.Context, studentID string) (*models.StudentPerformance, error) {
	key := "stats:students:performance:" + studentID
	return cached(ctx, s.cache, key, s.ttl, func() (*models.StudentPerformance, error) {
		records, err := s.studentRecords(ctx, studentID)
		if err != nil {
			return nil, err
		}
		perf := &models.StudentPerformance{
			StudentID:  studentID,
			TotalExams: len(records),
		}
		for _, rec := range records {
			if rec.PassedRaw() {
				perf.PassExams++
			}
			if rec.FailedRaw() {
				perf.FailExams++
			}
			if rec.IsDistinction() {
				perf.Distinctions++
			}
		}
		perf.PassRate = rate(perf.PassExams, perf.TotalExams)
		perf.AvgTheoryInternal = meanOf(records, func(r models.ExamRecord) *float64 { return r.TheoryInternalPct })
		perf.AvgTheoryExternal = meanOf(records, func(r models.ExamRecord) *float64 { return r.TheoryExternalPct })
		return perf, nil
	})
}

// Results lists one student's exam rows, newest year first, subjects
// alphabetical within a year.
func (s *StudentService) Results(ctx context.Context, studentID string) ([]models.StudentResult, error) {
	key := "stats:students:results:" + studentID
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.StudentResult, error) {
		records, err := s.studentRecords(ctx, studentID)
		if err != nil {
			return nil, err
		}
		return resultRows(records), nil
	})
}

// batchRecentResults caps the per-student listing of a batch lookup.
const batchRecentResults = 20

// Batch returns summaries for the requested students, in request order.
// Unknown IDs are skipped rather than failing the whole call, and duplicate
// IDs collapse to one entry.
func (s *StudentService) Batch(ctx context.Context, req models.BatchStudentRequest) ([]models.BatchStudent, error) {
	if len(req.StudentIDs) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student_ids is required")
	}
	key := fmt.Sprintf("stats:students:batch:%t:%s", req.IncludeResults, strings.Join(req.StudentIDs, ","))
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.BatchStudent, error) {
		records, err := s.data.Records(ctx, models.Filter{})
		if err != nil {
			return nil, err
		}
		byStudent := map[string][]models.ExamRecord{}
		for _, rec := range records {
			if rec.StudentID != "" {
				byStudent[rec.StudentID] = append(byStudent[rec.StudentID], rec)
			}
		}

		out := make([]models.BatchStudent, 0, len(req.StudentIDs))
		seen := map[string]struct{}{}
		for _, id := range req.StudentIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			own := byStudent[id]
			if len(own) == 0 {
				continue
			}

			passCount := 0
			for _, rec := range own {
				if rec.PassedRaw() {
					passCount++
				}
			}
			profile := buildProfile(own)
			entry := models.BatchStudent{
				StudentID:  id,
				Name:       profile.Name,
				Department: profile.Department,
				TotalExams: len(own),
				PassRate:   rate(passCount, len(own)),
			}
			if req.IncludeResults {
				results := resultRows(own)
				if len(results) > batchRecentResults {
					results = results[:batchRecentResults]
				}
				entry.RecentResults = results
			}
			out = append(out, entry)
		}
		return out, nil
	})
}

// resultRows projects exam records for listing, newest year first, subjects
// alphabetical within a year.
func resultRows(records []models.ExamRecord) []models.StudentResult {
	out := make([]models.StudentResult, 0, len(records))
	for _, rec := range records {
		out = append(out, models.StudentResult{
			Subject:     rec.Subject,
			Year:        rec.ExamYear,
			PassFail:    rec.PassFail,
			Performance: rec.Performance,
			Grade:       rec.Grade,
			TotalTheory: rec.TotalTheory,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	sort.SliceStable(out, func(i, j int) bool { return yearOrZero(out[i].Year) > yearOrZero(out[j].Year) })
	return out
}

func (s *StudentService) studentRecords(ctx context.Context, studentID string) ([]models.ExamRecord, error) {
	records, err := s.data.Records(ctx, models.Filter{})
	if err != nil {
		return nil, err
	}
	var own []models.ExamRecord
	for _, rec := range records {
		if rec.StudentID == studentID {
			own = append(own, rec)
		}
	}
	if len(own) == 0 {
		return nil, appErrors.ErrStudentNotFound
	}
	return own, nil
}

func buildProfile(records []models.ExamRecord) models.StudentProfile {
	profile := models.StudentProfile{
		StudentID:  records[0].StudentID,
		TotalExams: len(records),
	}
	years := map[int]struct{}{}
	for _, rec := range records {
		if profile.Name == "" {
			profile.Name = rec.StudentName
		}
		if profile.Department == "" {
			profile.Department = rec.Department
		}
		if rec.ExamYear != nil {
			years[*rec.ExamYear] = struct{}{}
		}
	}
	profile.YearsActive = make([]int, 0, len(years))
	for y := range years {
		profile.YearsActive = append(profile.YearsActive, y)
	}
	sort.Ints(profile.YearsActive)
	return profile
}

func yearOrZero(y *int) int {
	if y == nil {
		return 0
	}
	return *y
}
