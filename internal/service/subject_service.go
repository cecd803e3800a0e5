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

// SubjectService computes subject-level statistics and difficulty rankings.
type SubjectService struct {
	data   *DatasetService
	cache  *CacheService
	ttl    time.Duration
	logger *zap.Logger
}

// NewSubjectService constructs a subject service.
func NewSubjectService(data *DatasetService, cache *CacheService, ttl time.Duration, logger *zap.Logger) *SubjectService {
	return &SubjectService{data: data, cache: cache, ttl: ttl, logger: logger}
}

// List returns all subjects with their exam counts and pass rates.
func (s *SubjectService) List(ctx context.Context, filter models.Filter) ([]models.SubjectStats, error) {
	key := "stats:subjects:list:" + filter.CacheKey()
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.SubjectStats, error) {
		records, err := s.data.Records(ctx, filter)
		if err != nil {
			return nil, err
		}
		return subjectStats(records, ""), nil
	})
}

// Search returns subjects whose name contains the fragment,
// case-insensitively. An empty fragment is a validation error.
func (s *SubjectService) Search(ctx context.Context, query string) ([]models.SubjectStats, error) {
	if query == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "search query is required")
	}
	key := "stats:subjects:search:" + query
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.SubjectStats, error) {
		records, err := s.data.Records(ctx, models.Filter{})
		if err != nil {
			return nil, err
		}
		return subjectStats(records, query), nil
	})
}

// PassRates returns all subjects sorted by pass rate, struggling subjects
// first unless order is "desc". Unknown orders fall back to ascending.
func (s *SubjectService) PassRates(ctx context.Context, filter models.Filter, order string) ([]models.SubjectStats, error) {
	desc := order == "desc"
	key := fmt.Sprintf("stats:subjects:pass-rates:%t:%s", desc, filter.CacheKey())
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.SubjectStats, error) {
		records, err := s.data.Records(ctx, filter)
		if err != nil {
			return nil, err
		}
		stats := subjectStats(records, "")
		sort.Slice(stats, func(i, j int) bool { return stats[i].Subject < stats[j].Subject })
		sort.SliceStable(stats, func(i, j int) bool {
			if desc {
				return stats[i].PassRate > stats[j].PassRate
			}
			return stats[i].PassRate < stats[j].PassRate
		})
		return stats, nil
	})
}

// Difficulty ranks subjects by mean score, hardest (lowest mean) first, or
// easiest first when category is "easiest". The score basis is the first
// component with any data, preferring the combined theory total. Subjects
// without score data are excluded. Unknown categories rank hardest first.
func (s *SubjectService) Difficulty(ctx context.Context, filter models.Filter, limit int, category string) ([]models.SubjectDifficulty, error) {
	easiest := category == "easiest"
	key := fmt.Sprintf("stats:subjects:difficulty:%d:%t:%s", limit, easiest, filter.CacheKey())
	return cached(ctx, s.cache, key, s.ttl, func() ([]models.SubjectDifficulty, error) {
		records, err := s.data.Records(ctx, filter)
		if err != nil {
			return nil, err
		}
		pick := pickScoreBasis(records)
		if pick == nil {
			return []models.SubjectDifficulty{}, nil
		}

		type agg struct {
			sum   float64
			exams int
			pass  int
		}
		bySubject := map[string]*agg{}
		for _, rec := range records {
			if rec.Subject == "" {
				continue
			}
			score := pick(rec)
			if score == nil {
				continue
			}
			a := bySubject[rec.Subject]
			if a == nil {
				a = &agg{}
				bySubject[rec.Subject] = a
			}
			a.sum += *score
			a.exams++
			if rec.PassedRaw() {
				a.pass++
			}
		}

		out := make([]models.SubjectDifficulty, 0, len(bySubject))
		for name, a := range bySubject {
			out = append(out, models.SubjectDifficulty{
				Subject:   name,
				AvgMarks:  round2(a.sum / float64(a.exams)),
				ExamCount: a.exams,
				PassRate:  rate(a.pass, a.exams),
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
		sort.SliceStable(out, func(i, j int) bool {
			if easiest {
				return out[i].AvgMarks > out[j].AvgMarks
			}
			return out[i].AvgMarks < out[j].AvgMarks
		})
		if limit > 0 && limit < len(out) {
			out = out[:limit]
		}
		return out, nil
	})
}

// pickScoreBasis chooses the score component used for difficulty ranking:
// the first of total theory, internal theory, external theory with at least
// one value anywhere in the records.
func pickScoreBasis(records []models.ExamRecord) func(models.ExamRecord) *float64 {
	basis := []func(models.ExamRecord) *float64{
		func(r models.ExamRecord) *float64 { return r.TotalTheory },
		func(r models.ExamRecord) *float64 { return r.TheoryInternalPct },
		func(r models.ExamRecord) *float64 { return r.TheoryExternalPct },
	}
	for _, pick := range basis {
		for _, rec := range records {
			if pick(rec) != nil {
				return pick
			}
		}
	}
	return nil
}
