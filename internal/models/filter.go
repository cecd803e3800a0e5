package models

import (
	"strconv"
	"strings"
)

// Sort keys accepted by listing endpoints. Unknown keys fall back to the
// endpoint's documented default instead of erroring.
const (
	SortByPassRate     = "pass_rate"
	SortByExamCount    = "exam_count"
	SortByStudentCount = "students"
	SortByDifficulty   = "difficulty"
)

// Filter scopes the canonical table for a request. Zero values mean "all".
type Filter struct {
	YearFrom    *int
	YearTo      *int
	Department  string
	Subject     string
	Semester    *int
	PassFail    string
	Performance string
}

// Matches reports whether the record satisfies every set criterion.
// Year bounds are inclusive; a record without a resolved year never matches
// a year-bounded filter.
func (f Filter) Matches(r ExamRecord) bool {
	if f.YearFrom != nil || f.YearTo != nil {
		if r.ExamYear == nil {
			return false
		}
		if f.YearFrom != nil && *r.ExamYear < *f.YearFrom {
			return false
		}
		if f.YearTo != nil && *r.ExamYear > *f.YearTo {
			return false
		}
	}
	if f.Department != "" && r.Department != f.Department {
		return false
	}
	if f.Subject != "" && r.Subject != f.Subject {
		return false
	}
	if f.Semester != nil && (r.Semester == nil || *r.Semester != *f.Semester) {
		return false
	}
	if f.PassFail != "" && normalizeOutcome(r.PassFail) != normalizeOutcome(f.PassFail) {
		return false
	}
	if f.Performance != "" {
		if r.Performance == nil || !strings.EqualFold(string(*r.Performance), f.Performance) {
			return false
		}
	}
	return true
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f.YearFrom == nil && f.YearTo == nil && f.Department == "" &&
		f.Subject == "" && f.Semester == nil && f.PassFail == "" && f.Performance == ""
}

// CacheKey renders the filter as a stable fragment for cache keys.
func (f Filter) CacheKey() string {
	parts := []string{
		intKey(f.YearFrom), intKey(f.YearTo), f.Department, f.Subject,
		intKey(f.Semester), normalizeOutcome(f.PassFail), normalizeOutcome(f.Performance),
	}
	return strings.Join(parts, "|")
}

func intKey(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func normalizeOutcome(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
