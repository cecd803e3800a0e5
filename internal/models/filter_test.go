package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func yearRec(year *int, dept string) ExamRecord {
	return ExamRecord{StudentID: "S1", Department: dept, Subject: "Math", ExamYear: year}
}

func ip(v int) *int { return &v }

func TestFilterYearBoundsInclusive(t *testing.T) {
	f := Filter{YearFrom: ip(2020), YearTo: ip(2022)}

	assert.True(t, f.Matches(yearRec(ip(2020), "SCI")))
	assert.True(t, f.Matches(yearRec(ip(2022), "SCI")))
	assert.False(t, f.Matches(yearRec(ip(2019), "SCI")))
	assert.False(t, f.Matches(yearRec(ip(2023), "SCI")))
}

func TestFilterYearBoundExcludesUnresolvedYears(t *testing.T) {
	f := Filter{YearFrom: ip(2020)}
	assert.False(t, f.Matches(yearRec(nil, "SCI")))

	// Without year bounds the same record matches.
	assert.True(t, Filter{Department: "SCI"}.Matches(yearRec(nil, "SCI")))
}

func TestFilterOutcomeIsCaseInsensitive(t *testing.T) {
	rec := yearRec(ip(2021), "SCI")
	rec.PassFail = "Pass"

	assert.True(t, Filter{PassFail: "pass"}.Matches(rec))
	assert.False(t, Filter{PassFail: "fail"}.Matches(rec))
}

func TestFilterPerformanceMatchesDerivedOnly(t *testing.T) {
	rec := yearRec(ip(2021), "SCI")
	rec.PassFail = "Pass"

	assert.False(t, Filter{Performance: "Pass"}.Matches(rec))

	p := PerformancePass
	rec.Performance = &p
	assert.True(t, Filter{Performance: "pass"}.Matches(rec))
}

func TestFilterCacheKeyDistinguishesCriteria(t *testing.T) {
	a := Filter{YearFrom: ip(2020), Department: "SCI"}
	b := Filter{YearTo: ip(2020), Department: "SCI"}

	assert.NotEqual(t, a.CacheKey(), b.CacheKey())
	assert.Equal(t, a.CacheKey(), Filter{YearFrom: ip(2020), Department: "SCI"}.CacheKey())
}

func TestFilterIsZero(t *testing.T) {
	assert.True(t, Filter{}.IsZero())
	assert.False(t, Filter{Subject: "Math"}.IsZero())
}
