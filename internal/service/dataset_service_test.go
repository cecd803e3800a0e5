package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/dataset"
	"github.com/noah-isme/exam-analytics-api/internal/models"
)

// fixedSource replays the same raw table on every load.
type fixedSource struct {
	table dataset.RawTable
	loads int
}

func (s *fixedSource) Load(_ context.Context) (dataset.RawTable, error) {
	s.loads++
	return s.table, nil
}

func TestReloadInvalidatesStatsCache(t *testing.T) {
	env := newTestEnv([]models.ExamRecord{
		examRec("S1", "SCIENCE", "Math", 2023, "Pass", nil),
	})

	// Warm the cache, then reload and confirm the pattern wipe.
	_, err := env.stats.Overall(context.Background(), models.Filter{})
	require.NoError(t, err)
	require.NotEmpty(t, env.cache.store)

	result, err := env.data.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Rows)
	assert.Contains(t, env.cache.deletedPatterns, "stats:*")
	assert.Empty(t, env.cache.store)
	assert.Equal(t, 1, env.store.reloads)
}

func TestReloadUnchangedSourceKeepsAggregates(t *testing.T) {
	src := &fixedSource{table: dataset.RawTable{
		Columns: []string{"student_id", "subject", "department", "exam_year", "pass_fail"},
		Rows: [][]string{
			{"S1", "Math", "SCIENCE", "2022", "Pass"},
			{"S2", "Math", "SCIENCE", "2023", "Fail"},
			{"S3", "History", "ARTS", "2023", "Pass"},
		},
	}}
	store := dataset.NewStore(src, zap.NewNop())
	repo := &stubCacheRepo{}
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	data := NewDatasetService(store, cache, nil, zap.NewNop())
	stats := NewStatsService(data, cache, time.Minute, zap.NewNop())

	overallBefore, err := stats.Overall(context.Background(), models.Filter{})
	require.NoError(t, err)
	deptBefore, err := stats.DepartmentStats(context.Background(), models.Filter{}, models.SortByPassRate)
	require.NoError(t, err)

	result, err := data.Reload(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, result.Rows)
	require.Equal(t, 2, src.loads)

	overallAfter, err := stats.Overall(context.Background(), models.Filter{})
	require.NoError(t, err)
	deptAfter, err := stats.DepartmentStats(context.Background(), models.Filter{}, models.SortByPassRate)
	require.NoError(t, err)

	// LastUpdated tracks the rebuild time; every aggregate must be stable.
	overallBefore.LastUpdated = overallAfter.LastUpdated
	assert.Equal(t, overallBefore, overallAfter)
	assert.Equal(t, deptBefore, deptAfter)
}

func TestRecordsEmptyFilterReturnsAll(t *testing.T) {
	records := []models.ExamRecord{
		examRec("S1", "SCIENCE", "Math", 2023, "Pass", nil),
		examRec("S2", "ARTS", "History", 2022, "Fail", nil),
	}
	env := newTestEnv(records)

	all, err := env.data.Records(context.Background(), models.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := env.data.Records(context.Background(), models.Filter{Department: "ARTS"})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "S2", scoped[0].StudentID)
}

func TestFilterOptionsSorted(t *testing.T) {
	noYear := examRec("S4", "", "", 0, "Pass", nil)
	noYear.ExamYear = nil
	env := newTestEnv([]models.ExamRecord{
		examRec("S1", "SCIENCE", "Math", 2021, "Pass", nil),
		examRec("S2", "ARTS", "History", 2023, "Pass", nil),
		examRec("S3", "SCIENCE", "Math", 2022, "Pass", nil),
		noYear,
	})

	opts, err := env.data.FilterOptions(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{2023, 2022, 2021}, opts.Years)
	assert.Equal(t, []string{"ARTS", "SCIENCE"}, opts.Departments)
	assert.Equal(t, []string{"History", "Math"}, opts.Subjects)
	assert.Empty(t, opts.Semesters)
}
