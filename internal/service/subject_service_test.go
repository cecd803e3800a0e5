package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/models"
	appErrors "github.com/noah-isme/exam-analytics-api/pkg/errors"
)

func newSubjectService(records []models.ExamRecord) (*SubjectService, *testEnv) {
	env := newTestEnv(records)
	cache := NewCacheService(env.cache, nil, time.Minute, zap.NewNop(), true)
	return NewSubjectService(env.data, cache, time.Minute, zap.NewNop()), env
}

func TestSubjectDifficultyHardestFirst(t *testing.T) {
	easy := examRec("S1", "SCI", "Physics", 2023, "Pass", nil)
	easy.TotalTheory = fp(80)
	hard1 := examRec("S2", "SCI", "Statistics", 2023, "Fail", nil)
	hard1.TotalTheory = fp(30)
	hard2 := examRec("S3", "SCI", "Statistics", 2023, "Pass", nil)
	hard2.TotalTheory = fp(40)
	noScore := examRec("S4", "SCI", "Yoga", 2023, "Pass", nil)

	svc, _ := newSubjectService([]models.ExamRecord{easy, hard1, hard2, noScore})
	ranked, err := svc.Difficulty(context.Background(), models.Filter{}, 0, "")
	require.NoError(t, err)

	// Yoga has no score data on the chosen basis and is excluded.
	require.Len(t, ranked, 2)
	assert.Equal(t, "Statistics", ranked[0].Subject)
	assert.InDelta(t, 35.0, ranked[0].AvgMarks, 1e-9)
	assert.InDelta(t, 50.0, ranked[0].PassRate, 1e-9)
	assert.Equal(t, "Physics", ranked[1].Subject)
}

func TestSubjectDifficultyFallsBackToInternalTheory(t *testing.T) {
	// No record carries a theory total, so the internal percentage becomes
	// the ranking basis.
	a := examRec("S1", "SCI", "Physics", 2023, "Pass", nil)
	a.TheoryInternalPct = fp(60)
	b := examRec("S2", "SCI", "Chemistry", 2023, "Pass", nil)
	b.TheoryInternalPct = fp(40)

	svc, _ := newSubjectService([]models.ExamRecord{a, b})
	ranked, err := svc.Difficulty(context.Background(), models.Filter{}, 0, "")
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Chemistry", ranked[0].Subject)
}

func TestSubjectDifficultyLimit(t *testing.T) {
	a := examRec("S1", "SCI", "Physics", 2023, "Pass", nil)
	a.TotalTheory = fp(60)
	b := examRec("S2", "SCI", "Chemistry", 2023, "Pass", nil)
	b.TotalTheory = fp(40)

	svc, _ := newSubjectService([]models.ExamRecord{a, b})
	ranked, err := svc.Difficulty(context.Background(), models.Filter{}, 1, "")
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, "Chemistry", ranked[0].Subject)
}

func TestSubjectDifficultyNoScoreDataAtAll(t *testing.T) {
	svc, _ := newSubjectService([]models.ExamRecord{
		examRec("S1", "SCI", "Yoga", 2023, "Pass", nil),
	})
	ranked, err := svc.Difficulty(context.Background(), models.Filter{}, 0, "")
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestSubjectSearchRequiresQuery(t *testing.T) {
	svc, _ := newSubjectService(nil)
	_, err := svc.Search(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "ERR_VALIDATION", appErrors.FromError(err).Code)
}

func TestSubjectSearchCaseInsensitive(t *testing.T) {
	svc, _ := newSubjectService([]models.ExamRecord{
		examRec("S1", "SCI", "Computer Networks", 2023, "Pass", nil),
		examRec("S2", "SCI", "Marketing", 2023, "Pass", nil),
	})
	found, err := svc.Search(context.Background(), "network")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Computer Networks", found[0].Subject)
}

func TestSubjectPassRatesStrugglingFirst(t *testing.T) {
	svc, _ := newSubjectService([]models.ExamRecord{
		examRec("S1", "SCI", "Physics", 2023, "Pass", nil),
		examRec("S2", "SCI", "Statistics", 2023, "Fail", nil),
	})
	stats, err := svc.PassRates(context.Background(), models.Filter{}, "")
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Statistics", stats[0].Subject)
	assert.InDelta(t, 0.0, stats[0].PassRate, 1e-9)
}
