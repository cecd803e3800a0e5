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

func newStudentService(records []models.ExamRecord) *StudentService {
	env := newTestEnv(records)
	cache := NewCacheService(env.cache, nil, time.Minute, zap.NewNop(), true)
	return NewStudentService(env.data, cache, time.Minute, zap.NewNop())
}

func studentRecords() []models.ExamRecord {
	r1 := examRec("ST001", "SCIENCE", "Math", 2022, "Pass", nil)
	r1.StudentName = "Asha Verma"
	r2 := examRec("ST001", "SCIENCE", "Physics", 2023, "Fail", pp(models.PerformanceFail))
	r2.StudentName = "Asha Verma"
	r3 := examRec("ST001", "SCIENCE", "Chemistry", 2023, "Pass", pp(models.PerformanceDistinction))
	r3.StudentName = "Asha Verma"
	r3.TheoryInternalPct = fp(40)
	r4 := examRec("ST002", "ARTS", "History", 2023, "Pass", nil)
	r4.StudentName = "Rohan Iyer"
	return []models.ExamRecord{r1, r2, r3, r4}
}

func TestStudentSearchByIDAndName(t *testing.T) {
	svc := newStudentService(studentRecords())

	byID, err := svc.Search(context.Background(), "st001", "")
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, "ST001", byID[0].StudentID)
	assert.Equal(t, 3, byID[0].TotalExams)

	byName, err := svc.Search(context.Background(), "rohan", "name")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "ST002", byName[0].StudentID)
}

func TestStudentSearchRequiresQuery(t *testing.T) {
	svc := newStudentService(nil)
	_, err := svc.Search(context.Background(), "", "")
	require.Error(t, err)
	assert.Equal(t, "ERR_VALIDATION", appErrors.FromError(err).Code)
}

func TestStudentProfile(t *testing.T) {
	svc := newStudentService(studentRecords())

	profile, err := svc.Profile(context.Background(), "ST001")
	require.NoError(t, err)

	assert.Equal(t, "Asha Verma", profile.Name)
	assert.Equal(t, "SCIENCE", profile.Department)
	assert.Equal(t, []int{2022, 2023}, profile.YearsActive)
}

func TestStudentProfileNotFound(t *testing.T) {
	svc := newStudentService(studentRecords())
	_, err := svc.Profile(context.Background(), "MISSING")
	require.Error(t, err)
	assert.Equal(t, "ERR_STUDENT_404", appErrors.FromError(err).Code)
}

func TestStudentPerformance(t *testing.T) {
	svc := newStudentService(studentRecords())

	perf, err := svc.Performance(context.Background(), "ST001")
	require.NoError(t, err)

	assert.Equal(t, 3, perf.TotalExams)
	assert.Equal(t, 2, perf.PassExams)
	assert.Equal(t, 1, perf.FailExams)
	assert.Equal(t, 1, perf.Distinctions)
	assert.InDelta(t, 66.67, perf.PassRate, 1e-9)
	require.NotNil(t, perf.AvgTheoryInternal)
	assert.InDelta(t, 40.0, *perf.AvgTheoryInternal, 1e-9)
}

func TestStudentBatchSkipsUnknownAndKeepsOrder(t *testing.T) {
	svc := newStudentService(studentRecords())

	students, err := svc.Batch(context.Background(), models.BatchStudentRequest{
		StudentIDs: []string{"ST002", "GHOST", "ST001", "ST002"},
	})
	require.NoError(t, err)

	// Unknown IDs drop out, duplicates collapse, request order survives.
	require.Len(t, students, 2)
	assert.Equal(t, "ST002", students[0].StudentID)
	assert.Equal(t, "Rohan Iyer", students[0].Name)
	assert.InDelta(t, 100.0, students[0].PassRate, 1e-9)
	assert.Equal(t, "ST001", students[1].StudentID)
	assert.Equal(t, 3, students[1].TotalExams)
	assert.InDelta(t, 66.67, students[1].PassRate, 1e-9)
	assert.Nil(t, students[0].RecentResults)
}

func TestStudentBatchIncludeResults(t *testing.T) {
	svc := newStudentService(studentRecords())

	students, err := svc.Batch(context.Background(), models.BatchStudentRequest{
		StudentIDs:     []string{"ST001"},
		IncludeResults: true,
	})
	require.NoError(t, err)

	require.Len(t, students, 1)
	require.Len(t, students[0].RecentResults, 3)
	assert.Equal(t, "Chemistry", students[0].RecentResults[0].Subject)
}

func TestStudentBatchRequiresIDs(t *testing.T) {
	svc := newStudentService(nil)
	_, err := svc.Batch(context.Background(), models.BatchStudentRequest{})
	require.Error(t, err)
	assert.Equal(t, "ERR_VALIDATION", appErrors.FromError(err).Code)
}

func TestStudentResultsNewestFirst(t *testing.T) {
	svc := newStudentService(studentRecords())

	results, err := svc.Results(context.Background(), "ST001")
	require.NoError(t, err)
	require.Len(t, results, 3)

	// 2023 rows first, alphabetical within the year.
	assert.Equal(t, "Chemistry", results[0].Subject)
	assert.Equal(t, "Physics", results[1].Subject)
	assert.Equal(t, "Math", results[2].Subject)
	assert.Equal(t, 2022, *results[2].Year)
}
