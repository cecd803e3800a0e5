package dataset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/models"
)

func scoreTable(rows [][]string) RawTable {
	return RawTable{
		Columns: []string{
			"student_id", "subject", "department", "exam_year", "pass_fail",
			"theory_internal_percentage", "theory_ese_percentage",
			"practical_internal_percentage", "practical_ese_percentage",
			"theory_result",
		},
		Rows: rows,
	}
}

func TestBuildClassification(t *testing.T) {
	table := scoreTable([][]string{
		// Explicit fail verdict overrides a high combined score.
		{"S1", "Math", "SCIENCE", "2023", "Pass", "25", "25", "25", "25", "Fail"},
		// 50 theory + 40 practical reaches the distinction threshold.
		{"S2", "Math", "SCIENCE", "2023", "Pass", "25", "25", "20", "20", "Pass"},
		// Exactly at the threshold still counts.
		{"S3", "Math", "SCIENCE", "2023", "Pass", "20", "20", "20", "20", "Pass"},
		// Just below the threshold falls back to the raw outcome.
		{"S4", "Math", "SCIENCE", "2023", "Pass", "20", "19.99", "20", "20", "Pass"},
		// Raw fail wins over mid-range scores.
		{"S5", "Math", "SCIENCE", "2023", "Fail", "10", "15", "10", "10", ""},
		// Unknown outcome and low score stays unclassified.
		{"S6", "Math", "SCIENCE", "2023", "", "10", "10", "10", "10", ""},
		// A not-applicable verdict never forces a fail.
		{"S7", "Math", "SCIENCE", "2023", "Pass", "25", "25", "20", "20", "Not Applicable"},
		// Suspension counts as an explicit fail verdict.
		{"S8", "Math", "SCIENCE", "2023", "Pass", "25", "25", "20", "20", "SUS"},
	})

	out := Build(table, zap.NewNop())
	require.Len(t, out.Records, 8)

	want := []*models.Performance{
		perf(models.PerformanceFail),
		perf(models.PerformanceDistinction),
		perf(models.PerformanceDistinction),
		perf(models.PerformancePass),
		perf(models.PerformanceFail),
		nil,
		perf(models.PerformanceDistinction),
		perf(models.PerformanceFail),
	}
	for i, w := range want {
		got := out.Records[i].Performance
		if w == nil {
			assert.Nil(t, got, "row %d", i)
			continue
		}
		require.NotNil(t, got, "row %d", i)
		assert.Equal(t, *w, *got, "row %d", i)
	}
}

func perf(p models.Performance) *models.Performance { return &p }

func TestBuildTotalsPropagateNulls(t *testing.T) {
	table := scoreTable([][]string{
		{"S1", "Math", "SCIENCE", "2023", "Pass", "30", "", "20", "20", ""},
	})
	out := Build(table, zap.NewNop())
	rec := out.Records[0]

	assert.Nil(t, rec.TotalTheory, "missing external component must null the theory total")
	require.NotNil(t, rec.TotalPractical)
	assert.InDelta(t, 40.0, *rec.TotalPractical, 1e-9)
}

func TestBuildNotApplicableScoresAreNull(t *testing.T) {
	table := scoreTable([][]string{
		{"S1", "Math", "SCIENCE", "2023", "Pass", "Not Applicable", "50", "20", "20", ""},
	})
	out := Build(table, zap.NewNop())
	rec := out.Records[0]

	assert.Nil(t, rec.TheoryInternalPct)
	assert.Nil(t, rec.TotalTheory)
	require.NotNil(t, rec.TheoryExternalPct)
	assert.InDelta(t, 50.0, *rec.TheoryExternalPct, 1e-9)
}

func TestBuildCreditGating(t *testing.T) {
	table := RawTable{
		Columns: []string{
			"student_id", "subject", "department", "exam_year", "pass_fail",
			"theory_internal_percentage", "theory_ese_percentage",
			"practical_internal_percentage", "practical_ese_percentage",
			"theory_credit", "practical_credit",
		},
		Rows: [][]string{
			// Theory-only subject: practical scores are sentinels, not data.
			{"S1", "Math", "SCIENCE", "2023", "Pass", "30", "40", "99", "99", "4", "0"},
			// Practical-only subject: the reverse.
			{"S2", "Chem Lab", "SCIENCE", "2023", "Pass", "99", "99", "30", "40", "0", "2"},
		},
	}
	out := Build(table, zap.NewNop())

	theory := out.Records[0]
	assert.Nil(t, theory.PracticalInternalPct)
	assert.Nil(t, theory.PracticalExternalPct)
	assert.Nil(t, theory.TotalPractical)
	require.NotNil(t, theory.TotalTheory)
	assert.InDelta(t, 70.0, *theory.TotalTheory, 1e-9)

	practical := out.Records[1]
	assert.Nil(t, practical.TheoryInternalPct)
	assert.Nil(t, practical.TotalTheory)
	require.NotNil(t, practical.TotalPractical)
	assert.InDelta(t, 70.0, *practical.TotalPractical, 1e-9)
}

func TestBuildLegacyObtainedMaxPairs(t *testing.T) {
	table := RawTable{
		Columns: []string{
			"student_id", "subject", "department", "exam_year", "pass_fail",
			"cia_obtained", "cia_max", "ese_obtainded", "ese_max",
		},
		Rows: [][]string{
			{"S1", "Math", "SCIENCE", "2019", "Pass", "20", "40", "60", "100"},
			// A zero maximum never yields a percentage.
			{"S2", "Math", "SCIENCE", "2019", "Pass", "20", "0", "60", ""},
			{"S3", "Math", "SCIENCE", "2019", "Pass", "38", "40", "92", "100"},
		},
	}
	out := Build(table, zap.NewNop())
	require.Len(t, out.Records, 3)

	rec := out.Records[0]
	require.NotNil(t, rec.TheoryInternalPct)
	assert.InDelta(t, 50.0, *rec.TheoryInternalPct, 1e-9)
	require.NotNil(t, rec.TheoryExternalPct)
	assert.InDelta(t, 60.0, *rec.TheoryExternalPct, 1e-9)
	require.NotNil(t, rec.TotalTheory)
	assert.InDelta(t, 110.0, *rec.TotalTheory, 1e-9)

	degenerate := out.Records[1]
	assert.Nil(t, degenerate.TheoryInternalPct)
	assert.Nil(t, degenerate.TheoryExternalPct)
	assert.Nil(t, degenerate.TotalTheory)

	// 95 + 92 clears the distinction threshold from the legacy schema alone.
	top := out.Records[2]
	require.NotNil(t, top.Performance)
	assert.Equal(t, models.PerformanceDistinction, *top.Performance)
}

func TestBuildSittingColumnsAveraged(t *testing.T) {
	table := RawTable{
		Columns: []string{
			"student_id", "subject", "department", "exam_year", "pass_fail",
			"cia1_theory_internal", "cia2_theory_internal", "cia3_theory_internal",
			"cia1_practical_internal", "cia2_practical_internal",
		},
		Rows: [][]string{
			{"S1", "Math", "SCIENCE", "2018", "Pass", "40", "50", "60", "30", ""},
			{"S2", "Math", "SCIENCE", "2018", "Pass", "", "", "", "", ""},
		},
	}
	out := Build(table, zap.NewNop())

	rec := out.Records[0]
	require.NotNil(t, rec.TheoryInternalPct)
	assert.InDelta(t, 50.0, *rec.TheoryInternalPct, 1e-9)
	// Blank sittings are skipped, not zero-filled.
	require.NotNil(t, rec.PracticalInternalPct)
	assert.InDelta(t, 30.0, *rec.PracticalInternalPct, 1e-9)

	empty := out.Records[1]
	assert.Nil(t, empty.TheoryInternalPct)
	assert.Nil(t, empty.PracticalInternalPct)
}

func TestBuildPreDerivedColumnsAreUngated(t *testing.T) {
	// cia_theory_avg / ese_theory_internal predate the credit columns and
	// are read as is even when a zero credit appears alongside.
	table := RawTable{
		Columns: []string{
			"student_id", "subject", "department", "exam_year", "pass_fail",
			"cia_theory_avg", "ese_theory_internal", "theory_credit",
		},
		Rows: [][]string{
			{"S1", "Math", "SCIENCE", "2019", "Pass", "45", "35", "0"},
		},
	}
	out := Build(table, zap.NewNop())

	rec := out.Records[0]
	require.NotNil(t, rec.TheoryInternalPct)
	assert.InDelta(t, 45.0, *rec.TheoryInternalPct, 1e-9)
	require.NotNil(t, rec.TheoryExternalPct)
	assert.InDelta(t, 35.0, *rec.TheoryExternalPct, 1e-9)
}

func TestBuildWeightedTotalUsesCredits(t *testing.T) {
	table := RawTable{
		Columns: []string{
			"student_id", "subject", "department", "exam_year", "pass_fail",
			"total_theory_marks", "total_practical_marks",
			"theory_credit", "practical_credit",
		},
		Rows: [][]string{
			{"S1", "Math", "SCIENCE", "2023", "Pass", "60", "30", "3", "1"},
			{"S2", "Math", "SCIENCE", "2023", "Pass", "60", "", "", ""},
		},
	}
	out := Build(table, zap.NewNop())

	require.NotNil(t, out.Records[0].WeightedTotal)
	assert.InDelta(t, 60*3+30*1, *out.Records[0].WeightedTotal, 1e-9)

	// Missing totals count as zero, missing credits as one.
	require.NotNil(t, out.Records[1].WeightedTotal)
	assert.InDelta(t, 60.0, *out.Records[1].WeightedTotal, 1e-9)
}

func TestResolveYearStrategies(t *testing.T) {
	cases := []struct {
		name    string
		table   RawTable
		want    *int
		wantSem *int
	}{
		{
			name: "direct column",
			table: RawTable{
				Columns: []string{"student_id", "subject", "department", "exam_year"},
				Rows:    [][]string{{"S1", "Math", "SCI", "2022"}},
			},
			want: intp(2022),
		},
		{
			name: "exam name session code",
			table: RawTable{
				Columns: []string{"student_id", "subject", "department", "exam_name"},
				Rows:    [][]string{{"S1", "Math", "SCI", "202310-ENDSEM-UG-PG"}},
			},
			want:    intp(2023),
			wantSem: intp(10),
		},
		{
			name: "exam month",
			table: RawTable{
				Columns: []string{"student_id", "subject", "department", "exam_month"},
				Rows:    [][]string{{"S1", "Math", "SCI", "202404"}},
			},
			want: intp(2024),
		},
		{
			name: "year-like column",
			table: RawTable{
				Columns: []string{"student_id", "subject", "department", "admission_year"},
				Rows:    [][]string{{"S1", "Math", "SCI", "2019"}},
			},
			want: intp(2019),
		},
		{
			name: "any text cell",
			table: RawTable{
				Columns: []string{"student_id", "subject", "department", "remarks"},
				Rows:    [][]string{{"S1", "Math", "SCI", "Batch of 2018"}},
			},
			want: intp(2018),
		},
		{
			name: "nothing usable",
			table: RawTable{
				Columns: []string{"student_id", "subject", "department"},
				Rows:    [][]string{{"S1", "Math", "SCI"}},
			},
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := Build(tc.table, zap.NewNop())
			require.Len(t, out.Records, 1)
			rec := out.Records[0]
			if tc.want == nil {
				assert.Nil(t, rec.ExamYear)
			} else {
				require.NotNil(t, rec.ExamYear)
				assert.Equal(t, *tc.want, *rec.ExamYear)
			}
			if tc.wantSem != nil {
				require.NotNil(t, rec.Semester)
				assert.Equal(t, *tc.wantSem, *rec.Semester)
			}
		})
	}
}

func intp(n int) *int { return &n }

func TestSemesterColumnBeatsExamName(t *testing.T) {
	table := RawTable{
		Columns: []string{"student_id", "subject", "department", "semester", "exam_name"},
		Rows:    [][]string{{"S1", "Math", "SCI", "3", "202310-ENDSEM"}},
	}
	out := Build(table, zap.NewNop())
	require.NotNil(t, out.Records[0].Semester)
	assert.Equal(t, 3, *out.Records[0].Semester)
}

func TestNormalizeSubject(t *testing.T) {
	cases := map[string]string{
		"DBMS":             "Database Management System",
		"Data Structure":   "Data Structures",
		"web  tech":        "Web Technology",
		"MGMT ACCT":        "Management Accounting",
		"OOP":              "Object Oriented Programming",
		"  Mathematics  ":  "Mathematics",
		"C++":              "C",
		"":                 "",
		"   ":              "",
		"soft skills development": "Soft Skills",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeSubject(raw), "input %q", raw)
	}
}

func TestBuildMissingColumnsWarn(t *testing.T) {
	table := RawTable{
		Columns: []string{"roll_no", "paper"},
		Rows:    [][]string{{"R1", "Math"}},
	}
	out := Build(table, zap.NewNop())
	assert.Contains(t, out.Warnings, "required column not found: subject")
	assert.Contains(t, out.Warnings, "required column not found: department")
	// roll_no is an accepted student id alias.
	assert.NotContains(t, out.Warnings, "required column not found: student_id")
	assert.Equal(t, "R1", out.Records[0].StudentID)
}

type fakeSource struct {
	table RawTable
	calls int
	err   error
}

func (f *fakeSource) Load(_ context.Context) (RawTable, error) {
	f.calls++
	if f.err != nil {
		return RawTable{}, f.err
	}
	return f.table, nil
}

func TestStoreLazySingleBuild(t *testing.T) {
	src := &fakeSource{table: scoreTable([][]string{
		{"S1", "Math", "SCIENCE", "2023", "Pass", "25", "25", "20", "20", ""},
	})}
	store := NewStore(src, zap.NewNop())
	assert.False(t, store.Loaded())

	first, err := store.Get(context.Background())
	require.NoError(t, err)
	second, err := store.Get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, src.calls)
	assert.True(t, store.Loaded())
}

func TestStoreReloadSwaps(t *testing.T) {
	src := &fakeSource{table: scoreTable([][]string{
		{"S1", "Math", "SCIENCE", "2023", "Pass", "25", "25", "20", "20", ""},
	})}
	store := NewStore(src, zap.NewNop())

	first, err := store.Get(context.Background())
	require.NoError(t, err)

	src.table.Rows = append(src.table.Rows,
		[]string{"S2", "Math", "SCIENCE", "2023", "Fail", "5", "5", "5", "5", ""})
	reloaded, err := store.Reload(context.Background())
	require.NoError(t, err)

	assert.NotSame(t, first, reloaded)
	assert.Len(t, reloaded.Records, 2)

	count, _ := store.BuildStats()
	assert.Equal(t, uint64(2), count)
}

func TestStoreSourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	store := NewStore(src, zap.NewNop())

	_, err := store.Get(context.Background())
	require.Error(t, err)
	assert.False(t, store.Loaded())
}
