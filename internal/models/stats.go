package models

import "time"

// GroupBy selects the grouping dimension for aggregate statistics.
type GroupBy string

const (
	GroupByNone       GroupBy = "none"
	GroupByYear       GroupBy = "exam_year"
	GroupByDepartment GroupBy = "department"
	GroupBySubject    GroupBy = "subject"
)

// GroupStats holds counts and rates for one group. Pass/fail counts come from
// the raw pass_fail field; the distinction count comes from the derived
// performance. Rates are percentages rounded to 2 decimals and are 0 for
// empty groups.
type GroupStats struct {
	Key              string  `json:"key,omitempty"`
	Year             *int    `json:"exam_year,omitempty"`
	TotalExams       int     `json:"total_exams"`
	UniqueStudents   int     `json:"unique_students"`
	PassCount        int     `json:"pass_count"`
	FailCount        int     `json:"fail_count"`
	DistinctionCount int     `json:"distinction_count"`
	OtherCount       int     `json:"other_count"`
	PassRate         float64 `json:"pass_rate"`
	FailRate         float64 `json:"fail_rate"`
	DistinctionRate  float64 `json:"distinction_rate"`
}

// OverallKPI is the unfiltered (or filter-scoped) headline view.
type OverallKPI struct {
	PassRate        float64   `json:"pass_rate"`
	FailRate        float64   `json:"fail_rate"`
	DistinctionRate float64   `json:"distinction_rate"`
	UniqueStudents  int       `json:"unique_students"`
	TotalExams      int       `json:"total_exams"`
	LastUpdated     time.Time `json:"last_updated"`
}

// DepartmentStats summarises one department for lists and leaderboards.
type DepartmentStats struct {
	Department string  `json:"department"`
	Students   int     `json:"students"`
	Exams      int     `json:"exams"`
	PassCount  int     `json:"pass_count"`
	PassRate   float64 `json:"pass_rate"`
}

// DepartmentDetail extends DepartmentStats with component-score averages.
type DepartmentDetail struct {
	Department           string   `json:"department"`
	UniqueStudents       int      `json:"unique_students"`
	TotalExams           int      `json:"total_exams"`
	PassCount            int      `json:"pass_count"`
	FailCount            int      `json:"fail_count"`
	DistinctionCount     int      `json:"distinction_count"`
	PassRate             float64  `json:"pass_rate"`
	FailRate             float64  `json:"fail_rate"`
	DistinctionRate      float64  `json:"distinction_rate"`
	AvgTheoryInternal    *float64 `json:"avg_theory_internal,omitempty"`
	AvgPracticalInternal *float64 `json:"avg_practical_internal,omitempty"`
	AvgTheoryExternal    *float64 `json:"avg_theory_external,omitempty"`
	AvgPracticalExternal *float64 `json:"avg_practical_external,omitempty"`
}

// LeaderboardEntry is one ranked row of the department leaderboard.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	Department string  `json:"department"`
	PassRate   float64 `json:"pass_rate"`
	Exams      int     `json:"exams"`
	Students   int     `json:"students"`
}

// Leaderboard groups top and bottom departments by pass rate.
type Leaderboard struct {
	Top    []LeaderboardEntry `json:"top"`
	Bottom []LeaderboardEntry `json:"bottom"`
}

// SubjectDifficulty ranks subjects by mean score; lower mean means harder.
type SubjectDifficulty struct {
	Subject   string  `json:"subject"`
	AvgMarks  float64 `json:"avg_marks"`
	ExamCount int     `json:"exam_count"`
	PassRate  float64 `json:"pass_rate"`
}

// SubjectStats summarises one subject within a department.
type SubjectStats struct {
	Subject   string  `json:"subject"`
	ExamCount int     `json:"exam_count"`
	PassCount int     `json:"pass_count"`
	PassRate  float64 `json:"pass_rate"`
}

// TrendPoint is one year of a per-entity trend series.
type TrendPoint struct {
	Year            int     `json:"year"`
	ExamCount       int     `json:"exam_count"`
	PassRate        float64 `json:"pass_rate"`
	DistinctionRate float64 `json:"distinction_rate"`
	Value           float64 `json:"value"`
}

// Trend directions derived from a two-point comparison.
const (
	TrendUpward   = "upward"
	TrendDownward = "downward"
	TrendStable   = "stable"
)

// TrendSummary compares the latest and earliest points of a series. This is
// the simple two-point contract; chart overlays use TrendLine instead.
type TrendSummary struct {
	Entity    string       `json:"entity"`
	Metric    string       `json:"metric"`
	Points    []TrendPoint `json:"trends"`
	Direction string       `json:"trend_direction"`
	Change    float64      `json:"trend_change"`
	Latest    *float64     `json:"latest_value,omitempty"`
	Earliest  *float64     `json:"earliest_value,omitempty"`
}

// TrendLine is a least-squares fit over a yearly series, used for chart
// overlays. It is deliberately separate from TrendSummary.
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// ComparisonSide holds the stats for one entity of a comparison.
type ComparisonSide struct {
	Name            string  `json:"name"`
	TotalExams      int     `json:"total_exams"`
	UniqueStudents  int     `json:"unique_students"`
	PassCount       int     `json:"pass_count"`
	DistinctionCount int    `json:"distinction_count"`
	PassRate        float64 `json:"pass_rate"`
	DistinctionRate float64 `json:"distinction_rate"`
}

// Comparison pits two departments or subjects against each other.
type Comparison struct {
	EntityType          string         `json:"comparison_type"`
	First               ComparisonSide `json:"first"`
	Second              ComparisonSide `json:"second"`
	BetterPerformer     string         `json:"better_performer"`
	PassRateDiff        float64        `json:"pass_rate_diff"`
	DistinctionRateDiff float64        `json:"distinction_rate_diff"`
}

// FilterOptions lists the distinct values available for dashboard dropdowns.
type FilterOptions struct {
	Years       []int    `json:"years"`
	Departments []string `json:"departments"`
	Subjects    []string `json:"subjects"`
	Semesters   []int    `json:"semesters"`
}

// ReportSummary is the headline block shared by every report type.
type ReportSummary struct {
	TotalExamRecords    int     `json:"total_exam_records"`
	UniqueStudents      int     `json:"unique_students"`
	UniqueSubjects      int     `json:"unique_subjects"`
	DepartmentsIncluded int     `json:"departments_included"`
	PassRate            float64 `json:"pass_rate"`
	FailRate            float64 `json:"fail_rate"`
	DistinctionRate     float64 `json:"distinction_rate"`
}

// Report is the composed output of the report endpoint.
type Report struct {
	ReportType     string            `json:"report_type"`
	GeneratedAt    time.Time         `json:"generated_at"`
	DataScope      string            `json:"data_scope"`
	Summary        ReportSummary     `json:"summary"`
	TopDepartments []DepartmentStats `json:"top_departments,omitempty"`
	KeyInsights    []string          `json:"key_insights,omitempty"`
}

// StudentProfile is the identity block for one student.
type StudentProfile struct {
	StudentID   string `json:"student_id"`
	Name        string `json:"name,omitempty"`
	Department  string `json:"department"`
	TotalExams  int    `json:"total_exams"`
	YearsActive []int  `json:"years_active"`
}

// StudentPerformance aggregates one student's attempts.
type StudentPerformance struct {
	StudentID        string   `json:"student_id"`
	TotalExams       int      `json:"total_exams"`
	PassExams        int      `json:"pass_exams"`
	FailExams        int      `json:"fail_exams"`
	Distinctions     int      `json:"distinctions"`
	PassRate         float64  `json:"pass_rate"`
	AvgTheoryInternal *float64 `json:"avg_theory_internal,omitempty"`
	AvgTheoryExternal *float64 `json:"avg_theory_external,omitempty"`
}

// BatchStudent is one student summary of a batch lookup. RecentResults is
// populated only when the caller asked for it.
type BatchStudent struct {
	StudentID     string          `json:"student_id"`
	Name          string          `json:"name,omitempty"`
	Department    string          `json:"department"`
	TotalExams    int             `json:"total_exams"`
	PassRate      float64         `json:"pass_rate"`
	RecentResults []StudentResult `json:"recent_results,omitempty"`
}

// StudentResult is one exam row projected for the results listing.
type StudentResult struct {
	Subject     string   `json:"subject"`
	Year        *int     `json:"year,omitempty"`
	PassFail    string   `json:"pass_fail,omitempty"`
	Performance *Performance `json:"performance,omitempty"`
	Grade       string   `json:"grade,omitempty"`
	TotalTheory *float64 `json:"total_theory,omitempty"`
}

// SystemMetrics is the instrumentation snapshot served by the analytics API.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DatasetBuilds            uint64    `json:"dataset_builds"`
	AverageBuildDurationMs   float64   `json:"average_build_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
