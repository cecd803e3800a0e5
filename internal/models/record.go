package models

// Performance is the derived classification, distinct from the raw pass/fail field.
type Performance string

const (
	PerformanceFail        Performance = "Fail"
	PerformancePass        Performance = "Pass"
	PerformanceDistinction Performance = "Distinction"
)

// ExamRecord is one row of the canonical table: a single student-subject-exam
// attempt after column resolution, metric derivation, and classification.
// Pointer fields distinguish "not applicable / unknown" from zero.
type ExamRecord struct {
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	Department  string `json:"department"`
	Subject     string `json:"subject"`
	CourseName  string `json:"course_name,omitempty"`

	ExamYear *int `json:"exam_year,omitempty"`
	Semester *int `json:"semester,omitempty"`

	PassFail string `json:"pass_fail,omitempty"`
	Grade    string `json:"grade,omitempty"`

	TheoryInternalPct    *float64 `json:"theory_internal_pct,omitempty"`
	PracticalInternalPct *float64 `json:"practical_internal_pct,omitempty"`
	TheoryExternalPct    *float64 `json:"theory_external_pct,omitempty"`
	PracticalExternalPct *float64 `json:"practical_external_pct,omitempty"`

	TotalTheory    *float64 `json:"total_theory,omitempty"`
	TotalPractical *float64 `json:"total_practical,omitempty"`
	WeightedTotal  *float64 `json:"weighted_total,omitempty"`

	// Performance is nil when the record is unclassifiable.
	Performance *Performance `json:"performance,omitempty"`
}

// PassedRaw reports whether the raw pass/fail field normalises to "pass".
func (r ExamRecord) PassedRaw() bool {
	return normalizeOutcome(r.PassFail) == "pass"
}

// FailedRaw reports whether the raw pass/fail field normalises to "fail".
func (r ExamRecord) FailedRaw() bool {
	return normalizeOutcome(r.PassFail) == "fail"
}

// IsDistinction reports whether the derived performance is Distinction.
func (r ExamRecord) IsDistinction() bool {
	return r.Performance != nil && *r.Performance == PerformanceDistinction
}
