package dataset

import (
	"regexp"
	"strconv"
	"strings"
)

// Candidate header names per canonical column. Order encodes preference:
// earlier names win when a sheet carries several variants.
var (
	studentIDCandidates  = []string{"student_id", "studentid", "student_code", "roll_no", "rollno", "roll_number", "enrollment_no", "id"}
	subjectCandidates    = []string{"subject", "subject_name", "name"}
	departmentCandidates = []string{"department", "dept", "offering_department", "branch", "program", "faculty", "school"}
	examNameCandidates   = []string{"exam_name", "exam"}
	examMonthCandidates  = []string{"exam_month"}
	studentNameCandidates = []string{"student_name"}
	courseNameCandidates  = []string{"course_name", "course"}
	passFailCandidates    = []string{"pass_fail", "course_result", "result", "status", "outcome", "grade_status"}
	gradeCandidates       = []string{"grade", "grade_point"}
	semesterCandidates    = []string{"semester", "sem", "term"}

	theoryCreditCandidates    = []string{"theory_credit"}
	practicalCreditCandidates = []string{"practical_credit"}
	totalTheoryCandidates     = []string{"total_theory_marks"}
	totalPracticalCandidates  = []string{"total_practical_marks"}

	// Score representations per component, oldest schema first within each
	// kind. Sheets from different eras carry different subsets.
	theoryInternalAvgColumns    = []string{"cia1_theory_internal", "cia2_theory_internal", "cia3_theory_internal"}
	practicalInternalAvgColumns = []string{"cia1_practical_internal", "cia2_practical_internal", "cia3_practical_internal"}

	theoryInternalPercentCandidates    = []string{"theory_internal_percentage", "cia_theory_percentage"}
	practicalInternalPercentCandidates = []string{"practical_internal_percentage", "cia_practical_percentage"}
	theoryExternalPercentCandidates    = []string{"theory_ese_percentage", "ese_theory_percentage"}
	practicalExternalPercentCandidates = []string{"practical_ese_percentage", "ese_practical_percentage"}

	// "ese_obtainded" is the spelling the legacy sheets actually use.
	ciaObtainedCandidates = []string{"cia_obtained"}
	ciaMaxCandidates      = []string{"cia_max"}
	eseObtainedCandidates = []string{"ese_obtainded", "ese_obtained"}
	eseMaxCandidates      = []string{"ese_max"}

	// Outcome columns checked for an explicit fail verdict during
	// classification.
	resultColumnNames = []string{"theory_result", "theory_internal_result", "practical_result", "practical_internal_result"}
)

var fourDigitRun = regexp.MustCompile(`\d{4}`)

// yearStrategy names the derivation path chosen for exam_year, tried in
// order until one yields at least one value anywhere in the table.
type yearStrategy int

const (
	yearFromColumn yearStrategy = iota
	yearFromExamName
	yearFromExamMonth
	yearFromYearLike
	yearFromAnyCell
	yearUnavailable
)

func (s yearStrategy) String() string {
	switch s {
	case yearFromColumn:
		return "exam_year column"
	case yearFromExamName:
		return "exam_name prefix"
	case yearFromExamMonth:
		return "exam_month prefix"
	case yearFromYearLike:
		return "year-like column"
	case yearFromAnyCell:
		return "any text cell"
	default:
		return "unavailable"
	}
}

// Resolution maps canonical fields to column indexes of one table and pins
// the year derivation strategy so every row uses the same path.
type Resolution struct {
	StudentID   int
	Subject     int
	Department  int
	ExamName    int
	ExamMonth   int
	StudentName int
	CourseName  int
	PassFail    int
	Grade       int
	Semester    int

	TheoryInternal    scoreSource
	PracticalInternal scoreSource
	TheoryExternal    scoreSource
	PracticalExternal scoreSource
	TheoryCredit      int
	PracticalCredit   int
	TotalTheory       int
	TotalPractical    int

	ResultColumns []int

	ExamYear     int
	yearStrategy yearStrategy
	yearLikeCol  int
}

// Missing lists the required canonical columns the table does not carry.
func (r Resolution) Missing() []string {
	var missing []string
	if r.StudentID < 0 {
		missing = append(missing, "student_id")
	}
	if r.Subject < 0 {
		missing = append(missing, "subject")
	}
	if r.Department < 0 {
		missing = append(missing, "department")
	}
	return missing
}

// Resolve inspects the table headers and rows and fixes the column mapping
// for the whole build.
func Resolve(t RawTable) Resolution {
	res := Resolution{
		StudentID:   t.ColumnIndex(studentIDCandidates...),
		Subject:     t.ColumnIndex(subjectCandidates...),
		Department:  t.ColumnIndex(departmentCandidates...),
		ExamName:    t.ColumnIndex(examNameCandidates...),
		ExamMonth:   t.ColumnIndex(examMonthCandidates...),
		StudentName: t.ColumnIndex(studentNameCandidates...),
		CourseName:  t.ColumnIndex(courseNameCandidates...),
		PassFail:    t.ColumnIndex(passFailCandidates...),
		Grade:       t.ColumnIndex(gradeCandidates...),
		Semester:    t.ColumnIndex(semesterCandidates...),

		TheoryInternal:    resolveTheoryInternal(t),
		PracticalInternal: resolvePracticalInternal(t),
		TheoryExternal:    resolveTheoryExternal(t),
		PracticalExternal: resolvePracticalExternal(t),
		TheoryCredit:      t.ColumnIndex(theoryCreditCandidates...),
		PracticalCredit:   t.ColumnIndex(practicalCreditCandidates...),
		TotalTheory:       t.ColumnIndex(totalTheoryCandidates...),
		TotalPractical:    t.ColumnIndex(totalPracticalCandidates...),

		ExamYear: t.ColumnIndex("exam_year"),
	}

	for _, name := range resultColumnNames {
		if i := t.ColumnIndex(name); i >= 0 {
			res.ResultColumns = append(res.ResultColumns, i)
		}
	}

	res.yearStrategy, res.yearLikeCol = pickYearStrategy(t, res)
	return res
}

// scoreRule names how one component percentage is read from a row. Like the
// year strategy, the rule is pinned per table from the headers present.
type scoreRule int

const (
	scoreAbsent  scoreRule = iota
	scoreAverage           // mean of the CIA sitting columns that exist
	scorePercent           // percentage column, credit-gated
	scoreDirect            // pre-derived column, taken as is
	scoreRatio             // obtained/max pair, ratio x 100
)

// scoreSource binds a rule to the columns it reads. For scoreRatio cols holds
// [obtained, max]; for scoreAverage every sitting column found.
type scoreSource struct {
	rule scoreRule
	cols []int
}

func averageSource(t RawTable, names []string) (scoreSource, bool) {
	var cols []int
	for _, name := range names {
		if i := t.ColumnIndex(name); i >= 0 {
			cols = append(cols, i)
		}
	}
	if len(cols) == 0 {
		return scoreSource{}, false
	}
	return scoreSource{rule: scoreAverage, cols: cols}, true
}

func singleSource(t RawTable, rule scoreRule, names ...string) (scoreSource, bool) {
	if i := t.ColumnIndex(names...); i >= 0 {
		return scoreSource{rule: rule, cols: []int{i}}, true
	}
	return scoreSource{}, false
}

func ratioSource(t RawTable, obtainedNames, maxNames []string) (scoreSource, bool) {
	obtained := t.ColumnIndex(obtainedNames...)
	max := t.ColumnIndex(maxNames...)
	if obtained < 0 || max < 0 {
		return scoreSource{}, false
	}
	return scoreSource{rule: scoreRatio, cols: []int{obtained, max}}, true
}

// resolveTheoryInternal: CIA sitting columns, then the percentage column,
// then a pre-averaged column, then the legacy obtained/max pair.
func resolveTheoryInternal(t RawTable) scoreSource {
	if s, ok := averageSource(t, theoryInternalAvgColumns); ok {
		return s
	}
	if s, ok := singleSource(t, scorePercent, theoryInternalPercentCandidates...); ok {
		return s
	}
	if s, ok := singleSource(t, scoreDirect, "cia_theory_avg"); ok {
		return s
	}
	if s, ok := ratioSource(t, ciaObtainedCandidates, ciaMaxCandidates); ok {
		return s
	}
	return scoreSource{}
}

func resolvePracticalInternal(t RawTable) scoreSource {
	if s, ok := averageSource(t, practicalInternalAvgColumns); ok {
		return s
	}
	if s, ok := singleSource(t, scorePercent, practicalInternalPercentCandidates...); ok {
		return s
	}
	if s, ok := singleSource(t, scoreDirect, "cia_practical_avg"); ok {
		return s
	}
	return scoreSource{}
}

// resolveTheoryExternal: the pre-derived column wins over the percentage
// column here, matching the sheets where both appear.
func resolveTheoryExternal(t RawTable) scoreSource {
	if s, ok := singleSource(t, scoreDirect, "ese_theory_internal"); ok {
		return s
	}
	if s, ok := singleSource(t, scorePercent, theoryExternalPercentCandidates...); ok {
		return s
	}
	if s, ok := ratioSource(t, eseObtainedCandidates, eseMaxCandidates); ok {
		return s
	}
	return scoreSource{}
}

func resolvePracticalExternal(t RawTable) scoreSource {
	if s, ok := singleSource(t, scoreDirect, "ese_practical_internal"); ok {
		return s
	}
	if s, ok := singleSource(t, scorePercent, practicalExternalPercentCandidates...); ok {
		return s
	}
	return scoreSource{}
}

// pickYearStrategy walks the derivation ladder and keeps the first rung that
// produces a year for at least one row.
func pickYearStrategy(t RawTable, res Resolution) (yearStrategy, int) {
	if res.ExamYear >= 0 && columnHasYear(t, res.ExamYear) {
		return yearFromColumn, -1
	}
	if res.ExamName >= 0 && columnHasYear(t, res.ExamName) {
		return yearFromExamName, -1
	}
	if res.ExamMonth >= 0 && columnHasYear(t, res.ExamMonth) {
		return yearFromExamMonth, -1
	}
	for i, col := range t.Columns {
		if !strings.Contains(NormalizeHeader(col), "year") || i == res.ExamYear {
			continue
		}
		if columnHasYear(t, i) {
			return yearFromYearLike, i
		}
	}
	for _, row := range t.Rows {
		for _, cell := range row {
			if extractYear(cell) != nil {
				return yearFromAnyCell, -1
			}
		}
	}
	return yearUnavailable, -1
}

func columnHasYear(t RawTable, col int) bool {
	for _, row := range t.Rows {
		if extractYear(t.Cell(row, col)) != nil {
			return true
		}
	}
	return false
}

// extractYear pulls the first 4-digit run out of a cell, accepting plain
// integers ("2023") and prefixed forms ("202310-ENDSEM-UG-PG").
func extractYear(cell string) *int {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	if n, err := strconv.Atoi(cell); err == nil {
		if n >= 1000 && n <= 9999 {
			return &n
		}
		if n >= 100000 && n <= 999999 {
			// YYYYMM session code
			y := n / 100
			return &y
		}
		return nil
	}
	match := fourDigitRun.FindString(cell)
	if match == "" {
		return nil
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return nil
	}
	return &n
}

// rowYear applies the pinned strategy to one row.
func (r Resolution) rowYear(t RawTable, row []string) *int {
	switch r.yearStrategy {
	case yearFromColumn:
		return extractYear(t.Cell(row, r.ExamYear))
	case yearFromExamName:
		return extractYear(t.Cell(row, r.ExamName))
	case yearFromExamMonth:
		return extractYear(t.Cell(row, r.ExamMonth))
	case yearFromYearLike:
		return extractYear(t.Cell(row, r.yearLikeCol))
	case yearFromAnyCell:
		for _, cell := range row {
			if y := extractYear(cell); y != nil {
				return y
			}
		}
	}
	return nil
}

var sessionSemester = regexp.MustCompile(`^\d{4}(\d{2})`)

// rowSemester reads the semester column when present, otherwise digits five
// and six of a YYYYMM-prefixed exam name.
func (r Resolution) rowSemester(t RawTable, row []string) *int {
	if r.Semester >= 0 {
		if n, err := strconv.Atoi(t.Cell(row, r.Semester)); err == nil {
			return &n
		}
		return nil
	}
	if r.ExamName < 0 {
		return nil
	}
	m := sessionSemester.FindStringSubmatch(t.Cell(row, r.ExamName))
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
