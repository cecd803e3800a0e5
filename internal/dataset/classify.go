package dataset

import (
	"regexp"
	"strings"

	"github.com/noah-isme/exam-analytics-api/internal/models"
)

const distinctionThreshold = 80.0

var (
	failVerdict       = regexp.MustCompile(`(?i)(fail|sus)`)
	resultNotApplicable = regexp.MustCompile(`(?i)not\s*applicable|^na$`)
)

// classify assigns the derived performance tier for one record.
//
// Priority:
//  1. Fail when any outcome column carries an explicit fail/suspension
//     verdict, or the raw pass_fail field reads "fail".
//  2. Distinction when total theory plus total practical reaches the
//     threshold, missing totals counting as zero.
//  3. Pass when the raw pass_fail field reads "pass".
//  4. Unclassifiable otherwise.
func (r Resolution) classify(t RawTable, row []string, rec *models.ExamRecord) {
	for _, col := range r.ResultColumns {
		verdict := t.Cell(row, col)
		if verdict == "" || resultNotApplicable.MatchString(verdict) {
			continue
		}
		if failVerdict.MatchString(verdict) {
			p := models.PerformanceFail
			rec.Performance = &p
			return
		}
	}

	outcome := strings.ToLower(strings.TrimSpace(rec.PassFail))
	switch {
	case outcome == "fail":
		p := models.PerformanceFail
		rec.Performance = &p
	case orZero(rec.TotalTheory)+orZero(rec.TotalPractical) >= distinctionThreshold:
		p := models.PerformanceDistinction
		rec.Performance = &p
	case outcome == "pass":
		p := models.PerformancePass
		rec.Performance = &p
	}
}
