package dataset

import (
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/models"
)

// Table is one immutable build of the canonical dataset.
type Table struct {
	Records  []models.ExamRecord
	LoadedAt time.Time
	Warnings []string
}

// Build turns a raw table into classified exam records. Rows are never
// dropped; fields that cannot be resolved stay at their zero or nil value.
func Build(t RawTable, logger *zap.Logger) *Table {
	res := Resolve(t)

	out := &Table{
		Records:  make([]models.ExamRecord, 0, len(t.Rows)),
		LoadedAt: time.Now().UTC(),
	}
	for _, col := range res.Missing() {
		out.Warnings = append(out.Warnings, "required column not found: "+col)
	}

	for _, row := range t.Rows {
		rec := models.ExamRecord{
			StudentID:   t.Cell(row, res.StudentID),
			StudentName: t.Cell(row, res.StudentName),
			Department:  t.Cell(row, res.Department),
			Subject:     NormalizeSubject(t.Cell(row, res.Subject)),
			CourseName:  t.Cell(row, res.CourseName),
			PassFail:    t.Cell(row, res.PassFail),
			Grade:       t.Cell(row, res.Grade),
			ExamYear:    res.rowYear(t, row),
			Semester:    res.rowSemester(t, row),
		}
		res.deriveMetrics(t, row, &rec)
		res.classify(t, row, &rec)
		out.Records = append(out.Records, rec)
	}

	logger.Info("dataset built",
		zap.Int("rows", len(out.Records)),
		zap.String("year_strategy", res.yearStrategy.String()),
		zap.Strings("warnings", out.Warnings),
	)
	return out
}
