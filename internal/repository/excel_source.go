package repository

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-analytics-api/internal/dataset"
)

// ExcelSource loads the raw table from the first sheet of an XLSX workbook.
type ExcelSource struct {
	path   string
	logger *zap.Logger
}

// NewExcelSource constructs an XLSX-backed source.
func NewExcelSource(path string, logger *zap.Logger) *ExcelSource {
	return &ExcelSource{path: path, logger: logger}
}

// Load reads the workbook and returns the untyped table. Short rows are
// kept as-is; the builder treats missing cells as empty.
func (s *ExcelSource) Load(ctx context.Context) (dataset.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return dataset.RawTable{}, err
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return dataset.RawTable{}, fmt.Errorf("workbook %s has no sheets", s.path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return dataset.RawTable{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return dataset.RawTable{}, fmt.Errorf("sheet %s is empty", sheets[0])
	}

	table := dataset.RawTable{Columns: rows[0], Rows: rows[1:]}

	s.logger.Debug("excel source loaded",
		zap.String("path", s.path),
		zap.String("sheet", sheets[0]),
		zap.Int("rows", len(table.Rows)),
	)
	return table, nil
}
