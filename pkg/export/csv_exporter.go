package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// DepartmentRow is one line of the department statistics download.
type DepartmentRow struct {
	Department string
	Students   int
	Exams      int
	PassCount  int
	PassRate   float64
}

var departmentHeader = []string{"department", "students", "exams", "pass_count", "pass_rate"}

// DepartmentCSV renders department statistics as a CSV document. Pass rates
// are written with two decimal places to match the JSON responses.
func DepartmentCSV(rows []DepartmentRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if err := w.Write(departmentHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		record := []string{
			r.Department,
			strconv.Itoa(r.Students),
			strconv.Itoa(r.Exams),
			strconv.Itoa(r.PassCount),
			strconv.FormatFloat(r.PassRate, 'f', 2, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
