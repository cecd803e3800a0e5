package dataset

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/noah-isme/exam-analytics-api/internal/models"
)

var notApplicable = regexp.MustCompile(`(?i)not\s*applicable`)

// parsePercent converts a score cell to a float, treating the
// "Not Applicable" sentinel and anything unparseable as absent.
func parsePercent(cell string) *float64 {
	cell = strings.TrimSpace(notApplicable.ReplaceAllString(cell, ""))
	if cell == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseCredit reads a credit cell; absent column or bad value yields nil.
func parseCredit(cell string) *float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil
	}
	return &f
}

// gate nulls a component score when its credit column exists and reads zero
// or negative. Theory-only subjects carry zero practical credit and vice
// versa; their sentinel scores must not enter averages.
func gate(score *float64, credit *float64, creditColPresent bool) *float64 {
	if !creditColPresent {
		return score
	}
	if credit == nil || *credit <= 0 {
		return nil
	}
	return score
}

// addNullable sums two optional values; either side missing makes the sum
// missing.
func addNullable(a, b *float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	s := *a + *b
	return &s
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func orOne(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}

// read produces the component percentage of one row. Only the percentage
// representation is credit-gated; sitting averages, pre-derived columns and
// obtained/max pairs predate the credit columns.
func (s scoreSource) read(t RawTable, row []string, credit *float64, creditColPresent bool) *float64 {
	switch s.rule {
	case scoreAverage:
		var sum float64
		n := 0
		for _, col := range s.cols {
			if v := parsePercent(t.Cell(row, col)); v != nil {
				sum += *v
				n++
			}
		}
		if n == 0 {
			return nil
		}
		mean := sum / float64(n)
		return &mean
	case scorePercent:
		return gate(parsePercent(t.Cell(row, s.cols[0])), credit, creditColPresent)
	case scoreDirect:
		return parsePercent(t.Cell(row, s.cols[0]))
	case scoreRatio:
		obtained := parsePercent(t.Cell(row, s.cols[0]))
		max := parsePercent(t.Cell(row, s.cols[1]))
		if obtained == nil || max == nil || *max <= 0 {
			return nil
		}
		pct := *obtained / *max * 100
		return &pct
	}
	return nil
}

// deriveMetrics fills the component percentages, totals, and weighted total
// of one record from a resolved row.
func (r Resolution) deriveMetrics(t RawTable, row []string, rec *models.ExamRecord) {
	theoryCredit := parseCredit(t.Cell(row, r.TheoryCredit))
	practicalCredit := parseCredit(t.Cell(row, r.PracticalCredit))

	rec.TheoryInternalPct = r.TheoryInternal.read(t, row, theoryCredit, r.TheoryCredit >= 0)
	rec.PracticalInternalPct = r.PracticalInternal.read(t, row, practicalCredit, r.PracticalCredit >= 0)
	rec.TheoryExternalPct = r.TheoryExternal.read(t, row, theoryCredit, r.TheoryCredit >= 0)
	rec.PracticalExternalPct = r.PracticalExternal.read(t, row, practicalCredit, r.PracticalCredit >= 0)

	if r.TotalTheory >= 0 {
		rec.TotalTheory = parsePercent(t.Cell(row, r.TotalTheory))
	} else {
		rec.TotalTheory = addNullable(rec.TheoryInternalPct, rec.TheoryExternalPct)
	}
	if r.TotalPractical >= 0 {
		rec.TotalPractical = parsePercent(t.Cell(row, r.TotalPractical))
	} else {
		rec.TotalPractical = addNullable(rec.PracticalInternalPct, rec.PracticalExternalPct)
	}

	weighted := orZero(rec.TotalTheory)*orOne(theoryCredit) +
		orZero(rec.TotalPractical)*orOne(practicalCredit)
	rec.WeightedTotal = &weighted
}
