package models

// FilterRequest is the body of the ad-hoc analytics filter endpoint.
type FilterRequest struct {
	YearFrom    *int   `json:"year_from" binding:"omitempty,gte=1900,lte=2100"`
	YearTo      *int   `json:"year_to" binding:"omitempty,gte=1900,lte=2100"`
	Department  string `json:"department"`
	Subject     string `json:"subject"`
	Semester    *int   `json:"semester" binding:"omitempty,gte=1,lte=99"`
	PassFail    string `json:"pass_fail" binding:"omitempty,oneof=pass fail Pass Fail PASS FAIL"`
	Performance string `json:"performance" binding:"omitempty,oneof=Pass Fail Distinction"`
	GroupBy     string `json:"group_by" binding:"omitempty,oneof=none exam_year department subject"`
	Limit       int    `json:"limit" binding:"omitempty,gte=1,lte=1000"`
	Offset      int    `json:"offset" binding:"omitempty,gte=0"`
}

// ToFilter converts the request body into a record filter.
func (r FilterRequest) ToFilter() Filter {
	return Filter{
		YearFrom:    r.YearFrom,
		YearTo:      r.YearTo,
		Department:  r.Department,
		Subject:     r.Subject,
		Semester:    r.Semester,
		PassFail:    r.PassFail,
		Performance: r.Performance,
	}
}

// FilterResult is the payload of the ad-hoc filter endpoint: aggregate
// counts over everything that matched plus one page of records.
type FilterResult struct {
	FiltersApplied   FilterRequest `json:"filters_applied"`
	TotalRecords     int           `json:"total_records"`
	PassCount        int           `json:"pass_count"`
	FailCount        int           `json:"fail_count"`
	DistinctionCount int           `json:"distinction_count"`
	PassRate         float64       `json:"pass_rate"`
	Records          []ExamRecord  `json:"records"`
	Limit            int           `json:"limit"`
	Offset           int           `json:"offset"`
	Groups           []GroupStats  `json:"groups,omitempty"`
}

// BatchStudentRequest asks for several student summaries in one call.
type BatchStudentRequest struct {
	StudentIDs     []string `json:"student_ids" binding:"required,min=1" validate:"required,min=1"`
	IncludeResults bool     `json:"include_results"`
}

// ComparisonRequest selects two entities of the same kind to compare.
type ComparisonRequest struct {
	Type   string `form:"entity_type" json:"entity_type" binding:"required,oneof=department subject"`
	First  string `form:"entity_name_1" json:"entity_name_1" binding:"required"`
	Second string `form:"entity_name_2" json:"entity_name_2" binding:"required"`
}
