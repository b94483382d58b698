package api

import (
	"context"
	"net/http"
)

// ReportQuery bounds an instructor report by date (inclusive, YYYY-MM-DD).
type ReportQuery struct {
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

// ReportRow is one instructor's utilization within the queried window.
type ReportRow struct {
	InstructorID string `json:"inspectorId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BatchCount   int    `json:"batchCount"`
	AssignedDays int    `json:"assignedDays"`
}

// InstructorReport returns per-instructor utilization for the date window.
func (c *Client) InstructorReport(ctx context.Context, q ReportQuery) ([]ReportRow, error) {
	var out struct {
		Reports []ReportRow `json:"reports"`
	}
	err := c.do(ctx, http.MethodPost, "/api/report/instructor_report", q, &out)
	return out.Reports, err
}
