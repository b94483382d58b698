package api

import (
	"context"
	"net/http"

	"github.com/traindesk/traindesk/internal/core/catalog"
)

// BatchList is the batch listing plus the dashboard aggregates the server
// computes alongside it.
type BatchList struct {
	Batches []catalog.Batch `json:"batches"`
	catalog.Totals
}

// BookBatch are the fields for scheduling a batch.
type BookBatch struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	FromDate     string `json:"fromDate"`
	ToDate       string `json:"toDate"`
	BranchID     string `json:"branchId"`
	CourseID     string `json:"courseId"`
	InstructorID string `json:"inspectorId"`
}

// AvailabilityQuery selects instructors free for a course run.
type AvailabilityQuery struct {
	BranchID string `json:"branchId"`
	CourseID string `json:"courseId"`
	FromDate string `json:"fromDate"`
	ToDate   string `json:"toDate"`
}

// Batches returns all batches together with the dashboard totals.
func (c *Client) Batches(ctx context.Context) (BatchList, error) {
	var out BatchList
	err := c.do(ctx, http.MethodGet, "/api/batch/all", nil, &out)
	return out, err
}

// Batch returns a single batch by id.
func (c *Client) Batch(ctx context.Context, id string) (catalog.Batch, error) {
	var out struct {
		Batch catalog.Batch `json:"batch"`
	}
	err := c.do(ctx, http.MethodGet, "/api/batch/"+id, nil, &out)
	return out.Batch, err
}

// Book schedules a new batch and returns the server's record.
func (c *Client) Book(ctx context.Context, in BookBatch) (catalog.Batch, error) {
	var out struct {
		Batch catalog.Batch `json:"batch"`
	}
	err := c.do(ctx, http.MethodPost, "/api/batch/bookBatch", in, &out)
	return out.Batch, err
}

// UpdateBatch updates a batch and returns the server's record.
func (c *Client) UpdateBatch(ctx context.Context, id string, in BookBatch) (catalog.Batch, error) {
	var out struct {
		Batch catalog.Batch `json:"batch"`
	}
	err := c.do(ctx, http.MethodPut, "/api/batch/"+id, in, &out)
	return out.Batch, err
}

// DeleteBatch removes a batch.
func (c *Client) DeleteBatch(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/batch/"+id, nil, nil)
}

// AvailableInstructors returns the instructors free for the given query.
func (c *Client) AvailableInstructors(ctx context.Context, q AvailabilityQuery) ([]catalog.Instructor, error) {
	var out struct {
		Available []catalog.Instructor `json:"availableInspectors"`
	}
	err := c.do(ctx, http.MethodPost, "/api/batch/available_inspectors", q, &out)
	return out.Available, err
}
