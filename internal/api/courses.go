package api

import (
	"context"
	"net/http"

	"github.com/traindesk/traindesk/internal/core/catalog"
)

// NewCourse are the fields for creating or updating a course.
type NewCourse struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	BranchIDs   []string `json:"branchIds,omitempty"`
}

// Courses returns all courses.
func (c *Client) Courses(ctx context.Context) ([]catalog.Course, error) {
	var out struct {
		Courses []catalog.Course `json:"courses"`
	}
	err := c.do(ctx, http.MethodGet, "/api/course/all", nil, &out)
	return out.Courses, err
}

// Course returns a single course by id.
func (c *Client) Course(ctx context.Context, id string) (catalog.Course, error) {
	var out struct {
		Course catalog.Course `json:"course"`
	}
	err := c.do(ctx, http.MethodGet, "/api/course/"+id, nil, &out)
	return out.Course, err
}

// CreateCourse creates a course and returns the server's record.
func (c *Client) CreateCourse(ctx context.Context, in NewCourse) (catalog.Course, error) {
	var out struct {
		Course catalog.Course `json:"course"`
	}
	err := c.do(ctx, http.MethodPost, "/api/course/create", in, &out)
	return out.Course, err
}

// UpdateCourse updates a course and returns the server's record.
func (c *Client) UpdateCourse(ctx context.Context, id string, in NewCourse) (catalog.Course, error) {
	var out struct {
		Course catalog.Course `json:"course"`
	}
	err := c.do(ctx, http.MethodPut, "/api/course/"+id, in, &out)
	return out.Course, err
}

// DeleteCourse removes a course.
func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/course/"+id, nil, nil)
}
