package api

import (
	"context"
	"net/http"

	"github.com/traindesk/traindesk/internal/core/catalog"
)

// NewInstructor are the fields for creating or updating an instructor.
// The API names this resource "inspector".
type NewInstructor struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Instructors returns all instructors.
func (c *Client) Instructors(ctx context.Context) ([]catalog.Instructor, error) {
	var out struct {
		Instructors []catalog.Instructor `json:"inspectors"`
	}
	err := c.do(ctx, http.MethodGet, "/api/inspector/all", nil, &out)
	return out.Instructors, err
}

// Instructor returns a single instructor by id.
func (c *Client) Instructor(ctx context.Context, id string) (catalog.Instructor, error) {
	var out struct {
		Instructor catalog.Instructor `json:"inspector"`
	}
	err := c.do(ctx, http.MethodGet, "/api/inspector/"+id, nil, &out)
	return out.Instructor, err
}

// CreateInstructor creates an instructor and returns the server's record.
func (c *Client) CreateInstructor(ctx context.Context, in NewInstructor) (catalog.Instructor, error) {
	var out struct {
		Instructor catalog.Instructor `json:"inspector"`
	}
	err := c.do(ctx, http.MethodPost, "/api/inspector/create", in, &out)
	return out.Instructor, err
}

// UpdateInstructor updates an instructor and returns the server's record.
func (c *Client) UpdateInstructor(ctx context.Context, id string, in NewInstructor) (catalog.Instructor, error) {
	var out struct {
		Instructor catalog.Instructor `json:"inspector"`
	}
	err := c.do(ctx, http.MethodPut, "/api/inspector/"+id, in, &out)
	return out.Instructor, err
}

// DeleteInstructor removes an instructor.
func (c *Client) DeleteInstructor(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/inspector/"+id, nil, nil)
}
