package api

import (
	"context"
	"net/http"

	"github.com/traindesk/traindesk/internal/core/catalog"
)

// NewBranch are the fields for creating or updating a branch.
type NewBranch struct {
	BranchName string   `json:"branchName"`
	Country    string   `json:"country"`
	BranchCode string   `json:"branchCode"`
	Address    string   `json:"address"`
	CourseIDs  []string `json:"courseIds,omitempty"`
}

// Branches returns all branches.
func (c *Client) Branches(ctx context.Context) ([]catalog.Branch, error) {
	var out struct {
		Branches []catalog.Branch `json:"branches"`
	}
	err := c.do(ctx, http.MethodGet, "/api/branch/all", nil, &out)
	return out.Branches, err
}

// Branch returns a single branch by id.
func (c *Client) Branch(ctx context.Context, id string) (catalog.Branch, error) {
	var out struct {
		Branch catalog.Branch `json:"branch"`
	}
	err := c.do(ctx, http.MethodGet, "/api/branch/"+id, nil, &out)
	return out.Branch, err
}

// CreateBranch creates a branch and returns the server's record.
func (c *Client) CreateBranch(ctx context.Context, in NewBranch) (catalog.Branch, error) {
	var out struct {
		Branch catalog.Branch `json:"branch"`
	}
	err := c.do(ctx, http.MethodPost, "/api/branch/create", in, &out)
	return out.Branch, err
}

// UpdateBranch updates a branch and returns the server's record.
func (c *Client) UpdateBranch(ctx context.Context, id string, in NewBranch) (catalog.Branch, error) {
	var out struct {
		Branch catalog.Branch `json:"branch"`
	}
	err := c.do(ctx, http.MethodPut, "/api/branch/"+id, in, &out)
	return out.Branch, err
}

// DeleteBranch removes a branch.
func (c *Client) DeleteBranch(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/branch/"+id, nil, nil)
}
