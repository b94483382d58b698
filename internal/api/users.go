package api

import (
	"context"
	"net/http"

	"github.com/traindesk/traindesk/internal/core/catalog"
)

// UpdateUser are the editable account fields.
type UpdateUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Users returns all back-office accounts.
func (c *Client) Users(ctx context.Context) ([]catalog.User, error) {
	// The user listing is double-wrapped server-side.
	var out struct {
		Data struct {
			Users []catalog.User `json:"users"`
		} `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/api/user/all", nil, &out)
	return out.Data.Users, err
}

// SaveUser updates an account's profile fields.
func (c *Client) SaveUser(ctx context.Context, id string, in UpdateUser) (catalog.User, error) {
	var out struct {
		User catalog.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPut, "/api/user/"+id, in, &out)
	return out.User, err
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/user/"+id, nil, nil)
}

// SetPassword changes an account's password.
func (c *Client) SetPassword(ctx context.Context, id, password string) error {
	payload := struct {
		Password string `json:"password"`
	}{Password: password}
	return c.do(ctx, http.MethodPut, "/api/user/"+id+"/password", payload, nil)
}
