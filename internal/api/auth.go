package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/traindesk/traindesk/internal/core/catalog"
	"github.com/traindesk/traindesk/internal/core/credentials"
)

// LoginRequest are the login form fields.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest are the fields for creating a back-office account.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
}

// Login authenticates and persists the returned session credentials,
// replacing any previous session. The renewal cookie from the response is
// stored alongside the access token so refresh works across process restarts.
func (c *Client) Login(ctx context.Context, in LoginRequest) (catalog.User, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return catalog.User{}, fmt.Errorf("encode request body: %w", err)
	}

	// Login bypasses the authenticated gateway: there is no credential to
	// attach and the raw response is needed for the Set-Cookie header.
	req, err := newJSONRequest(ctx, http.MethodPost, c.baseURL+"/api/auth/login", body)
	if err != nil {
		return catalog.User{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return catalog.User{}, err
	}
	data, err := readBody(resp)
	if err != nil {
		return catalog.User{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return catalog.User{}, newError(resp.StatusCode, data)
	}

	var out struct {
		AccessToken string       `json:"accessToken"`
		User        catalog.User `json:"user"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return catalog.User{}, fmt.Errorf("decode login response: %w", err)
	}
	if out.AccessToken == "" {
		return catalog.User{}, fmt.Errorf("login response missing access token")
	}

	creds := credentials.Credentials{
		AccessToken: out.AccessToken,
		Email:       in.Email,
		UpdatedAt:   time.Now(),
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == refreshCookie {
			creds.RefreshCookie = cookie.Value
		}
	}

	if err := c.creds.Save(creds); err != nil {
		return catalog.User{}, fmt.Errorf("persist credentials: %w", err)
	}

	c.log.Info().Str("email", in.Email).Msg("logged in")
	return out.User, nil
}

// Logout discards the stored session. Purely client-side: the access token
// simply ages out server-side.
func (c *Client) Logout() error {
	return c.creds.Clear()
}

// Register creates a new back-office account.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (catalog.User, error) {
	var out struct {
		User catalog.User `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &out)
	return out.User, err
}

func newJSONRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}
