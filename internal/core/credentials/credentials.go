// Package credentials defines the authenticated session state and its
// persistence contract.
package credentials

import (
	"time"
)

// Credentials is the client-side session state for one logged-in user.
//
// AccessToken is the short-lived bearer credential attached to every API
// request. RefreshCookie is the value of the renewal cookie issued at login;
// it is sent only on the token-renewal call, never on business requests.
type Credentials struct {
	AccessToken   string    `json:"access_token"`
	RefreshCookie string    `json:"refresh_cookie,omitempty"`
	Email         string    `json:"email,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LoggedIn reports whether an access token is present. A stale token still
// counts as logged in; expiry is discovered (and recovered) at request time.
func (c Credentials) LoggedIn() bool {
	return c.AccessToken != ""
}

// HasSession reports whether any session material is stored. A renewal
// cookie without an access token is still a session: the next request runs
// unauthenticated, gets the expiry signal, and the refresh call mints a
// fresh token from the cookie.
func (c Credentials) HasSession() bool {
	return c.AccessToken != "" || c.RefreshCookie != ""
}
