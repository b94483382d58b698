package credentials

import "errors"

// ErrNotLoggedIn is returned by stores when no credentials are saved.
var ErrNotLoggedIn = errors.New("not logged in")

// Store defines persistence for the session credentials.
//
// The gateway is the only writer of the access token after login; all other
// code treats loaded credentials as read-only.
type Store interface {
	// Load returns the saved credentials. Returns ErrNotLoggedIn if none exist.
	Load() (Credentials, error)
	// Save persists the credentials, replacing any previous session.
	Save(c Credentials) error
	// Clear removes any saved credentials. Clearing an empty store is not an error.
	Clear() error
}
