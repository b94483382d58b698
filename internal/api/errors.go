package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// CodeTokenExpired is the machine-readable reason the server attaches to a
// 401 caused by an expired access token. Only this exact combination triggers
// a credential refresh; any other 401 is passed through to the caller.
const CodeTokenExpired = "TokenExpired"

// Error is a non-2xx API response.
type Error struct {
	Status  int    // HTTP status code
	Code    string // machine-readable reason from the response body, if any
	Message string // human-readable message from the response body, if any
}

func (e *Error) Error() string {
	if e.Message != "" && e.Message != e.Code {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Code, e.Status)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// IsNotFound reports whether err is an API error with status 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an API error with status 401,
// for any reason. Callers use this to force a fresh login.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// errorBody is the server's error envelope. The message field doubles as the
// reason code for machine-readable failures such as TokenExpired.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// newError builds an *Error from a non-2xx response body.
func newError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		apiErr.Code = eb.Message
		apiErr.Message = eb.Message
		if eb.Error != "" {
			apiErr.Message = eb.Error
		}
	}

	return apiErr
}

// tokenExpired reports whether the response is the expired-credential signal.
func tokenExpired(status int, body []byte) bool {
	if status != http.StatusUnauthorized {
		return false
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return false
	}
	return eb.Message == CodeTokenExpired
}
