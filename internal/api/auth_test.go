package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traindesk/traindesk/internal/core/credentials"
)

func TestLoginPersistsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)

		var in LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "admin@example.com", in.Email)

		http.SetCookie(w, &http.Cookie{Name: "refreshToken", Value: "renewal-1", HttpOnly: true})
		writeJSON(w, http.StatusOK, `{"accessToken":"tok-1","user":{"_id":"u1","firstName":"Ada","lastName":"Lovelace"}}`)
	}))
	defer srv.Close()

	store := newMemStore("", "")
	store.empty = true
	c := newTestClient(t, srv.URL, store)

	user, err := c.Login(context.Background(), LoginRequest{Email: "admin@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.FullName())

	creds, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", creds.AccessToken)
	assert.Equal(t, "renewal-1", creds.RefreshCookie)
	assert.Equal(t, "admin@example.com", creds.Email)
}

func TestLoginRejectedLeavesStoreEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"invalid credentials"}`)
	}))
	defer srv.Close()

	store := newMemStore("", "")
	store.empty = true
	c := newTestClient(t, srv.URL, store)

	_, err := c.Login(context.Background(), LoginRequest{Email: "x@y.z", Password: "nope"})
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))

	_, err = store.Load()
	assert.ErrorIs(t, err, credentials.ErrNotLoggedIn)
}

func TestLogoutClearsCredentials(t *testing.T) {
	store := newMemStore("tok-1", "cookie")
	c := newTestClient(t, "http://unused", store)

	require.NoError(t, c.Logout())

	_, err := store.Load()
	assert.ErrorIs(t, err, credentials.ErrNotLoggedIn)
}

func TestTokenExpiredSignal(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   bool
	}{
		{"expired token", http.StatusUnauthorized, `{"message":"TokenExpired"}`, true},
		{"other 401 reason", http.StatusUnauthorized, `{"message":"Forbidden"}`, false},
		{"non-401 with expired message", http.StatusBadRequest, `{"message":"TokenExpired"}`, false},
		{"unparseable body", http.StatusUnauthorized, `<html>`, false},
		{"empty body", http.StatusUnauthorized, ``, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tokenExpired(tt.status, []byte(tt.body)))
		})
	}
}
