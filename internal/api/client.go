// Package api is the authenticated gateway to the back-office REST API.
//
// Every request carries the stored bearer credential. When the server rejects
// a request with the expired-credential signal (401 + TokenExpired), the
// client renews the credential exactly once per episode: the first request to
// hit the signal issues the renewal call, requests that expire while it is in
// flight are queued, and once the renewal settles every queued request is
// replayed with the new credential in the order it arrived. A request is
// never replayed more than once for an auth failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/traindesk/traindesk/internal/core/credentials"
)

// refreshCookie is the name of the renewal cookie issued at login. It is sent
// only on the renewal call, never on business requests.
const refreshCookie = "refreshToken"

// Client talks to the back-office API.
type Client struct {
	http    *http.Client
	baseURL string
	creds   credentials.Store
	log     zerolog.Logger

	// refresh gate. The client is the single writer of the stored access
	// token after login; mu serializes the refresh episode.
	mu         sync.Mutex
	refreshing bool
	pending    []*pendingCall
}

// pendingCall is a request suspended while a credential refresh is in flight.
// Its result is delivered exactly once when the refresh settles.
type pendingCall struct {
	ctx    context.Context
	method string
	path   string
	body   []byte
	done   chan callResult
}

type callResult struct {
	status int
	body   []byte
	err    error
}

// New creates a Client for the given base URL. The httpClient owns transport
// concerns (timeouts, proxies); pass nil for a default with a 15s timeout.
func New(baseURL string, creds credentials.Store, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		http:    httpClient,
		baseURL: baseURL,
		creds:   creds,
		log:     log,
	}
}

// do performs an authenticated call and decodes the JSON response into out
// (which may be nil). Non-2xx responses are returned as *Error.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	status, data, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		return newError(status, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response body: %w", err)
		}
	}
	return nil
}

// send executes one call through the refresh gate. The expired-credential
// signal is recovered at most once; the replay goes straight to the wire, so
// a second expiry in a row is returned to the caller untouched.
func (c *Client) send(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	status, data, err := c.roundTrip(ctx, method, path, body, c.token())
	if err != nil {
		return 0, nil, err
	}

	if !tokenExpired(status, data) {
		return status, data, nil
	}

	return c.recoverExpired(ctx, method, path, body)
}

// recoverExpired handles one expired-credential episode for one request.
//
// If a refresh is already in flight the call is enqueued FIFO and suspends
// until the refresh settles. Otherwise this call becomes the trigger: it
// issues the single renewal call, then replays every queued request in
// enqueue order before replaying itself. On refresh failure all waiters fail
// together with the refresh error.
func (c *Client) recoverExpired(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	c.mu.Lock()
	if c.refreshing {
		call := &pendingCall{
			ctx:    ctx,
			method: method,
			path:   path,
			body:   body,
			done:   make(chan callResult, 1),
		}
		c.pending = append(c.pending, call)
		queued := len(c.pending)
		c.mu.Unlock()

		c.log.Debug().Str("path", path).Int("queue_len", queued).Msg("credential expired, waiting on in-flight refresh")

		select {
		case res := <-call.done:
			return res.status, res.body, res.err
		case <-ctx.Done():
			return 0, nil, ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	c.log.Debug().Str("path", path).Msg("credential expired, refreshing")

	var (
		token      string
		refreshErr error
		waiters    []*pendingCall
	)

	// The gate must clear and the queue must drain no matter how the
	// refresh settles.
	func() {
		defer func() {
			c.mu.Lock()
			waiters = c.pending
			c.pending = nil
			c.refreshing = false
			c.mu.Unlock()
		}()
		token, refreshErr = c.refreshCredential(ctx)
	}()

	for _, w := range waiters {
		if refreshErr != nil {
			w.done <- callResult{err: fmt.Errorf("refresh credential: %w", refreshErr)}
			continue
		}
		status, data, err := c.roundTrip(w.ctx, w.method, w.path, w.body, token)
		w.done <- callResult{status: status, body: data, err: err}
	}

	if refreshErr != nil {
		return 0, nil, fmt.Errorf("refresh credential: %w", refreshErr)
	}

	return c.roundTrip(ctx, method, path, body, token)
}

// refreshCredential issues the single renewal call and persists the new
// access token. The renewal cookie from the stored session is the only
// context the server needs.
func (c *Client) refreshCredential(ctx context.Context) (string, error) {
	creds, err := c.creds.Load()
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/refreshToken", nil)
	if err != nil {
		return "", err
	}
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: creds.RefreshCookie})

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	data, err := readBody(resp)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", newError(resp.StatusCode, data)
	}

	var body struct {
		AccessToken string `json:"accessToken"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("refresh response missing access token")
	}

	creds.AccessToken = body.AccessToken
	creds.UpdatedAt = time.Now()
	if err := c.creds.Save(creds); err != nil {
		return "", fmt.Errorf("persist credential: %w", err)
	}

	c.log.Debug().Msg("credential refreshed")
	return body.AccessToken, nil
}

// roundTrip performs a single HTTP exchange with the given bearer token.
// An empty token sends the request unauthenticated; the server rejects it.
func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte, token string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}

	data, err := readBody(resp)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

// token returns the stored access token, or empty when not logged in.
func (c *Client) token() string {
	creds, err := c.creds.Load()
	if err != nil {
		return ""
	}
	return creds.AccessToken
}

func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return data, nil
}
