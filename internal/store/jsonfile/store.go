// Package jsonfile provides JSON file-backed stores for credentials and
// cached dashboard data.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/traindesk/traindesk/internal/core/credentials"
)

// CredentialsStore implements credentials.Store using a JSON file.
type CredentialsStore struct {
	path string
	mu   sync.RWMutex
}

// NewCredentialsStore creates a store at the given path.
func NewCredentialsStore(path string) *CredentialsStore {
	return &CredentialsStore{path: path}
}

// Load returns the saved credentials. Returns ErrNotLoggedIn if the file does
// not exist or holds no session material. A record with only a renewal
// cookie still loads; the gateway turns it back into an access token.
func (s *CredentialsStore) Load() (credentials.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return credentials.Credentials{}, credentials.ErrNotLoggedIn
		}
		return credentials.Credentials{}, fmt.Errorf("read credentials file: %w", err)
	}

	var creds credentials.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return credentials.Credentials{}, fmt.Errorf("parse credentials file: %w", err)
	}

	if !creds.HasSession() {
		return credentials.Credentials{}, credentials.ErrNotLoggedIn
	}

	return creds, nil
}

// Save persists the credentials, replacing any previous session.
func (s *CredentialsStore) Save(creds credentials.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeAtomic(s.path, creds, 0o600)
}

// Clear removes the credentials file.
func (s *CredentialsStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials file: %w", err)
	}
	return nil
}

// writeAtomic marshals v and writes it with write-to-temp-then-rename to
// prevent corruption from interrupted writes.
func writeAtomic(path string, v any, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
