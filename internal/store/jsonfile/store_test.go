package jsonfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/traindesk/traindesk/internal/core/catalog"
	"github.com/traindesk/traindesk/internal/core/credentials"
)

func TestCredentialsStore(t *testing.T) {
	t.Run("load before save returns ErrNotLoggedIn", func(t *testing.T) {
		store := NewCredentialsStore(filepath.Join(t.TempDir(), "credentials.json"))

		_, err := store.Load()
		assert.ErrorIs(t, err, credentials.ErrNotLoggedIn)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		store := NewCredentialsStore(filepath.Join(t.TempDir(), "credentials.json"))

		creds := credentials.Credentials{
			AccessToken:   "token-abc",
			RefreshCookie: "cookie-xyz",
			Email:         "admin@example.com",
			UpdatedAt:     time.Now().UTC(),
		}
		require.NoError(t, store.Save(creds))

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "token-abc", loaded.AccessToken)
		assert.Equal(t, "cookie-xyz", loaded.RefreshCookie)
		assert.Equal(t, "admin@example.com", loaded.Email)
	})

	t.Run("save creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "credentials.json")
		store := NewCredentialsStore(path)

		require.NoError(t, store.Save(credentials.Credentials{AccessToken: "t"}))

		_, err := os.Stat(path)
		require.NoError(t, err)
	})

	t.Run("credentials file is not world readable", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		store := NewCredentialsStore(path)

		require.NoError(t, store.Save(credentials.Credentials{AccessToken: "t"}))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("no session material loads as ErrNotLoggedIn", func(t *testing.T) {
		store := NewCredentialsStore(filepath.Join(t.TempDir(), "credentials.json"))

		require.NoError(t, store.Save(credentials.Credentials{Email: "x@y.z"}))

		_, err := store.Load()
		assert.ErrorIs(t, err, credentials.ErrNotLoggedIn)
	})

	t.Run("renewal cookie alone still loads", func(t *testing.T) {
		store := NewCredentialsStore(filepath.Join(t.TempDir(), "credentials.json"))

		require.NoError(t, store.Save(credentials.Credentials{RefreshCookie: "cookie-live"}))

		creds, err := store.Load()
		require.NoError(t, err)
		assert.False(t, creds.LoggedIn())
		assert.Equal(t, "cookie-live", creds.RefreshCookie)
	})

	t.Run("clear removes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		store := NewCredentialsStore(path)

		require.NoError(t, store.Save(credentials.Credentials{AccessToken: "t"}))
		require.NoError(t, store.Clear())

		_, err := store.Load()
		assert.ErrorIs(t, err, credentials.ErrNotLoggedIn)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		store := NewCredentialsStore(filepath.Join(t.TempDir(), "credentials.json"))
		require.NoError(t, store.Clear())
		require.NoError(t, store.Clear())
	})

	t.Run("corrupt file returns parse error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "credentials.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		store := NewCredentialsStore(path)
		_, err := store.Load()
		assert.ErrorContains(t, err, "parse credentials file")
	})
}

func TestSnapshotStore(t *testing.T) {
	t.Run("load before save returns ErrNoSnapshot", func(t *testing.T) {
		store := NewSnapshotStore(filepath.Join(t.TempDir(), "dashboard.json"))

		_, err := store.Load()
		assert.ErrorIs(t, err, ErrNoSnapshot)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		store := NewSnapshotStore(filepath.Join(t.TempDir(), "dashboard.json"))

		snap := Snapshot{
			Totals:    catalog.Totals{Batches: 4, Instructors: 7, Courses: 3, Branches: 2},
			Batches:   []catalog.Batch{{ID: "b1", Code: "B-001", Name: "Welding L1"}},
			FetchedAt: time.Now().UTC().Truncate(time.Second),
		}
		require.NoError(t, store.Save(snap))

		loaded, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, snap.Totals, loaded.Totals)
		require.Len(t, loaded.Batches, 1)
		assert.Equal(t, "B-001", loaded.Batches[0].Code)
	})
}
