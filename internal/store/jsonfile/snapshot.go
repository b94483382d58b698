package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/traindesk/traindesk/internal/core/catalog"
)

// ErrNoSnapshot is returned when no dashboard snapshot has been saved yet.
var ErrNoSnapshot = errors.New("no dashboard snapshot")

// Snapshot is a cached copy of the dashboard aggregates, written after each
// successful fetch so `stats --cached` works offline.
type Snapshot struct {
	Totals    catalog.Totals  `json:"totals"`
	Batches   []catalog.Batch `json:"batches,omitempty"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// SnapshotStore persists the dashboard snapshot to a JSON file.
type SnapshotStore struct {
	path string
	mu   sync.RWMutex
}

// NewSnapshotStore creates a snapshot store at the given path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Load returns the saved snapshot. Returns ErrNoSnapshot if none exists.
func (s *SnapshotStore) Load() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot file: %w", err)
	}
	return snap, nil
}

// Save replaces the saved snapshot.
func (s *SnapshotStore) Save(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeAtomic(s.path, snap, 0o644)
}
