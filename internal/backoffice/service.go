// Package backoffice orchestrates the entity collections shown by the CLI
// and TUI on top of the API gateway.
package backoffice

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/core/catalog"
	"github.com/traindesk/traindesk/internal/optimistic"
	"github.com/traindesk/traindesk/internal/store/jsonfile"
)

// API is the surface of the gateway client the service depends on.
type API interface {
	Branches(ctx context.Context) ([]catalog.Branch, error)
	CreateBranch(ctx context.Context, in api.NewBranch) (catalog.Branch, error)
	UpdateBranch(ctx context.Context, id string, in api.NewBranch) (catalog.Branch, error)
	DeleteBranch(ctx context.Context, id string) error

	Courses(ctx context.Context) ([]catalog.Course, error)
	CreateCourse(ctx context.Context, in api.NewCourse) (catalog.Course, error)
	UpdateCourse(ctx context.Context, id string, in api.NewCourse) (catalog.Course, error)
	DeleteCourse(ctx context.Context, id string) error

	Instructors(ctx context.Context) ([]catalog.Instructor, error)
	CreateInstructor(ctx context.Context, in api.NewInstructor) (catalog.Instructor, error)
	UpdateInstructor(ctx context.Context, id string, in api.NewInstructor) (catalog.Instructor, error)
	DeleteInstructor(ctx context.Context, id string) error

	Batches(ctx context.Context) (api.BatchList, error)
	Book(ctx context.Context, in api.BookBatch) (catalog.Batch, error)
	UpdateBatch(ctx context.Context, id string, in api.BookBatch) (catalog.Batch, error)
	DeleteBatch(ctx context.Context, id string) error
	AvailableInstructors(ctx context.Context, q api.AvailabilityQuery) ([]catalog.Instructor, error)
}

// SnapshotStore persists the dashboard snapshot between runs.
type SnapshotStore interface {
	Load() (jsonfile.Snapshot, error)
	Save(jsonfile.Snapshot) error
}

// Service owns the live entity collections. Each collection is mutated
// optimistically: the change is visible immediately and rolled back with a
// failure notification when the server rejects it.
type Service struct {
	api      API
	snaps    SnapshotStore
	notifier optimistic.Notifier
	log      zerolog.Logger

	Branches    *optimistic.Collection[catalog.Branch]
	Courses     *optimistic.Collection[catalog.Course]
	Instructors *optimistic.Collection[catalog.Instructor]
	Batches     *optimistic.Collection[catalog.Batch]

	mu     sync.Mutex
	totals catalog.Totals
}

// New creates a Service. The notifier receives the user-visible outcome of
// every mutation; pass optimistic.NopNotifier{} to silence it.
func New(apiClient API, snaps SnapshotStore, notifier optimistic.Notifier, log zerolog.Logger) *Service {
	return &Service{
		api:         apiClient,
		snaps:       snaps,
		notifier:    notifier,
		log:         log,
		Branches:    optimistic.NewCollection[catalog.Branch](nil),
		Courses:     optimistic.NewCollection[catalog.Course](nil),
		Instructors: optimistic.NewCollection[catalog.Instructor](nil),
		Batches:     optimistic.NewCollection[catalog.Batch](nil),
	}
}

// SetNotifier swaps the notification sink, e.g. when the TUI takes over.
func (s *Service) SetNotifier(n optimistic.Notifier) {
	if n == nil {
		n = optimistic.NopNotifier{}
	}
	s.notifier = n
}

// RefreshAll fetches every collection and the dashboard totals, then caches
// the snapshot for offline stats.
func (s *Service) RefreshAll(ctx context.Context) error {
	branches, err := s.api.Branches(ctx)
	if err != nil {
		return err
	}
	courses, err := s.api.Courses(ctx)
	if err != nil {
		return err
	}
	instructors, err := s.api.Instructors(ctx)
	if err != nil {
		return err
	}
	list, err := s.api.Batches(ctx)
	if err != nil {
		return err
	}

	s.Branches.Reset(branches)
	s.Courses.Reset(courses)
	s.Instructors.Reset(instructors)
	s.Batches.Reset(list.Batches)

	s.mu.Lock()
	s.totals = list.Totals
	s.mu.Unlock()

	if s.snaps != nil {
		snap := jsonfile.Snapshot{
			Totals:    list.Totals,
			Batches:   list.Batches,
			FetchedAt: time.Now(),
		}
		if err := s.snaps.Save(snap); err != nil {
			// Stale cache is tolerable; the live fetch already succeeded.
			s.log.Warn().Err(err).Msg("save dashboard snapshot")
		}
	}

	return nil
}

// Totals returns the aggregates from the most recent fetch.
func (s *Service) Totals() catalog.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// CachedSnapshot returns the last persisted dashboard snapshot.
func (s *Service) CachedSnapshot() (jsonfile.Snapshot, error) {
	if s.snaps == nil {
		return jsonfile.Snapshot{}, jsonfile.ErrNoSnapshot
	}
	return s.snaps.Load()
}
