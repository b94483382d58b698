package backoffice

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traindesk/traindesk/internal/api"
	"github.com/traindesk/traindesk/internal/core/catalog"
	"github.com/traindesk/traindesk/internal/optimistic"
	"github.com/traindesk/traindesk/internal/store/jsonfile"
)

// mockAPI implements API for testing. Zero-value methods succeed with empty
// results; set the fields to steer behavior.
type mockAPI struct {
	branches    []catalog.Branch
	courses     []catalog.Course
	instructors []catalog.Instructor
	batchList   api.BatchList

	createCourse  func(api.NewCourse) (catalog.Course, error)
	deleteBranch  func(id string) error
	deleteCourse  func(id string) error
	updateBatchFn func(id string, in api.BookBatch) (catalog.Batch, error)
}

func (m *mockAPI) Branches(_ context.Context) ([]catalog.Branch, error) { return m.branches, nil }
func (m *mockAPI) CreateBranch(_ context.Context, in api.NewBranch) (catalog.Branch, error) {
	return catalog.Branch{ID: "srv-branch", BranchName: in.BranchName}, nil
}
func (m *mockAPI) UpdateBranch(_ context.Context, id string, in api.NewBranch) (catalog.Branch, error) {
	return catalog.Branch{ID: id, BranchName: in.BranchName}, nil
}
func (m *mockAPI) DeleteBranch(_ context.Context, id string) error {
	if m.deleteBranch != nil {
		return m.deleteBranch(id)
	}
	return nil
}

func (m *mockAPI) Courses(_ context.Context) ([]catalog.Course, error) { return m.courses, nil }
func (m *mockAPI) CreateCourse(_ context.Context, in api.NewCourse) (catalog.Course, error) {
	if m.createCourse != nil {
		return m.createCourse(in)
	}
	return catalog.Course{ID: "srv-course", Name: in.Name}, nil
}
func (m *mockAPI) UpdateCourse(_ context.Context, id string, in api.NewCourse) (catalog.Course, error) {
	return catalog.Course{ID: id, Name: in.Name}, nil
}
func (m *mockAPI) DeleteCourse(_ context.Context, id string) error {
	if m.deleteCourse != nil {
		return m.deleteCourse(id)
	}
	return nil
}

func (m *mockAPI) Instructors(_ context.Context) ([]catalog.Instructor, error) {
	return m.instructors, nil
}
func (m *mockAPI) CreateInstructor(_ context.Context, in api.NewInstructor) (catalog.Instructor, error) {
	return catalog.Instructor{ID: "srv-instructor", Name: in.Name}, nil
}
func (m *mockAPI) UpdateInstructor(_ context.Context, id string, in api.NewInstructor) (catalog.Instructor, error) {
	return catalog.Instructor{ID: id, Name: in.Name}, nil
}
func (m *mockAPI) DeleteInstructor(_ context.Context, id string) error { return nil }

func (m *mockAPI) Batches(_ context.Context) (api.BatchList, error) { return m.batchList, nil }
func (m *mockAPI) Book(_ context.Context, in api.BookBatch) (catalog.Batch, error) {
	return catalog.Batch{ID: "srv-batch", Code: in.Code}, nil
}
func (m *mockAPI) UpdateBatch(_ context.Context, id string, in api.BookBatch) (catalog.Batch, error) {
	if m.updateBatchFn != nil {
		return m.updateBatchFn(id, in)
	}
	return catalog.Batch{ID: id, Code: in.Code}, nil
}
func (m *mockAPI) DeleteBatch(_ context.Context, id string) error { return nil }
func (m *mockAPI) AvailableInstructors(_ context.Context, q api.AvailabilityQuery) ([]catalog.Instructor, error) {
	return m.instructors, nil
}

// recordingNotifier captures emitted notifications.
type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Failure(msg string) { n.failures = append(n.failures, msg) }

func newTestService(t *testing.T, mock *mockAPI, notifier *recordingNotifier) *Service {
	t.Helper()
	snaps := jsonfile.NewSnapshotStore(t.TempDir() + "/dashboard.json")
	return New(mock, snaps, notifier, zerolog.Nop())
}

func TestRefreshAll(t *testing.T) {
	mock := &mockAPI{
		branches:    []catalog.Branch{{ID: "br1", BranchName: "Oslo"}},
		courses:     []catalog.Course{{ID: "co1", Name: "Welding"}},
		instructors: []catalog.Instructor{{ID: "in1", Name: "Ada"}},
		batchList: api.BatchList{
			Batches: []catalog.Batch{{ID: "ba1", Code: "B-001"}},
			Totals:  catalog.Totals{Batches: 1, Instructors: 1, Courses: 1, Branches: 1},
		},
	}
	svc := newTestService(t, mock, &recordingNotifier{})

	require.NoError(t, svc.RefreshAll(context.Background()))

	assert.Equal(t, 1, svc.Branches.Len())
	assert.Equal(t, 1, svc.Courses.Len())
	assert.Equal(t, 1, svc.Instructors.Len())
	assert.Equal(t, 1, svc.Batches.Len())
	assert.Equal(t, catalog.Totals{Batches: 1, Instructors: 1, Courses: 1, Branches: 1}, svc.Totals())

	// snapshot cached for offline stats
	snap, err := svc.CachedSnapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Totals.Branches)
	require.Len(t, snap.Batches, 1)
	assert.Equal(t, "B-001", snap.Batches[0].Code)
}

func TestDeleteBranch_RollsBackOnFailure(t *testing.T) {
	mock := &mockAPI{
		deleteBranch: func(id string) error { return errors.New("network error") },
	}
	notifier := &recordingNotifier{}
	svc := newTestService(t, mock, notifier)

	seed := []catalog.Branch{{ID: "a1"}, {ID: "b7"}, {ID: "c3"}}
	svc.Branches.Reset(seed)

	err := svc.DeleteBranch(context.Background(), "b7")
	require.Error(t, err)

	assert.Equal(t, seed, svc.Branches.Items(), "rollback restores the exact prior state")
	assert.Equal(t, []string{"Failed to delete branch"}, notifier.failures)
}

func TestDeleteCourse_OptimisticRemoval(t *testing.T) {
	removedDuringRequest := -1
	notifier := &recordingNotifier{}

	mock := &mockAPI{}
	svc := newTestService(t, mock, notifier)
	svc.Courses.Reset([]catalog.Course{{ID: "co1"}, {ID: "co2"}})

	mock.deleteCourse = func(id string) error {
		removedDuringRequest = svc.Courses.Len()
		return nil
	}

	require.NoError(t, svc.DeleteCourse(context.Background(), "co1"))

	assert.Equal(t, 1, removedDuringRequest, "removal visible before the request settled")
	assert.Equal(t, 1, svc.Courses.Len())
	assert.Equal(t, []string{"Course deleted"}, notifier.successes)
}

func TestCreateCourse_ReconcilesServerID(t *testing.T) {
	mock := &mockAPI{
		createCourse: func(in api.NewCourse) (catalog.Course, error) {
			return catalog.Course{ID: "real-42", Name: in.Name}, nil
		},
	}
	notifier := &recordingNotifier{}
	svc := newTestService(t, mock, notifier)

	require.NoError(t, svc.CreateCourse(context.Background(), api.NewCourse{Name: "X"}))

	items := svc.Courses.Items()
	require.Len(t, items, 1, "exactly one entry for the created course")
	assert.Equal(t, "real-42", items[0].ID, "server id replaces the placeholder")
	assert.Equal(t, "X", items[0].Name)
	assert.Equal(t, []string{"Course added successfully"}, notifier.successes)
}

func TestCreateCourse_FailureRemovesPlaceholder(t *testing.T) {
	mock := &mockAPI{
		createCourse: func(in api.NewCourse) (catalog.Course, error) {
			return catalog.Course{}, errors.New("validation failed")
		},
	}
	notifier := &recordingNotifier{}
	svc := newTestService(t, mock, notifier)
	svc.Courses.Reset([]catalog.Course{{ID: "co1"}})

	err := svc.CreateCourse(context.Background(), api.NewCourse{Name: "X"})
	require.Error(t, err)

	assert.Equal(t, 1, svc.Courses.Len(), "placeholder rolled back")
	assert.Equal(t, "co1", svc.Courses.Items()[0].ID)
	assert.Equal(t, []string{"Failed to add course"}, notifier.failures)
}

func TestUpdateBatch_ServerRecordWins(t *testing.T) {
	mock := &mockAPI{
		updateBatchFn: func(id string, in api.BookBatch) (catalog.Batch, error) {
			// The server normalizes the code; its record takes precedence
			// over the optimistic guess.
			return catalog.Batch{ID: id, Code: "B-001-R2", Name: in.Name}, nil
		},
	}
	svc := newTestService(t, mock, &recordingNotifier{})
	svc.Batches.Reset([]catalog.Batch{{ID: "ba1", Code: "B-001"}})

	require.NoError(t, svc.UpdateBatch(context.Background(), "ba1", api.BookBatch{Code: "b-001-r2", Name: "Welding L1"}))

	items := svc.Batches.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "B-001-R2", items[0].Code)
}

func TestBookBatch_AppendsOptimistically(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newTestService(t, &mockAPI{}, notifier)

	require.NoError(t, svc.BookBatch(context.Background(), api.BookBatch{Code: "B-007"}))

	items := svc.Batches.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "srv-batch", items[0].ID)
	assert.Equal(t, []string{"Batch scheduled successfully"}, notifier.successes)
}

func TestCachedSnapshot_NoStoreConfigured(t *testing.T) {
	svc := New(&mockAPI{}, nil, &recordingNotifier{}, zerolog.Nop())

	_, err := svc.CachedSnapshot()
	assert.ErrorIs(t, err, jsonfile.ErrNoSnapshot)
}

func TestDeleteCourse_PendingRecordRejected(t *testing.T) {
	apiCalled := false
	mock := &mockAPI{
		deleteCourse: func(id string) error { apiCalled = true; return nil },
	}
	notifier := &recordingNotifier{}
	svc := newTestService(t, mock, notifier)

	pending := optimistic.PlaceholderID()
	seed := []catalog.Course{{ID: pending, Name: "Draft"}}
	svc.Courses.Reset(seed)

	err := svc.DeleteCourse(context.Background(), pending)
	require.Error(t, err)
	assert.False(t, apiCalled, "record without a server id must not reach the API")
	assert.Equal(t, seed, svc.Courses.Items())
	assert.Empty(t, notifier.failures)
}

func TestUpdateBranch_PendingRecordRejected(t *testing.T) {
	svc := newTestService(t, &mockAPI{}, &recordingNotifier{})

	err := svc.UpdateBranch(context.Background(), optimistic.PlaceholderID(), api.NewBranch{BranchName: "Oslo"})
	require.Error(t, err)
	assert.Equal(t, 0, svc.Branches.Len())
}
