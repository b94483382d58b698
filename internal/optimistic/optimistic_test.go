package optimistic

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entity struct {
	ID   string
	Name string
}

func entityID(e entity) string { return e.ID }

// recordingNotifier captures emitted notifications.
type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) { n.successes = append(n.successes, msg) }
func (n *recordingNotifier) Failure(msg string) { n.failures = append(n.failures, msg) }

func seedCollection() *Collection[entity] {
	return NewCollection([]entity{
		{ID: "a1", Name: "Alpha"},
		{ID: "b7", Name: "Bravo"},
		{ID: "c3", Name: "Charlie"},
	})
}

func TestApply_OptimisticDeleteVisibleImmediately(t *testing.T) {
	col := seedCollection()

	var seenDuringRequest []entity
	_, err := Apply(context.Background(), col,
		RemoveByID("b7", entityID),
		func(ctx context.Context) (struct{}, error) {
			seenDuringRequest = col.Items()
			return struct{}{}, nil
		},
		Options[entity, struct{}]{},
	)
	require.NoError(t, err)

	// The mutation was already applied when the request ran.
	require.Len(t, seenDuringRequest, 2)
	assert.Equal(t, "a1", seenDuringRequest[0].ID)
	assert.Equal(t, "c3", seenDuringRequest[1].ID)
}

func TestApply_RollbackRestoresExactState(t *testing.T) {
	requestErr := errors.New("network down")

	tests := []struct {
		name   string
		mutate func([]entity) []entity
	}{
		{"append", Append(entity{ID: PlaceholderID(), Name: "Delta"})},
		{"remove", RemoveByID("b7", entityID)},
		{"replace", ReplaceByID("c3", entity{ID: "c3", Name: "Changed"}, entityID)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col := seedCollection()
			before := col.Items()

			outcome, err := Apply(context.Background(), col, tt.mutate,
				func(ctx context.Context) (struct{}, error) {
					return struct{}{}, requestErr
				},
				Options[entity, struct{}]{},
			)

			require.ErrorIs(t, err, requestErr, "the error is surfaced, not swallowed")
			assert.Equal(t, OutcomeRolledBack, outcome)
			assert.Equal(t, before, col.Items(), "collection deep-equal to pre-mutation state")
		})
	}
}

func TestApply_DeleteFailureRollsBackAndNotifies(t *testing.T) {
	col := seedCollection()
	notifier := &recordingNotifier{}

	var observed [][]entity
	col.OnChange(func(items []entity) {
		observed = append(observed, items)
	})

	outcome, err := Apply(context.Background(), col,
		RemoveByID("b7", entityID),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, errors.New("connection reset")
		},
		Options[entity, struct{}]{
			FailureMessage: "Failed to delete entry",
			Notifier:       notifier,
		},
	)

	require.Error(t, err)
	assert.Equal(t, OutcomeRolledBack, outcome)

	// Observers saw the optimistic removal, then the rollback.
	require.Len(t, observed, 2)
	assert.Len(t, observed[0], 2)
	assert.Len(t, observed[1], 3)
	assert.Equal(t, "b7", observed[1][1].ID)

	assert.Equal(t, []string{"Failed to delete entry"}, notifier.failures)
	assert.Empty(t, notifier.successes)
}

func TestApply_CreateReconcilesPlaceholder(t *testing.T) {
	col := NewCollection([]entity{})
	notifier := &recordingNotifier{}

	placeholder := PlaceholderID()
	server := entity{ID: "real-42", Name: "X"}

	outcome, err := Apply(context.Background(), col,
		Append(entity{ID: placeholder, Name: "X"}),
		func(ctx context.Context) (entity, error) {
			return server, nil
		},
		Options[entity, entity]{
			SuccessMessage: "Entry added",
			Notifier:       notifier,
			Reconcile:      ReconcileByID[entity](placeholder, entityID),
		},
	)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)

	items := col.Items()
	require.Len(t, items, 1, "exactly one entry for the created item")
	assert.Equal(t, "real-42", items[0].ID, "server id replaces the placeholder")
	assert.Equal(t, "X", items[0].Name)

	assert.Equal(t, []string{"Entry added"}, notifier.successes)
}

func TestApply_SuccessWithoutReconcileKeepsGuess(t *testing.T) {
	col := seedCollection()

	outcome, err := Apply(context.Background(), col,
		ReplaceByID("a1", entity{ID: "a1", Name: "Renamed"}, entityID),
		func(ctx context.Context) (struct{}, error) {
			return struct{}{}, nil
		},
		Options[entity, struct{}]{},
	)

	require.NoError(t, err)
	assert.Equal(t, OutcomeCommitted, outcome)
	assert.Equal(t, "Renamed", col.Items()[0].Name)
}

func TestApply_RollbackOnPanic(t *testing.T) {
	col := seedCollection()
	before := col.Items()

	require.Panics(t, func() {
		_, _ = Apply(context.Background(), col,
			RemoveByID("b7", entityID),
			func(ctx context.Context) (struct{}, error) {
				panic("request blew up")
			},
			Options[entity, struct{}]{},
		)
	})

	assert.Equal(t, before, col.Items(), "rollback runs on any failure path")
}

func TestMutatorsArePure(t *testing.T) {
	original := []entity{{ID: "a1"}, {ID: "b7"}}

	_ = Append(entity{ID: "x"})(original)
	_ = RemoveByID("a1", entityID)(original)
	_ = ReplaceByID("b7", entity{ID: "b7", Name: "new"}, entityID)(original)

	require.Len(t, original, 2)
	assert.Equal(t, "a1", original[0].ID)
	assert.Equal(t, "b7", original[1].ID)
	assert.Empty(t, original[1].Name)
}

func TestPlaceholderID(t *testing.T) {
	id := PlaceholderID()
	assert.True(t, IsPlaceholder(id))
	assert.False(t, IsPlaceholder("real-42"))
	assert.NotEqual(t, id, PlaceholderID())
}
