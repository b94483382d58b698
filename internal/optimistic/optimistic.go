// Package optimistic applies collection mutations locally before the server
// confirms them, rolling back to the exact prior state when the request fails.
//
// Every entity screen repeats the same sequence: snapshot, mutate, fire the
// request, and on failure restore the snapshot and surface the error. Apply
// is that sequence extracted once, parameterized by the mutate, request, and
// reconcile functions.
package optimistic

import (
	"context"
	"sync"
)

// Outcome is the terminal state of one optimistic operation.
type Outcome int

const (
	// OutcomeCommitted means the server accepted the mutation; the live
	// collection holds the optimistic guess or the reconciled server record.
	OutcomeCommitted Outcome = iota
	// OutcomeRolledBack means the request failed and the collection was
	// restored to its exact pre-mutation state.
	OutcomeRolledBack
)

func (o Outcome) String() string {
	if o == OutcomeCommitted {
		return "committed"
	}
	return "rolled-back"
}

// Notifier receives the user-visible result of a mutation.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// NopNotifier discards notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Failure(string) {}

// Collection holds an entity slice owned by a single screen. The slice is
// treated as immutable: every change installs a new slice, so a held
// snapshot is never disturbed by later operations.
type Collection[T any] struct {
	mu       sync.Mutex
	items    []T
	onChange func([]T)
}

// NewCollection creates a collection with the given initial items.
func NewCollection[T any](items []T) *Collection[T] {
	return &Collection[T]{items: items}
}

// OnChange registers an observer called with the new slice after every
// visible change (optimistic apply, reconcile, rollback, reset).
func (c *Collection[T]) OnChange(fn func([]T)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Items returns the current slice. Callers must not modify it.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Len returns the current number of items.
func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Reset replaces the collection contents, e.g. after a fresh fetch.
func (c *Collection[T]) Reset(items []T) {
	c.install(items)
}

func (c *Collection[T]) install(items []T) {
	c.mu.Lock()
	c.items = items
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(items)
	}
}

// swap atomically captures the current slice and installs the mutation of it.
func (c *Collection[T]) swap(mutate func([]T) []T) (prev, next []T) {
	c.mu.Lock()
	prev = c.items
	next = mutate(prev)
	c.items = next
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn(next)
	}
	return prev, next
}

// Options configures one optimistic operation.
type Options[T, R any] struct {
	// SuccessMessage and FailureMessage are emitted through the Notifier
	// after the operation settles.
	SuccessMessage string
	FailureMessage string
	// Notifier receives the outcome message. Nil means no notifications.
	Notifier Notifier
	// Reconcile, when set, replaces the optimistic guess with the server's
	// authoritative response after success (e.g. swapping a placeholder id
	// for the generated one). It receives the current slice and the
	// response and returns the reconciled slice.
	Reconcile func(items []T, resp R) []T
}

func (o Options[T, R]) notifier() Notifier {
	if o.Notifier == nil {
		return NopNotifier{}
	}
	return o.Notifier
}

// Apply runs one optimistic mutation against the collection.
//
// The mutation is visible to observers before the request is issued. mutate
// must be pure: it returns a new slice and leaves its input untouched. On
// any failure path the collection is restored to the exact pre-mutation
// slice and the error is returned to the caller, never swallowed.
//
// Concurrent operations on the same collection each snapshot at their own
// start time and the last to settle wins. Screens own their collections
// exclusively, so this is a documented limitation rather than a guarded case.
func Apply[T, R any](
	ctx context.Context,
	col *Collection[T],
	mutate func([]T) []T,
	request func(context.Context) (R, error),
	opts Options[T, R],
) (Outcome, error) {
	prev, _ := col.swap(mutate)

	// Rollback must run even if the request panics.
	settled := false
	defer func() {
		if !settled {
			col.install(prev)
		}
	}()

	resp, err := request(ctx)
	if err != nil {
		col.install(prev)
		settled = true
		opts.notifier().Failure(opts.FailureMessage)
		return OutcomeRolledBack, err
	}
	settled = true

	if opts.Reconcile != nil {
		col.swap(func(items []T) []T {
			return opts.Reconcile(items, resp)
		})
	}

	opts.notifier().Success(opts.SuccessMessage)
	return OutcomeCommitted, nil
}
