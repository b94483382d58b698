package optimistic

import (
	"strings"

	"github.com/google/uuid"
)

// placeholderPrefix marks ids invented client-side for optimistic creates.
const placeholderPrefix = "pending-"

// PlaceholderID returns a fresh client-side id for an optimistic create.
// Reconcile swaps it for the server-generated id on success.
func PlaceholderID() string {
	return placeholderPrefix + uuid.NewString()
}

// IsPlaceholder reports whether id was invented client-side.
func IsPlaceholder(id string) bool {
	return strings.HasPrefix(id, placeholderPrefix)
}

// Append returns a mutator that adds item to the end of the collection.
func Append[T any](item T) func([]T) []T {
	return func(items []T) []T {
		out := make([]T, len(items), len(items)+1)
		copy(out, items)
		return append(out, item)
	}
}

// RemoveByID returns a mutator that drops the item whose id matches.
func RemoveByID[T any](id string, idOf func(T) string) func([]T) []T {
	return func(items []T) []T {
		out := make([]T, 0, len(items))
		for _, it := range items {
			if idOf(it) != id {
				out = append(out, it)
			}
		}
		return out
	}
}

// ReplaceByID returns a mutator that substitutes the item whose id matches.
func ReplaceByID[T any](id string, item T, idOf func(T) string) func([]T) []T {
	return func(items []T) []T {
		out := make([]T, len(items))
		copy(out, items)
		for i, it := range out {
			if idOf(it) == id {
				out[i] = item
			}
		}
		return out
	}
}

// ReconcileByID returns a reconcile function that replaces the entry carrying
// the placeholder id with the server's record.
func ReconcileByID[T any](placeholderID string, idOf func(T) string) func([]T, T) []T {
	return func(items []T, resp T) []T {
		return ReplaceByID(placeholderID, resp, idOf)(items)
	}
}
