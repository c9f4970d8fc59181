// Package session keeps per-client battle state between requests.
package session

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("session not found")

type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
	// Update replaces the value at id with fn's result while holding the
	// session exclusively. fn is not called when id is missing.
	Update(ctx context.Context, id string, fn func(T) (T, error)) (T, error)
	NewID() string
}
