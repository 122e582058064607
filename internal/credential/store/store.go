// Package store persists issued credential records keyed by credential id.
//
// Implementations must treat Save as the single source of truth for the
// at-most-one-record-per-id invariant: a duplicate insert fails with
// sentinel.ErrDuplicateID regardless of any prior Exists check.
package store

import (
	"context"

	"credforge/internal/credential/models"
)

// Store is the record store contract shared by both services.
// Implementations must be safe for concurrent use.
type Store interface {
	// Exists reports whether a record with the given id is present.
	Exists(ctx context.Context, id string) (bool, error)

	// Save inserts a new record under id. Returns sentinel.ErrDuplicateID
	// (wrapped) if a record with that id already exists; the store is never
	// overwritten in place.
	Save(ctx context.Context, id string, rec *models.Record) error

	// Get returns the record stored under id, or sentinel.ErrNotFound
	// (wrapped) when absent. Absence is not an I/O failure.
	Get(ctx context.Context, id string) (*models.Record, error)
}
