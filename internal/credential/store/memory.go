package store

import (
	"context"
	"fmt"
	"sync"

	"credforge/internal/credential/models"
	"credforge/internal/sentinel"
)

// Compile-time interface satisfaction check.
var _ Store = (*InMemory)(nil)

// InMemory stores credential records in memory. Used as the test double for
// both services; it honors the same sentinel error contract as SQLiteStore.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]*models.Record
}

// NewInMemory creates an in-memory record store.
func NewInMemory() *InMemory {
	return &InMemory{
		records: make(map[string]*models.Record),
	}
}

// Exists reports whether a record with the given id is present.
func (s *InMemory) Exists(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[id]
	return ok, nil
}

// Save inserts a new record under id, atomically rejecting duplicates.
func (s *InMemory) Save(_ context.Context, id string, rec *models.Record) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; ok {
		return fmt.Errorf("credential %q already issued: %w", id, sentinel.ErrDuplicateID)
	}
	s.records[id] = rec
	return nil
}

// Get returns the record stored under id.
func (s *InMemory) Get(_ context.Context, id string) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return rec, nil
}

// Len returns the number of stored records. Test helper.
func (s *InMemory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
