// Package memory provides the in-process response store used when no
// database path is configured. It is the fallback of record when the remote
// backend is disabled or failing.
package memory

import (
	"context"
	"sync"

	"github.com/utechsu/councilpulse/internal/assessment"
	"github.com/utechsu/councilpulse/internal/assessment/storage"
)

// Store keeps responses in an append-only slice guarded by a mutex.
type Store struct {
	mu        sync.RWMutex
	responses []assessment.Response
}

// New creates an empty in-memory response store.
func New() *Store {
	return &Store{}
}

// Append adds a response at the end of the collection.
func (s *Store) Append(ctx context.Context, r assessment.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return storage.ErrNotConfigured
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = append(s.responses, r)
	return nil
}

// All returns a copy of the collection in insertion order.
func (s *Store) All(ctx context.Context) ([]assessment.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, storage.ErrNotConfigured
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]assessment.Response, len(s.responses))
	copy(out, s.responses)
	return out, nil
}

// Replace swaps the whole collection.
func (s *Store) Replace(ctx context.Context, rs []assessment.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return storage.ErrNotConfigured
	}

	replacement := make([]assessment.Response, len(rs))
	copy(replacement, rs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = replacement
	return nil
}

// Clear empties the collection.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil {
		return storage.ErrNotConfigured
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses = nil
	return nil
}

// Count returns the number of stored responses.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil {
		return 0, storage.ErrNotConfigured
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.responses), nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
