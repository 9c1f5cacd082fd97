// Package store unifies the local response cache and the optional remote
// tabular backend behind one persistence API with a defined consistency
// policy: local writes never fail for well-formed records, remote failures
// degrade to local-only durability, and loads reconcile remote rows with
// records still pending remote sync.
package store

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/utechsu/councilpulse/internal/assessment"
	"github.com/utechsu/councilpulse/internal/assessment/storage"
	"github.com/utechsu/councilpulse/internal/platform/timeouts"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Status reports where a record or collection currently lives.
type Status string

const (
	// StatusLocal means the remote backend is disabled; local is the only tier.
	StatusLocal Status = "local"
	// StatusSynced means local and remote both hold the data.
	StatusSynced Status = "synced"
	// StatusLocalOnly means a remote operation failed and the data is durable
	// in the local cache only. Degraded, not fatal.
	StatusLocalOnly Status = "local_only"
)

// Store is the persistence facade.
type Store struct {
	local  storage.Local
	remote storage.Remote
	tracer trace.Tracer

	mu      sync.Mutex
	pending []assessment.Response
}

// New builds a facade over the given local store. remote may be nil, which
// disables the remote tier for the session.
func New(local storage.Local, remote storage.Remote) *Store {
	return &Store{
		local:  local,
		remote: remote,
		tracer: otel.Tracer("councilpulse/store"),
	}
}

// RemoteEnabled reports whether a remote backend is configured.
func (s *Store) RemoteEnabled() bool {
	return s != nil && s.remote != nil
}

// Pending returns the number of records awaiting remote sync.
func (s *Store) Pending() int {
	if s == nil {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Append stores a response. The local append happens first and is
// authoritative; a remote failure is reported through the returned status,
// never as an error, so callers can surface degraded durability without
// losing the submission.
func (s *Store) Append(ctx context.Context, r assessment.Response) (Status, error) {
	if s == nil || s.local == nil {
		return StatusLocalOnly, storage.ErrNotConfigured
	}

	ctx, span := s.tracer.Start(ctx, "store.Append")
	defer span.End()

	if err := s.local.Append(ctx, r); err != nil {
		return StatusLocalOnly, fmt.Errorf("append local: %w", err)
	}

	if s.remote == nil {
		return StatusLocal, nil
	}

	if err := s.appendRemote(ctx, r); err != nil {
		log.Printf("remote append failed, keeping record local: %v", err)
		span.SetAttributes(attribute.Bool("store.degraded", true))
		s.mu.Lock()
		s.pending = append(s.pending, r)
		s.mu.Unlock()
		return StatusLocalOnly, nil
	}

	return StatusSynced, nil
}

// LoadAll returns the response collection. With the remote tier enabled the
// remote rows are the source of truth; records whose remote append failed
// earlier are appended after them so a refresh cannot silently drop
// local-only submissions. A failed remote read preserves the current cache.
func (s *Store) LoadAll(ctx context.Context) ([]assessment.Response, Status, error) {
	if s == nil || s.local == nil {
		return nil, StatusLocalOnly, storage.ErrNotConfigured
	}

	ctx, span := s.tracer.Start(ctx, "store.LoadAll")
	defer span.End()

	if s.remote == nil {
		all, err := s.local.All(ctx)
		if err != nil {
			return nil, StatusLocal, fmt.Errorf("load local: %w", err)
		}
		return all, StatusLocal, nil
	}

	rows, err := s.readRemote(ctx)
	if err != nil {
		log.Printf("remote read failed, serving cached collection: %v", err)
		span.SetAttributes(attribute.Bool("store.degraded", true))
		cached, cacheErr := s.local.All(ctx)
		if cacheErr != nil {
			return nil, StatusLocalOnly, fmt.Errorf("load cached: %w", cacheErr)
		}
		return cached, StatusLocalOnly, nil
	}

	merged := make([]assessment.Response, 0, len(rows))
	for _, row := range rows {
		merged = append(merged, assessment.DecodeRow(row))
	}

	// The lock spans the pending snapshot and the cache replace so a queue
	// add cannot slip between them. A record whose local append raced ahead
	// of the remote read but whose remote attempt has not yet failed can
	// still be replaced away here; it joins the pending queue afterwards and
	// reappears on the next LoadAll or Sync, invisible briefly, never lost.
	s.mu.Lock()
	merged = append(merged, s.pending...)
	err = s.local.Replace(ctx, merged)
	s.mu.Unlock()
	if err != nil {
		return nil, StatusLocalOnly, fmt.Errorf("refresh cache: %w", err)
	}
	span.SetAttributes(attribute.Int("store.responses", len(merged)))
	return merged, StatusSynced, nil
}

// Sync retries the remote append for records that previously failed,
// returning how many were drained. Records that fail again stay pending.
func (s *Store) Sync(ctx context.Context) (int, error) {
	if s == nil {
		return 0, storage.ErrNotConfigured
	}
	if s.remote == nil {
		return 0, nil
	}

	ctx, span := s.tracer.Start(ctx, "store.Sync")
	defer span.End()

	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	var failed []assessment.Response
	synced := 0
	for _, r := range queued {
		if err := s.appendRemote(ctx, r); err != nil {
			log.Printf("sync append failed: %v", err)
			failed = append(failed, r)
			continue
		}
		synced++
	}

	if len(failed) > 0 {
		s.mu.Lock()
		s.pending = append(failed, s.pending...)
		s.mu.Unlock()
	}
	span.SetAttributes(attribute.Int("store.synced", synced))
	return synced, nil
}

// appendRemote bounds one remote append with the shared call timeout.
func (s *Store) appendRemote(ctx context.Context, r assessment.Response) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.RemoteCall)
	defer cancel()
	return s.remote.AppendRow(ctx, assessment.EncodeRow(r))
}

// readRemote bounds one remote read with the shared call timeout.
func (s *Store) readRemote(ctx context.Context) ([][]string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeouts.RemoteCall)
	defer cancel()
	return s.remote.ReadAllRows(ctx)
}

// Clear empties the local cache and the pending queue. Remote data is never
// deleted here; that asymmetry is deliberate, an administrative clear must
// not be able to destroy the durable collection.
func (s *Store) Clear(ctx context.Context) error {
	if s == nil || s.local == nil {
		return storage.ErrNotConfigured
	}

	ctx, span := s.tracer.Start(ctx, "store.Clear")
	defer span.End()

	if err := s.local.Clear(ctx); err != nil {
		return fmt.Errorf("clear local: %w", err)
	}
	s.mu.Lock()
	s.pending = nil
	s.mu.Unlock()
	return nil
}

// Count returns the size of the local collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	if s == nil || s.local == nil {
		return 0, storage.ErrNotConfigured
	}
	return s.local.Count(ctx)
}

// Close releases the local store's resources.
func (s *Store) Close() error {
	if s == nil || s.local == nil {
		return nil
	}
	return s.local.Close()
}
