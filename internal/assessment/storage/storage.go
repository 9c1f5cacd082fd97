// Package storage defines the persistence interfaces for the response
// collection. The facade composes a Local cache with an optional Remote
// tabular backend; implementations live in the subpackages.
package storage

import (
	"context"
	"errors"

	"github.com/utechsu/councilpulse/internal/assessment"
)

// ErrNotConfigured indicates a store method was called on a nil or
// uninitialized store.
var ErrNotConfigured = errors.New("store is not configured")

// Local is the authoritative in-process response collection for the running
// session. Implementations must serialize Append/Replace/Clear/All so
// concurrent callers always observe a consistent snapshot.
type Local interface {
	// Append adds a response at the end of the collection.
	Append(ctx context.Context, r assessment.Response) error
	// All returns the collection in insertion order. The returned slice is
	// the caller's to keep; mutations must not leak back into the store.
	All(ctx context.Context) ([]assessment.Response, error)
	// Replace swaps the whole collection, used when refreshing from remote.
	Replace(ctx context.Context, rs []assessment.Response) error
	// Clear empties the collection.
	Clear(ctx context.Context) error
	// Count returns the number of stored responses.
	Count(ctx context.Context) (int, error)
	// Close releases any underlying resources.
	Close() error
}

// Remote is the durable external tabular backend. Operations are blocking
// and perform no internal retries; the caller bounds them with ctx.
type Remote interface {
	// AppendRow inserts one encoded row at the end of the data range.
	AppendRow(ctx context.Context, row []string) error
	// ReadAllRows fetches every data row beyond the header.
	ReadAllRows(ctx context.Context) ([][]string, error)
}
