package ports

import (
	"context"
	"time"
)

// Change is a single modification of an existing document in a watched collection.
// Before and After hold the complete document fields around the modification.
type Change struct {
	ID         string
	Collection string
	DocumentID string
	Before     map[string]any
	After      map[string]any
	RecordedAt time.Time
}

// ChangeFeed exposes recorded document changes to trigger adapters.
// Delivery is at-least-once: a change stays pending until acknowledged.
type ChangeFeed interface {
	// Pending returns up to limit unacknowledged changes of a collection, oldest first.
	Pending(ctx context.Context, collection string, limit int) ([]Change, error)

	// Acknowledge marks a change as processed.
	// Returns errs.ErrObjectNotFound when the change does not exist.
	Acknowledge(ctx context.Context, id string) error
}
