// Package ports defines the interfaces between the order automation core and
// its infrastructure: document persistence, change feeds and notification delivery.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"
)

// Document is a stored document together with its location.
type Document struct {
	Collection string
	ID         string
	Fields     map[string]any
}

// DocumentStore defines the persistence contract for schemaless documents
// grouped in collections. Field values are JSON compatible: strings, numbers,
// booleans, nil, time.Time, []any and map[string]any.
type DocumentStore interface {
	// Get returns the fields of a document.
	// Returns errs.ErrObjectNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string) (map[string]any, error)

	// Set creates or fully replaces a document.
	Set(ctx context.Context, collection, id string, fields map[string]any) error

	// Update merges fields into an existing document, top-level keys only.
	// Returns errs.ErrObjectNotFound when the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Append adds a document under a store generated identifier and returns it.
	// Appended documents keep their insertion order.
	Append(ctx context.Context, collection string, fields map[string]any) (string, error)
}

// DocumentFinder lists documents of a collection whose top-level string field
// equals a value, in insertion order.
type DocumentFinder interface {
	FindByField(ctx context.Context, collection, field, value string) ([]Document, error)
}
