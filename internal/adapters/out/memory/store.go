// Package memory provides an in-process document store with a change feed and
// a buffering unit of work. It backs local runs and tests.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

type record struct {
	fields map[string]any
	seq    int64
}

type change struct {
	ports.Change
	acknowledged bool
}

// Store is a concurrency-safe document store. Modifications of existing
// documents in watched collections are recorded on its change feed.
type Store struct {
	mu      sync.RWMutex
	docs    map[string]map[string]*record
	seq     int64
	watched map[string]bool
	changes []*change
	clock   kernel.Clock
}

// NewStore creates an empty store recording changes for the watched collections.
func NewStore(clock kernel.Clock, watched ...string) *Store {
	if clock == nil {
		clock = kernel.SystemClock()
	}

	w := make(map[string]bool, len(watched))
	for _, c := range watched {
		w[c] = true
	}

	return &Store{
		docs:    make(map[string]map[string]*record),
		watched: w,
		clock:   clock,
	}
}

// Get returns a copy of the document fields.
func (s *Store) Get(_ context.Context, collection, id string) (map[string]any, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.docs[collection][id]
	if !ok {
		return nil, errs.NewObjectNotFoundError(collection, id)
	}
	return copyFields(rec.fields), nil
}

func (s *Store) Set(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(op{kind: opSet, collection: collection, id: id, fields: fields})
}

func (s *Store) Update(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.apply(op{kind: opUpdate, collection: collection, id: id, fields: fields})
}

func (s *Store) Append(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := kernel.NewUUID().String()
	if err := s.apply(op{kind: opSet, collection: collection, id: id, fields: fields}); err != nil {
		return "", err
	}
	return id, nil
}

// FindByField lists documents whose string field equals value, in insertion order.
func (s *Store) FindByField(_ context.Context, collection, field, value string) ([]ports.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type match struct {
		doc ports.Document
		seq int64
	}
	matches := make([]match, 0)
	for id, rec := range s.docs[collection] {
		if v, ok := rec.fields[field].(string); ok && v == value {
			matches = append(matches, match{
				doc: ports.Document{Collection: collection, ID: id, Fields: copyFields(rec.fields)},
				seq: rec.seq,
			})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].seq < matches[j].seq })

	docs := make([]ports.Document, 0, len(matches))
	for _, m := range matches {
		docs = append(docs, m.doc)
	}
	return docs, nil
}

// Pending returns up to limit unacknowledged changes of collection, oldest first.
func (s *Store) Pending(_ context.Context, collection string, limit int) ([]ports.Change, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ports.Change, 0)
	for _, c := range s.changes {
		if limit > 0 && len(out) == limit {
			break
		}
		if c.acknowledged || c.Collection != collection {
			continue
		}
		cp := c.Change
		cp.Before = copyFields(c.Before)
		cp.After = copyFields(c.After)
		out = append(out, cp)
	}
	return out, nil
}

// Acknowledge marks a change processed. Acknowledging twice is a no-op.
func (s *Store) Acknowledge(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.changes {
		if c.ID == id {
			c.acknowledged = true
			return nil
		}
	}
	return errs.NewObjectNotFoundError("change", id)
}

func (s *Store) exists(collection, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.docs[collection][id]
	return ok
}

type opKind int

const (
	opSet opKind = iota
	opUpdate
)

type op struct {
	kind       opKind
	collection string
	id         string
	fields     map[string]any
}

// applyAll applies ops atomically: either every op is applied or none.
func (s *Store) applyAll(ops []op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range ops {
		if o.kind != opUpdate {
			continue
		}
		if _, ok := s.docs[o.collection][o.id]; !ok && !createdEarlier(ops, o) {
			return errs.NewObjectNotFoundError(o.collection, o.id)
		}
	}

	for _, o := range ops {
		if err := s.apply(o); err != nil {
			return err
		}
	}
	return nil
}

func createdEarlier(ops []op, target op) bool {
	for _, o := range ops {
		if o.collection == target.collection && o.id == target.id {
			return o.kind == opSet
		}
	}
	return false
}

// apply must be called with the write lock held.
func (s *Store) apply(o op) error {
	coll, ok := s.docs[o.collection]
	if !ok {
		coll = make(map[string]*record)
		s.docs[o.collection] = coll
	}

	existing, found := coll[o.id]
	if o.kind == opUpdate && !found {
		return errs.NewObjectNotFoundError(o.collection, o.id)
	}

	var next map[string]any
	switch {
	case o.kind == opUpdate:
		next = copyFields(existing.fields)
		for k, v := range o.fields {
			next[k] = copyValue(v)
		}
	default:
		next = copyFields(o.fields)
	}

	if found {
		if s.watched[o.collection] {
			s.recordChange(o.collection, o.id, existing.fields, next)
		}
		existing.fields = next
		return nil
	}

	s.seq++
	coll[o.id] = &record{fields: next, seq: s.seq}
	return nil
}

func (s *Store) recordChange(collection, id string, before, after map[string]any) {
	s.changes = append(s.changes, &change{Change: ports.Change{
		ID:         strconv.Itoa(len(s.changes) + 1),
		Collection: collection,
		DocumentID: id,
		Before:     copyFields(before),
		After:      copyFields(after),
		RecordedAt: s.clock().UTC().Truncate(time.Microsecond),
	}})
}

func copyFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyFields(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = copyValue(t[i])
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
