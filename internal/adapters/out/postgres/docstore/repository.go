package docstore

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// documentTracker is notified of every document written through the store.
type documentTracker interface {
	TrackDocument(collection, id string)
}

type noopTracker struct{}

func (noopTracker) TrackDocument(string, string) {}

// GormDocumentStore implements ports.DocumentStore and ports.DocumentFinder using GORM.
type GormDocumentStore struct {
	db      *gorm.DB
	tracker documentTracker
	watched map[string]bool
}

// NewGormDocumentStore creates a store recording changes of the watched collections.
// A nil tracker is allowed.
func NewGormDocumentStore(db *gorm.DB, tracker documentTracker, watched ...string) *GormDocumentStore {
	if tracker == nil {
		tracker = noopTracker{}
	}

	w := make(map[string]bool, len(watched))
	for _, c := range watched {
		w[c] = true
	}

	return &GormDocumentStore{
		db:      db,
		tracker: tracker,
		watched: w,
	}
}

// Get retrieves the fields of a document.
func (r *GormDocumentStore) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	var dto DocumentDTO
	err := r.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewObjectNotFoundErrorWithCause(collection, id, err)
	}
	if err != nil {
		return nil, err
	}

	return map[string]any(dto.Fields), nil
}

// Set creates a document or replaces the fields of an existing one.
func (r *GormDocumentStore) Set(ctx context.Context, collection, id string, fields map[string]any) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, found, err := r.lock(tx, collection, id)
		if err != nil {
			return err
		}

		if !found {
			return tx.Create(&DocumentDTO{Collection: collection, ID: id, Fields: fields}).Error
		}

		return r.replace(tx, existing, fields)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackDocument(collection, id)
	return nil
}

// Update merges fields into an existing document.
func (r *GormDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, found, err := r.lock(tx, collection, id)
		if err != nil {
			return err
		}
		if !found {
			return errs.NewObjectNotFoundError(collection, id)
		}

		merged := make(map[string]any, len(existing.Fields)+len(fields))
		for k, v := range existing.Fields {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}

		return r.replace(tx, existing, merged)
	})
	if err != nil {
		return err
	}

	r.tracker.TrackDocument(collection, id)
	return nil
}

// Append stores a document under a generated UUID.
func (r *GormDocumentStore) Append(ctx context.Context, collection string, fields map[string]any) (string, error) {
	id := kernel.NewUUID().String()

	dto := DocumentDTO{Collection: collection, ID: id, Fields: fields}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return "", err
	}

	r.tracker.TrackDocument(collection, id)
	return id, nil
}

// FindByField lists documents whose top-level field equals value, in insertion order.
func (r *GormDocumentStore) FindByField(
	ctx context.Context,
	collection, field, value string,
) ([]ports.Document, error) {
	docs := make([]ports.Document, 0)

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			id,
			fields
		FROM documents
		WHERE collection = ? AND fields->>? = ?
		ORDER BY seq
	`, collection, field, value).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id     string
			fields JSONFields
		)
		if err = rows.Scan(&id, &fields); err != nil {
			return nil, err
		}
		docs = append(docs, ports.Document{
			Collection: collection,
			ID:         id,
			Fields:     map[string]any(fields),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

// lock loads a document with a row lock held until the surrounding transaction ends.
func (r *GormDocumentStore) lock(tx *gorm.DB, collection, id string) (DocumentDTO, bool, error) {
	var dto DocumentDTO
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("collection = ? AND id = ?", collection, id).
		Take(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return DocumentDTO{}, false, nil
	}
	if err != nil {
		return DocumentDTO{}, false, err
	}
	return dto, true, nil
}

// replace overwrites the stored fields and records the change for watched collections.
func (r *GormDocumentStore) replace(tx *gorm.DB, existing DocumentDTO, fields map[string]any) error {
	err := tx.Model(&DocumentDTO{}).
		Where("collection = ? AND id = ?", existing.Collection, existing.ID).
		Updates(map[string]any{
			"fields":     JSONFields(fields),
			"updated_at": time.Now().UTC(),
		}).Error
	if err != nil {
		return err
	}

	if !r.watched[existing.Collection] {
		return nil
	}

	return tx.Create(&ChangeDTO{
		Collection: existing.Collection,
		DocumentID: existing.ID,
		Before:     existing.Fields,
		After:      fields,
		RecordedAt: time.Now().UTC(),
	}).Error
}
