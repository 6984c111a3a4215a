package docstore

import (
	"context"
	"strconv"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormChangeFeed implements ports.ChangeFeed over the document_changes table.
type GormChangeFeed struct {
	db *gorm.DB
}

func NewGormChangeFeed(db *gorm.DB) *GormChangeFeed {
	return &GormChangeFeed{db: db}
}

// Pending returns up to limit unprocessed changes of collection, oldest first.
func (f *GormChangeFeed) Pending(ctx context.Context, collection string, limit int) ([]ports.Change, error) {
	var dtos []ChangeDTO

	q := f.db.WithContext(ctx).
		Where("collection = ? AND processed_at IS NULL", collection).
		Order("seq")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&dtos).Error; err != nil {
		return nil, err
	}

	changes := make([]ports.Change, 0, len(dtos))
	for _, dto := range dtos {
		changes = append(changes, ports.Change{
			ID:         strconv.FormatInt(dto.Seq, 10),
			Collection: dto.Collection,
			DocumentID: dto.DocumentID,
			Before:     map[string]any(dto.Before),
			After:      map[string]any(dto.After),
			RecordedAt: dto.RecordedAt,
		})
	}
	return changes, nil
}

// Acknowledge marks a change processed. Acknowledging twice keeps the first timestamp.
func (f *GormChangeFeed) Acknowledge(ctx context.Context, id string) error {
	seq, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("change id", err)
	}

	var count int64
	err = f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ChangeDTO{}).Where("seq = ?", seq).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return nil
		}
		return tx.Model(&ChangeDTO{}).
			Where("seq = ? AND processed_at IS NULL", seq).
			Update("processed_at", time.Now().UTC()).Error
	})
	if err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("change", id)
	}
	return nil
}
