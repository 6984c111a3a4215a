// Package docstore persists schemaless documents in PostgreSQL through GORM.
// Every document lives in one row of the documents table keyed by
// (collection, id) with its fields in a jsonb column. Modifications of
// documents in watched collections are written to the document_changes
// table in the same transaction, which serves as the change feed.
package docstore

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// JSONFields maps document fields onto a jsonb column.
type JSONFields map[string]any

// Value implements driver.Valuer.
func (f JSONFields) Value() (driver.Value, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]any(f))
}

// Scan implements sql.Scanner.
func (f *JSONFields) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*f = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONFields", value)
	}

	out := make(map[string]any)
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*f = out
	return nil
}

// DocumentDTO is a stored document. Seq preserves insertion order across collections.
type DocumentDTO struct {
	Collection string     `gorm:"primaryKey;size:255"`
	ID         string     `gorm:"primaryKey;size:255"`
	Seq        int64      `gorm:"autoIncrement;not null;uniqueIndex"`
	Fields     JSONFields `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for documents.
func (DocumentDTO) TableName() string {
	return "documents"
}

// ChangeDTO is a recorded modification of a watched document.
type ChangeDTO struct {
	Seq         int64      `gorm:"primaryKey;autoIncrement"`
	Collection  string     `gorm:"size:255;not null;index:idx_document_changes_pending,priority:1"`
	DocumentID  string     `gorm:"size:255;not null"`
	Before      JSONFields `gorm:"type:jsonb"`
	After       JSONFields `gorm:"type:jsonb;not null"`
	RecordedAt  time.Time  `gorm:"not null"`
	ProcessedAt *time.Time `gorm:"index:idx_document_changes_pending,priority:2"`
}

// TableName specifies the database table name for recorded changes.
func (ChangeDTO) TableName() string {
	return "document_changes"
}
